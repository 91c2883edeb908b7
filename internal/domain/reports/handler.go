package reports

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"patient-adherence/internal/domain/adherence"
	"patient-adherence/internal/platform/civil"
)

// RegisterRoutes monta el reporte sobre /patients/{patientID}.
func RegisterRoutes(r chi.Router, svc *Service) {
	r.Get("/adherence", adherenceHandler(svc))
}

var errInvalidPeriod = errors.New("use days=7|30|90 or start=YYYY-MM-DD&end=YYYY-MM-DD")

type statsResponse struct {
	Total        int      `json:"total"`
	Taken        int      `json:"taken"`
	Missed       int      `json:"missed"`
	Rate         int      `json:"adherence_rate"`
	Early        int      `json:"early"`
	OnTime       int      `json:"on_time"`
	Delayed      int      `json:"delayed"`
	AverageDelay int      `json:"average_delay_minutes"`
	Skipped      []string `json:"skipped,omitempty"`
}

type trendResponse struct {
	Days              [7]int `json:"days"`
	OverallPercentage int    `json:"overall_percentage"`
	Trend             int    `json:"trend"`
}

type adherenceResponse struct {
	From  string        `json:"from"`
	To    string        `json:"to"`
	Stats statsResponse `json:"stats"`
	Trend trendResponse `json:"weekly_trend"`
}

// adherenceHandler godoc
// @Summary Reporte de adherencia
// @Description Tasa, puntualidad y tendencia semanal del período. Sin parámetros usa los últimos 7 días.
// @Tags reports
// @Produce json
// @Param patientID path string true "ID del paciente"
// @Param days query int false "Ventana móvil: 7, 30 o 90"
// @Param start query string false "Inicio YYYY-MM-DD (requiere end)"
// @Param end query string false "Fin YYYY-MM-DD (requiere start)"
// @Param medication_id query string false "Filtra por medicamento"
// @Success 200 {object} adherenceResponse
// @Failure 400 {string} string "invalid period"
// @Router /patients/{patientID}/adherence [get]
func adherenceHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		window, err := parseWindow(r)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		rep, err := svc.Adherence(r.Context(), chi.URLParam(r, "patientID"), window, r.URL.Query().Get("medication_id"))
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, toAdherenceResponse(rep))
	}
}

func parseWindow(r *http.Request) (adherence.Window, error) {
	q := r.URL.Query()
	days := strings.TrimSpace(q.Get("days"))
	start := strings.TrimSpace(q.Get("start"))
	end := strings.TrimSpace(q.Get("end"))

	switch {
	case days != "" && (start != "" || end != ""):
		return adherence.Window{}, errInvalidPeriod
	case start != "" || end != "":
		from, err := civil.ParseDate(start)
		if err != nil {
			return adherence.Window{}, errInvalidPeriod
		}
		to, err := civil.ParseDate(end)
		if err != nil {
			return adherence.Window{}, errInvalidPeriod
		}
		return adherence.CustomWindow(from, to)
	case days == "":
		return adherence.RollingWindow(7)
	}

	n, err := strconv.Atoi(days)
	if err != nil {
		return adherence.Window{}, errInvalidPeriod
	}
	switch n {
	case 7, 30, 90:
		return adherence.RollingWindow(n)
	}
	return adherence.Window{}, errInvalidPeriod
}

func toAdherenceResponse(rep Report) adherenceResponse {
	return adherenceResponse{
		From: rep.From.String(),
		To:   rep.To.String(),
		Stats: statsResponse{
			Total:        rep.Stats.Total,
			Taken:        rep.Stats.Taken,
			Missed:       rep.Stats.Missed,
			Rate:         rep.Stats.Rate,
			Early:        rep.Stats.Early,
			OnTime:       rep.Stats.OnTime,
			Delayed:      rep.Stats.Delayed,
			AverageDelay: rep.Stats.AverageDelay,
			Skipped:      rep.Stats.Skipped,
		},
		Trend: trendResponse{
			Days:              rep.Trend.Days,
			OverallPercentage: rep.Trend.OverallPercentage,
			Trend:             rep.Trend.Trend,
		},
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
