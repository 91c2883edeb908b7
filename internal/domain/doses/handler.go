package doses

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"patient-adherence/internal/domain/adherence"
)

// RegisterRoutes monta las dosis sobre /patients/{patientID}.
func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/doses", func(dr chi.Router) {
		dr.Get("/", listDosesHandler(svc))
		dr.Post("/{doseID}/confirm", confirmDoseHandler(svc))
		dr.Post("/{doseID}/miss", missDoseHandler(svc))
	})
}

type confirmDoseRequest struct {
	ActualAt *time.Time `json:"actual_at"` // opcional, default ahora
}

type doseResponse struct {
	ID           string           `json:"id"`
	MedicationID string           `json:"medication_id"`
	ScheduledAt  time.Time        `json:"scheduled_at"`
	ActualAt     *time.Time       `json:"actual_at,omitempty"`
	Status       adherence.Status `json:"status,omitempty"`
	DelayMinutes *int             `json:"delay_minutes,omitempty"`
}

// listDosesHandler godoc
// @Summary Listar dosis
// @Description Dosis del paciente con estado derivado al momento de la consulta.
// @Tags doses
// @Produce json
// @Param patientID path string true "ID del paciente"
// @Param medication_id query string false "Filtra por medicamento"
// @Success 200 {array} doseResponse
// @Router /patients/{patientID}/doses [get]
func listDosesHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.List(r.Context(), chi.URLParam(r, "patientID"), r.URL.Query().Get("medication_id"))
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]doseResponse, 0, len(items))
		for _, v := range items {
			out = append(out, toDoseResponse(v))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// confirmDoseHandler godoc
// @Summary Confirmar toma
// @Tags doses
// @Accept json
// @Produce json
// @Param patientID path string true "ID del paciente"
// @Param doseID path string true "ID de la dosis"
// @Param payload body confirmDoseRequest false "Hora real de la toma"
// @Success 200 {object} doseResponse
// @Failure 400 {string} string "invalid input"
// @Failure 404 {string} string "dose not found"
// @Failure 409 {string} string "dose already recorded"
// @Router /patients/{patientID}/doses/{doseID}/confirm [post]
func confirmDoseHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req confirmDoseRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		v, err := svc.Confirm(r.Context(), chi.URLParam(r, "patientID"), chi.URLParam(r, "doseID"), req.ActualAt)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toDoseResponse(v))
	}
}

// missDoseHandler godoc
// @Summary Marcar dosis omitida
// @Tags doses
// @Produce json
// @Param patientID path string true "ID del paciente"
// @Param doseID path string true "ID de la dosis"
// @Success 200 {object} doseResponse
// @Failure 404 {string} string "dose not found"
// @Failure 409 {string} string "dose already recorded"
// @Router /patients/{patientID}/doses/{doseID}/miss [post]
func missDoseHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		v, err := svc.MarkMissed(r.Context(), chi.URLParam(r, "patientID"), chi.URLParam(r, "doseID"))
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toDoseResponse(v))
	}
}

func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, ErrAlreadyRecorded):
		http.Error(w, err.Error(), http.StatusConflict)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func toDoseResponse(v View) doseResponse {
	resp := doseResponse{
		ID:           v.ID,
		MedicationID: v.MedicationID,
		ScheduledAt:  v.ScheduledAt,
		ActualAt:     v.ActualAt,
		Status:       v.Status,
	}
	if m, ok := v.DelayMinutes(); ok {
		resp.DelayMinutes = &m
	}
	return resp
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
