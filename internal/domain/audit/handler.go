package audit

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"patient-adherence/internal/domain/adherence"
)

// RegisterRoutes monta el historial sobre /patients/{patientID}.
func RegisterRoutes(r chi.Router, svc *Service) {
	r.Get("/history/{entityID}", historyHandler(svc))
}

type transitionResponse struct {
	ID               string           `json:"id"`
	EntityID         string           `json:"entity_id"`
	EntityType       EntityType       `json:"entity_type"`
	Before           adherence.Status `json:"before"`
	After            adherence.Status `json:"after"`
	CorrelationID    string           `json:"correlation_id"`
	ProcessingTimeMs int64            `json:"processing_time_ms"`
	RecordedAt       time.Time        `json:"recorded_at"`
}

// historyHandler godoc
// @Summary Historial de estados
// @Description Transiciones registradas para una dosis o examen del paciente.
// @Tags audit
// @Produce json
// @Param patientID path string true "ID del paciente"
// @Param entityID path string true "ID de la dosis o examen"
// @Success 200 {array} transitionResponse
// @Failure 400 {string} string "invalid input"
// @Router /patients/{patientID}/history/{entityID} [get]
func historyHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.History(r.Context(), chi.URLParam(r, "patientID"), chi.URLParam(r, "entityID"))
		if err != nil {
			if errors.Is(err, ErrInvalidInput) {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]transitionResponse, 0, len(items))
		for _, t := range items {
			out = append(out, transitionResponse{
				ID:               t.ID,
				EntityID:         t.EntityID,
				EntityType:       t.EntityType,
				Before:           t.Before,
				After:            t.After,
				CorrelationID:    t.CorrelationID,
				ProcessingTimeMs: t.ProcessingTimeMs,
				RecordedAt:       t.RecordedAt,
			})
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
