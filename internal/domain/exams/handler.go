package exams

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"patient-adherence/internal/domain/adherence"
)

// RegisterRoutes monta los exámenes sobre /patients/{patientID}.
func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/exams", func(er chi.Router) {
		er.Post("/", createExamHandler(svc))
		er.Get("/", listExamsHandler(svc))
		er.Get("/{examID}", getExamHandler(svc))
		er.Patch("/{examID}", updateExamHandler(svc))
		er.Delete("/{examID}", deleteExamHandler(svc))
		er.Post("/{examID}/status", setExamStatusHandler(svc))
	})
}

type createExamRequest struct {
	Name        string    `json:"name"`
	Type        string    `json:"type"`
	Location    string    `json:"location"`
	ScheduledAt time.Time `json:"scheduled_at"` // RFC3339
}

type updateExamRequest struct {
	Name         *string    `json:"name"`
	Type         *string    `json:"type"`
	Location     *string    `json:"location"`
	ScheduledAt  *time.Time `json:"scheduled_at"`
	FileAttached *bool      `json:"file_attached"`
}

type setExamStatusRequest struct {
	Status string `json:"status" example:"completed"`
}

type examResponse struct {
	ID           string           `json:"id"`
	PatientID    string           `json:"patient_id"`
	Name         string           `json:"name"`
	Type         string           `json:"type"`
	Location     string           `json:"location"`
	ScheduledAt  time.Time        `json:"scheduled_at"`
	Status       adherence.Status `json:"status,omitempty"`
	FileAttached bool             `json:"file_attached"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`
}

// createExamHandler godoc
// @Summary Programar examen
// @Tags exams
// @Accept json
// @Produce json
// @Param patientID path string true "ID del paciente"
// @Param payload body createExamRequest true "Datos del examen"
// @Success 201 {object} examResponse
// @Failure 400 {string} string "invalid input"
// @Router /patients/{patientID}/exams [post]
func createExamHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createExamRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		v, err := svc.Create(r.Context(), chi.URLParam(r, "patientID"), CreateInput{
			Name:        req.Name,
			Type:        req.Type,
			Location:    req.Location,
			ScheduledAt: req.ScheduledAt,
		})
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, toExamResponse(v))
	}
}

// listExamsHandler godoc
// @Summary Listar exámenes
// @Tags exams
// @Produce json
// @Param patientID path string true "ID del paciente"
// @Success 200 {array} examResponse
// @Router /patients/{patientID}/exams [get]
func listExamsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.List(r.Context(), chi.URLParam(r, "patientID"))
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		out := make([]examResponse, 0, len(items))
		for _, v := range items {
			out = append(out, toExamResponse(v))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// getExamHandler godoc
// @Summary Detalle de examen
// @Tags exams
// @Produce json
// @Param patientID path string true "ID del paciente"
// @Param examID path string true "ID del examen"
// @Success 200 {object} examResponse
// @Failure 404 {string} string "exam not found"
// @Router /patients/{patientID}/exams/{examID} [get]
func getExamHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		v, err := svc.Get(r.Context(), chi.URLParam(r, "patientID"), chi.URLParam(r, "examID"))
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toExamResponse(v))
	}
}

// updateExamHandler godoc
// @Summary Actualizar examen
// @Description Reprogramar a futuro limpia un estado final previo.
// @Tags exams
// @Accept json
// @Produce json
// @Param patientID path string true "ID del paciente"
// @Param examID path string true "ID del examen"
// @Param payload body updateExamRequest true "Campos a modificar"
// @Success 200 {object} examResponse
// @Failure 400 {string} string "invalid input"
// @Failure 404 {string} string "exam not found"
// @Router /patients/{patientID}/exams/{examID} [patch]
func updateExamHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()

		var req updateExamRequest
		if err := dec.Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		v, err := svc.Update(r.Context(), chi.URLParam(r, "patientID"), chi.URLParam(r, "examID"), UpdateInput{
			Name:         req.Name,
			Type:         req.Type,
			Location:     req.Location,
			ScheduledAt:  req.ScheduledAt,
			FileAttached: req.FileAttached,
		})
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toExamResponse(v))
	}
}

// deleteExamHandler godoc
// @Summary Eliminar examen
// @Tags exams
// @Param patientID path string true "ID del paciente"
// @Param examID path string true "ID del examen"
// @Success 204
// @Failure 404 {string} string "exam not found"
// @Router /patients/{patientID}/exams/{examID} [delete]
func deleteExamHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.Delete(r.Context(), chi.URLParam(r, "patientID"), chi.URLParam(r, "examID")); err != nil {
			writeServiceError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// setExamStatusHandler godoc
// @Summary Cambiar estado de examen
// @Description completed, cancelled, missed o scheduled (vuelve a derivarse).
// @Tags exams
// @Accept json
// @Produce json
// @Param patientID path string true "ID del paciente"
// @Param examID path string true "ID del examen"
// @Param payload body setExamStatusRequest true "Nuevo estado"
// @Success 200 {object} examResponse
// @Failure 400 {string} string "invalid exam status"
// @Failure 404 {string} string "exam not found"
// @Router /patients/{patientID}/exams/{examID}/status [post]
func setExamStatusHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req setExamStatusRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		v, err := svc.SetStatus(r.Context(), chi.URLParam(r, "patientID"), chi.URLParam(r, "examID"), req.Status)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toExamResponse(v))
	}
}

func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput), errors.Is(err, ErrInvalidStatus):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func toExamResponse(v View) examResponse {
	return examResponse{
		ID:           v.ID,
		PatientID:    v.PatientID,
		Name:         v.Name,
		Type:         v.Type,
		Location:     v.Location,
		ScheduledAt:  v.ScheduledAt,
		Status:       v.Status,
		FileAttached: v.FileAttached,
		CreatedAt:    v.CreatedAt,
		UpdatedAt:    v.UpdatedAt,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
