package medications

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"patient-adherence/internal/domain/adherence"
	"patient-adherence/internal/platform/civil"
)

// RegisterRoutes monta los medicamentos sobre /patients/{patientID}.
func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/medications", func(mr chi.Router) {
		mr.Post("/", createMedicationHandler(svc))
		mr.Get("/", listMedicationsHandler(svc))
		mr.Patch("/{medicationID}", updateMedicationHandler(svc))
		mr.Delete("/{medicationID}", deleteMedicationHandler(svc))
		mr.Post("/{medicationID}/deactivate", deactivateMedicationHandler(svc))
		mr.Post("/{medicationID}/reactivate", reactivateMedicationHandler(svc))
	})
}

type createMedicationRequest struct {
	Name      string `json:"name"`
	Dosage    string `json:"dosage"`
	Frequency string `json:"frequency"`
	StartTime string `json:"start_time"` // HH:MM
	StartDate string `json:"start_date"` // YYYY-MM-DD opcional, default hoy
	EndDate   string `json:"end_date"`   // YYYY-MM-DD opcional
}

// updateMedicationRequest: end_date "" elimina la fecha de fin.
type updateMedicationRequest struct {
	Name      *string `json:"name"`
	Dosage    *string `json:"dosage"`
	Frequency *string `json:"frequency"`
	StartTime *string `json:"start_time"`
	EndDate   *string `json:"end_date"`
}

type medicationResponse struct {
	ID        string              `json:"id"`
	PatientID string              `json:"patient_id"`
	Name      string              `json:"name"`
	Dosage    string              `json:"dosage"`
	Frequency adherence.Frequency `json:"frequency"`
	StartTime string              `json:"start_time"`
	Schedule  []string            `json:"schedule"`
	StartDate string              `json:"start_date"`
	EndDate   *string             `json:"end_date,omitempty"`
	IsActive  bool                `json:"is_active"`
	CreatedAt time.Time           `json:"created_at"`
	UpdatedAt time.Time           `json:"updated_at"`
}

// createMedicationHandler godoc
// @Summary Crear medicamento
// @Description Registra un medicamento y genera las dosis del día si corresponde.
// @Tags medications
// @Accept json
// @Produce json
// @Param patientID path string true "ID del paciente"
// @Param payload body createMedicationRequest true "Datos del medicamento"
// @Success 201 {object} medicationResponse
// @Failure 400 {string} string "invalid input"
// @Router /patients/{patientID}/medications [post]
func createMedicationHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createMedicationRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		in, err := req.toInput()
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		m, err := svc.Create(r.Context(), chi.URLParam(r, "patientID"), in)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, toMedicationResponse(m))
	}
}

// listMedicationsHandler godoc
// @Summary Listar medicamentos
// @Tags medications
// @Produce json
// @Param patientID path string true "ID del paciente"
// @Success 200 {array} medicationResponse
// @Router /patients/{patientID}/medications [get]
func listMedicationsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.ListByPatient(r.Context(), chi.URLParam(r, "patientID"))
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		out := make([]medicationResponse, 0, len(items))
		for _, m := range items {
			out = append(out, toMedicationResponse(m))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// updateMedicationHandler godoc
// @Summary Actualizar medicamento
// @Description Un cambio de horario regenera las dosis pendientes desde hoy.
// @Tags medications
// @Accept json
// @Produce json
// @Param patientID path string true "ID del paciente"
// @Param medicationID path string true "ID del medicamento"
// @Param payload body updateMedicationRequest true "Campos a modificar"
// @Success 200 {object} medicationResponse
// @Failure 400 {string} string "invalid input"
// @Failure 404 {string} string "medication not found"
// @Router /patients/{patientID}/medications/{medicationID} [patch]
func updateMedicationHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()

		var req updateMedicationRequest
		if err := dec.Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		in, err := req.toInput()
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		m, err := svc.Update(r.Context(), chi.URLParam(r, "patientID"), chi.URLParam(r, "medicationID"), in)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toMedicationResponse(m))
	}
}

// deleteMedicationHandler godoc
// @Summary Eliminar medicamento
// @Description Borra el medicamento y todas sus dosis.
// @Tags medications
// @Param patientID path string true "ID del paciente"
// @Param medicationID path string true "ID del medicamento"
// @Success 204
// @Failure 404 {string} string "medication not found"
// @Router /patients/{patientID}/medications/{medicationID} [delete]
func deleteMedicationHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.Delete(r.Context(), chi.URLParam(r, "patientID"), chi.URLParam(r, "medicationID")); err != nil {
			writeServiceError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// deactivateMedicationHandler godoc
// @Summary Desactivar medicamento
// @Tags medications
// @Produce json
// @Param patientID path string true "ID del paciente"
// @Param medicationID path string true "ID del medicamento"
// @Success 200 {object} medicationResponse
// @Failure 404 {string} string "medication not found"
// @Router /patients/{patientID}/medications/{medicationID}/deactivate [post]
func deactivateMedicationHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		m, err := svc.Deactivate(r.Context(), chi.URLParam(r, "patientID"), chi.URLParam(r, "medicationID"))
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toMedicationResponse(m))
	}
}

// reactivateMedicationHandler godoc
// @Summary Reactivar medicamento
// @Tags medications
// @Produce json
// @Param patientID path string true "ID del paciente"
// @Param medicationID path string true "ID del medicamento"
// @Success 200 {object} medicationResponse
// @Failure 404 {string} string "medication not found"
// @Router /patients/{patientID}/medications/{medicationID}/reactivate [post]
func reactivateMedicationHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		m, err := svc.Reactivate(r.Context(), chi.URLParam(r, "patientID"), chi.URLParam(r, "medicationID"))
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toMedicationResponse(m))
	}
}

func (req createMedicationRequest) toInput() (CreateInput, error) {
	freq, err := adherence.ParseFrequency(req.Frequency)
	if err != nil {
		return CreateInput{}, err
	}
	start, err := adherence.ParseTimeOfDay(req.StartTime)
	if err != nil {
		return CreateInput{}, err
	}

	in := CreateInput{
		Name:      req.Name,
		Dosage:    req.Dosage,
		Frequency: freq,
		StartTime: start,
	}
	if strings.TrimSpace(req.StartDate) != "" {
		if in.StartDate, err = civil.ParseDate(req.StartDate); err != nil {
			return CreateInput{}, err
		}
	}
	if strings.TrimSpace(req.EndDate) != "" {
		end, err := civil.ParseDate(req.EndDate)
		if err != nil {
			return CreateInput{}, err
		}
		in.EndDate = &end
	}
	return in, nil
}

func (req updateMedicationRequest) toInput() (UpdateInput, error) {
	in := UpdateInput{Name: req.Name, Dosage: req.Dosage}
	if req.Frequency != nil {
		f, err := adherence.ParseFrequency(*req.Frequency)
		if err != nil {
			return UpdateInput{}, err
		}
		in.Frequency = &f
	}
	if req.StartTime != nil {
		t, err := adherence.ParseTimeOfDay(*req.StartTime)
		if err != nil {
			return UpdateInput{}, err
		}
		in.StartTime = &t
	}
	if req.EndDate != nil {
		if strings.TrimSpace(*req.EndDate) == "" {
			in.ClearEndDate = true
		} else {
			end, err := civil.ParseDate(*req.EndDate)
			if err != nil {
				return UpdateInput{}, err
			}
			in.EndDate = &end
		}
	}
	return in, nil
}

func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput),
		errors.Is(err, adherence.ErrInvalidFrequency),
		errors.Is(err, adherence.ErrInvalidSchedule):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func toMedicationResponse(m Medication) medicationResponse {
	resp := medicationResponse{
		ID:        m.ID,
		PatientID: m.PatientID,
		Name:      m.Name,
		Dosage:    m.Dosage,
		Frequency: m.Frequency,
		StartTime: m.StartTime.String(),
		Schedule:  []string{},
		StartDate: m.StartDate.String(),
		IsActive:  m.IsActive,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
	if times, err := adherence.ExpandSchedule(m.StartTime, m.Frequency); err == nil {
		for _, t := range times {
			resp.Schedule = append(resp.Schedule, t.String())
		}
	}
	if m.EndDate != nil {
		end := m.EndDate.String()
		resp.EndDate = &end
	}
	return resp
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
