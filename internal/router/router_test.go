package router_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sort"
	"testing"
	"time"

	"patient-adherence/internal/adapters/auth/jwtauth"
	"patient-adherence/internal/platform/civil"
	"patient-adherence/internal/platform/clock"
	"patient-adherence/internal/router"
)

// 09/07/2025 12:30 en hora civil
var testNow = time.Date(2025, 7, 9, 12, 30, 0, 0, civil.Location)

func newServer(t *testing.T) *httptest.Server {
	t.Helper()
	ts := httptest.NewServer(router.NewRouter(router.Options{
		AuthVerifier: nil,
		Clock:        clock.Fixed(testNow),
		Swagger:      true,
	}))
	t.Cleanup(ts.Close)
	return ts
}

type dose struct {
	ID           string    `json:"id"`
	ScheduledAt  time.Time `json:"scheduled_at"`
	Status       string    `json:"status"`
	DelayMinutes *int      `json:"delay_minutes"`
}

func TestHTTP_EndToEnd_MedicationAdherence(t *testing.T) {
	ts := newServer(t)
	ownerID := "owner-1"

	// 1) Alta de paciente
	patientID := createPatient(t, ts.URL, ownerID, "Ana")

	// 2) Medicamento cada 6h desde 00:00 => 00, 06, 12, 18 de hoy
	var med struct {
		ID       string   `json:"id"`
		Schedule []string `json:"schedule"`
		IsActive bool     `json:"is_active"`
	}
	{
		st, body := doReq(t, ts.URL, "POST", "/patients/"+patientID+"/medications", ownerID, map[string]any{
			"name":       "Metformina",
			"dosage":     "850mg",
			"frequency":  "four_times_daily",
			"start_time": "00:00",
		})
		if st != http.StatusCreated {
			t.Fatalf("expected 201 creating medication, got %d body=%s", st, string(body))
		}
		mustUnmarshal(t, body, &med)
		if !med.IsActive || len(med.Schedule) != 4 || med.Schedule[0] != "00:00" || med.Schedule[3] != "18:00" {
			t.Fatalf("unexpected medication %+v", med)
		}
	}

	// 3) Dosis del día con estado derivado a las 12:30
	doses := listDoses(t, ts.URL, ownerID, patientID)
	if len(doses) != 4 {
		t.Fatalf("expected 4 doses, got %d", len(doses))
	}
	wantStatus := []string{"overdue", "overdue", "overdue", "today"}
	for i, d := range doses {
		if d.Status != wantStatus[i] {
			t.Fatalf("dose %d: expected %s, got %s", i, wantStatus[i], d.Status)
		}
	}

	// 4) Confirmaciones: dos puntuales y una con 10 minutos de demora
	confirm := func(d dose, delay time.Duration) (int, []byte) {
		return doReq(t, ts.URL, "POST", "/patients/"+patientID+"/doses/"+d.ID+"/confirm", ownerID, map[string]any{
			"actual_at": d.ScheduledAt.Add(delay),
		})
	}
	for i, delay := range []time.Duration{0, 0, 10 * time.Minute} {
		st, body := confirm(doses[i], delay)
		if st != http.StatusOK {
			t.Fatalf("expected 200 confirming dose %d, got %d body=%s", i, st, string(body))
		}
	}
	{
		st, _ := confirm(doses[0], 0)
		if st != http.StatusConflict {
			t.Fatalf("expected 409 on second confirmation, got %d", st)
		}
	}

	doses = listDoses(t, ts.URL, ownerID, patientID)
	if doses[2].Status != "taken" || doses[2].DelayMinutes == nil || *doses[2].DelayMinutes != 10 {
		t.Fatalf("expected third dose taken with delay 10, got %+v", doses[2])
	}

	// 5) Reporte del día
	{
		st, body := doReq(t, ts.URL, "GET", "/patients/"+patientID+"/adherence?start=2025-07-09&end=2025-07-09", ownerID, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 adherence, got %d body=%s", st, string(body))
		}
		var rep struct {
			Stats struct {
				Total        int `json:"total"`
				Taken        int `json:"taken"`
				Missed       int `json:"missed"`
				Rate         int `json:"adherence_rate"`
				OnTime       int `json:"on_time"`
				Delayed      int `json:"delayed"`
				AverageDelay int `json:"average_delay_minutes"`
			} `json:"stats"`
		}
		mustUnmarshal(t, body, &rep)
		s := rep.Stats
		if s.Total != 4 || s.Taken != 3 || s.Missed != 0 || s.Rate != 75 || s.OnTime != 2 || s.Delayed != 1 || s.AverageDelay != 10 {
			t.Fatalf("unexpected stats %+v", s)
		}
	}
	{
		st, _ := doReq(t, ts.URL, "GET", "/patients/"+patientID+"/adherence?days=14", ownerID, nil)
		if st != http.StatusBadRequest {
			t.Fatalf("expected 400 for unsupported rolling window, got %d", st)
		}
	}

	// 6) Historial de la dosis demorada
	{
		st, body := doReq(t, ts.URL, "GET", "/patients/"+patientID+"/history/"+doses[2].ID, ownerID, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 history, got %d body=%s", st, string(body))
		}
		var items []struct {
			Before        string `json:"before"`
			After         string `json:"after"`
			CorrelationID string `json:"correlation_id"`
		}
		mustUnmarshal(t, body, &items)
		if len(items) != 1 || items[0].Before != "overdue" || items[0].After != "taken" || items[0].CorrelationID == "" {
			t.Fatalf("unexpected history %+v", items)
		}
	}

	// 7) Omitir la última dosis
	{
		st, body := doReq(t, ts.URL, "POST", "/patients/"+patientID+"/doses/"+doses[3].ID+"/miss", ownerID, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 marking missed, got %d body=%s", st, string(body))
		}
	}

	// 8) Borrar el medicamento borra sus dosis
	{
		st, _ := doReq(t, ts.URL, "DELETE", "/patients/"+patientID+"/medications/"+med.ID, ownerID, nil)
		if st != http.StatusNoContent {
			t.Fatalf("expected 204 deleting medication, got %d", st)
		}
		if left := listDoses(t, ts.URL, ownerID, patientID); len(left) != 0 {
			t.Fatalf("expected doses deleted, got %d", len(left))
		}
	}
}

func TestHTTP_ExamRescheduleRearms(t *testing.T) {
	ts := newServer(t)
	ownerID := "owner-1"
	patientID := createPatient(t, ts.URL, ownerID, "Ana")

	var exam struct {
		ID     string `json:"id"`
		Status string `json:"status"`
	}
	{
		st, body := doReq(t, ts.URL, "POST", "/patients/"+patientID+"/exams", ownerID, map[string]any{
			"name":         "Hemograma",
			"type":         "laboratorio",
			"scheduled_at": "2025-07-08T09:00:00-03:00",
		})
		if st != http.StatusCreated {
			t.Fatalf("expected 201 creating exam, got %d body=%s", st, string(body))
		}
		mustUnmarshal(t, body, &exam)
		if exam.Status != "missed" {
			t.Fatalf("expected past exam derived as missed, got %s", exam.Status)
		}
	}

	examPath := "/patients/" + patientID + "/exams/" + exam.ID
	{
		st, body := doReq(t, ts.URL, "POST", examPath+"/status", ownerID, map[string]any{"status": "completed"})
		if st != http.StatusOK {
			t.Fatalf("expected 200 setting status, got %d body=%s", st, string(body))
		}
		mustUnmarshal(t, body, &exam)
		if exam.Status != "completed" {
			t.Fatalf("expected completed, got %s", exam.Status)
		}
	}
	{
		st, _ := doReq(t, ts.URL, "POST", examPath+"/status", ownerID, map[string]any{"status": "taken"})
		if st != http.StatusBadRequest {
			t.Fatalf("expected 400 for taken on exam, got %d", st)
		}
	}
	{
		st, body := doReq(t, ts.URL, "PATCH", examPath, ownerID, map[string]any{"scheduled_at": "2025-07-20T09:00:00-03:00"})
		if st != http.StatusOK {
			t.Fatalf("expected 200 rescheduling, got %d body=%s", st, string(body))
		}
		mustUnmarshal(t, body, &exam)
		if exam.Status != "scheduled" {
			t.Fatalf("expected scheduled after moving to the future, got %s", exam.Status)
		}
	}
}

func TestHTTP_OwnershipGuards(t *testing.T) {
	ts := newServer(t)
	patientID := createPatient(t, ts.URL, "owner-1", "Ana")

	cases := []struct {
		name   string
		user   string
		path   string
		status int
	}{
		{"no user", "", "/patients/" + patientID, http.StatusUnauthorized},
		{"other user", "intruder", "/patients/" + patientID, http.StatusForbidden},
		{"other user doses", "intruder", "/patients/" + patientID + "/doses", http.StatusForbidden},
		{"unknown patient", "owner-1", "/patients/missing", http.StatusNotFound},
		{"owner", "owner-1", "/patients/" + patientID, http.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			st, _ := doReq(t, ts.URL, "GET", tc.path, tc.user, nil)
			if st != tc.status {
				t.Fatalf("expected %d, got %d", tc.status, st)
			}
		})
	}

	st, _ := doReq(t, ts.URL, "POST", "/patients", "", map[string]any{"name": "X"})
	if st != http.StatusUnauthorized {
		t.Fatalf("expected 401 creating patient without user, got %d", st)
	}
}

func TestHTTP_HealthAndSwagger(t *testing.T) {
	ts := newServer(t)

	if st, body := doReq(t, ts.URL, "GET", "/health", "", nil); st != http.StatusOK || string(body) != "ok" {
		t.Fatalf("unexpected health %d %q", st, string(body))
	}
	st, body := doReq(t, ts.URL, "GET", "/swagger/doc.json", "", nil)
	if st != http.StatusOK || !bytes.Contains(body, []byte("/patients/{patientID}/adherence")) {
		t.Fatalf("expected swagger doc, got %d", st)
	}
}

func TestHTTP_BearerTokenWhenVerifierConfigured(t *testing.T) {
	verifier := jwtauth.NewVerifier(jwtauth.Options{Secret: "test-secret"})
	ts := httptest.NewServer(router.NewRouter(router.Options{AuthVerifier: verifier, Clock: clock.Fixed(testNow)}))
	defer ts.Close()

	// con verifier el header de debug se ignora
	if st, _ := doReq(t, ts.URL, "GET", "/patients", "owner-1", nil); st != http.StatusUnauthorized {
		t.Fatalf("expected 401 with debug header only, got %d", st)
	}

	token, err := verifier.Sign("owner-1", "owner@example.com", time.Hour)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	req, _ := http.NewRequest("GET", ts.URL+"/patients", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 with bearer token, got %d", res.StatusCode)
	}
}

// -------------------------
// Helpers
// -------------------------

func createPatient(t *testing.T, baseURL, userID, name string) string {
	t.Helper()

	st, body := doReq(t, baseURL, "POST", "/patients", userID, map[string]any{"name": name})
	if st != http.StatusCreated {
		t.Fatalf("expected 201 creating patient, got %d body=%s", st, string(body))
	}
	var resp struct {
		ID string `json:"id"`
	}
	mustUnmarshal(t, body, &resp)
	if resp.ID == "" {
		t.Fatalf("expected patient id")
	}
	return resp.ID
}

func listDoses(t *testing.T, baseURL, userID, patientID string) []dose {
	t.Helper()

	st, body := doReq(t, baseURL, "GET", "/patients/"+patientID+"/doses", userID, nil)
	if st != http.StatusOK {
		t.Fatalf("expected 200 listing doses, got %d body=%s", st, string(body))
	}
	var out []dose
	mustUnmarshal(t, body, &out)
	sort.Slice(out, func(i, j int) bool { return out[i].ScheduledAt.Before(out[j].ScheduledAt) })
	return out
}

func mustUnmarshal(t *testing.T, body []byte, v any) {
	t.Helper()
	if err := json.Unmarshal(body, v); err != nil {
		t.Fatalf("json unmarshal: %v body=%s", err, string(body))
	}
}

func doReq(t *testing.T, baseURL, method, path, debugUserID string, body any) (int, []byte) {
	t.Helper()

	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("json marshal: %v", err)
		}
		rdr = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, baseURL+path, rdr)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if debugUserID != "" {
		req.Header.Set("X-Debug-User-ID", debugUserID)
	}

	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer res.Body.Close()

	respBody, _ := io.ReadAll(res.Body)
	return res.StatusCode, respBody
}
