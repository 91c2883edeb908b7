package medications

import (
	"context"
	"errors"
	"testing"
	"time"

	"patient-adherence/internal/domain/adherence"
	"patient-adherence/internal/platform/civil"
	"patient-adherence/internal/platform/clock"
)

// -------------------------
// Test doubles
// -------------------------

var errRepoNotFound = errors.New("repo: not found")

type testRepo struct {
	byID map[string]Medication
}

func newTestRepo() *testRepo {
	return &testRepo{byID: map[string]Medication{}}
}

func (r *testRepo) Create(ctx context.Context, m Medication) error {
	r.byID[m.ID] = m
	return nil
}

func (r *testRepo) Update(ctx context.Context, m Medication) error {
	if _, ok := r.byID[m.ID]; !ok {
		return errRepoNotFound
	}
	r.byID[m.ID] = m
	return nil
}

func (r *testRepo) GetByID(ctx context.Context, id string) (Medication, error) {
	m, ok := r.byID[id]
	if !ok {
		return Medication{}, errRepoNotFound
	}
	return m, nil
}

func (r *testRepo) ListByPatient(ctx context.Context, patientID string) ([]Medication, error) {
	out := make([]Medication, 0)
	for _, m := range r.byID {
		if m.PatientID == patientID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *testRepo) ListActive(ctx context.Context) ([]Medication, error) {
	out := make([]Medication, 0)
	for _, m := range r.byID {
		if m.IsActive {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *testRepo) Delete(ctx context.Context, id string) error {
	delete(r.byID, id)
	return nil
}

type pendingDose struct {
	at       time.Time
	recorded bool
}

// testDoses guarda las dosis por medicamento.
type testDoses struct {
	byMed map[string][]pendingDose
}

func newTestDoses() *testDoses {
	return &testDoses{byMed: map[string][]pendingDose{}}
}

func (d *testDoses) Schedule(ctx context.Context, patientID, medicationID string, times []time.Time) (int, error) {
	n := 0
	for _, at := range times {
		exists := false
		for _, p := range d.byMed[medicationID] {
			if p.at.Equal(at) {
				exists = true
				break
			}
		}
		if !exists {
			d.byMed[medicationID] = append(d.byMed[medicationID], pendingDose{at: at})
			n++
		}
	}
	return n, nil
}

func (d *testDoses) ClearPendingFrom(ctx context.Context, medicationID string, from time.Time) (int, error) {
	kept := make([]pendingDose, 0)
	n := 0
	for _, p := range d.byMed[medicationID] {
		if !p.recorded && !p.at.Before(from) {
			n++
			continue
		}
		kept = append(kept, p)
	}
	d.byMed[medicationID] = kept
	return n, nil
}

func (d *testDoses) DeleteByMedication(ctx context.Context, medicationID string) error {
	delete(d.byMed, medicationID)
	return nil
}

func (d *testDoses) times(medicationID string) []string {
	out := make([]string, 0)
	for _, p := range d.byMed[medicationID] {
		out = append(out, p.at.In(civil.Location).Format("2006-01-02 15:04"))
	}
	return out
}

func at(y int, m time.Month, d, h, mi int) time.Time {
	return time.Date(y, m, d, h, mi, 0, 0, civil.Location)
}

func date(t *testing.T, s string) civil.Date {
	t.Helper()
	d, err := civil.ParseDate(s)
	if err != nil {
		t.Fatalf("parse date: %v", err)
	}
	return d
}

func sameStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	seen := map[string]int{}
	for _, s := range a {
		seen[s]++
	}
	for _, s := range b {
		seen[s]--
		if seen[s] < 0 {
			return false
		}
	}
	return true
}

// -------------------------
// Tests
// -------------------------

func TestService_Create_ExpandsToday(t *testing.T) {
	doses := newTestDoses()
	svc := NewService(newTestRepo(), doses, clock.Fixed(at(2025, 7, 9, 7, 0)), nil)

	m, err := svc.Create(context.Background(), "p1", CreateInput{
		Name:      "Losartán",
		Dosage:    "50mg",
		Frequency: adherence.FrequencyEvery8h,
		StartTime: adherence.TimeOfDay{Hour: 8},
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if !m.IsActive || m.StartDate != date(t, "2025-07-09") {
		t.Fatalf("expected active medication starting today, got %+v", m)
	}

	want := []string{"2025-07-09 00:00", "2025-07-09 08:00", "2025-07-09 16:00"}
	if got := doses.times(m.ID); !sameStrings(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestService_Create_FutureStartDoesNotExpand(t *testing.T) {
	doses := newTestDoses()
	svc := NewService(newTestRepo(), doses, clock.Fixed(at(2025, 7, 9, 7, 0)), nil)

	m, err := svc.Create(context.Background(), "p1", CreateInput{
		Name: "A", Dosage: "1", Frequency: adherence.FrequencyDaily,
		StartTime: adherence.TimeOfDay{Hour: 9},
		StartDate: date(t, "2025-07-10"),
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(doses.times(m.ID)) != 0 {
		t.Fatalf("expected no doses before start date")
	}
}

func TestService_Create_Validation(t *testing.T) {
	svc := NewService(newTestRepo(), newTestDoses(), clock.Fixed(at(2025, 7, 9, 7, 0)), nil)
	ctx := context.Background()

	_, err := svc.Create(ctx, "p1", CreateInput{Name: "A", Dosage: "1", Frequency: "weekly"})
	if !errors.Is(err, adherence.ErrInvalidFrequency) {
		t.Fatalf("expected ErrInvalidFrequency, got %v", err)
	}

	end := date(t, "2025-07-01")
	_, err = svc.Create(ctx, "p1", CreateInput{Name: "A", Dosage: "1", Frequency: adherence.FrequencyDaily, EndDate: &end})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for end before start, got %v", err)
	}

	_, err = svc.Create(ctx, "p1", CreateInput{Name: " ", Dosage: "1", Frequency: adherence.FrequencyDaily})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for empty name, got %v", err)
	}
}

func TestService_Update_ScheduleChangeRebuildsPending(t *testing.T) {
	doses := newTestDoses()
	now := at(2025, 7, 9, 10, 0)
	svc := NewService(newTestRepo(), doses, clock.Fixed(now), nil)

	m, _ := svc.Create(context.Background(), "p1", CreateInput{
		Name: "A", Dosage: "1", Frequency: adherence.FrequencyTwiceDaily,
		StartTime: adherence.TimeOfDay{Hour: 8},
	})
	// la toma de las 08:00 ya fue registrada
	doses.byMed[m.ID][0].recorded = true

	freq := adherence.FrequencyDaily
	start := adherence.TimeOfDay{Hour: 9, Minute: 30}
	if _, err := svc.Update(context.Background(), "p1", m.ID, UpdateInput{Frequency: &freq, StartTime: &start}); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	want := []string{"2025-07-09 08:00", "2025-07-09 09:30"}
	if got := doses.times(m.ID); !sameStrings(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestService_Update_NameOnlyKeepsDoses(t *testing.T) {
	doses := newTestDoses()
	svc := NewService(newTestRepo(), doses, clock.Fixed(at(2025, 7, 9, 10, 0)), nil)

	m, _ := svc.Create(context.Background(), "p1", CreateInput{
		Name: "A", Dosage: "1", Frequency: adherence.FrequencyTwiceDaily,
		StartTime: adherence.TimeOfDay{Hour: 8},
	})

	name := "B"
	upd, err := svc.Update(context.Background(), "p1", m.ID, UpdateInput{Name: &name})
	if err != nil || upd.Name != "B" {
		t.Fatalf("unexpected update result %+v (%v)", upd, err)
	}
	if len(doses.times(m.ID)) != 2 {
		t.Fatalf("expected doses untouched, got %v", doses.times(m.ID))
	}
}

func TestService_DeactivateReactivate(t *testing.T) {
	doses := newTestDoses()
	svc := NewService(newTestRepo(), doses, clock.Fixed(at(2025, 7, 9, 12, 0)), nil)

	m, _ := svc.Create(context.Background(), "p1", CreateInput{
		Name: "A", Dosage: "1", Frequency: adherence.FrequencyTwiceDaily,
		StartTime: adherence.TimeOfDay{Hour: 8},
	})

	off, err := svc.Deactivate(context.Background(), "p1", m.ID)
	if err != nil || off.IsActive {
		t.Fatalf("expected inactive, got %+v (%v)", off, err)
	}
	// solo se borra la toma posterior a ahora (20:00)
	if got := doses.times(m.ID); !sameStrings(got, []string{"2025-07-09 08:00"}) {
		t.Fatalf("unexpected doses after deactivate: %v", got)
	}

	n, err := svc.ExpandDay(context.Background(), date(t, "2025-07-10"))
	if err != nil || n != 0 {
		t.Fatalf("inactive medication must not expand, got %d (%v)", n, err)
	}

	on, err := svc.Reactivate(context.Background(), "p1", m.ID)
	if err != nil || !on.IsActive {
		t.Fatalf("expected active, got %+v (%v)", on, err)
	}
	if got := doses.times(m.ID); len(got) != 2 {
		t.Fatalf("expected today's doses restored, got %v", got)
	}
}

func TestService_ExpandDay_IdempotentAndRespectsEndDate(t *testing.T) {
	doses := newTestDoses()
	svc := NewService(newTestRepo(), doses, clock.Fixed(at(2025, 7, 9, 0, 1)), nil)

	end := date(t, "2025-07-10")
	m, _ := svc.Create(context.Background(), "p1", CreateInput{
		Name: "A", Dosage: "1", Frequency: adherence.FrequencyDaily,
		StartTime: adherence.TimeOfDay{Hour: 9}, EndDate: &end,
	})

	n, err := svc.ExpandDay(context.Background(), date(t, "2025-07-10"))
	if err != nil || n != 1 {
		t.Fatalf("expected 1 created, got %d (%v)", n, err)
	}
	n, _ = svc.ExpandDay(context.Background(), date(t, "2025-07-10"))
	if n != 0 {
		t.Fatalf("expected rerun to create 0, got %d", n)
	}
	n, _ = svc.ExpandDay(context.Background(), date(t, "2025-07-11"))
	if n != 0 {
		t.Fatalf("expected no doses after end date, got %d", n)
	}
	if len(doses.times(m.ID)) != 2 {
		t.Fatalf("expected 2 doses total, got %v", doses.times(m.ID))
	}
}

func TestService_Delete_Cascades(t *testing.T) {
	doses := newTestDoses()
	repo := newTestRepo()
	svc := NewService(repo, doses, clock.Fixed(at(2025, 7, 9, 7, 0)), nil)

	m, _ := svc.Create(context.Background(), "p1", CreateInput{
		Name: "A", Dosage: "1", Frequency: adherence.FrequencyDaily,
		StartTime: adherence.TimeOfDay{Hour: 9},
	})

	if err := svc.Delete(context.Background(), "p2", m.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for other patient, got %v", err)
	}
	if err := svc.Delete(context.Background(), "p1", m.ID); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if _, ok := repo.byID[m.ID]; ok {
		t.Fatalf("expected medication removed")
	}
	if len(doses.times(m.ID)) != 0 {
		t.Fatalf("expected doses removed")
	}
}
