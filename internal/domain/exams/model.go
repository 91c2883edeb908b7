package exams

import (
	"time"

	"patient-adherence/internal/domain/adherence"
)

// Exam es un examen o estudio con fecha programada.
type Exam struct {
	ID        string
	PatientID string

	Name     string
	Type     string
	Location string

	ScheduledAt  time.Time
	Record       adherence.Record
	FileAttached bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (e Exam) Entry() adherence.Entry {
	return adherence.Entry{ID: e.ID, ScheduledAt: e.ScheduledAt, Record: e.Record}
}

// View es un examen con su estado derivado al momento de la lectura.
type View struct {
	Exam
	Status adherence.Status
}
