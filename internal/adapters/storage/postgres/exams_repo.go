package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"patient-adherence/internal/domain/adherence"
	"patient-adherence/internal/domain/exams"
)

type ExamsRepo struct {
	db *sql.DB
}

func NewExamsRepo(db *sql.DB) *ExamsRepo {
	return &ExamsRepo{db: db}
}

const examColumns = `
	id, patient_id,
	name, type, location,
	scheduled_at, explicit_status, file_attached,
	created_at, updated_at
`

func (r *ExamsRepo) Create(ctx context.Context, e exams.Exam) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO exams (`+examColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
	`,
		e.ID,
		e.PatientID,
		e.Name,
		e.Type,
		e.Location,
		e.ScheduledAt,
		toNullString(e.Record.Explicit()),
		e.FileAttached,
		e.CreatedAt,
		e.UpdatedAt,
	)
	return err
}

func (r *ExamsRepo) Update(ctx context.Context, e exams.Exam) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE exams
		SET
			name = $2,
			type = $3,
			location = $4,
			scheduled_at = $5,
			explicit_status = $6,
			file_attached = $7,
			updated_at = $8
		WHERE id = $1
	`,
		e.ID,
		e.Name,
		e.Type,
		e.Location,
		e.ScheduledAt,
		toNullString(e.Record.Explicit()),
		e.FileAttached,
		e.UpdatedAt,
	)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *ExamsRepo) GetByID(ctx context.Context, id string) (exams.Exam, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return exams.Exam{}, ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `SELECT `+examColumns+` FROM exams WHERE id = $1`, id)
	e, err := scanExam(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return exams.Exam{}, ErrNotFound
		}
		return exams.Exam{}, err
	}
	return e, nil
}

func (r *ExamsRepo) ListByPatient(ctx context.Context, patientID string) ([]exams.Exam, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+examColumns+` FROM exams
		WHERE patient_id = $1
		ORDER BY scheduled_at ASC
	`, patientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]exams.Exam, 0)
	for rows.Next() {
		e, err := scanExam(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *ExamsRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM exams WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func scanExam(s rowScanner) (exams.Exam, error) {
	var (
		e      exams.Exam
		status sql.NullString
	)
	if err := s.Scan(
		&e.ID,
		&e.PatientID,
		&e.Name,
		&e.Type,
		&e.Location,
		&e.ScheduledAt,
		&status,
		&e.FileAttached,
		&e.CreatedAt,
		&e.UpdatedAt,
	); err != nil {
		return exams.Exam{}, err
	}

	rec, err := adherence.ParseRecord(status.String)
	if err != nil {
		return exams.Exam{}, fmt.Errorf("exam %s: %w", e.ID, err)
	}
	e.Record = rec
	return e, nil
}
