package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"patient-adherence/internal/domain/adherence"
	"patient-adherence/internal/domain/doses"
)

type DosesRepo struct {
	db *sql.DB
}

func NewDosesRepo(db *sql.DB) *DosesRepo {
	return &DosesRepo{db: db}
}

const doseColumns = `
	id, medication_id, patient_id,
	scheduled_at, actual_at, explicit_status,
	created_at
`

// CreateBatch inserta en una transacción. ON CONFLICT deja la expansión
// idempotente aunque dos procesos expandan el mismo día.
func (r *DosesRepo) CreateBatch(ctx context.Context, items []doses.Dose) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	for _, d := range items {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO doses (`+doseColumns+`)
			VALUES ($1,$2,$3,$4,$5,$6,$7)
			ON CONFLICT (medication_id, scheduled_at) DO NOTHING
		`,
			d.ID,
			d.MedicationID,
			d.PatientID,
			d.ScheduledAt,
			toNullTime(d.ActualAt),
			toNullString(d.Record.Explicit()),
			d.CreatedAt,
		); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (r *DosesRepo) GetByID(ctx context.Context, id string) (doses.Dose, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return doses.Dose{}, ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `SELECT `+doseColumns+` FROM doses WHERE id = $1`, id)
	d, err := scanDose(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return doses.Dose{}, ErrNotFound
		}
		return doses.Dose{}, err
	}
	return d, nil
}

func (r *DosesRepo) ListByPatient(ctx context.Context, patientID, medicationID string) ([]doses.Dose, error) {
	sb := strings.Builder{}
	sb.WriteString(`SELECT ` + doseColumns + ` FROM doses WHERE patient_id = $1`)
	args := []any{patientID}

	if medicationID != "" {
		sb.WriteString(` AND medication_id = $2`)
		args = append(args, medicationID)
	}
	sb.WriteString(` ORDER BY scheduled_at ASC`)

	rows, err := r.db.QueryContext(ctx, sb.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]doses.Dose, 0)
	for rows.Next() {
		d, err := scanDose(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (r *DosesRepo) Exists(ctx context.Context, medicationID string, scheduledAt time.Time) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, `
		SELECT EXISTS (SELECT 1 FROM doses WHERE medication_id = $1 AND scheduled_at = $2)
	`, medicationID, scheduledAt).Scan(&exists)
	return exists, err
}

// RecordOutcome es un UPDATE condicional: solo una escritura concurrente gana.
func (r *DosesRepo) RecordOutcome(ctx context.Context, id string, rec adherence.Record, actualAt *time.Time) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE doses
		SET explicit_status = $2, actual_at = $3
		WHERE id = $1 AND explicit_status IS NULL
	`, id, rec.Explicit(), toNullTime(actualAt))
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n > 0 {
		return nil
	}

	// 0 filas: no existe o ya estaba registrada
	if _, err := r.GetByID(ctx, id); err != nil {
		return err
	}
	return doses.ErrAlreadyRecorded
}

func (r *DosesRepo) DeleteByMedication(ctx context.Context, medicationID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM doses WHERE medication_id = $1`, medicationID)
	return err
}

func (r *DosesRepo) DeleteUnrecordedFrom(ctx context.Context, medicationID string, from time.Time) (int, error) {
	res, err := r.db.ExecContext(ctx, `
		DELETE FROM doses
		WHERE medication_id = $1 AND explicit_status IS NULL AND scheduled_at >= $2
	`, medicationID, from)
	if err != nil {
		return 0, err
	}
	n, _ := res.RowsAffected()
	return int(n), nil
}

func scanDose(s rowScanner) (doses.Dose, error) {
	var (
		d        doses.Dose
		actualAt sql.NullTime
		status   sql.NullString
	)
	if err := s.Scan(
		&d.ID,
		&d.MedicationID,
		&d.PatientID,
		&d.ScheduledAt,
		&actualAt,
		&status,
		&d.CreatedAt,
	); err != nil {
		return doses.Dose{}, err
	}

	rec, err := adherence.ParseRecord(status.String)
	if err != nil {
		return doses.Dose{}, fmt.Errorf("dose %s: %w", d.ID, err)
	}
	d.Record = rec
	d.ActualAt = fromNullTime(actualAt)
	return d, nil
}
