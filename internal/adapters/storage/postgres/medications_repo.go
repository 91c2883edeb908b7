package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"patient-adherence/internal/domain/adherence"
	"patient-adherence/internal/domain/medications"
)

type MedicationsRepo struct {
	db *sql.DB
}

func NewMedicationsRepo(db *sql.DB) *MedicationsRepo {
	return &MedicationsRepo{db: db}
}

const medicationColumns = `
	id, patient_id,
	name, dosage, frequency, start_time,
	start_date, end_date, is_active,
	created_at, updated_at
`

func (r *MedicationsRepo) Create(ctx context.Context, m medications.Medication) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO medications (`+medicationColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
	`,
		m.ID,
		m.PatientID,
		m.Name,
		m.Dosage,
		string(m.Frequency),
		m.StartTime.String(),
		toDate(m.StartDate),
		toNullDate(m.EndDate),
		m.IsActive,
		m.CreatedAt,
		m.UpdatedAt,
	)
	return err
}

func (r *MedicationsRepo) Update(ctx context.Context, m medications.Medication) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE medications
		SET
			name = $2,
			dosage = $3,
			frequency = $4,
			start_time = $5,
			end_date = $6,
			is_active = $7,
			updated_at = $8
		WHERE id = $1
	`,
		m.ID,
		m.Name,
		m.Dosage,
		string(m.Frequency),
		m.StartTime.String(),
		toNullDate(m.EndDate),
		m.IsActive,
		m.UpdatedAt,
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

func (r *MedicationsRepo) GetByID(ctx context.Context, id string) (medications.Medication, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return medications.Medication{}, ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `SELECT `+medicationColumns+` FROM medications WHERE id = $1`, id)
	m, err := scanMedication(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return medications.Medication{}, ErrNotFound
		}
		return medications.Medication{}, err
	}
	return m, nil
}

func (r *MedicationsRepo) ListByPatient(ctx context.Context, patientID string) ([]medications.Medication, error) {
	return r.query(ctx, `SELECT `+medicationColumns+` FROM medications WHERE patient_id = $1 ORDER BY created_at ASC`, patientID)
}

func (r *MedicationsRepo) ListActive(ctx context.Context) ([]medications.Medication, error) {
	return r.query(ctx, `SELECT `+medicationColumns+` FROM medications WHERE is_active ORDER BY created_at ASC`)
}

// Delete: las dosis se borran por ON DELETE CASCADE además del borrado explícito del servicio.
func (r *MedicationsRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM medications WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MedicationsRepo) query(ctx context.Context, q string, args ...any) ([]medications.Medication, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]medications.Medication, 0)
	for rows.Next() {
		m, err := scanMedication(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func scanMedication(s rowScanner) (medications.Medication, error) {
	var (
		m         medications.Medication
		freq      string
		startTime string
		startDate sql.NullTime
		endDate   sql.NullTime
	)
	if err := s.Scan(
		&m.ID,
		&m.PatientID,
		&m.Name,
		&m.Dosage,
		&freq,
		&startTime,
		&startDate,
		&endDate,
		&m.IsActive,
		&m.CreatedAt,
		&m.UpdatedAt,
	); err != nil {
		return medications.Medication{}, err
	}

	tod, err := adherence.ParseTimeOfDay(startTime)
	if err != nil {
		return medications.Medication{}, fmt.Errorf("medication %s: %w", m.ID, err)
	}
	m.Frequency = adherence.Frequency(freq)
	m.StartTime = tod
	if startDate.Valid {
		m.StartDate = fromDate(startDate.Time)
	}
	m.EndDate = fromNullDate(endDate)
	return m, nil
}
