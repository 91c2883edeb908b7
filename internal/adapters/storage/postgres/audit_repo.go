package postgres

import (
	"context"
	"database/sql"

	"patient-adherence/internal/domain/adherence"
	"patient-adherence/internal/domain/audit"
)

type AuditRepo struct {
	db *sql.DB
}

func NewAuditRepo(db *sql.DB) *AuditRepo {
	return &AuditRepo{db: db}
}

func (r *AuditRepo) Append(ctx context.Context, t audit.Transition) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO status_transitions (
			id, patient_id, entity_id, entity_type,
			before_status, after_status,
			correlation_id, processing_time_ms, recorded_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
	`,
		t.ID,
		t.PatientID,
		t.EntityID,
		string(t.EntityType),
		string(t.Before),
		string(t.After),
		t.CorrelationID,
		t.ProcessingTimeMs,
		t.RecordedAt,
	)
	return err
}

func (r *AuditRepo) ListByEntity(ctx context.Context, patientID, entityID string) ([]audit.Transition, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT
			id, patient_id, entity_id, entity_type,
			before_status, after_status,
			correlation_id, processing_time_ms, recorded_at
		FROM status_transitions
		WHERE patient_id = $1 AND entity_id = $2
		ORDER BY recorded_at ASC
	`, patientID, entityID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]audit.Transition, 0)
	for rows.Next() {
		var (
			t                     audit.Transition
			entityType            string
			beforeSt, afterStatus string
		)
		if err := rows.Scan(
			&t.ID,
			&t.PatientID,
			&t.EntityID,
			&entityType,
			&beforeSt,
			&afterStatus,
			&t.CorrelationID,
			&t.ProcessingTimeMs,
			&t.RecordedAt,
		); err != nil {
			return nil, err
		}
		t.EntityType = audit.EntityType(entityType)
		t.Before = adherence.Status(beforeSt)
		t.After = adherence.Status(afterStatus)
		out = append(out, t)
	}
	return out, rows.Err()
}
