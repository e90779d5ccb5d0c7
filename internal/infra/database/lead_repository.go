package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"github.com/xavierca1/ligue-leads/internal/entity"
)

type LeadRepository struct {
	DB *sql.DB
}

func NewLeadRepository(db *sql.DB) *LeadRepository {
	return &LeadRepository{DB: db}
}

// Upsert usa uid como chave de conflito. Os campos de pagamento e os reservados só são
// escritos na criação; um novo sync nunca os sobrescreve.
func (r *LeadRepository) Upsert(ctx context.Context, lead *entity.Lead) error {
	query := `
		INSERT INTO leads (
			uid, name, email, phone, registered_at, started_test, completed_test,
			payment_status, amount_paid, result_sent, whatsapp_notified, email_stage, reminder_count,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		ON CONFLICT (uid) DO UPDATE SET
			name = EXCLUDED.name,
			email = EXCLUDED.email,
			phone = CASE WHEN EXCLUDED.phone <> '' THEN EXCLUDED.phone ELSE leads.phone END,
			registered_at = EXCLUDED.registered_at,
			started_test = EXCLUDED.started_test,
			completed_test = EXCLUDED.completed_test,
			updated_at = EXCLUDED.updated_at
	`

	status := lead.PaymentStatus
	if status == "" {
		status = entity.PaymentPending
	}
	now := time.Now()
	createdAt := lead.CreatedAt
	if createdAt.IsZero() {
		createdAt = now
	}

	_, err := r.DB.ExecContext(ctx, query,
		lead.UID,
		lead.Name,
		lead.Email,
		lead.Phone,
		lead.RegisteredAt,
		lead.StartedTest,
		lead.CompletedTest,
		string(status),
		lead.AmountPaid,
		lead.ResultSent,
		lead.WhatsAppNotified,
		lead.EmailStage,
		lead.ReminderCount,
		createdAt,
		now,
	)
	if err != nil {
		return wrapDBError("upsert lead "+lead.UID, err)
	}
	return nil
}

func (r *LeadRepository) FindByUID(ctx context.Context, uid string) (*entity.Lead, error) {
	query := `
		SELECT uid, name, email, phone, registered_at, started_test, completed_test,
			payment_status, paid_at, amount_paid, result_sent, whatsapp_notified,
			email_stage, reminder_count, created_at, updated_at
		FROM leads
		WHERE uid = $1
	`

	var (
		lead   entity.Lead
		status string
		paidAt sql.NullTime
	)

	err := r.DB.QueryRowContext(ctx, query, uid).Scan(
		&lead.UID,
		&lead.Name,
		&lead.Email,
		&lead.Phone,
		&lead.RegisteredAt,
		&lead.StartedTest,
		&lead.CompletedTest,
		&status,
		&paidAt,
		&lead.AmountPaid,
		&lead.ResultSent,
		&lead.WhatsAppNotified,
		&lead.EmailStage,
		&lead.ReminderCount,
		&lead.CreatedAt,
		&lead.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, entity.ErrLeadNotFound
		}
		return nil, wrapDBError("buscar lead "+uid, err)
	}

	lead.PaymentStatus = entity.PaymentStatus(status)
	if paidAt.Valid {
		t := paidAt.Time
		lead.PaidAt = &t
	}
	return &lead, nil
}

// UpdatePayment escreve apenas status, paid_at e amount_paid.
func (r *LeadRepository) UpdatePayment(ctx context.Context, uid string, update entity.PaymentUpdate) error {
	query := `
		UPDATE leads
		SET payment_status = $1, paid_at = $2, amount_paid = $3, updated_at = $4
		WHERE uid = $5
	`

	res, err := r.DB.ExecContext(ctx, query,
		string(update.Status),
		update.PaidAt,
		update.AmountPaid,
		time.Now(),
		uid,
	)
	if err != nil {
		return wrapDBError("atualizar pagamento "+uid, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return wrapDBError("atualizar pagamento "+uid, err)
	}
	if affected == 0 {
		return entity.ErrLeadNotFound
	}
	return nil
}

func wrapDBError(op string, err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return fmt.Errorf("%s: postgres %s (%s): %w", op, pqErr.Code.Name(), pqErr.Code, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}
