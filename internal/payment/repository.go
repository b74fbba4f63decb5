package payment

import (
	"context"

	"github.com/jmoiron/sqlx"
)

type SQLRepository struct {
	db *sqlx.DB
}

func NewRepository(database *sqlx.DB) *SQLRepository {
	return &SQLRepository{db: database}
}

// RecordCheckout stores the payment once per checkout session. A repeat
// of the same session id is silently ignored.
func (r *SQLRepository) RecordCheckout(ctx context.Context, userID int, sessionID, subscriptionID string, amountCents int64, currency string) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO payments (user_id, session_id, subscription_id, amount_cents, currency)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (session_id) DO NOTHING
	`, userID, sessionID, subscriptionID, amountCents, currency)
	return err
}

func (r *SQLRepository) ListByUser(ctx context.Context, userID int) ([]Payment, error) {
	payments := []Payment{}
	err := r.db.SelectContext(ctx, &payments, `
		SELECT id, user_id, session_id, subscription_id, amount_cents, currency, created_at
		FROM payments
		WHERE user_id = $1
		ORDER BY created_at DESC
	`, userID)
	return payments, err
}

func (r *SQLRepository) ListAll(ctx context.Context, limit, offset int) ([]Payment, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}

	payments := []Payment{}
	err := r.db.SelectContext(ctx, &payments, `
		SELECT id, user_id, session_id, subscription_id, amount_cents, currency, created_at
		FROM payments
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`, limit, offset)
	return payments, err
}
