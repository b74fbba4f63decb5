package payment

import "time"

// Payment is one completed checkout. The checkout session id is unique,
// so re-confirming the same session never produces a second row.
type Payment struct {
	ID             int       `db:"id" json:"id"`
	UserID         int       `db:"user_id" json:"user_id"`
	SessionID      string    `db:"session_id" json:"session_id"`
	SubscriptionID string    `db:"subscription_id" json:"subscription_id"`
	AmountCents    int64     `db:"amount_cents" json:"amount_cents"`
	Currency       string    `db:"currency" json:"currency"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
}
