package user

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"fitcourse/internal/access"

	"github.com/jmoiron/sqlx"
)

var ErrUserNotFound = errors.New("user not found")

const userColumns = `id, name, email, password_hash, role, stripe_customer_id, subscription_id, subscription_status, subscription_start, created_at`

type SQLRepository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) *SQLRepository {
	return &SQLRepository{db: db}
}

func (r *SQLRepository) Create(ctx context.Context, name, email, passwordHash, role string) (*User, error) {
	query := `
		INSERT INTO users (name, email, password_hash, role)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + userColumns

	var user User
	err := r.db.GetContext(ctx, &user, query, name, email, passwordHash, role)
	if err != nil {
		return nil, err
	}

	return &user, nil
}

func (r *SQLRepository) FindByEmail(ctx context.Context, email string) (*User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`

	var user User
	err := r.db.GetContext(ctx, &user, query, email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}

	return &user, nil
}

func (r *SQLRepository) FindByID(ctx context.Context, id int) (*User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	var user User
	err := r.db.GetContext(ctx, &user, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}

	return &user, nil
}

func (r *SQLRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`

	var exists bool
	err := r.db.GetContext(ctx, &exists, query, email)
	if err != nil {
		return false, err
	}

	return exists, nil
}

func (r *SQLRepository) List(ctx context.Context, limit, offset int) ([]User, error) {
	if limit <= 0 {
		limit = 50
	}

	users := []User{}
	err := r.db.SelectContext(ctx, &users, `
		SELECT `+userColumns+`
		FROM users
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`, limit, offset)
	return users, err
}

func (r *SQLRepository) UpdateRole(ctx context.Context, id int, role string) (*User, error) {
	query := `
		UPDATE users
		SET role = $1
		WHERE id = $2
		RETURNING ` + userColumns

	var user User
	err := r.db.GetContext(ctx, &user, query, role, id)
	if err != nil {
		return nil, err
	}

	return &user, nil
}

func (r *SQLRepository) SetStripeCustomerID(ctx context.Context, id int, customerID string) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE users
		SET stripe_customer_id = $1
		WHERE id = $2
	`, customerID, id)
	return err
}

// UpdateSubscription overwrites the subscription fields. Confirmation
// re-derives the same target state from the billing provider on every
// call, so repeated updates for one checkout session are idempotent.
func (r *SQLRepository) UpdateSubscription(ctx context.Context, id int, subscriptionID, status string, start time.Time) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE users
		SET subscription_id = $1,
		    subscription_status = $2,
		    subscription_start = $3
		WHERE id = $4
	`, subscriptionID, status, start, id)
	return err
}

func (r *SQLRepository) ClearSubscription(ctx context.Context, id int) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE users
		SET subscription_id = NULL,
		    subscription_status = NULL,
		    subscription_start = NULL
		WHERE id = $1
	`, id)
	return err
}

// SubscriptionSnapshot reads only the subscription fields, the fresh
// read the access resolver prefers over the cached session claim.
func (r *SQLRepository) SubscriptionSnapshot(ctx context.Context, id int) (*access.Snapshot, error) {
	var row struct {
		SubscriptionID     *string `db:"subscription_id"`
		SubscriptionStatus *string `db:"subscription_status"`
	}

	err := r.db.GetContext(ctx, &row, `
		SELECT subscription_id, subscription_status
		FROM users
		WHERE id = $1
	`, id)
	if err != nil {
		return nil, err
	}

	snapshot := &access.Snapshot{}
	if row.SubscriptionID != nil {
		snapshot.SubscriptionID = *row.SubscriptionID
	}
	if row.SubscriptionStatus != nil {
		snapshot.SubscriptionStatus = *row.SubscriptionStatus
	}

	return snapshot, nil
}
