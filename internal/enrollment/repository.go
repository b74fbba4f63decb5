package enrollment

import (
	"context"

	"fitcourse/internal/db"

	"github.com/jmoiron/sqlx"
)

type SQLRepository struct {
	db *sqlx.DB
}

func NewRepository(database *sqlx.DB) *SQLRepository {
	return &SQLRepository{db: database}
}

// Enroll creates or reactivates the grant. Re-enrolling is idempotent.
func (r *SQLRepository) Enroll(ctx context.Context, userID, programID int) (*Enrollment, error) {
	e := &Enrollment{}
	err := r.db.QueryRowxContext(ctx, `
		INSERT INTO enrollments (user_id, program_id, active)
		VALUES ($1, $2, true)
		ON CONFLICT (user_id, program_id) DO UPDATE SET active = true
		RETURNING id, user_id, program_id, active, created_at
	`, userID, programID).StructScan(e)

	return e, err
}

func (r *SQLRepository) HasActive(ctx context.Context, userID, programID int) (bool, error) {
	return db.Exists(ctx, r.db, `
		SELECT EXISTS(
			SELECT 1 FROM enrollments
			WHERE user_id = $1 AND program_id = $2 AND active = true
		)
	`, userID, programID)
}

func (r *SQLRepository) ListByUser(ctx context.Context, userID int) ([]Enrollment, error) {
	enrollments := []Enrollment{}
	err := r.db.SelectContext(ctx, &enrollments, `
		SELECT id, user_id, program_id, active, created_at
		FROM enrollments
		WHERE user_id = $1 AND active = true
		ORDER BY created_at DESC
	`, userID)
	return enrollments, err
}

func (r *SQLRepository) Deactivate(ctx context.Context, userID, programID int) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE enrollments
		SET active = false
		WHERE user_id = $1 AND program_id = $2
	`, userID, programID)
	return err
}
