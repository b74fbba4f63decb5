package progress

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
)

var ErrWorkoutNotFound = errors.New("workout not found")

// activeWindow bounds how far back a completion still marks a program
// as actively worked.
const activeWindow = 30 * 24 * time.Hour

type SQLRepository struct {
	db *sqlx.DB
}

func NewRepository(database *sqlx.DB) *SQLRepository {
	return &SQLRepository{db: database}
}

func (r *SQLRepository) FindWorkoutProgram(ctx context.Context, workoutID int) (int, error) {
	var programID int
	err := r.db.GetContext(ctx, &programID, `
		SELECT program_id FROM workouts WHERE id = $1
	`, workoutID)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrWorkoutNotFound
	}
	return programID, err
}

// Complete records the workout as done. Completing it again is a no-op.
func (r *SQLRepository) Complete(ctx context.Context, userID, programID, workoutID int) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO workout_completions (user_id, program_id, workout_id)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, workout_id) DO NOTHING
	`, userID, programID, workoutID)
	return err
}

func (r *SQLRepository) TotalWorkouts(ctx context.Context, userID int) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `
		SELECT COUNT(*) FROM workout_completions WHERE user_id = $1
	`, userID)
	return count, err
}

func (r *SQLRepository) ActivePrograms(ctx context.Context, userID int) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `
		SELECT COUNT(DISTINCT program_id)
		FROM workout_completions
		WHERE user_id = $1 AND completed_at > $2
	`, userID, time.Now().Add(-activeWindow))
	return count, err
}

func (r *SQLRepository) CompletionDays(ctx context.Context, userID int, since time.Time) ([]time.Time, error) {
	days := []time.Time{}
	err := r.db.SelectContext(ctx, &days, `
		SELECT DISTINCT date_trunc('day', completed_at AT TIME ZONE 'UTC')
		FROM workout_completions
		WHERE user_id = $1 AND completed_at >= $2
	`, userID, since)
	return days, err
}
