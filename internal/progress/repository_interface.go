package progress

import (
	"context"
	"time"
)

type Repository interface {
	FindWorkoutProgram(ctx context.Context, workoutID int) (int, error)
	Complete(ctx context.Context, userID, programID, workoutID int) error
	TotalWorkouts(ctx context.Context, userID int) (int, error)
	ActivePrograms(ctx context.Context, userID int) (int, error)
	CompletionDays(ctx context.Context, userID int, since time.Time) ([]time.Time, error)
}
