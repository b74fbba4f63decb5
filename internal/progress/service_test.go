package progress

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepo struct {
	workoutPrograms map[int]int
	completions     map[[2]int]bool
	days            []time.Time
}

func (f *fakeRepo) FindWorkoutProgram(ctx context.Context, workoutID int) (int, error) {
	programID, ok := f.workoutPrograms[workoutID]
	if !ok {
		return 0, ErrWorkoutNotFound
	}
	return programID, nil
}

func (f *fakeRepo) Complete(ctx context.Context, userID, programID, workoutID int) error {
	if f.completions == nil {
		f.completions = map[[2]int]bool{}
	}
	f.completions[[2]int{userID, workoutID}] = true
	return nil
}

func (f *fakeRepo) TotalWorkouts(ctx context.Context, userID int) (int, error) {
	return len(f.completions), nil
}

func (f *fakeRepo) ActivePrograms(ctx context.Context, userID int) (int, error) {
	return 1, nil
}

func (f *fakeRepo) CompletionDays(ctx context.Context, userID int, since time.Time) ([]time.Time, error) {
	return f.days, nil
}

func TestCompleteWorkout(t *testing.T) {
	repo := &fakeRepo{workoutPrograms: map[int]int{10: 3}}
	svc := NewService(repo)

	require.NoError(t, svc.CompleteWorkout(context.Background(), 7, 10))
	assert.True(t, repo.completions[[2]int{7, 10}])

	// Completing again stays a no-op at the repo layer.
	require.NoError(t, svc.CompleteWorkout(context.Background(), 7, 10))
	assert.Len(t, repo.completions, 1)
}

func TestCompleteWorkoutUnknownWorkout(t *testing.T) {
	svc := NewService(&fakeRepo{workoutPrograms: map[int]int{}})
	err := svc.CompleteWorkout(context.Background(), 7, 99)
	assert.ErrorIs(t, err, ErrWorkoutNotFound)
}

func TestSummary(t *testing.T) {
	now := time.Now()
	repo := &fakeRepo{
		workoutPrograms: map[int]int{10: 3},
		completions:     map[[2]int]bool{{7, 10}: true, {7, 11}: true},
		days:            []time.Time{now, now.AddDate(0, 0, -1)},
	}
	svc := NewService(repo)

	summary, err := svc.Summary(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, 2, summary.TotalWorkouts)
	assert.Equal(t, 1, summary.ActivePrograms)
	assert.Equal(t, 2, summary.StreakDays)
}
