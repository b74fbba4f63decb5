package progress

import (
	"context"
	"time"

	"fitcourse/internal/metrics"
)

// streakLookback bounds how many days of history feed the streak walk.
const streakLookback = 365

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) CompleteWorkout(ctx context.Context, userID, workoutID int) error {
	programID, err := s.repo.FindWorkoutProgram(ctx, workoutID)
	if err != nil {
		return err
	}

	if err := s.repo.Complete(ctx, userID, programID, workoutID); err != nil {
		return err
	}

	metrics.RecordWorkoutCompletion()
	return nil
}

// Summary aggregates the member's counters. Nothing is cached: the
// numbers are cheap reads and always reflect the current rows.
func (s *Service) Summary(ctx context.Context, userID int) (*Summary, error) {
	totalWorkouts, err := s.repo.TotalWorkouts(ctx, userID)
	if err != nil {
		return nil, err
	}

	activePrograms, err := s.repo.ActivePrograms(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	days, err := s.repo.CompletionDays(ctx, userID, now.AddDate(0, 0, -streakLookback))
	if err != nil {
		return nil, err
	}

	return &Summary{
		TotalWorkouts:  totalWorkouts,
		ActivePrograms: activePrograms,
		StreakDays:     Streak(days, now),
	}, nil
}
