package program

import (
	"context"
	"errors"

	"fitcourse/internal/access"
	"fitcourse/internal/logger"
	"fitcourse/internal/metrics"
)

var (
	ErrProgramNotFound = errors.New("program not found")
	ErrWorkoutNotFound = errors.New("workout not found")
	ErrNotOwner        = errors.New("not the program owner")
)

const lockedCallToAction = "Subscribe to unlock every workout and exercise video in this program."

// SnapshotSource provides the fresh subscription read the access
// resolver prefers over the cached session claim. Implemented by the
// user repository.
type SnapshotSource interface {
	SubscriptionSnapshot(ctx context.Context, userID int) (*access.Snapshot, error)
}

// EnrollmentSource reports whether a user holds an active explicit
// grant for a program. Implemented by the enrollment repository.
type EnrollmentSource interface {
	HasActive(ctx context.Context, userID, programID int) (bool, error)
}

// RatingSource provides the aggregate rating for a program. Implemented
// by the rating repository.
type RatingSource interface {
	Summary(ctx context.Context, programID int) (float64, int, error)
}

type Service interface {
	Create(ctx context.Context, trainerID int, req CreateProgramRequest) (*Program, error)
	Update(ctx context.Context, session *access.Session, programID int, req UpdateProgramRequest) (*Program, error)
	SetPublished(ctx context.Context, session *access.Session, programID int, published bool) error
	AddWorkout(ctx context.Context, session *access.Session, programID int, req CreateWorkoutRequest) (*Workout, error)
	AddExercise(ctx context.Context, session *access.Session, workoutID int, req CreateExerciseRequest) (*Exercise, error)
	ListMine(ctx context.Context, trainerID int) ([]Summary, error)
	Browse(ctx context.Context, level string, limit, offset int) ([]Summary, error)
	Detail(ctx context.Context, session *access.Session, programID int) (*DetailView, error)
}

type service struct {
	repo        Repository
	snapshots   SnapshotSource
	enrollments EnrollmentSource
	ratings     RatingSource
}

func NewService(repo Repository, snapshots SnapshotSource, enrollments EnrollmentSource, ratings RatingSource) Service {
	return &service{
		repo:        repo,
		snapshots:   snapshots,
		enrollments: enrollments,
		ratings:     ratings,
	}
}

func (s *service) Create(ctx context.Context, trainerID int, req CreateProgramRequest) (*Program, error) {
	return s.repo.CreateProgram(ctx, trainerID, req)
}

// ownedProgram loads a program and enforces the shared ownership
// predicate for mutating trainer operations.
func (s *service) ownedProgram(ctx context.Context, session *access.Session, programID int) (*Program, error) {
	prog, err := s.repo.GetByID(ctx, programID)
	if err != nil {
		return nil, ErrProgramNotFound
	}

	if !access.IsOwnerOrAdmin(session, prog.TrainerID) {
		return nil, ErrNotOwner
	}

	return prog, nil
}

func (s *service) Update(ctx context.Context, session *access.Session, programID int, req UpdateProgramRequest) (*Program, error) {
	if _, err := s.ownedProgram(ctx, session, programID); err != nil {
		return nil, err
	}
	return s.repo.UpdateProgram(ctx, programID, req)
}

func (s *service) SetPublished(ctx context.Context, session *access.Session, programID int, published bool) error {
	if _, err := s.ownedProgram(ctx, session, programID); err != nil {
		return err
	}
	return s.repo.SetPublished(ctx, programID, published)
}

func (s *service) AddWorkout(ctx context.Context, session *access.Session, programID int, req CreateWorkoutRequest) (*Workout, error) {
	if _, err := s.ownedProgram(ctx, session, programID); err != nil {
		return nil, err
	}
	return s.repo.AddWorkout(ctx, programID, req)
}

func (s *service) AddExercise(ctx context.Context, session *access.Session, workoutID int, req CreateExerciseRequest) (*Exercise, error) {
	workout, err := s.repo.GetWorkout(ctx, workoutID)
	if err != nil {
		return nil, ErrWorkoutNotFound
	}

	if _, err := s.ownedProgram(ctx, session, workout.ProgramID); err != nil {
		return nil, err
	}

	return s.repo.AddExercise(ctx, workoutID, req)
}

func (s *service) ListMine(ctx context.Context, trainerID int) ([]Summary, error) {
	return s.repo.ListByTrainer(ctx, trainerID)
}

func (s *service) Browse(ctx context.Context, level string, limit, offset int) ([]Summary, error) {
	return s.repo.ListPublished(ctx, level, limit, offset)
}

// Detail performs the caller-side duties of the access resolver: it
// fetches the program, the fresh subscription snapshot and the caller's
// enrollment, then resolves the decision and shapes the view.
func (s *service) Detail(ctx context.Context, session *access.Session, programID int) (*DetailView, error) {
	prog, err := s.repo.GetByID(ctx, programID)
	if err != nil {
		return nil, ErrProgramNotFound
	}

	// Unpublished programs are invisible to everyone except the owner
	// and admins.
	if !prog.Published && !access.IsOwnerOrAdmin(session, prog.TrainerID) {
		return nil, ErrProgramNotFound
	}

	var dbUser *access.Snapshot
	enrolled := false
	if session != nil {
		dbUser, err = s.snapshots.SubscriptionSnapshot(ctx, session.UserID)
		if err != nil {
			// Degrade to the cached session claim rather than failing
			// the page, and flag the fallback.
			logger.Warn("Subscription read failed, falling back to session snapshot",
				"user_id", session.UserID, logger.Err(err))
			metrics.RecordSessionFallback()
			dbUser = nil
		}

		enrolled, err = s.enrollments.HasActive(ctx, session.UserID, programID)
		if err != nil {
			logger.Warn("Enrollment read failed, treating as not enrolled",
				"user_id", session.UserID, "program_id", programID, logger.Err(err))
			enrolled = false
		}
	}

	decision := access.Resolve(session, prog.TrainerID, enrolled, dbUser)
	metrics.RecordAccessDecision(string(decision))

	view := &DetailView{
		Program:  *prog,
		Decision: decision,
		Locked:   !decision.FullContent(),
	}

	if name, err := s.repo.TrainerName(ctx, programID); err == nil {
		view.TrainerName = name
	}

	if avg, count, err := s.ratings.Summary(ctx, programID); err == nil {
		view.AvgRating = avg
		view.RatingCount = count
	}

	if decision.FullContent() {
		workouts, err := s.repo.ListWorkoutsWithExercises(ctx, programID)
		if err != nil {
			return nil, err
		}
		view.Workouts = workouts
		return view, nil
	}

	// Teaser for locked and anonymous callers: outline only.
	workouts, err := s.repo.ListWorkouts(ctx, programID)
	if err != nil {
		return nil, err
	}
	teaser := make([]WorkoutTeaser, 0, len(workouts))
	for _, w := range workouts {
		teaser = append(teaser, WorkoutTeaser{ID: w.ID, Title: w.Title, DayIndex: w.DayIndex})
	}
	view.Teaser = teaser

	if decision == access.DecisionAnonymous {
		view.CallToAction = "Sign in to start training."
	} else {
		view.CallToAction = lockedCallToAction
	}

	return view, nil
}
