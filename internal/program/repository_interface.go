package program

import "context"

type Repository interface {
	CreateProgram(ctx context.Context, trainerID int, req CreateProgramRequest) (*Program, error)
	UpdateProgram(ctx context.Context, id int, req UpdateProgramRequest) (*Program, error)
	SetPublished(ctx context.Context, id int, published bool) error
	GetByID(ctx context.Context, id int) (*Program, error)
	TrainerName(ctx context.Context, programID int) (string, error)
	ListPublished(ctx context.Context, level string, limit, offset int) ([]Summary, error)
	ListByTrainer(ctx context.Context, trainerID int) ([]Summary, error)
	AddWorkout(ctx context.Context, programID int, req CreateWorkoutRequest) (*Workout, error)
	GetWorkout(ctx context.Context, workoutID int) (*Workout, error)
	AddExercise(ctx context.Context, workoutID int, req CreateExerciseRequest) (*Exercise, error)
	ListWorkouts(ctx context.Context, programID int) ([]Workout, error)
	ListWorkoutsWithExercises(ctx context.Context, programID int) ([]WorkoutWithExercises, error)
}
