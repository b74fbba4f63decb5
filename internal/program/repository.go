package program

import (
	"context"

	"github.com/jmoiron/sqlx"
)

const programColumns = `id, trainer_id, title, description, level, duration_weeks, published, created_at, updated_at`

type SQLRepository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) *SQLRepository {
	return &SQLRepository{db: db}
}

func (r *SQLRepository) CreateProgram(ctx context.Context, trainerID int, req CreateProgramRequest) (*Program, error) {
	p := &Program{}
	err := r.db.QueryRowxContext(ctx, `
		INSERT INTO programs (trainer_id, title, description, level, duration_weeks, published)
		VALUES ($1, $2, $3, $4, $5, false)
		RETURNING `+programColumns+`
	`, trainerID, req.Title, req.Description, req.Level, req.DurationWeeks).StructScan(p)

	return p, err
}

func (r *SQLRepository) UpdateProgram(ctx context.Context, id int, req UpdateProgramRequest) (*Program, error) {
	p := &Program{}
	err := r.db.QueryRowxContext(ctx, `
		UPDATE programs
		SET title = $1,
		    description = $2,
		    level = $3,
		    duration_weeks = $4,
		    updated_at = NOW()
		WHERE id = $5
		RETURNING `+programColumns+`
	`, req.Title, req.Description, req.Level, req.DurationWeeks, id).StructScan(p)

	return p, err
}

func (r *SQLRepository) SetPublished(ctx context.Context, id int, published bool) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE programs
		SET published = $1, updated_at = NOW()
		WHERE id = $2
	`, published, id)
	return err
}

func (r *SQLRepository) GetByID(ctx context.Context, id int) (*Program, error) {
	p := &Program{}
	err := r.db.GetContext(ctx, p, `
		SELECT `+programColumns+`
		FROM programs
		WHERE id = $1
	`, id)
	return p, err
}

func (r *SQLRepository) TrainerName(ctx context.Context, programID int) (string, error) {
	var name string
	err := r.db.GetContext(ctx, &name, `
		SELECT u.name
		FROM programs p
		JOIN users u ON u.id = p.trainer_id
		WHERE p.id = $1
	`, programID)
	return name, err
}

func (r *SQLRepository) ListPublished(ctx context.Context, level string, limit, offset int) ([]Summary, error) {
	if limit <= 0 {
		limit = 20
	}

	query := `
		SELECT p.id, p.trainer_id, p.title, p.description, p.level, p.duration_weeks,
		       p.published, p.created_at, p.updated_at,
		       u.name AS trainer_name,
		       (SELECT COUNT(*) FROM workouts w WHERE w.program_id = p.id) AS workout_count
		FROM programs p
		JOIN users u ON u.id = p.trainer_id
		WHERE p.published = true`

	args := []interface{}{}
	if level != "" {
		query += ` AND p.level = $1`
		args = append(args, level)
	}
	query += ` ORDER BY p.created_at DESC`

	if level != "" {
		query += ` LIMIT $2 OFFSET $3`
	} else {
		query += ` LIMIT $1 OFFSET $2`
	}
	args = append(args, limit, offset)

	programs := []Summary{}
	err := r.db.SelectContext(ctx, &programs, query, args...)
	return programs, err
}

func (r *SQLRepository) ListByTrainer(ctx context.Context, trainerID int) ([]Summary, error) {
	programs := []Summary{}
	err := r.db.SelectContext(ctx, &programs, `
		SELECT p.id, p.trainer_id, p.title, p.description, p.level, p.duration_weeks,
		       p.published, p.created_at, p.updated_at,
		       u.name AS trainer_name,
		       (SELECT COUNT(*) FROM workouts w WHERE w.program_id = p.id) AS workout_count
		FROM programs p
		JOIN users u ON u.id = p.trainer_id
		WHERE p.trainer_id = $1
		ORDER BY p.created_at DESC
	`, trainerID)
	return programs, err
}

func (r *SQLRepository) AddWorkout(ctx context.Context, programID int, req CreateWorkoutRequest) (*Workout, error) {
	w := &Workout{}
	err := r.db.QueryRowxContext(ctx, `
		INSERT INTO workouts (program_id, title, day_index)
		VALUES ($1, $2, $3)
		RETURNING id, program_id, title, day_index, created_at
	`, programID, req.Title, req.DayIndex).StructScan(w)

	return w, err
}

func (r *SQLRepository) GetWorkout(ctx context.Context, workoutID int) (*Workout, error) {
	w := &Workout{}
	err := r.db.GetContext(ctx, w, `
		SELECT id, program_id, title, day_index, created_at
		FROM workouts
		WHERE id = $1
	`, workoutID)
	return w, err
}

func (r *SQLRepository) AddExercise(ctx context.Context, workoutID int, req CreateExerciseRequest) (*Exercise, error) {
	e := &Exercise{}
	err := r.db.QueryRowxContext(ctx, `
		INSERT INTO exercises (workout_id, name, sets, reps, video_url, position)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, workout_id, name, sets, reps, video_url, position, created_at
	`, workoutID, req.Name, req.Sets, req.Reps, req.VideoURL, req.Position).StructScan(e)

	return e, err
}

func (r *SQLRepository) ListWorkouts(ctx context.Context, programID int) ([]Workout, error) {
	workouts := []Workout{}
	err := r.db.SelectContext(ctx, &workouts, `
		SELECT id, program_id, title, day_index, created_at
		FROM workouts
		WHERE program_id = $1
		ORDER BY day_index, id
	`, programID)
	return workouts, err
}

func (r *SQLRepository) ListWorkoutsWithExercises(ctx context.Context, programID int) ([]WorkoutWithExercises, error) {
	workouts, err := r.ListWorkouts(ctx, programID)
	if err != nil {
		return nil, err
	}

	result := make([]WorkoutWithExercises, 0, len(workouts))
	for _, w := range workouts {
		exercises := []Exercise{}
		err := r.db.SelectContext(ctx, &exercises, `
			SELECT id, workout_id, name, sets, reps, video_url, position, created_at
			FROM exercises
			WHERE workout_id = $1
			ORDER BY position, id
		`, w.ID)
		if err != nil {
			return nil, err
		}
		result = append(result, WorkoutWithExercises{Workout: w, Exercises: exercises})
	}

	return result, nil
}
