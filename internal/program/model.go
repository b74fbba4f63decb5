package program

import (
	"time"

	"fitcourse/internal/access"
)

type Program struct {
	ID            int       `db:"id" json:"id"`
	TrainerID     int       `db:"trainer_id" json:"trainer_id"`
	Title         string    `db:"title" json:"title"`
	Description   string    `db:"description" json:"description"`
	Level         string    `db:"level" json:"level"`
	DurationWeeks int       `db:"duration_weeks" json:"duration_weeks"`
	Published     bool      `db:"published" json:"published"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time `db:"updated_at" json:"updated_at"`
}

// Summary is the catalog row: the program plus its trainer name and
// workout count, enough for a browse listing.
type Summary struct {
	Program
	TrainerName  string `db:"trainer_name" json:"trainer_name"`
	WorkoutCount int    `db:"workout_count" json:"workout_count"`
}

type Workout struct {
	ID        int       `db:"id" json:"id"`
	ProgramID int       `db:"program_id" json:"program_id"`
	Title     string    `db:"title" json:"title"`
	DayIndex  int       `db:"day_index" json:"day_index"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

type Exercise struct {
	ID        int       `db:"id" json:"id"`
	WorkoutID int       `db:"workout_id" json:"workout_id"`
	Name      string    `db:"name" json:"name"`
	Sets      int       `db:"sets" json:"sets"`
	Reps      int       `db:"reps" json:"reps"`
	VideoURL  string    `db:"video_url" json:"video_url,omitempty"`
	Position  int       `db:"position" json:"position"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

type WorkoutWithExercises struct {
	Workout
	Exercises []Exercise `json:"exercises"`
}

// WorkoutTeaser is the masked outline shown to locked and anonymous
// callers: titles only, no exercises, no video URLs.
type WorkoutTeaser struct {
	ID       int    `json:"id"`
	Title    string `json:"title"`
	DayIndex int    `json:"day_index"`
}

// DetailView is the program page shaped by the access decision.
// Exactly one of Workouts/Teaser is populated.
type DetailView struct {
	Program      Program                `json:"program"`
	TrainerName  string                 `json:"trainer_name"`
	Decision     access.Decision        `json:"access"`
	Locked       bool                   `json:"locked"`
	Workouts     []WorkoutWithExercises `json:"workouts,omitempty"`
	Teaser       []WorkoutTeaser        `json:"teaser,omitempty"`
	CallToAction string                 `json:"call_to_action,omitempty"`
	AvgRating    float64                `json:"avg_rating"`
	RatingCount  int                    `json:"rating_count"`
}

type CreateProgramRequest struct {
	Title         string `json:"title" binding:"required,min=3"`
	Description   string `json:"description"`
	Level         string `json:"level" binding:"required,oneof=beginner intermediate advanced"`
	DurationWeeks int    `json:"duration_weeks" binding:"required,min=1,max=52"`
}

type UpdateProgramRequest struct {
	Title         string `json:"title" binding:"required,min=3"`
	Description   string `json:"description"`
	Level         string `json:"level" binding:"required,oneof=beginner intermediate advanced"`
	DurationWeeks int    `json:"duration_weeks" binding:"required,min=1,max=52"`
}

type CreateWorkoutRequest struct {
	Title    string `json:"title" binding:"required"`
	DayIndex int    `json:"day_index" binding:"required,min=1"`
}

type CreateExerciseRequest struct {
	Name     string `json:"name" binding:"required"`
	Sets     int    `json:"sets" binding:"required,min=1"`
	Reps     int    `json:"reps" binding:"required,min=1"`
	VideoURL string `json:"video_url"`
	Position int    `json:"position"`
}
