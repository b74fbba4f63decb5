package progress

import "time"

// Completion is one workout finished by one user. The (user, workout)
// pair is unique, so completing the same workout again changes nothing.
type Completion struct {
	ID          int       `db:"id" json:"id"`
	UserID      int       `db:"user_id" json:"user_id"`
	ProgramID   int       `db:"program_id" json:"program_id"`
	WorkoutID   int       `db:"workout_id" json:"workout_id"`
	CompletedAt time.Time `db:"completed_at" json:"completed_at"`
}

// Summary is the member's training overview, recomputed on every view.
type Summary struct {
	TotalWorkouts  int `json:"total_workouts"`
	ActivePrograms int `json:"active_programs"`
	StreakDays     int `json:"streak_days"`
}
