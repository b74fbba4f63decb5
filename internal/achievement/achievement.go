package achievement

// Definition is a fixed milestone over one counter. Achievements carry
// no state: whether one is unlocked is recomputed from the counters on
// every view.
type Definition struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Counter     string `json:"counter"`
	Threshold   int    `json:"threshold"`
}

// Counter names.
const (
	CounterWorkouts = "total_workouts"
	CounterPrograms = "total_active_programs"
)

// Achievement is a definition plus its evaluation for one user.
type Achievement struct {
	Definition
	Unlocked bool `json:"unlocked"`
	Progress int  `json:"progress"`
}

// Counters are the inputs to evaluation.
type Counters struct {
	TotalWorkouts       int
	TotalActivePrograms int
}

var definitions = []Definition{
	{ID: "first-workout", Title: "First Workout", Description: "Complete your first workout", Counter: CounterWorkouts, Threshold: 1},
	{ID: "ten-workouts", Title: "Getting Consistent", Description: "Complete 10 workouts", Counter: CounterWorkouts, Threshold: 10},
	{ID: "fifty-workouts", Title: "Half Century", Description: "Complete 50 workouts", Counter: CounterWorkouts, Threshold: 50},
	{ID: "hundred-workouts", Title: "Centurion", Description: "Complete 100 workouts", Counter: CounterWorkouts, Threshold: 100},
	{ID: "first-program", Title: "Committed", Description: "Train in a program", Counter: CounterPrograms, Threshold: 1},
	{ID: "three-programs", Title: "Explorer", Description: "Train in 3 programs at once", Counter: CounterPrograms, Threshold: 3},
}

// Definitions returns the fixed achievement table.
func Definitions() []Definition {
	return definitions
}

// Evaluate checks every definition against the counters. Each is
// independent: unlocked exactly when its counter has reached the
// threshold.
func Evaluate(c Counters) []Achievement {
	out := make([]Achievement, 0, len(definitions))
	for _, def := range definitions {
		counter := c.TotalWorkouts
		if def.Counter == CounterPrograms {
			counter = c.TotalActivePrograms
		}
		out = append(out, Achievement{
			Definition: def,
			Unlocked:   counter >= def.Threshold,
			Progress:   counter,
		})
	}
	return out
}
