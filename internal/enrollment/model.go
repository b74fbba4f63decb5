package enrollment

import "time"

// Enrollment is an explicit per-program access grant, independent of
// subscription. It predates the subscription model and is kept for
// direct enrollments and admin grants; an active subscription
// supersedes it by granting access to all published programs.
type Enrollment struct {
	ID        int       `db:"id" json:"id"`
	UserID    int       `db:"user_id" json:"user_id"`
	ProgramID int       `db:"program_id" json:"program_id"`
	Active    bool      `db:"active" json:"active"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
