package enrollment

import "context"

type Repository interface {
	Enroll(ctx context.Context, userID, programID int) (*Enrollment, error)
	HasActive(ctx context.Context, userID, programID int) (bool, error)
	ListByUser(ctx context.Context, userID int) ([]Enrollment, error)
	Deactivate(ctx context.Context, userID, programID int) error
}
