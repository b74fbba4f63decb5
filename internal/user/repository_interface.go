package user

import (
	"context"
	"time"

	"fitcourse/internal/access"
)

type Repository interface {
	Create(ctx context.Context, name, email, passwordHash, role string) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByID(ctx context.Context, id int) (*User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	List(ctx context.Context, limit, offset int) ([]User, error)
	UpdateRole(ctx context.Context, id int, role string) (*User, error)
	SetStripeCustomerID(ctx context.Context, id int, customerID string) error
	UpdateSubscription(ctx context.Context, id int, subscriptionID, status string, start time.Time) error
	ClearSubscription(ctx context.Context, id int) error
	SubscriptionSnapshot(ctx context.Context, id int) (*access.Snapshot, error)
}
