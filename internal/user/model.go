package user

import (
	"time"

	"fitcourse/internal/access"
)

type User struct {
	ID                 int        `db:"id" json:"id"`
	Name               string     `db:"name" json:"name"`
	Email              string     `db:"email" json:"email"`
	PasswordHash       string     `db:"password_hash" json:"-"`
	Role               string     `db:"role" json:"role"`
	StripeCustomerID   *string    `db:"stripe_customer_id" json:"-"`
	SubscriptionID     *string    `db:"subscription_id" json:"subscription_id,omitempty"`
	SubscriptionStatus *string    `db:"subscription_status" json:"subscription_status,omitempty"`
	SubscriptionStart  *time.Time `db:"subscription_start" json:"subscription_start,omitempty"`
	CreatedAt          time.Time  `db:"created_at" json:"created_at"`
}

// Snapshot returns the subscription fields in the resolver's shape,
// with NULLs flattened to empty strings.
func (u *User) Snapshot() *access.Snapshot {
	s := &access.Snapshot{}
	if u.SubscriptionID != nil {
		s.SubscriptionID = *u.SubscriptionID
	}
	if u.SubscriptionStatus != nil {
		s.SubscriptionStatus = *u.SubscriptionStatus
	}
	return s
}

func (u *User) SubscriptionIDString() string {
	if u.SubscriptionID == nil {
		return ""
	}
	return *u.SubscriptionID
}

func (u *User) StripeCustomerIDString() string {
	if u.StripeCustomerID == nil {
		return ""
	}
	return *u.StripeCustomerID
}

func (u *User) SubscriptionStatusString() string {
	if u.SubscriptionStatus == nil {
		return ""
	}
	return *u.SubscriptionStatus
}

type RegisterRequest struct {
	Name     string `json:"name" binding:"required,min=2"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	User         User   `json:"user"`
}

type ChangeRoleRequest struct {
	Role string `json:"role" binding:"required,oneof=member trainer admin"`
}
