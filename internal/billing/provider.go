package billing

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrNotFound: the checkout session does not exist or does not
	// belong to the calling user. Permanent, not retryable.
	ErrNotFound = errors.New("checkout session not found")
	// ErrNotCompleted: the checkout session exists but has no
	// subscription attached yet. The client may retry.
	ErrNotCompleted = errors.New("checkout not completed yet")
	// ErrTransient: network or provider failure. The client may retry.
	ErrTransient = errors.New("billing provider unavailable")
)

// CheckoutSession is the provider-neutral view of a checkout session
// with its subscription and customer expanded.
type CheckoutSession struct {
	ID                 string
	CustomerID         string
	ClientReferenceID  string
	Metadata           map[string]string
	SubscriptionID     string
	SubscriptionStatus string
	AmountTotal        int64
	Currency           string
	URL                string
}

type SubscriptionInfo struct {
	ID         string
	Status     string
	CustomerID string
	StartedAt  time.Time
}

// Plan is a purchasable subscription price, used for price labels.
type Plan struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	AmountCents int64  `json:"amount_cents"`
	Currency    string `json:"currency"`
	Interval    string `json:"interval"`
}

type CreateCheckoutParams struct {
	CustomerID string
	UserID     int
}

// Provider is the billing backend. The service treats it as a black
// box returning {status, subscriptionId, customerId}-shaped data; the
// production implementation wraps Stripe.
type Provider interface {
	CreateCustomer(ctx context.Context, name, email string) (string, error)
	CreateCheckoutSession(ctx context.Context, params CreateCheckoutParams) (*CheckoutSession, error)
	GetCheckoutSession(ctx context.Context, id string) (*CheckoutSession, error)
	GetSubscription(ctx context.Context, id string) (*SubscriptionInfo, error)
	ListPlans(ctx context.Context) ([]Plan, error)
}
