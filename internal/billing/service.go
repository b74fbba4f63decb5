package billing

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"fitcourse/internal/access"
	"fitcourse/internal/audit"
	"fitcourse/internal/email"
	"fitcourse/internal/logger"
	"fitcourse/internal/metrics"
	"fitcourse/internal/user"
)

// PaymentRecorder persists completed checkout payments. Recording the same
// checkout session twice must be a no-op.
type PaymentRecorder interface {
	RecordCheckout(ctx context.Context, userID int, sessionID, subscriptionID string, amountCents int64, currency string) error
}

const providerTimeout = 5 * time.Second

// Subscription is the view returned to a member asking about their own plan.
type Subscription struct {
	Active         bool       `json:"active"`
	SubscriptionID string     `json:"subscription_id,omitempty"`
	Status         string     `json:"status,omitempty"`
	StartedAt      *time.Time `json:"started_at,omitempty"`
}

type Service struct {
	provider Provider
	users    user.Repository
	payments PaymentRecorder
	auditLog *audit.Log
	email    *email.Service
}

func NewService(provider Provider, users user.Repository, payments PaymentRecorder, auditLog *audit.Log, emailSvc *email.Service) *Service {
	return &Service{
		provider: provider,
		users:    users,
		payments: payments,
		auditLog: auditLog,
		email:    emailSvc,
	}
}

// CreateCheckout starts a checkout session for the user and returns the URL
// to redirect them to. The Stripe customer is created on first use and reused
// afterwards.
func (s *Service) CreateCheckout(ctx context.Context, userID int) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, providerTimeout)
	defer cancel()

	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return "", err
	}

	customerID := u.StripeCustomerIDString()
	if customerID == "" {
		customerID, err = s.provider.CreateCustomer(ctx, u.Name, u.Email)
		if err != nil {
			return "", err
		}
		if err := s.users.SetStripeCustomerID(ctx, u.ID, customerID); err != nil {
			return "", err
		}
	}

	cs, err := s.provider.CreateCheckoutSession(ctx, CreateCheckoutParams{
		CustomerID: customerID,
		UserID:     u.ID,
	})
	if err != nil {
		return "", err
	}

	return cs.URL, nil
}

// Confirm reconciles a finished checkout session with the user record. It is
// idempotent: confirming the same session again re-applies the same state.
// The session must belong to the calling user, otherwise ErrNotFound is
// returned so callers cannot probe other users' sessions.
func (s *Service) Confirm(ctx context.Context, sessionID string, userID int) (*Subscription, error) {
	ctx, cancel := context.WithTimeout(ctx, providerTimeout)
	defer cancel()

	cs, err := s.provider.GetCheckoutSession(ctx, sessionID)
	if err != nil {
		metrics.RecordConfirmation("error")
		return nil, err
	}

	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		metrics.RecordConfirmation("error")
		return nil, err
	}

	if !sessionBelongsTo(cs, u) {
		metrics.RecordConfirmation("foreign_session")
		return nil, fmt.Errorf("session %s: %w", sessionID, ErrNotFound)
	}

	if cs.SubscriptionID == "" {
		metrics.RecordConfirmation("not_completed")
		return nil, fmt.Errorf("session %s has no subscription: %w", sessionID, ErrNotCompleted)
	}

	status := cs.SubscriptionStatus
	startedAt := time.Now().UTC()
	if info, err := s.provider.GetSubscription(ctx, cs.SubscriptionID); err == nil {
		status = info.Status
		startedAt = info.StartedAt
	} else if !errors.Is(err, ErrNotFound) && status == "" {
		metrics.RecordConfirmation("error")
		return nil, err
	}
	if status == "" {
		status = access.StatusActive
	}

	if err := s.users.UpdateSubscription(ctx, u.ID, cs.SubscriptionID, status, startedAt); err != nil {
		metrics.RecordConfirmation("error")
		return nil, err
	}

	if s.payments != nil {
		if err := s.payments.RecordCheckout(ctx, u.ID, cs.ID, cs.SubscriptionID, cs.AmountTotal, cs.Currency); err != nil {
			logger.Error("failed to record payment", logger.Err(err), "session_id", cs.ID)
		}
	}

	if s.email != nil {
		if err := s.email.SendSubscriptionConfirmed(ctx, u.Email, u.Name, cs.SubscriptionID); err != nil {
			logger.Error("failed to queue confirmation email", logger.Err(err))
		}
	}

	metrics.RecordConfirmation("confirmed")
	logger.Info("subscription confirmed", "user_id", u.ID, "subscription_id", cs.SubscriptionID, "status", status)

	return &Subscription{
		Active:         true,
		SubscriptionID: cs.SubscriptionID,
		Status:         status,
		StartedAt:      &startedAt,
	}, nil
}

func sessionBelongsTo(cs *CheckoutSession, u *user.User) bool {
	if id, ok := cs.Metadata["user_id"]; ok && id == strconv.Itoa(u.ID) {
		return true
	}
	if cs.ClientReferenceID != "" && cs.ClientReferenceID == strconv.Itoa(u.ID) {
		return true
	}
	if cs.CustomerID != "" && cs.CustomerID == u.StripeCustomerIDString() {
		return true
	}
	return false
}

// Grant activates a subscription for a user without payment. If the user
// already has a subscription id it is preserved, only the status is forced
// active. The action is written to the audit log.
func (s *Service) Grant(ctx context.Context, targetUserID int, admin *access.Session) (*Subscription, error) {
	u, err := s.users.FindByID(ctx, targetUserID)
	if err != nil {
		return nil, err
	}

	subscriptionID := u.SubscriptionIDString()
	startedAt := time.Now().UTC()
	if u.SubscriptionStart != nil {
		startedAt = *u.SubscriptionStart
	}

	if err := s.users.UpdateSubscription(ctx, u.ID, subscriptionID, access.StatusActive, startedAt); err != nil {
		return nil, err
	}

	s.auditEntry(audit.Entry{
		Action:         audit.ActionGrantSubscription,
		AdminID:        admin.UserID,
		AdminEmail:     admin.Email,
		TargetUserID:   u.ID,
		SubscriptionID: subscriptionID,
	})
	metrics.RecordAdminSubscriptionAction("grant")
	logger.Info("subscription granted", "admin_id", admin.UserID, "user_id", u.ID)

	return &Subscription{
		Active:         true,
		SubscriptionID: subscriptionID,
		Status:         access.StatusActive,
		StartedAt:      &startedAt,
	}, nil
}

// Revoke clears the user's subscription fields. Enrollments are untouched.
func (s *Service) Revoke(ctx context.Context, targetUserID int, admin *access.Session) error {
	u, err := s.users.FindByID(ctx, targetUserID)
	if err != nil {
		return err
	}

	if err := s.users.ClearSubscription(ctx, u.ID); err != nil {
		return err
	}

	s.auditEntry(audit.Entry{
		Action:         audit.ActionRevokeSubscription,
		AdminID:        admin.UserID,
		AdminEmail:     admin.Email,
		TargetUserID:   u.ID,
		SubscriptionID: u.SubscriptionIDString(),
	})
	metrics.RecordAdminSubscriptionAction("revoke")
	logger.Info("subscription revoked", "admin_id", admin.UserID, "user_id", u.ID)

	return nil
}

func (s *Service) auditEntry(e audit.Entry) {
	if s.auditLog == nil {
		return
	}
	if err := s.auditLog.Append(e); err != nil {
		logger.Error("failed to append audit entry", logger.Err(err), "action", e.Action)
	}
}

// MySubscription reports the caller's current subscription state from the
// database record.
func (s *Service) MySubscription(ctx context.Context, userID int) (*Subscription, error) {
	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &Subscription{
		Active:         access.HasActiveSubscription(u.SubscriptionStatusString(), u.SubscriptionIDString()),
		SubscriptionID: u.SubscriptionIDString(),
		Status:         u.SubscriptionStatusString(),
		StartedAt:      u.SubscriptionStart,
	}, nil
}

var fallbackPlans = []Plan{
	{
		ID:          "monthly",
		Name:        "Monthly",
		Description: "Full access to every published program",
		AmountCents: 1999,
		Currency:    "usd",
		Interval:    "month",
	},
}

// Plans lists the purchasable plans. When the provider is unreachable a
// static fallback keeps the pricing page rendering.
func (s *Service) Plans(ctx context.Context) []Plan {
	ctx, cancel := context.WithTimeout(ctx, providerTimeout)
	defer cancel()

	plans, err := s.provider.ListPlans(ctx)
	if err != nil || len(plans) == 0 {
		if err != nil {
			logger.Warn("falling back to static plans", logger.Err(err))
		}
		return fallbackPlans
	}
	return plans
}
