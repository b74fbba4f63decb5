package billing

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fitcourse/internal/access"
	"fitcourse/internal/audit"
	"fitcourse/internal/logger"
	"fitcourse/internal/user"
)

func TestMain(m *testing.M) {
	logger.Init()
	os.Exit(m.Run())
}

// fakeProvider serves canned checkout sessions keyed by session id.
type fakeProvider struct {
	sessions      map[string]*CheckoutSession
	subscriptions map[string]*SubscriptionInfo
	plans         []Plan
	plansErr      error
	customerCalls int
}

func (f *fakeProvider) CreateCustomer(ctx context.Context, name, email string) (string, error) {
	f.customerCalls++
	return "cus_new", nil
}

func (f *fakeProvider) CreateCheckoutSession(ctx context.Context, cp CreateCheckoutParams) (*CheckoutSession, error) {
	return &CheckoutSession{ID: "cs_created", URL: "https://checkout.example/cs_created"}, nil
}

func (f *fakeProvider) GetCheckoutSession(ctx context.Context, id string) (*CheckoutSession, error) {
	cs, ok := f.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	return cs, nil
}

func (f *fakeProvider) GetSubscription(ctx context.Context, id string) (*SubscriptionInfo, error) {
	info, ok := f.subscriptions[id]
	if !ok {
		return nil, ErrNotFound
	}
	return info, nil
}

func (f *fakeProvider) ListPlans(ctx context.Context) ([]Plan, error) {
	return f.plans, f.plansErr
}

// fakeUserRepo keeps users in memory so idempotency shows up as state.
type fakeUserRepo struct {
	user.Repository
	users map[int]*user.User
}

func (f *fakeUserRepo) FindByID(ctx context.Context, id int) (*user.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, user.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUserRepo) SetStripeCustomerID(ctx context.Context, id int, customerID string) error {
	f.users[id].StripeCustomerID = &customerID
	return nil
}

func (f *fakeUserRepo) UpdateSubscription(ctx context.Context, id int, subscriptionID, status string, start time.Time) error {
	u, ok := f.users[id]
	if !ok {
		return user.ErrUserNotFound
	}
	u.SubscriptionID = &subscriptionID
	u.SubscriptionStatus = &status
	u.SubscriptionStart = &start
	return nil
}

func (f *fakeUserRepo) ClearSubscription(ctx context.Context, id int) error {
	u, ok := f.users[id]
	if !ok {
		return user.ErrUserNotFound
	}
	u.SubscriptionID = nil
	u.SubscriptionStatus = nil
	u.SubscriptionStart = nil
	return nil
}

type fakePayments struct {
	recorded []string
}

func (f *fakePayments) RecordCheckout(ctx context.Context, userID int, sessionID, subscriptionID string, amountCents int64, currency string) error {
	f.recorded = append(f.recorded, sessionID)
	return nil
}

func strPtr(s string) *string { return &s }

func memberUser(id int) *user.User {
	return &user.User{ID: id, Name: "Lena", Email: "lena@example.com", Role: access.RoleMember}
}

func TestConfirmMapsSessionToSubscription(t *testing.T) {
	provider := &fakeProvider{
		sessions: map[string]*CheckoutSession{
			"cs_123": {
				ID:                 "cs_123",
				CustomerID:         "cus_1",
				ClientReferenceID:  "7",
				Metadata:           map[string]string{"user_id": "7"},
				SubscriptionID:     "sub_456",
				SubscriptionStatus: "active",
				AmountTotal:        1999,
				Currency:           "usd",
			},
		},
		subscriptions: map[string]*SubscriptionInfo{
			"sub_456": {ID: "sub_456", Status: "active", StartedAt: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)},
		},
	}
	repo := &fakeUserRepo{users: map[int]*user.User{7: memberUser(7)}}
	payments := &fakePayments{}
	svc := NewService(provider, repo, payments, nil, nil)

	sub, err := svc.Confirm(context.Background(), "cs_123", 7)
	require.NoError(t, err)

	assert.True(t, sub.Active)
	assert.Equal(t, "sub_456", sub.SubscriptionID)
	assert.Equal(t, "active", sub.Status)

	stored := repo.users[7]
	require.NotNil(t, stored.SubscriptionID)
	assert.Equal(t, "sub_456", *stored.SubscriptionID)
	assert.Equal(t, "active", *stored.SubscriptionStatus)
	assert.Equal(t, []string{"cs_123"}, payments.recorded)
}

func TestConfirmIsIdempotent(t *testing.T) {
	provider := &fakeProvider{
		sessions: map[string]*CheckoutSession{
			"cs_123": {
				ID:                 "cs_123",
				Metadata:           map[string]string{"user_id": "7"},
				SubscriptionID:     "sub_456",
				SubscriptionStatus: "active",
			},
		},
		subscriptions: map[string]*SubscriptionInfo{
			"sub_456": {ID: "sub_456", Status: "active", StartedAt: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)},
		},
	}
	repo := &fakeUserRepo{users: map[int]*user.User{7: memberUser(7)}}
	svc := NewService(provider, repo, nil, nil, nil)

	first, err := svc.Confirm(context.Background(), "cs_123", 7)
	require.NoError(t, err)
	second, err := svc.Confirm(context.Background(), "cs_123", 7)
	require.NoError(t, err)

	assert.Equal(t, first.SubscriptionID, second.SubscriptionID)
	assert.Equal(t, first.Status, second.Status)
	assert.Equal(t, "sub_456", *repo.users[7].SubscriptionID)
}

func TestConfirmNotCompletedLeavesUserUntouched(t *testing.T) {
	provider := &fakeProvider{
		sessions: map[string]*CheckoutSession{
			"cs_open": {
				ID:       "cs_open",
				Metadata: map[string]string{"user_id": "7"},
				// No subscription yet: the user abandoned checkout.
			},
		},
	}
	repo := &fakeUserRepo{users: map[int]*user.User{7: memberUser(7)}}
	payments := &fakePayments{}
	svc := NewService(provider, repo, payments, nil, nil)

	_, err := svc.Confirm(context.Background(), "cs_open", 7)
	require.ErrorIs(t, err, ErrNotCompleted)

	assert.Nil(t, repo.users[7].SubscriptionID)
	assert.Nil(t, repo.users[7].SubscriptionStatus)
	assert.Empty(t, payments.recorded)
}

func TestConfirmForeignSessionReportsNotFound(t *testing.T) {
	provider := &fakeProvider{
		sessions: map[string]*CheckoutSession{
			"cs_other": {
				ID:             "cs_other",
				CustomerID:     "cus_other",
				Metadata:       map[string]string{"user_id": "99"},
				SubscriptionID: "sub_other",
			},
		},
	}
	repo := &fakeUserRepo{users: map[int]*user.User{7: memberUser(7)}}
	svc := NewService(provider, repo, nil, nil, nil)

	_, err := svc.Confirm(context.Background(), "cs_other", 7)
	require.ErrorIs(t, err, ErrNotFound)
	assert.Nil(t, repo.users[7].SubscriptionID)
}

func TestConfirmUnknownSession(t *testing.T) {
	provider := &fakeProvider{sessions: map[string]*CheckoutSession{}}
	repo := &fakeUserRepo{users: map[int]*user.User{7: memberUser(7)}}
	svc := NewService(provider, repo, nil, nil, nil)

	_, err := svc.Confirm(context.Background(), "cs_missing", 7)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestGrantWritesAuditEntry(t *testing.T) {
	auditLog := audit.NewLog(filepath.Join(t.TempDir(), "audit.ndjson"))
	repo := &fakeUserRepo{users: map[int]*user.User{7: memberUser(7)}}
	svc := NewService(&fakeProvider{}, repo, nil, auditLog, nil)

	admin := &access.Session{UserID: 1, Email: "admin@example.com", Role: access.RoleAdmin}
	sub, err := svc.Grant(context.Background(), 7, admin)
	require.NoError(t, err)

	assert.True(t, sub.Active)
	assert.Equal(t, access.StatusActive, *repo.users[7].SubscriptionStatus)

	entries, err := auditLog.Tail(10)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, audit.ActionGrantSubscription, entries[0].Action)
	assert.Equal(t, 1, entries[0].AdminID)
	assert.Equal(t, 7, entries[0].TargetUserID)
}

func TestGrantPreservesExistingSubscriptionID(t *testing.T) {
	u := memberUser(7)
	u.SubscriptionID = strPtr("sub_existing")
	u.SubscriptionStatus = strPtr("canceled")
	repo := &fakeUserRepo{users: map[int]*user.User{7: u}}
	svc := NewService(&fakeProvider{}, repo, nil, nil, nil)

	admin := &access.Session{UserID: 1, Email: "admin@example.com", Role: access.RoleAdmin}
	sub, err := svc.Grant(context.Background(), 7, admin)
	require.NoError(t, err)

	assert.Equal(t, "sub_existing", sub.SubscriptionID)
	assert.Equal(t, access.StatusActive, *repo.users[7].SubscriptionStatus)
}

func TestRevokeClearsSubscription(t *testing.T) {
	auditLog := audit.NewLog(filepath.Join(t.TempDir(), "audit.ndjson"))
	u := memberUser(7)
	u.SubscriptionID = strPtr("sub_456")
	u.SubscriptionStatus = strPtr("active")
	repo := &fakeUserRepo{users: map[int]*user.User{7: u}}
	svc := NewService(&fakeProvider{}, repo, nil, auditLog, nil)

	admin := &access.Session{UserID: 1, Email: "admin@example.com", Role: access.RoleAdmin}
	require.NoError(t, svc.Revoke(context.Background(), 7, admin))

	assert.Nil(t, repo.users[7].SubscriptionID)
	assert.Nil(t, repo.users[7].SubscriptionStatus)

	entries, err := auditLog.Tail(10)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, audit.ActionRevokeSubscription, entries[0].Action)
	assert.Equal(t, "sub_456", entries[0].SubscriptionID)
}

func TestGrantUnknownUser(t *testing.T) {
	repo := &fakeUserRepo{users: map[int]*user.User{}}
	svc := NewService(&fakeProvider{}, repo, nil, nil, nil)

	admin := &access.Session{UserID: 1, Role: access.RoleAdmin}
	_, err := svc.Grant(context.Background(), 42, admin)
	assert.ErrorIs(t, err, user.ErrUserNotFound)
}

func TestCreateCheckoutReusesCustomer(t *testing.T) {
	provider := &fakeProvider{}
	u := memberUser(7)
	u.StripeCustomerID = strPtr("cus_existing")
	repo := &fakeUserRepo{users: map[int]*user.User{7: u}}
	svc := NewService(provider, repo, nil, nil, nil)

	url, err := svc.CreateCheckout(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, "https://checkout.example/cs_created", url)
	assert.Equal(t, 0, provider.customerCalls)
}

func TestCreateCheckoutCreatesCustomerOnce(t *testing.T) {
	provider := &fakeProvider{}
	repo := &fakeUserRepo{users: map[int]*user.User{7: memberUser(7)}}
	svc := NewService(provider, repo, nil, nil, nil)

	_, err := svc.CreateCheckout(context.Background(), 7)
	require.NoError(t, err)
	_, err = svc.CreateCheckout(context.Background(), 7)
	require.NoError(t, err)

	assert.Equal(t, 1, provider.customerCalls)
	assert.Equal(t, "cus_new", *repo.users[7].StripeCustomerID)
}

func TestPlansFallBackWhenProviderFails(t *testing.T) {
	provider := &fakeProvider{plansErr: errors.New("stripe down")}
	svc := NewService(provider, &fakeUserRepo{users: map[int]*user.User{}}, nil, nil, nil)

	plans := svc.Plans(context.Background())
	require.NotEmpty(t, plans)
	assert.Equal(t, "monthly", plans[0].ID)
}

func TestPlansFromProvider(t *testing.T) {
	provider := &fakeProvider{plans: []Plan{{ID: "price_1", Name: "Yearly", Interval: "year"}}}
	svc := NewService(provider, &fakeUserRepo{users: map[int]*user.User{}}, nil, nil, nil)

	plans := svc.Plans(context.Background())
	require.Len(t, plans, 1)
	assert.Equal(t, "price_1", plans[0].ID)
}
