package user

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fitcourse/internal/audit"
	"fitcourse/internal/auth"
)

type fakeRepo struct {
	Repository
	usersByID    map[int]*User
	usersByEmail map[string]*User
	nextID       int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		usersByID:    map[int]*User{},
		usersByEmail: map[string]*User{},
		nextID:       1,
	}
}

func (f *fakeRepo) Create(ctx context.Context, name, email, passwordHash, role string) (*User, error) {
	u := &User{
		ID:           f.nextID,
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
		Role:         role,
		CreatedAt:    time.Now(),
	}
	f.nextID++
	f.usersByID[u.ID] = u
	f.usersByEmail[u.Email] = u
	return u, nil
}

func (f *fakeRepo) FindByEmail(ctx context.Context, email string) (*User, error) {
	u, ok := f.usersByEmail[email]
	if !ok {
		return nil, ErrUserNotFound
	}
	return u, nil
}

func (f *fakeRepo) FindByID(ctx context.Context, id int) (*User, error) {
	u, ok := f.usersByID[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	// Return a snapshot, like a real repository would; later in-place
	// updates to the stored user must not alias earlier reads.
	copied := *u
	return &copied, nil
}

func (f *fakeRepo) EmailExists(ctx context.Context, email string) (bool, error) {
	_, ok := f.usersByEmail[email]
	return ok, nil
}

func (f *fakeRepo) UpdateRole(ctx context.Context, id int, role string) (*User, error) {
	u, ok := f.usersByID[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	u.Role = role
	return u, nil
}

const testSecret = "test-secret"

func TestRegisterAndLogin(t *testing.T) {
	svc := NewService(newFakeRepo(), nil, testSecret)

	user, accessToken, refreshToken, err := svc.Register(context.Background(), RegisterRequest{
		Name: "Lena", Email: "lena@example.com", Password: "correct-horse",
	})
	require.NoError(t, err)
	assert.Equal(t, "member", user.Role)
	assert.NotEmpty(t, accessToken)
	assert.NotEmpty(t, refreshToken)

	// The stored hash must verify, not equal the password.
	assert.NotEqual(t, "correct-horse", user.PasswordHash)

	loggedIn, token, _, err := svc.Login(context.Background(), LoginRequest{
		Email: "lena@example.com", Password: "correct-horse",
	})
	require.NoError(t, err)
	assert.Equal(t, user.ID, loggedIn.ID)

	claims, err := auth.ValidateToken(token, testSecret)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, "member", claims.Role)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc := NewService(newFakeRepo(), nil, testSecret)

	_, _, _, err := svc.Register(context.Background(), RegisterRequest{
		Name: "Lena", Email: "lena@example.com", Password: "correct-horse",
	})
	require.NoError(t, err)

	_, _, _, err = svc.Register(context.Background(), RegisterRequest{
		Name: "Other", Email: "lena@example.com", Password: "something-else",
	})
	assert.ErrorIs(t, err, ErrEmailExists)
}

func TestLoginWrongPassword(t *testing.T) {
	svc := NewService(newFakeRepo(), nil, testSecret)

	_, _, _, err := svc.Register(context.Background(), RegisterRequest{
		Name: "Lena", Email: "lena@example.com", Password: "correct-horse",
	})
	require.NoError(t, err)

	_, _, _, err = svc.Login(context.Background(), LoginRequest{
		Email: "lena@example.com", Password: "wrong",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginUnknownEmail(t *testing.T) {
	svc := NewService(newFakeRepo(), nil, testSecret)

	_, _, _, err := svc.Login(context.Background(), LoginRequest{
		Email: "nobody@example.com", Password: "whatever",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRefreshTokenPicksUpRoleChange(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, nil, testSecret)

	user, _, refreshToken, err := svc.Register(context.Background(), RegisterRequest{
		Name: "Lena", Email: "lena@example.com", Password: "correct-horse",
	})
	require.NoError(t, err)

	// Promote after the refresh token was issued.
	repo.usersByID[user.ID].Role = "trainer"

	newAccess, _, err := svc.RefreshToken(context.Background(), refreshToken)
	require.NoError(t, err)

	claims, err := auth.ValidateToken(newAccess, testSecret)
	require.NoError(t, err)
	assert.Equal(t, "trainer", claims.Role)
}

func TestChangeRoleWritesAuditEntry(t *testing.T) {
	auditLog := audit.NewLog(filepath.Join(t.TempDir(), "audit.ndjson"))
	repo := newFakeRepo()
	svc := NewService(repo, auditLog, testSecret)

	user, _, _, err := svc.Register(context.Background(), RegisterRequest{
		Name: "Lena", Email: "lena@example.com", Password: "correct-horse",
	})
	require.NoError(t, err)

	updated, err := svc.ChangeRole(context.Background(), 1, "admin@example.com", user.ID, "trainer")
	require.NoError(t, err)
	assert.Equal(t, "trainer", updated.Role)

	entries, err := auditLog.Tail(10)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, audit.ActionChangeRole, entries[0].Action)
	assert.Equal(t, user.ID, entries[0].TargetUserID)
	assert.Equal(t, "member -> trainer", entries[0].Detail)
}

func TestChangeRoleUnknownUser(t *testing.T) {
	svc := NewService(newFakeRepo(), nil, testSecret)

	_, err := svc.ChangeRole(context.Background(), 1, "admin@example.com", 42, "trainer")
	assert.ErrorIs(t, err, ErrUserNotFound)
}
