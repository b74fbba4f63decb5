package user

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
)

var userRows = []string{
	"id", "name", "email", "password_hash", "role",
	"stripe_customer_id", "subscription_id", "subscription_status",
	"subscription_start", "created_at",
}

func setupMock(t *testing.T) (*SQLRepository, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	sqlxDB := sqlx.NewDb(db, "sqlmock")
	repo := NewRepository(sqlxDB)

	closer := func() {
		sqlxDB.Close()
	}

	return repo, mock, closer
}

func TestCreateAndFindByID(t *testing.T) {
	repo, mock, close := setupMock(t)
	defer close()

	now := time.Now()

	mock.ExpectQuery("INSERT INTO users").
		WithArgs("Lena", "lena@example.com", "hash", "member").
		WillReturnRows(sqlmock.NewRows(userRows).
			AddRow(7, "Lena", "lena@example.com", "hash", "member", nil, nil, nil, nil, now))

	created, err := repo.Create(context.Background(), "Lena", "lena@example.com", "hash", "member")
	require.NoError(t, err)
	require.Equal(t, 7, created.ID)
	require.Nil(t, created.SubscriptionID)

	mock.ExpectQuery("SELECT (.+) FROM users WHERE id").
		WithArgs(7).
		WillReturnRows(sqlmock.NewRows(userRows).
			AddRow(7, "Lena", "lena@example.com", "hash", "member", nil, nil, nil, nil, now))

	found, err := repo.FindByID(context.Background(), 7)
	require.NoError(t, err)
	require.Equal(t, "lena@example.com", found.Email)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFindByIDNotFound(t *testing.T) {
	repo, mock, close := setupMock(t)
	defer close()

	mock.ExpectQuery("SELECT (.+) FROM users WHERE id").
		WithArgs(99).
		WillReturnRows(sqlmock.NewRows(userRows))

	_, err := repo.FindByID(context.Background(), 99)
	require.ErrorIs(t, err, ErrUserNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateSubscription(t *testing.T) {
	repo, mock, close := setupMock(t)
	defer close()

	start := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectExec("UPDATE users").
		WithArgs("sub_456", "active", start, 7).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.UpdateSubscription(context.Background(), 7, "sub_456", "active", start)
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestClearSubscription(t *testing.T) {
	repo, mock, close := setupMock(t)
	defer close()

	mock.ExpectExec("UPDATE users").
		WithArgs(7).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.ClearSubscription(context.Background(), 7)
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSubscriptionSnapshot(t *testing.T) {
	repo, mock, close := setupMock(t)
	defer close()

	mock.ExpectQuery("SELECT subscription_id, subscription_status").
		WithArgs(7).
		WillReturnRows(sqlmock.NewRows([]string{"subscription_id", "subscription_status"}).
			AddRow("sub_456", "active"))

	snapshot, err := repo.SubscriptionSnapshot(context.Background(), 7)
	require.NoError(t, err)
	require.Equal(t, "sub_456", snapshot.SubscriptionID)
	require.Equal(t, "active", snapshot.SubscriptionStatus)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSubscriptionSnapshotNulls(t *testing.T) {
	repo, mock, close := setupMock(t)
	defer close()

	mock.ExpectQuery("SELECT subscription_id, subscription_status").
		WithArgs(7).
		WillReturnRows(sqlmock.NewRows([]string{"subscription_id", "subscription_status"}).
			AddRow(nil, nil))

	snapshot, err := repo.SubscriptionSnapshot(context.Background(), 7)
	require.NoError(t, err)
	require.Empty(t, snapshot.SubscriptionID)
	require.Empty(t, snapshot.SubscriptionStatus)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestEmailExists(t *testing.T) {
	repo, mock, close := setupMock(t)
	defer close()

	mock.ExpectQuery("SELECT EXISTS").
		WithArgs("lena@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	exists, err := repo.EmailExists(context.Background(), "lena@example.com")
	require.NoError(t, err)
	require.True(t, exists)
	require.NoError(t, mock.ExpectationsWereMet())
}
