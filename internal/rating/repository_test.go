package rating

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
)

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

func TestUpsert(t *testing.T) {
	repo, mock, close := setupMock(t)
	defer close()

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "program_id", "user_id", "stars", "created_at", "updated_at"}).
		AddRow(1, 3, 7, 4, now, now)

	mock.ExpectQuery("INSERT INTO ratings").
		WithArgs(3, 7, 4).
		WillReturnRows(rows)

	rating, err := repo.Upsert(context.Background(), 3, 7, 4)
	require.NoError(t, err)
	require.Equal(t, 4, rating.Stars)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSummary(t *testing.T) {
	repo, mock, close := setupMock(t)
	defer close()

	mock.ExpectQuery("SELECT (.+) FROM ratings").
		WithArgs(3).
		WillReturnRows(sqlmock.NewRows([]string{"avg", "count"}).AddRow(4.25, 8))

	avg, count, err := repo.Summary(context.Background(), 3)
	require.NoError(t, err)
	require.Equal(t, 4.25, avg)
	require.Equal(t, 8, count)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSummaryNoRatings(t *testing.T) {
	repo, mock, close := setupMock(t)
	defer close()

	mock.ExpectQuery("SELECT (.+) FROM ratings").
		WithArgs(3).
		WillReturnRows(sqlmock.NewRows([]string{"avg", "count"}).AddRow(0.0, 0))

	avg, count, err := repo.Summary(context.Background(), 3)
	require.NoError(t, err)
	require.Zero(t, avg)
	require.Zero(t, count)
	require.NoError(t, mock.ExpectationsWereMet())
}
