package nutrition

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

func TestCreateEntry(t *testing.T) {
	repo, mock, close := setupMock(t)
	defer close()

	date := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	now := time.Now()

	rows := sqlmock.NewRows([]string{"id", "user_id", "entry_date", "meal", "calories", "protein_g", "carbs_g", "fat_g", "created_at"}).
		AddRow(1, 7, date, "lunch", 650, 40, 60, 20, now)

	mock.ExpectQuery("INSERT INTO nutrition_entries").
		WithArgs(7, date, "lunch", 650, 40, 60, 20).
		WillReturnRows(rows)

	entry, err := repo.Create(context.Background(), 7, date, CreateEntryRequest{
		Date: "2025-06-01", Meal: "lunch", Calories: 650, ProteinG: 40, CarbsG: 60, FatG: 20,
	})
	require.NoError(t, err)
	require.Equal(t, 1, entry.ID)
	require.Equal(t, "lunch", entry.Meal)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTotalsByDate(t *testing.T) {
	repo, mock, close := setupMock(t)
	defer close()

	date := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery("SELECT (.+) FROM nutrition_entries").
		WithArgs(7, date).
		WillReturnRows(sqlmock.NewRows([]string{"calories", "protein_g", "carbs_g", "fat_g"}).AddRow(1800, 120, 150, 60))

	totals, err := repo.TotalsByDate(context.Background(), 7, date)
	require.NoError(t, err)
	require.Equal(t, 1800, totals.Calories)
	require.Equal(t, 120, totals.ProteinG)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTotalsByDateEmptyDay(t *testing.T) {
	repo, mock, close := setupMock(t)
	defer close()

	date := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)

	// COALESCE keeps an empty day at zeroes instead of NULL scan errors.
	mock.ExpectQuery("SELECT (.+) FROM nutrition_entries").
		WithArgs(7, date).
		WillReturnRows(sqlmock.NewRows([]string{"calories", "protein_g", "carbs_g", "fat_g"}).AddRow(0, 0, 0, 0))

	totals, err := repo.TotalsByDate(context.Background(), 7, date)
	require.NoError(t, err)
	require.Zero(t, totals.Calories)
	require.NoError(t, mock.ExpectationsWereMet())
}
