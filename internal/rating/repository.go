package rating

import (
	"context"

	"github.com/jmoiron/sqlx"
)

type Repository interface {
	Upsert(ctx context.Context, programID, userID, stars int) (*Rating, error)
	Summary(ctx context.Context, programID int) (float64, int, error)
}

type SQLRepository struct {
	db *sqlx.DB
}

func NewRepository(database *sqlx.DB) *SQLRepository {
	return &SQLRepository{db: database}
}

// Upsert sets the user's rating for the program, replacing any earlier
// one. One row per user and program.
func (r *SQLRepository) Upsert(ctx context.Context, programID, userID, stars int) (*Rating, error) {
	rating := &Rating{}
	err := r.db.QueryRowxContext(ctx, `
		INSERT INTO ratings (program_id, user_id, stars)
		VALUES ($1, $2, $3)
		ON CONFLICT (program_id, user_id) DO UPDATE SET stars = $3, updated_at = now()
		RETURNING id, program_id, user_id, stars, created_at, updated_at
	`, programID, userID, stars).StructScan(rating)

	return rating, err
}

// Summary returns the average stars and rating count for a program.
// Zero values with no error mean nobody has rated yet.
func (r *SQLRepository) Summary(ctx context.Context, programID int) (float64, int, error) {
	var row struct {
		Avg   float64 `db:"avg"`
		Count int     `db:"count"`
	}
	err := r.db.GetContext(ctx, &row, `
		SELECT COALESCE(AVG(stars), 0) AS avg, COUNT(*) AS count
		FROM ratings
		WHERE program_id = $1
	`, programID)
	return row.Avg, row.Count, err
}
