package nutrition

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
)

const entryColumns = "id, user_id, entry_date, meal, calories, protein_g, carbs_g, fat_g, created_at"

type SQLRepository struct {
	db *sqlx.DB
}

func NewRepository(database *sqlx.DB) *SQLRepository {
	return &SQLRepository{db: database}
}

func (r *SQLRepository) Create(ctx context.Context, userID int, date time.Time, req CreateEntryRequest) (*Entry, error) {
	e := &Entry{}
	err := r.db.QueryRowxContext(ctx, `
		INSERT INTO nutrition_entries (user_id, entry_date, meal, calories, protein_g, carbs_g, fat_g)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING `+entryColumns+`
	`, userID, date, req.Meal, req.Calories, req.ProteinG, req.CarbsG, req.FatG).StructScan(e)

	return e, err
}

func (r *SQLRepository) ListByDate(ctx context.Context, userID int, date time.Time) ([]Entry, error) {
	entries := []Entry{}
	err := r.db.SelectContext(ctx, &entries, `
		SELECT `+entryColumns+`
		FROM nutrition_entries
		WHERE user_id = $1 AND entry_date = $2
		ORDER BY created_at
	`, userID, date)
	return entries, err
}

func (r *SQLRepository) TotalsByDate(ctx context.Context, userID int, date time.Time) (*Totals, error) {
	t := &Totals{}
	err := r.db.GetContext(ctx, t, `
		SELECT
			COALESCE(SUM(calories), 0)  AS calories,
			COALESCE(SUM(protein_g), 0) AS protein_g,
			COALESCE(SUM(carbs_g), 0)   AS carbs_g,
			COALESCE(SUM(fat_g), 0)     AS fat_g
		FROM nutrition_entries
		WHERE user_id = $1 AND entry_date = $2
	`, userID, date)
	return t, err
}

func (r *SQLRepository) EntryDays(ctx context.Context, userID int, since time.Time) ([]time.Time, error) {
	days := []time.Time{}
	err := r.db.SelectContext(ctx, &days, `
		SELECT DISTINCT entry_date
		FROM nutrition_entries
		WHERE user_id = $1 AND entry_date >= $2
	`, userID, since)
	return days, err
}
