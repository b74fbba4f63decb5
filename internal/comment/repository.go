package comment

import (
	"context"

	"github.com/jmoiron/sqlx"
)

type Repository interface {
	Create(ctx context.Context, programID, userID int, body string) (*Comment, error)
	ListByProgram(ctx context.Context, programID int, limit, offset int) ([]Comment, error)
}

type SQLRepository struct {
	db *sqlx.DB
}

func NewRepository(database *sqlx.DB) *SQLRepository {
	return &SQLRepository{db: database}
}

func (r *SQLRepository) Create(ctx context.Context, programID, userID int, body string) (*Comment, error) {
	c := &Comment{}
	err := r.db.QueryRowxContext(ctx, `
		INSERT INTO comments (program_id, user_id, body)
		VALUES ($1, $2, $3)
		RETURNING id, program_id, user_id,
			(SELECT name FROM users WHERE id = $2) AS author_name,
			body, created_at
	`, programID, userID, body).StructScan(c)

	return c, err
}

func (r *SQLRepository) ListByProgram(ctx context.Context, programID int, limit, offset int) ([]Comment, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}

	comments := []Comment{}
	err := r.db.SelectContext(ctx, &comments, `
		SELECT c.id, c.program_id, c.user_id, u.name AS author_name, c.body, c.created_at
		FROM comments c
		JOIN users u ON u.id = c.user_id
		WHERE c.program_id = $1
		ORDER BY c.created_at DESC
		LIMIT $2 OFFSET $3
	`, programID, limit, offset)
	return comments, err
}
