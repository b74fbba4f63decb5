package comment

import "time"

type Comment struct {
	ID         int       `db:"id" json:"id"`
	ProgramID  int       `db:"program_id" json:"program_id"`
	UserID     int       `db:"user_id" json:"user_id"`
	AuthorName string    `db:"author_name" json:"author_name"`
	Body       string    `db:"body" json:"body"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}

type CreateCommentRequest struct {
	Body string `json:"body" binding:"required,min=1,max=2000"`
}
