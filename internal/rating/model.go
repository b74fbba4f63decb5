package rating

import "time"

type Rating struct {
	ID        int       `db:"id" json:"id"`
	ProgramID int       `db:"program_id" json:"program_id"`
	UserID    int       `db:"user_id" json:"user_id"`
	Stars     int       `db:"stars" json:"stars"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

type RateRequest struct {
	Stars int `json:"stars" binding:"required,min=1,max=5"`
}
