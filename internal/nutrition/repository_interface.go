package nutrition

import (
	"context"
	"time"
)

type Repository interface {
	Create(ctx context.Context, userID int, date time.Time, req CreateEntryRequest) (*Entry, error)
	ListByDate(ctx context.Context, userID int, date time.Time) ([]Entry, error)
	TotalsByDate(ctx context.Context, userID int, date time.Time) (*Totals, error)
	EntryDays(ctx context.Context, userID int, since time.Time) ([]time.Time, error)
}
