package payment

import "context"

type Repository interface {
	RecordCheckout(ctx context.Context, userID int, sessionID, subscriptionID string, amountCents int64, currency string) error
	ListByUser(ctx context.Context, userID int) ([]Payment, error)
	ListAll(ctx context.Context, limit, offset int) ([]Payment, error)
}
