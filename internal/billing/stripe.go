package billing

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/stripe/stripe-go/v78"
	"github.com/stripe/stripe-go/v78/checkout/session"
	"github.com/stripe/stripe-go/v78/customer"
	"github.com/stripe/stripe-go/v78/price"
	"github.com/stripe/stripe-go/v78/subscription"
)

// StripeProvider implements Provider against the Stripe API.
type StripeProvider struct {
	priceID    string
	successURL string
	cancelURL  string
}

func NewStripeProvider(secretKey, priceID, successURL, cancelURL string) *StripeProvider {
	stripe.Key = secretKey
	return &StripeProvider{
		priceID:    priceID,
		successURL: successURL,
		cancelURL:  cancelURL,
	}
}

func mapStripeError(err error) error {
	var stripeErr *stripe.Error
	if errors.As(err, &stripeErr) {
		if stripeErr.Code == stripe.ErrorCodeResourceMissing || stripeErr.HTTPStatusCode == http.StatusNotFound {
			return ErrNotFound
		}
	}
	return fmt.Errorf("%w: %v", ErrTransient, err)
}

func (p *StripeProvider) CreateCustomer(ctx context.Context, name, email string) (string, error) {
	params := &stripe.CustomerParams{
		Name:  stripe.String(name),
		Email: stripe.String(email),
	}
	params.Context = ctx

	c, err := customer.New(params)
	if err != nil {
		return "", mapStripeError(err)
	}

	return c.ID, nil
}

func (p *StripeProvider) CreateCheckoutSession(ctx context.Context, cp CreateCheckoutParams) (*CheckoutSession, error) {
	params := &stripe.CheckoutSessionParams{
		Customer:          stripe.String(cp.CustomerID),
		ClientReferenceID: stripe.String(strconv.Itoa(cp.UserID)),
		Mode:              stripe.String(string(stripe.CheckoutSessionModeSubscription)),
		SuccessURL:        stripe.String(p.successURL),
		CancelURL:         stripe.String(p.cancelURL),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				Price:    stripe.String(p.priceID),
				Quantity: stripe.Int64(1),
			},
		},
	}
	params.Context = ctx
	// The user id travels in metadata so confirmation can verify the
	// session belongs to the caller.
	params.AddMetadata("user_id", strconv.Itoa(cp.UserID))

	s, err := session.New(params)
	if err != nil {
		return nil, mapStripeError(err)
	}

	return fromStripeSession(s), nil
}

func (p *StripeProvider) GetCheckoutSession(ctx context.Context, id string) (*CheckoutSession, error) {
	params := &stripe.CheckoutSessionParams{}
	params.Context = ctx
	params.AddExpand("subscription")
	params.AddExpand("customer")

	s, err := session.Get(id, params)
	if err != nil {
		return nil, mapStripeError(err)
	}

	return fromStripeSession(s), nil
}

func fromStripeSession(s *stripe.CheckoutSession) *CheckoutSession {
	cs := &CheckoutSession{
		ID:                s.ID,
		ClientReferenceID: s.ClientReferenceID,
		Metadata:          s.Metadata,
		AmountTotal:       s.AmountTotal,
		Currency:          string(s.Currency),
		URL:               s.URL,
	}
	if s.Customer != nil {
		cs.CustomerID = s.Customer.ID
	}
	if s.Subscription != nil {
		cs.SubscriptionID = s.Subscription.ID
		cs.SubscriptionStatus = string(s.Subscription.Status)
	}
	return cs
}

func (p *StripeProvider) GetSubscription(ctx context.Context, id string) (*SubscriptionInfo, error) {
	params := &stripe.SubscriptionParams{}
	params.Context = ctx

	sub, err := subscription.Get(id, params)
	if err != nil {
		return nil, mapStripeError(err)
	}

	info := &SubscriptionInfo{
		ID:        sub.ID,
		Status:    string(sub.Status),
		StartedAt: time.Unix(sub.StartDate, 0),
	}
	if sub.Customer != nil {
		info.CustomerID = sub.Customer.ID
	}
	return info, nil
}

func (p *StripeProvider) ListPlans(ctx context.Context) ([]Plan, error) {
	params := &stripe.PriceListParams{
		Active: stripe.Bool(true),
	}
	params.Context = ctx
	params.AddExpand("data.product")

	plans := []Plan{}
	iter := price.List(params)
	for iter.Next() {
		pr := iter.Price()
		if pr.Recurring == nil {
			continue
		}

		plan := Plan{
			ID:          pr.ID,
			Name:        pr.Nickname,
			AmountCents: pr.UnitAmount,
			Currency:    string(pr.Currency),
			Interval:    string(pr.Recurring.Interval),
		}
		if pr.Product != nil {
			if plan.Name == "" {
				plan.Name = pr.Product.Name
			}
			plan.Description = pr.Product.Description
		}
		plans = append(plans, plan)
	}
	if err := iter.Err(); err != nil {
		return nil, mapStripeError(err)
	}

	return plans, nil
}
