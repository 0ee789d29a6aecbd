// internal/app/system/payments/payments.go
package payments

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/paymentintent"
	"go.uber.org/zap"
)

var (
	// ErrInvalidAmount is returned for prices that are not a positive finite number.
	ErrInvalidAmount = errors.New("invalid amount")
	// ErrNotConfigured is returned when no Stripe secret key was provided.
	ErrNotConfigured = errors.New("payments not configured")
)

// IntentCreator creates a payment intent and returns its client secret.
type IntentCreator interface {
	CreateIntent(ctx context.Context, amountCents int64, currency string) (string, error)
}

// AmountInCents converts a price in major units to the smallest currency
// unit, rounding to the nearest cent.
func AmountInCents(price float64) (int64, error) {
	if math.IsNaN(price) || math.IsInf(price, 0) || price <= 0 {
		return 0, ErrInvalidAmount
	}
	cents := math.Round(price * 100)
	if cents < 1 || cents > math.MaxInt64/2 {
		return 0, ErrInvalidAmount
	}
	return int64(cents), nil
}

// Stripe creates card payment intents through the Stripe API.
type Stripe struct {
	pi  paymentintent.Client
	log *zap.Logger
}

// NewStripe returns a Stripe-backed IntentCreator for secretKey.
func NewStripe(secretKey string, logger *zap.Logger) *Stripe {
	return &Stripe{
		pi:  paymentintent.Client{B: stripe.GetBackend(stripe.APIBackend), Key: secretKey},
		log: logger,
	}
}

// CreateIntent implements IntentCreator.
func (s *Stripe) CreateIntent(ctx context.Context, amountCents int64, currency string) (string, error) {
	if s.pi.Key == "" {
		return "", ErrNotConfigured
	}
	if amountCents < 1 {
		return "", ErrInvalidAmount
	}
	currency = strings.ToLower(strings.TrimSpace(currency))
	if currency == "" {
		currency = string(stripe.CurrencyUSD)
	}

	params := &stripe.PaymentIntentParams{
		Amount:             stripe.Int64(amountCents),
		Currency:           stripe.String(currency),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
	}
	params.Context = ctx
	params.SetIdempotencyKey(uuid.NewString())

	intent, err := s.pi.New(params)
	if err != nil {
		s.log.Error("stripe create payment intent failed",
			zap.Int64("amount", amountCents), zap.String("currency", currency), zap.Error(err))
		return "", fmt.Errorf("create payment intent: %w", err)
	}
	return intent.ClientSecret, nil
}
