package payments

import (
	"errors"
	"net/http"

	"github.com/dalemusser/fittrack/internal/app/system/inputval"
	"github.com/dalemusser/fittrack/internal/app/system/payments"
	"github.com/dalemusser/fittrack/internal/app/system/respond"
	"github.com/dalemusser/fittrack/internal/app/system/timeouts"
	"go.uber.org/zap"
)

type Handler struct {
	Intents  payments.IntentCreator
	Currency string
	Log      *zap.Logger
}

func NewHandler(intents payments.IntentCreator, currency string, logger *zap.Logger) *Handler {
	return &Handler{Intents: intents, Currency: currency, Log: logger}
}

type intentInput struct {
	Price float64 `json:"price"`
}

type intentOutput struct {
	ClientSecret string `json:"clientSecret"`
}

// HandleCreateIntent handles POST /create-payment-intent. price is in major
// currency units and is charged in cents.
func (h *Handler) HandleCreateIntent(w http.ResponseWriter, r *http.Request) {
	var in intentInput
	if err := inputval.Decode(w, r, &in); err != nil {
		respond.Error(w, r, h.Log, err)
		return
	}
	cents, err := payments.AmountInCents(in.Price)
	if err != nil {
		respond.Error(w, r, h.Log, &inputval.Error{Message: "invalid request", Fields: map[string]string{"price": "must be a positive amount"}})
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "create payment intent")
	defer cancel()

	secret, err := h.Intents.CreateIntent(ctx, cents, h.Currency)
	switch {
	case err == nil:
		respond.OK(w, intentOutput{ClientSecret: secret})
	case errors.Is(err, payments.ErrNotConfigured):
		respond.Message(w, http.StatusServiceUnavailable, "payments are not available")
	default:
		h.Log.Error("payment intent failed", zap.Int64("amount", cents), zap.Error(err))
		respond.Message(w, http.StatusBadGateway, "payment provider error")
	}
}
