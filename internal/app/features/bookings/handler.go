package bookings

import (
	"context"
	"net/http"

	bookingstore "github.com/dalemusser/fittrack/internal/app/store/bookings"
	"github.com/dalemusser/fittrack/internal/app/system/auth"
	"github.com/dalemusser/fittrack/internal/app/system/inputval"
	"github.com/dalemusser/fittrack/internal/app/system/normalize"
	"github.com/dalemusser/fittrack/internal/app/system/respond"
	"github.com/dalemusser/fittrack/internal/app/system/timeouts"
	"github.com/dalemusser/fittrack/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type Handler struct {
	Bookings *bookingstore.Store
	Log      *zap.Logger
}

func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{Bookings: bookingstore.New(db), Log: logger}
}

type createInput struct {
	UserName     string  `json:"userName" validate:"max=200"`
	TrainerEmail string  `json:"trainerEmail" validate:"omitempty,email"`
	TrainerName  string  `json:"trainerName" validate:"max=200"`
	SlotID       string  `json:"slotId"`
	SlotName     string  `json:"slotName" validate:"max=200"`
	ClassName    string  `json:"className" validate:"max=200"`
	PackageName  string  `json:"packageName" validate:"required,max=100"`
	Price        float64 `json:"price" validate:"gte=0"`
	PaymentID    string  `json:"paymentId" validate:"required"`
}

// HandleCreate handles POST /bookings, called after the payment succeeded.
// The booking belongs to the token holder.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	claims, _ := auth.ClaimsFrom(r.Context())
	var in createInput
	if err := inputval.Decode(w, r, &in); err != nil {
		respond.Error(w, r, h.Log, err)
		return
	}
	userName := normalize.Name(in.UserName)
	if userName == "" {
		userName = claims.Name
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	b, err := h.Bookings.Create(ctx, models.Booking{
		UserEmail:    claims.Email,
		UserName:     userName,
		TrainerEmail: in.TrainerEmail,
		TrainerName:  normalize.Name(in.TrainerName),
		SlotID:       in.SlotID,
		SlotName:     normalize.Name(in.SlotName),
		ClassName:    normalize.Name(in.ClassName),
		PackageName:  normalize.Name(in.PackageName),
		Price:        in.Price,
		PaymentID:    in.PaymentID,
	})
	if err != nil {
		respond.Error(w, r, h.Log, err)
		return
	}
	h.Log.Info("booking recorded",
		zap.String("email", b.UserEmail),
		zap.String("payment_id", b.PaymentID),
		zap.Float64("price", b.Price))
	respond.OK(w, respond.Inserted{Acknowledged: true, InsertedID: b.ID})
}

// HandleByUser handles GET /bookings/{email}.
func (h *Handler) HandleByUser(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	list, err := h.Bookings.ByUser(ctx, chi.URLParam(r, "email"))
	if err != nil {
		respond.Error(w, r, h.Log, err)
		return
	}
	respond.OK(w, list)
}
