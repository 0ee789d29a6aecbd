// internal/app/system/respond/respond.go
package respond

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dalemusser/fittrack/internal/app/store/storeerr"
	"github.com/dalemusser/fittrack/internal/app/system/inputval"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// Msg is the {message} envelope used for errors and soft failures.
type Msg struct {
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

// JSON writes v with the given status.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// OK writes v with 200.
func OK(w http.ResponseWriter, v any) {
	JSON(w, http.StatusOK, v)
}

// Message writes {"message": msg}.
func Message(w http.ResponseWriter, status int, msg string) {
	JSON(w, status, Msg{Message: msg})
}

// Error maps err onto a status and writes it:
//
//	*inputval.Error        400
//	storeerr.ErrBadID      400
//	storeerr.ErrNotFound   404
//	storeerr.ErrDuplicate  409
//	anything else          500 (logged, message hidden)
func Error(w http.ResponseWriter, r *http.Request, log *zap.Logger, err error) {
	var ve *inputval.Error
	switch {
	case errors.As(err, &ve):
		JSON(w, http.StatusBadRequest, Msg{Message: ve.Message, Fields: ve.Fields})
	case errors.Is(err, storeerr.ErrBadID):
		Message(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, storeerr.ErrNotFound):
		Message(w, http.StatusNotFound, err.Error())
	case errors.Is(err, storeerr.ErrDuplicate):
		Message(w, http.StatusConflict, err.Error())
	default:
		log.Error("request failed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.String("request_id", middleware.GetReqID(r.Context())),
			zap.Error(err))
		Message(w, http.StatusInternalServerError, "internal server error")
	}
}

// Inserted is the confirmation returned after a single-document insert.
type Inserted struct {
	Acknowledged bool `json:"acknowledged"`
	InsertedID   any  `json:"insertedId"`
}

// Deleted is the confirmation returned after a delete.
type Deleted struct {
	Acknowledged bool  `json:"acknowledged"`
	DeletedCount int64 `json:"deletedCount"`
}

// Modified is the confirmation returned after an in-place counter update.
type Modified struct {
	Acknowledged  bool  `json:"acknowledged"`
	ModifiedCount int64 `json:"modifiedCount"`
}
