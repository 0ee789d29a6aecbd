// internal/app/system/inputval/inputval.go
package inputval

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// MaxBodyBytes bounds every JSON request body.
const MaxBodyBytes = 1 << 20

// ErrEmptyBody is wrapped by the *Error that Decode returns for a request
// without a body. Routes whose body is optional match it with errors.Is.
var ErrEmptyBody = errors.New("request body is empty")

// Error is a client input problem. Handlers answer it with 400.
type Error struct {
	Message string
	Fields  map[string]string
	err     error
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.err }

var (
	once     sync.Once
	validate *validator.Validate
)

func v() *validator.Validate {
	once.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		// Report JSON field names, not Go field names.
		validate.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
	})
	return validate
}

// Struct validates s against its `validate` tags.
func Struct(s any) error {
	err := v().Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	out := &Error{Message: "invalid request", Fields: make(map[string]string, len(verrs))}
	for _, fe := range verrs {
		out.Fields[fe.Field()] = describe(fe)
	}
	return out
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email"
	case "gt", "gte", "min":
		return "must be at least " + fe.Param()
	case "lte", "max":
		return "must be at most " + fe.Param()
	case "oneof":
		return "must be one of " + fe.Param()
	default:
		return "is invalid"
	}
}

// IsValidEmail reports whether s is a plausible email address.
func IsValidEmail(s string) bool {
	return v().Var(s, "required,email") == nil
}

// Decode reads a JSON body into dst and validates it. Malformed JSON, an
// oversized body, and failed validation all come back as *Error.
func Decode(w http.ResponseWriter, r *http.Request, dst any) error {
	body := http.MaxBytesReader(w, r.Body, MaxBodyBytes)
	if err := json.NewDecoder(body).Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return &Error{Message: ErrEmptyBody.Error(), err: ErrEmptyBody}
		}
		return &Error{Message: fmt.Sprintf("malformed JSON: %v", err)}
	}
	return Struct(dst)
}
