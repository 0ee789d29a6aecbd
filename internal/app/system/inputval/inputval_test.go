package inputval

import (
	"errors"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestIsValidEmail(t *testing.T) {
	tests := []struct {
		email string
		want  bool
	}{
		{"user@example.com", true},
		{"user.name@example.com", true},
		{"user+tag@example.com", true},
		{"user123@example.co.uk", true},

		{"", false},
		{"   ", false},
		{"user", false},
		{"user@", false},
		{"@example.com", false},
		{"user @example.com", false},
	}

	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			got := IsValidEmail(tt.email)
			if got != tt.want {
				t.Errorf("IsValidEmail(%q) = %v, want %v", tt.email, got, tt.want)
			}
		})
	}
}

type sample struct {
	Email string  `json:"email" validate:"required,email"`
	Price float64 `json:"price" validate:"gt=0"`
	Note  string  `json:"note"`
}

func TestStruct_ReportsJSONFieldNames(t *testing.T) {
	err := Struct(sample{Email: "nope"})
	if err == nil {
		t.Fatal("expected validation error")
	}
	ve, ok := err.(*Error)
	if !ok {
		t.Fatalf("expected *Error, got %T", err)
	}
	if _, ok := ve.Fields["email"]; !ok {
		t.Errorf("expected field 'email' in %v", ve.Fields)
	}
	if _, ok := ve.Fields["price"]; !ok {
		t.Errorf("expected field 'price' in %v", ve.Fields)
	}
}

func TestStruct_Valid(t *testing.T) {
	if err := Struct(sample{Email: "a@b.com", Price: 10}); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestDecode(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr bool
	}{
		{"valid", `{"email":"a@b.com","price":5}`, false},
		{"empty", ``, true},
		{"malformed", `{"email":`, true},
		{"fails validation", `{"email":"a@b.com","price":0}`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("POST", "/", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			var dst sample
			err := Decode(rec, req, &dst)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Decode() error = %v, wantErr %v", err, tt.wantErr)
			}
			var ve *Error
			if err != nil && !errors.As(err, &ve) {
				t.Errorf("expected validation error, got %T", err)
			}
		})
	}
}

func TestDecode_EmptyBodyWrapsErrEmptyBody(t *testing.T) {
	req := httptest.NewRequest("POST", "/", strings.NewReader(""))
	req.ContentLength = -1
	var dst sample
	err := Decode(httptest.NewRecorder(), req, &dst)
	if !errors.Is(err, ErrEmptyBody) {
		t.Fatalf("Decode(empty) err = %v, want ErrEmptyBody", err)
	}
	var ve *Error
	if !errors.As(err, &ve) || ve.Message != "request body is empty" {
		t.Errorf("expected *Error with empty-body message, got %v", err)
	}

	req = httptest.NewRequest("POST", "/", strings.NewReader(`{"email":`))
	if err := Decode(httptest.NewRecorder(), req, &dst); errors.Is(err, ErrEmptyBody) {
		t.Error("malformed JSON should not match ErrEmptyBody")
	}
}
