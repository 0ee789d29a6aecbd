package txn

import (
	"context"
	"errors"
	"testing"

	"github.com/dalemusser/fittrack/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

func TestIsNotSupported(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{
			name: "nil error",
			err:  nil,
			want: false,
		},
		{
			name: "generic error",
			err:  errors.New("some random error"),
			want: false,
		},
		{
			name: "command error code 20",
			err:  mongo.CommandError{Code: 20, Message: "Transaction numbers are only allowed on a replica set member"},
			want: true,
		},
		{
			name: "command error code 51",
			err:  mongo.CommandError{Code: 51, Message: "Illegal operation"},
			want: true,
		},
		{
			name: "command error code 263",
			err:  mongo.CommandError{Code: 263, Message: "Cannot run in a multi-document transaction"},
			want: true,
		},
		{
			name: "other command error code",
			err:  mongo.CommandError{Code: 100, Message: "Some other error"},
			want: false,
		},
		{
			name: "error with transaction and replica set keywords",
			err:  errors.New("transaction failed because this is not a replica set member"),
			want: true,
		},
		{
			name: "error with session and not supported keywords",
			err:  errors.New("session operations are not supported on this server"),
			want: true,
		},
		{
			name: "error with only one keyword",
			err:  errors.New("transaction failed"),
			want: false,
		},
		{
			name: "error with transaction and session",
			err:  errors.New("cannot start transaction in current session state"),
			want: true,
		},
		{
			name: "error with illegal operation keywords",
			err:  errors.New("illegal operation during transaction"),
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := IsNotSupported(tt.err)
			if got != tt.want {
				t.Errorf("IsNotSupported(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

func TestIsNotSupported_CaseInsensitive(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{
			name: "uppercase TRANSACTION and REPLICA SET",
			err:  errors.New("TRANSACTION FAILED on REPLICA SET"),
			want: true,
		},
		{
			name: "mixed case Transaction and Session",
			err:  errors.New("Transaction Session error"),
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := IsNotSupported(tt.err)
			if got != tt.want {
				t.Errorf("IsNotSupported(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

func TestRun_WritesCommit(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	err := Run(ctx, db, zap.NewNop(), func(ctx context.Context) error {
		if _, err := db.Collection("a").InsertOne(ctx, bson.M{"k": 1}); err != nil {
			return err
		}
		_, err := db.Collection("b").InsertOne(ctx, bson.M{"k": 2})
		return err
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	for _, coll := range []string{"a", "b"} {
		n, err := db.Collection(coll).CountDocuments(ctx, bson.M{})
		if err != nil {
			t.Fatalf("count %s: %v", coll, err)
		}
		if n != 1 {
			t.Errorf("%s has %d docs, want 1", coll, n)
		}
	}
}

func TestRun_PropagatesError(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	boom := errors.New("boom")
	err := Run(ctx, db, zap.NewNop(), func(context.Context) error { return boom })
	if !errors.Is(err, boom) {
		t.Errorf("expected boom, got %v", err)
	}
}
