// Package txn runs multi-collection writes in a MongoDB transaction when the
// deployment supports one, and falls back to plain sequential writes on a
// standalone server.
package txn

import (
	"context"
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Run executes fn inside a transaction on db's client. If the server
// rejects transactions (standalone mongod, some DocumentDB setups), fn is
// run again without one. fn must therefore be safe to retry from scratch.
func Run(ctx context.Context, db *mongo.Database, log *zap.Logger, fn func(ctx context.Context) error) error {
	sess, err := db.Client().StartSession()
	if err != nil {
		if IsNotSupported(err) {
			return fn(ctx)
		}
		return err
	}
	defer sess.EndSession(ctx)

	_, err = sess.WithTransaction(ctx, func(sc mongo.SessionContext) (any, error) {
		return nil, fn(sc)
	})
	if err != nil && IsNotSupported(err) {
		log.Debug("transactions unsupported; running without", zap.Error(err))
		return fn(ctx)
	}
	return err
}

// IsNotSupported reports whether err means the server cannot run
// transactions, as opposed to fn itself failing.
func IsNotSupported(err error) bool {
	if err == nil {
		return false
	}
	var ce mongo.CommandError
	if errors.As(err, &ce) {
		switch ce.Code {
		case 20, 51, 263: // IllegalOperation, not a replica set member, OperationNotSupportedInTransaction
			return true
		}
	}
	s := strings.ToLower(err.Error())
	if strings.Contains(s, "transaction") &&
		(strings.Contains(s, "replica set") || strings.Contains(s, "session") || strings.Contains(s, "illegal operation")) {
		return true
	}
	return strings.Contains(s, "session") && strings.Contains(s, "not supported")
}
