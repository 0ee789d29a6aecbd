// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"
	"fmt"
	"time"

	"github.com/dalemusser/fittrack/internal/app/system/inputval"
	"github.com/dalemusser/fittrack/internal/app/system/normalize"
	"github.com/dalemusser/fittrack/internal/app/system/timeouts"
	"github.com/dalemusser/fittrack/internal/domain/models"
	"github.com/dalemusser/waffle/config"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// Startup runs one-time initialization after the schema is in place:
// timeout overrides from the environment and the bootstrap admin.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	if n := timeouts.ConfigureFromEnv(); n > 0 {
		cur := timeouts.Current()
		logger.Info("timeouts overridden from environment",
			zap.Int("applied", n),
			zap.Duration("short", cur.Short),
			zap.Duration("medium", cur.Medium),
			zap.Duration("long", cur.Long))
	}

	if appCfg.AdminEmail != "" {
		if err := ensureAdmin(ctx, deps, appCfg.AdminEmail, logger); err != nil {
			return fmt.Errorf("ensure admin: %w", err)
		}
	}
	return nil
}

// ensureAdmin makes email an admin, creating the user if needed.
// Without it a fresh deployment has no way to reach the admin routes.
func ensureAdmin(ctx context.Context, deps DBDeps, email string, logger *zap.Logger) error {
	email = normalize.Email(email)
	if !inputval.IsValidEmail(email) {
		return fmt.Errorf("invalid admin email %q", email)
	}

	now := time.Now().UTC()
	res, err := deps.MongoDatabase.Collection("users").UpdateOne(ctx,
		bson.M{"email": email},
		bson.M{
			"$set": bson.M{"role": models.RoleAdmin},
			"$setOnInsert": bson.M{
				"_id":       primitive.NewObjectID(),
				"name":      "Admin",
				"timestamp": now.UnixMilli(),
				"createdAt": now,
			},
		},
		options.Update().SetUpsert(true))
	if err != nil {
		return err
	}

	switch {
	case res.UpsertedCount > 0:
		logger.Info("created bootstrap admin", zap.String("email", email))
	case res.ModifiedCount > 0:
		logger.Info("promoted user to admin", zap.String("email", email))
	default:
		logger.Debug("bootstrap admin already in place", zap.String("email", email))
	}
	return nil
}
