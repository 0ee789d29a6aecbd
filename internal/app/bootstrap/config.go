// internal/app/bootstrap/config.go
package bootstrap

import (
	"fmt"
	"strings"
	"time"

	"github.com/dalemusser/fittrack/internal/app/system/auth"
	"github.com/dalemusser/waffle/config"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.uber.org/zap"
)

// devTokenSecret is only acceptable outside prod.
const devTokenSecret = "dev-only-change-me-please-0123456789ABCDEF"

// appConfigKeys defines the configuration keys for FitTrack.
// These are loaded via WAFFLE's config system with support for:
//   - Config files: mongo_uri, token_secret, etc.
//   - Environment variables: FITTRACK_MONGO_URI, FITTRACK_TOKEN_SECRET, etc.
//   - Command-line flags: --mongo_uri, --token_secret, etc.
var appConfigKeys = []config.AppKey{
	{Name: "mongo_uri", Default: "mongodb://localhost:27017", Desc: "MongoDB connection URI"},
	{Name: "mongo_database", Default: "fittrack", Desc: "MongoDB database name"},
	{Name: "mongo_max_pool_size", Default: 100, Desc: "MongoDB max connection pool size (default: 100)"},
	{Name: "mongo_min_pool_size", Default: 10, Desc: "MongoDB min connection pool size (default: 10)"},

	{Name: "token_secret", Default: devTokenSecret, Desc: "HS256 secret for bearer tokens (must be strong in production)"},
	{Name: "token_ttl", Default: "9h", Desc: "Lifetime of issued bearer tokens (e.g., 9h, 30m)"},

	{Name: "stripe_secret_key", Default: "", Desc: "Stripe secret key; blank disables payment intents"},
	{Name: "payment_currency", Default: "usd", Desc: "Currency for payment intents"},

	{Name: "cors_allowed_origins", Default: "http://localhost:5173,http://localhost:5174", Desc: "Comma-separated browser origins allowed by CORS"},
	{Name: "rate_limit_per_minute", Default: 20, Desc: "Per-IP requests per minute for token issue and newsletter sign-up"},

	{Name: "admin_email", Default: "", Desc: "Email of the bootstrap admin (promoted or created on startup)"},
}

// LoadConfig loads WAFFLE core config and FitTrack config.
//
// Precedence is flags > env > files > defaults. Core settings use WAFFLE_*,
// app settings use FITTRACK_*.
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, "FITTRACK", appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		MongoURI:         appValues.String("mongo_uri"),
		MongoDatabase:    appValues.String("mongo_database"),
		MongoMaxPoolSize: uint64(appValues.Int("mongo_max_pool_size")),
		MongoMinPoolSize: uint64(appValues.Int("mongo_min_pool_size")),

		TokenSecret: appValues.String("token_secret"),
		TokenTTL:    appValues.Duration("token_ttl", auth.DefaultTTL),

		StripeSecretKey: appValues.String("stripe_secret_key"),
		PaymentCurrency: strings.ToLower(strings.TrimSpace(appValues.String("payment_currency"))),

		CORSAllowedOrigins: splitList(appValues.String("cors_allowed_origins")),
		RateLimitPerMinute: appValues.Int("rate_limit_per_minute"),

		AdminEmail: appValues.String("admin_email"),
	}

	return coreCfg, appCfg, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// ValidateConfig rejects configurations that cannot work before any
// connection is attempted.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	if err := wafflemongo.ValidateURI(appCfg.MongoURI); err != nil {
		logger.Error("invalid MongoDB URI", zap.Error(err))
		return fmt.Errorf("invalid MongoDB URI: %w", err)
	}
	if strings.TrimSpace(appCfg.MongoDatabase) == "" {
		return fmt.Errorf("mongo_database must not be empty")
	}

	if appCfg.TokenSecret == "" {
		return fmt.Errorf("token_secret must not be empty")
	}
	if coreCfg.Env == "prod" && (appCfg.TokenSecret == devTokenSecret || len(appCfg.TokenSecret) < 32) {
		return fmt.Errorf("token_secret must be set to a strong value (32+ chars) in prod")
	}
	if appCfg.TokenTTL <= 0 {
		return fmt.Errorf("token_ttl must be positive, got %s", appCfg.TokenTTL)
	}
	if appCfg.RateLimitPerMinute < 1 {
		return fmt.Errorf("rate_limit_per_minute must be at least 1, got %d", appCfg.RateLimitPerMinute)
	}

	if appCfg.StripeSecretKey == "" {
		logger.Warn("stripe_secret_key not set; payment intents will be refused")
	}
	return nil
}

// mongoTimeout bounds the initial connect and ping.
const mongoTimeout = 10 * time.Second
