// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds FitTrack-specific configuration.
//
// Values come from FITTRACK_* environment variables, config files, or flags
// (loaded in LoadConfig). Framework settings such as ports, TLS and log level
// live in WAFFLE's CoreConfig.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI         string
	MongoDatabase    string
	MongoMaxPoolSize uint64
	MongoMinPoolSize uint64

	// Bearer tokens
	TokenSecret string        // HS256 signing secret
	TokenTTL    time.Duration // lifetime of issued tokens

	// Payments
	StripeSecretKey string // blank disables /create-payment-intent (503)
	PaymentCurrency string // ISO currency code, lower case

	// HTTP
	CORSAllowedOrigins []string // browser origins allowed to call the API
	RateLimitPerMinute int      // per-IP budget for POST /jwt and POST /subscribers

	// AdminEmail is promoted to (or created as) an admin on startup.
	AdminEmail string
}
