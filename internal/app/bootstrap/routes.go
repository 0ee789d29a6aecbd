// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	bookingsfeature "github.com/dalemusser/fittrack/internal/app/features/bookings"
	classesfeature "github.com/dalemusser/fittrack/internal/app/features/classes"
	forumfeature "github.com/dalemusser/fittrack/internal/app/features/forum"
	healthfeature "github.com/dalemusser/fittrack/internal/app/features/health"
	homefeature "github.com/dalemusser/fittrack/internal/app/features/home"
	overviewfeature "github.com/dalemusser/fittrack/internal/app/features/overview"
	paymentsfeature "github.com/dalemusser/fittrack/internal/app/features/payments"
	reviewsfeature "github.com/dalemusser/fittrack/internal/app/features/reviews"
	slotsfeature "github.com/dalemusser/fittrack/internal/app/features/slots"
	subscribersfeature "github.com/dalemusser/fittrack/internal/app/features/subscribers"
	tokensfeature "github.com/dalemusser/fittrack/internal/app/features/tokens"
	trainersfeature "github.com/dalemusser/fittrack/internal/app/features/trainers"
	usersfeature "github.com/dalemusser/fittrack/internal/app/features/users"
	"github.com/dalemusser/fittrack/internal/app/system/auth"
	"github.com/dalemusser/fittrack/internal/app/system/payments"
	"github.com/dalemusser/fittrack/internal/app/system/ratelimit"
	"github.com/dalemusser/fittrack/internal/app/system/reqlog"
	"github.com/dalemusser/fittrack/internal/app/system/respond"
	"github.com/dalemusser/fittrack/internal/domain/models"
	"github.com/dalemusser/waffle/config"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

// BuildHandler constructs the root router.
//
// WAFFLE calls this after configuration, DB connection, schema setup and
// Startup. Every feature gets the shared database handle and logger; routes
// that need a token get tokens.Verify or tokens.RequireRole.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	tokens, err := auth.NewTokens(appCfg.TokenSecret, appCfg.TokenTTL, logger)
	if err != nil {
		logger.Error("token issuer init failed", zap.Error(err))
		return nil, err
	}
	return newRouter(appCfg, deps, tokens, payments.NewStripe(appCfg.StripeSecretKey, logger), logger), nil
}

func newRouter(appCfg AppConfig, deps DBDeps, tokens *auth.Tokens, intents payments.IntentCreator, logger *zap.Logger) chi.Router {
	db := deps.MongoDatabase

	verify := tokens.Verify
	adminOnly := tokens.RequireRole(models.RoleAdmin)
	trainerOnly := tokens.RequireRole(models.RoleTrainer)

	// Separate budgets so newsletter sign-ups cannot starve token issue.
	tokenLimit := ratelimit.PerMinute(appCfg.RateLimitPerMinute).Middleware(logger)
	subscribeLimit := ratelimit.PerMinute(appCfg.RateLimitPerMinute).Middleware(logger)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(reqlog.Middleware(logger))
	r.Use(middleware.Recoverer)
	r.Use(corsHandler(appCfg.CORSAllowedOrigins))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		respond.Message(w, http.StatusNotFound, "not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		respond.Message(w, http.StatusMethodNotAllowed, "method not allowed")
	})

	// Liveness and readiness
	homeHandler := homefeature.NewHandler(logger)
	r.Mount("/", homefeature.Routes(homeHandler))

	healthHandler := healthfeature.NewHandler(deps.MongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	// Tokens and accounts
	tokensHandler := tokensfeature.NewHandler(db, tokens, logger)
	r.Mount("/jwt", tokensfeature.Routes(tokensHandler, tokenLimit))

	usersHandler := usersfeature.NewHandler(db, logger)
	r.Mount("/users", usersfeature.Routes(usersHandler))

	subscribersHandler := subscribersfeature.NewHandler(db, logger)
	r.Mount("/subscribers", subscribersfeature.Routes(subscribersHandler, adminOnly, subscribeLimit))

	// Trainers
	trainersHandler := trainersfeature.NewHandler(db, logger)
	r.Mount("/trainers", trainersfeature.Routes(trainersHandler, verify, adminOnly))
	r.Get("/trainer-status/{email}", trainersHandler.HandleStatus)
	r.Get("/trainer-id/{email}", trainersHandler.HandleVerifiedID)

	// Catalog
	classesHandler := classesfeature.NewHandler(db, logger)
	r.Mount("/classes", classesfeature.Routes(classesHandler, verify, adminOnly))
	r.Get("/featured-classes", classesHandler.HandleFeatured)

	slotsHandler := slotsfeature.NewHandler(db, logger)
	r.Mount("/slots", slotsfeature.Routes(slotsHandler, trainerOnly))
	r.With(verify).Get("/single-slot/{id}", slotsHandler.HandleGet)

	// Community
	forumHandler := forumfeature.NewHandler(db, logger)
	r.Mount("/forum-posts", forumfeature.Routes(forumHandler, verify))
	r.Get("/featured-posts", forumHandler.HandleFeatured)

	reviewsHandler := reviewsfeature.NewHandler(db, logger)
	r.Mount("/reviews", reviewsfeature.Routes(reviewsHandler, verify))

	// Payments and bookings
	paymentsHandler := paymentsfeature.NewHandler(intents, appCfg.PaymentCurrency, logger)
	r.Mount("/create-payment-intent", paymentsfeature.Routes(paymentsHandler, verify))

	bookingsHandler := bookingsfeature.NewHandler(db, logger)
	r.Mount("/bookings", bookingsfeature.Routes(bookingsHandler, verify))

	// Admin
	overviewHandler := overviewfeature.NewHandler(db, logger)
	r.Mount("/admin", overviewfeature.Routes(overviewHandler, adminOnly))

	return r
}

func corsHandler(origins []string) func(http.Handler) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
		MaxAge:           300,
	})
}
