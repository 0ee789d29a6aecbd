// internal/app/system/timeouts/timeouts.go
package timeouts

import (
	"context"
	"os"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Defaults for the three request classes FitTrack handlers use.
const (
	DefaultPing   = 2 * time.Second
	DefaultShort  = 5 * time.Second
	DefaultMedium = 10 * time.Second
	DefaultLong   = 30 * time.Second
)

// Config holds timeout values. Zero fields are ignored by Configure.
type Config struct {
	Ping   time.Duration
	Short  time.Duration
	Medium time.Duration
	Long   time.Duration
}

var (
	mu  sync.RWMutex
	cur = defaults()
)

func defaults() Config {
	return Config{Ping: DefaultPing, Short: DefaultShort, Medium: DefaultMedium, Long: DefaultLong}
}

// Ping is used by /health to bound the Mongo ping.
func Ping() time.Duration { return get().Ping }

// Short bounds single-document reads and writes (get by id, insert, $inc).
func Short() time.Duration { return get().Short }

// Medium bounds list queries and aggregations.
func Medium() time.Duration { return get().Medium }

// Long bounds operations touching several collections, such as the
// trainer cascade delete.
func Long() time.Duration { return get().Long }

func get() Config {
	mu.RLock()
	defer mu.RUnlock()
	return cur
}

// Current returns the active configuration, for startup logging.
func Current() Config { return get() }

// Configure overrides the non-zero fields of cfg.
func Configure(cfg Config) {
	mu.Lock()
	defer mu.Unlock()
	set := func(dst *time.Duration, v time.Duration) {
		if v > 0 {
			*dst = v
		}
	}
	set(&cur.Ping, cfg.Ping)
	set(&cur.Short, cfg.Short)
	set(&cur.Medium, cfg.Medium)
	set(&cur.Long, cfg.Long)
}

// Reset restores the defaults. Tests use it.
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	cur = defaults()
}

// ConfigureFromEnv reads TIMEOUT_PING, TIMEOUT_SHORT, TIMEOUT_MEDIUM and
// TIMEOUT_LONG (Go duration strings). Invalid or non-positive values are
// skipped. It returns how many values were applied.
func ConfigureFromEnv() int {
	var cfg Config
	applied := 0
	for name, dst := range map[string]*time.Duration{
		"TIMEOUT_PING":   &cfg.Ping,
		"TIMEOUT_SHORT":  &cfg.Short,
		"TIMEOUT_MEDIUM": &cfg.Medium,
		"TIMEOUT_LONG":   &cfg.Long,
	} {
		v := os.Getenv(name)
		if v == "" {
			continue
		}
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			*dst = d
			applied++
		}
	}
	Configure(cfg)
	return applied
}

// WithTimeout derives a context bounded by d. The returned cancel func logs
// a warning when the deadline was what ended the operation.
//
//	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Long(), h.Log, "trainer cascade delete")
//	defer cancel()
func WithTimeout(parent context.Context, d time.Duration, log *zap.Logger, op string) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithTimeout(parent, d)
	return ctx, func() {
		if log != nil && ctx.Err() == context.DeadlineExceeded {
			log.Warn("operation timed out", zap.String("operation", op), zap.Duration("timeout", d))
		}
		cancel()
	}
}
