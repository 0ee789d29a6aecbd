package timeouts

import (
	"context"
	"testing"
	"time"
)

func TestConfigure_IgnoresZero(t *testing.T) {
	t.Cleanup(Reset)

	Configure(Config{Short: 7 * time.Second})

	if Short() != 7*time.Second {
		t.Errorf("Short() = %v, want 7s", Short())
	}
	if Medium() != DefaultMedium {
		t.Errorf("Medium() = %v, want default %v", Medium(), DefaultMedium)
	}
}

func TestConfigureFromEnv(t *testing.T) {
	t.Cleanup(Reset)
	t.Setenv("TIMEOUT_LONG", "45s")
	t.Setenv("TIMEOUT_PING", "not-a-duration")

	if n := ConfigureFromEnv(); n != 1 {
		t.Errorf("ConfigureFromEnv() applied %d, want 1", n)
	}
	if Long() != 45*time.Second {
		t.Errorf("Long() = %v, want 45s", Long())
	}
	if Ping() != DefaultPing {
		t.Errorf("Ping() = %v, want default", Ping())
	}
}

func TestWithTimeout_Expires(t *testing.T) {
	ctx, cancel := WithTimeout(context.Background(), time.Millisecond, nil, "test")
	defer cancel()

	<-ctx.Done()
	if ctx.Err() != context.DeadlineExceeded {
		t.Errorf("ctx.Err() = %v, want DeadlineExceeded", ctx.Err())
	}
}
