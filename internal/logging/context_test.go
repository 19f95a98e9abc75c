package logging_test

import (
	"context"
	"testing"

	"github.com/yaklabco/gogd/internal/logging"
)

func TestWithLoggerRoundTrip(t *testing.T) {
	t.Parallel()

	logger := logging.New("debug")
	ctx := logging.WithLogger(context.Background(), logger)

	if got := logging.FromContext(ctx); got != logger {
		t.Error("FromContext did not return the attached logger")
	}
}

func TestFromContextFallsBackToDefault(t *testing.T) {
	t.Parallel()

	if got := logging.FromContext(context.Background()); got != logging.Default() {
		t.Error("FromContext without an attached logger should return the default")
	}

	if got := logging.FromContext(nil); got != logging.Default() { //nolint:staticcheck // nil context is the documented fallback path
		t.Error("FromContext with a nil context should return the default")
	}
}

func TestWithLoggerNilContext(t *testing.T) {
	t.Parallel()

	logger := logging.New("info")
	ctx := logging.WithLogger(nil, logger) //nolint:staticcheck // nil context is the documented fallback path

	if got := logging.FromContext(ctx); got != logger {
		t.Error("WithLogger on a nil context should still attach the logger")
	}
}
