// Package errreport forwards non-fatal errors to Sentry when it is configured.
package errreport

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/getsentry/sentry-go"

	"github.com/llehouerou/playstate/internal/errmsg"
)

// Options configures the Sentry client.
type Options struct {
	DSN         string
	Environment string
	Release     string
}

// Reporter captures errors to Sentry. A nil or disabled Reporter drops
// everything, so callers never need to check.
type Reporter struct {
	enabled bool
	logger  *slog.Logger
}

// New creates a reporter. Use Init to also configure the Sentry client.
func New(enabled bool, logger *slog.Logger) *Reporter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Reporter{enabled: enabled, logger: logger}
}

// Init configures the Sentry client and returns an enabled reporter.
// An empty DSN yields a disabled reporter.
func Init(opts Options, logger *slog.Logger) (*Reporter, error) {
	if opts.DSN == "" {
		return New(false, logger), nil
	}
	err := sentry.Init(sentry.ClientOptions{
		Dsn:         opts.DSN,
		Environment: opts.Environment,
		Release:     opts.Release,
	})
	if err != nil {
		return New(false, logger), fmt.Errorf("init sentry: %w", err)
	}
	return New(true, logger), nil
}

// Enabled reports whether errors are forwarded.
func (r *Reporter) Enabled() bool {
	return r != nil && r.enabled
}

// Capture reports err tagged with the failed operation and component.
func (r *Reporter) Capture(err error, component string, op errmsg.Op) {
	r.CaptureWithTags(err, map[string]string{
		"component": component,
		"operation": string(op),
	})
}

// CaptureWithTags reports err with the given tags.
func (r *Reporter) CaptureWithTags(err error, tags map[string]string) {
	if !r.Enabled() || err == nil {
		return
	}

	// Clone hub to avoid data races in goroutines.
	hub := sentry.CurrentHub().Clone()
	hub.WithScope(func(scope *sentry.Scope) {
		for key, value := range tags {
			scope.SetTag(key, value)
		}
		hub.CaptureException(err)
	})
}

// Flush waits for queued events to be sent.
func (r *Reporter) Flush(timeout time.Duration) {
	if !r.Enabled() {
		return
	}
	if !sentry.Flush(timeout) {
		r.logger.Warn("sentry flush timeout", "timeout", timeout)
	}
}
