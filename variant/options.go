package variant

import (
	"io"
	"log/slog"
	"time"
)

// RegistryOption configures a Registry.
type RegistryOption func(*Registry)

// WithLogger sets the logger used for generation diagnostics.
// A nil logger silences them.
func WithLogger(logger *slog.Logger) RegistryOption {
	return func(r *Registry) {
		if logger == nil {
			logger = slog.New(slog.NewTextHandler(io.Discard, nil))
		}
		r.logger = logger
	}
}

// WithWatchDebounce sets how long Watch waits after the last change to a
// descriptor file before loading it. Non-positive values load on every
// change.
func WithWatchDebounce(d time.Duration) RegistryOption {
	return func(r *Registry) {
		r.watchDebounce = max(d, 0)
	}
}
