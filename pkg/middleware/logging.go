package middleware

import (
	"log/slog"
	"time"

	"github.com/vango-dev/routeshell/pkg/router"
)

// Logger creates middleware that logs one record per navigation: INFO when
// the route rendered, WARN when nothing matched and ERROR when it failed. A
// nil logger uses slog.Default().
func Logger(logger *slog.Logger) router.Middleware {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "navigation")

	return router.MiddlewareFunc(func(nav *router.Navigation, next func() error) error {
		start := time.Now()
		err := next()

		attrs := []any{
			"nav_id", nav.ID.String(),
			"path", nav.Path,
			"route", RouteLabel(nav),
			"outcome", string(nav.Outcome),
			"duration", time.Since(start),
		}
		if nav.Requested != nav.Path {
			attrs = append(attrs, "requested", nav.Requested)
		}
		if nav.Err != nil {
			attrs = append(attrs, "error", nav.Err)
		}

		switch nav.Outcome {
		case router.OutcomeFailed:
			logger.Error("navigation failed", attrs...)
		case router.OutcomeNotFound:
			logger.Warn("route not found", attrs...)
		case router.OutcomeRendered:
			logger.Info("navigated", attrs...)
		default:
			logger.Debug("navigation stopped by middleware", attrs...)
		}
		return err
	})
}
