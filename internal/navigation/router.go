package navigation

import (
	"log/slog"

	"github.com/congo-pay/onboarding/internal/metrics"
	"github.com/congo-pay/onboarding/internal/onboarding"
)

// LogRouter records navigation instructions. The HTTP client performs the
// actual screen change from the returned outcome.
type LogRouter struct {
	logger  *slog.Logger
	metrics *metrics.Metrics
}

// NewLogRouter builds a router that logs and counts navigations.
func NewLogRouter(logger *slog.Logger, m *metrics.Metrics) *LogRouter {
	return &LogRouter{logger: logger, metrics: m}
}

var _ onboarding.Router = (*LogRouter)(nil)

// NavigateTo logs the destination screen.
func (r *LogRouter) NavigateTo(screen onboarding.Screen) {
	r.metrics.ObserveNavigation(screen)
	if r.logger != nil {
		r.logger.Info("navigate", slog.String("screen", string(screen)))
	}
}
