package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/congo-pay/onboarding/internal/onboarding"
)

// Metrics holds the Prometheus collectors for the onboarding screens.
type Metrics struct {
	Submissions     *prometheus.CounterVec
	Navigations     *prometheus.CounterVec
	PartialFailures prometheus.Counter
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Submissions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "onboarding_submissions_total",
			Help: "Form submissions by flow and outcome kind",
		}, []string{"flow", "kind"}),
		Navigations: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "onboarding_navigations_total",
			Help: "Navigation instructions issued by destination screen",
		}, []string{"screen"}),
		PartialFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "onboarding_partial_registrations_total",
			Help: "Accounts created whose profile could not be written",
		}),
	}
}

// ObserveOutcome counts a submission result.
func (m *Metrics) ObserveOutcome(flow string, out onboarding.Outcome) {
	if m == nil {
		return
	}
	m.Submissions.WithLabelValues(flow, string(out.Kind)).Inc()
	if out.Kind == onboarding.KindPartialFailure {
		m.PartialFailures.Inc()
	}
}

// ObserveNavigation counts a navigation to screen.
func (m *Metrics) ObserveNavigation(screen onboarding.Screen) {
	if m == nil {
		return
	}
	m.Navigations.WithLabelValues(string(screen)).Inc()
}
