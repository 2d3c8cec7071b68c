package resilience

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the breaker collectors. A nil *Metrics records nothing.
type Metrics struct {
	State       *prometheus.GaugeVec
	Transitions *prometheus.CounterVec
	Opened      *prometheus.CounterVec
}

// NewMetrics registers breaker collectors on reg, reusing any that are
// already registered.
func NewMetrics(namespace string, reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	m := &Metrics{
		State: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "breaker_state",
			Help:      "Current breaker state: 0=closed,1=open,2=half-open",
		}, []string{"target"}),
		Transitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "breaker_transition_total",
			Help:      "Count of breaker state transitions",
		}, []string{"target", "from", "to"}),
		Opened: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "breaker_open_total",
			Help:      "Number of times a breaker transitioned into open state",
		}, []string{"target"}),
	}
	if existing, ok := registerOrExisting(reg, m.State).(*prometheus.GaugeVec); ok {
		m.State = existing
	}
	if existing, ok := registerOrExisting(reg, m.Transitions).(*prometheus.CounterVec); ok {
		m.Transitions = existing
	}
	if existing, ok := registerOrExisting(reg, m.Opened).(*prometheus.CounterVec); ok {
		m.Opened = existing
	}
	return m
}

func registerOrExisting(reg prometheus.Registerer, c prometheus.Collector) prometheus.Collector {
	err := reg.Register(c)
	var are prometheus.AlreadyRegisteredError
	if err != nil && errors.As(err, &are) {
		return are.ExistingCollector
	}
	if err != nil {
		panic(err)
	}
	return c
}

func (m *Metrics) setState(target string, s State) {
	if m == nil {
		return
	}
	m.State.WithLabelValues(target).Set(stateGaugeValue(s))
}

func (m *Metrics) transition(target string, from, to State) {
	if m == nil {
		return
	}
	m.setState(target, to)
	m.Transitions.WithLabelValues(target, from.String(), to.String()).Inc()
	if to == Open {
		m.Opened.WithLabelValues(target).Inc()
	}
}

func stateGaugeValue(state State) float64 {
	switch state {
	case Closed:
		return 0
	case Open:
		return 1
	case HalfOpen:
		return 2
	default:
		return -1
	}
}
