package obs

import "github.com/prometheus/client_golang/prometheus"

// DomainMetrics groups the Prometheus collectors for the utility endpoints.
// A nil *DomainMetrics is valid and records nothing.
type DomainMetrics struct {
	// ShoppingCalculations counts calculation outcomes by input format.
	ShoppingCalculations *prometheus.CounterVec
	// ShoppingItemsNotFound counts requested items missing from the cost table.
	ShoppingItemsNotFound prometheus.Counter
	// DictionaryOperations counts dictionary add/get outcomes.
	DictionaryOperations *prometheus.CounterVec
	// DictionaryCache counts read-through cache hits and misses.
	DictionaryCache *prometheus.CounterVec
	// WordConcat counts concatenation outcomes.
	WordConcat *prometheus.CounterVec
}

// NewDomainMetrics initialises and registers domain-specific collectors.
func NewDomainMetrics(namespace string, reg prometheus.Registerer) *DomainMetrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	return &DomainMetrics{
		ShoppingCalculations: register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "shopping_calculations_total",
			Help:      "Count of shopping total calculations by input format and outcome.",
		}, []string{"format", "result"})),
		ShoppingItemsNotFound: register(reg, prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "shopping_items_not_found_total",
			Help:      "Number of requested items that had no price.",
		})),
		DictionaryOperations: register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "dictionary_operations_total",
			Help:      "Count of dictionary operations by outcome.",
		}, []string{"op", "result"})),
		DictionaryCache: register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "dictionary_cache_total",
			Help:      "Dictionary cache lookups by outcome.",
		}, []string{"result"})),
		WordConcat: register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "word_concat_total",
			Help:      "Count of word concatenation requests by outcome.",
		}, []string{"result"})),
	}
}

// ObserveShopping records a calculation outcome.
func (m *DomainMetrics) ObserveShopping(format, result string, missing int) {
	if m == nil {
		return
	}
	m.ShoppingCalculations.WithLabelValues(format, result).Inc()
	if missing > 0 {
		m.ShoppingItemsNotFound.Add(float64(missing))
	}
}

// ObserveDictionary records a dictionary operation outcome.
func (m *DomainMetrics) ObserveDictionary(op, result string) {
	if m == nil {
		return
	}
	m.DictionaryOperations.WithLabelValues(op, result).Inc()
}

// ObserveCache records a cache hit or miss.
func (m *DomainMetrics) ObserveCache(hit bool) {
	if m == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	m.DictionaryCache.WithLabelValues(result).Inc()
}

// ObserveConcat records a concatenation outcome.
func (m *DomainMetrics) ObserveConcat(result string) {
	if m == nil {
		return
	}
	m.WordConcat.WithLabelValues(result).Inc()
}
