package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// OrderMetrics holds the counters for the order API.
type OrderMetrics struct {
	ordersCreated    prometheus.Counter
	ordersRejected   prometheus.Counter
	statusTransition *prometheus.CounterVec
}

// NewOrderMetrics registers the collectors on the default registerer.
func NewOrderMetrics() *OrderMetrics {
	return NewOrderMetricsWithRegisterer(prometheus.DefaultRegisterer)
}

func NewOrderMetricsWithRegisterer(registerer prometheus.Registerer) *OrderMetrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	return &OrderMetrics{
		ordersCreated: registerCounter(registerer, prometheus.CounterOpts{
			Name: "ecommerce_orders_created_total",
			Help: "Total number of orders created",
		}),
		ordersRejected: registerCounter(registerer, prometheus.CounterOpts{
			Name: "ecommerce_orders_rejected_total",
			Help: "Total number of order requests rejected by validation",
		}),
		statusTransition: registerCounterVec(registerer, prometheus.CounterOpts{
			Name: "ecommerce_order_status_transitions_total",
			Help: "Total number of order status transitions applied",
		}, []string{"from", "to"}),
	}
}

func (m *OrderMetrics) OrderCreated() {
	if m == nil {
		return
	}
	m.ordersCreated.Inc()
}

func (m *OrderMetrics) OrderRejected() {
	if m == nil {
		return
	}
	m.ordersRejected.Inc()
}

func (m *OrderMetrics) StatusTransition(from, to string) {
	if m == nil {
		return
	}
	m.statusTransition.WithLabelValues(from, to).Inc()
}

func registerCounter(registerer prometheus.Registerer, opts prometheus.CounterOpts) prometheus.Counter {
	c := prometheus.NewCounter(opts)
	if err := registerer.Register(c); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			return are.ExistingCollector.(prometheus.Counter)
		}
		panic(err)
	}
	return c
}

func registerCounterVec(registerer prometheus.Registerer, opts prometheus.CounterOpts, labels []string) *prometheus.CounterVec {
	c := prometheus.NewCounterVec(opts, labels)
	if err := registerer.Register(c); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			return are.ExistingCollector.(*prometheus.CounterVec)
		}
		panic(err)
	}
	return c
}
