// Package metrics exposes ingest-pipeline counters on a Prometheus registry.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry bundles the pipeline's Prometheus collectors.
type Registry struct {
	reg *prometheus.Registry

	OrdersExtracted  prometheus.Counter
	OrdersExcluded   prometheus.Counter
	OrdersFailed     prometheus.Counter
	RecordsPersisted prometheus.Counter
	PersistFailures  prometheus.Counter
}

// NewRegistry creates a registry with all pipeline collectors registered.
func NewRegistry() *Registry {
	r := prometheus.NewRegistry()

	ordersExtracted := prometheus.NewCounter(prometheus.CounterOpts{Name: "packline_orders_extracted_total"})
	ordersExcluded := prometheus.NewCounter(prometheus.CounterOpts{Name: "packline_orders_excluded_total"})
	ordersFailed := prometheus.NewCounter(prometheus.CounterOpts{Name: "packline_orders_failed_total"})
	recordsPersisted := prometheus.NewCounter(prometheus.CounterOpts{Name: "packline_records_persisted_total"})
	persistFailures := prometheus.NewCounter(prometheus.CounterOpts{Name: "packline_persist_failures_total"})

	r.MustRegister(ordersExtracted, ordersExcluded, ordersFailed, recordsPersisted, persistFailures)

	return &Registry{
		reg:              r,
		OrdersExtracted:  ordersExtracted,
		OrdersExcluded:   ordersExcluded,
		OrdersFailed:     ordersFailed,
		RecordsPersisted: recordsPersisted,
		PersistFailures:  persistFailures,
	}
}

// Handler returns the HTTP handler serving the registry.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{})
}
