package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds all Prometheus metrics for the plugin framework
type Metrics struct {
	// Registry metrics
	PluginsRegistered prometheus.Gauge
	LoadSkippedTotal  *prometheus.CounterVec
	LoadAttemptsTotal *prometheus.CounterVec

	// Dispatch metrics
	DispatchTotal        *prometheus.CounterVec
	HandlersInvokedTotal *prometheus.CounterVec
	HandlersSkippedTotal *prometheus.CounterVec
	HandlerErrorsTotal   *prometheus.CounterVec

	// Render cache metrics
	RenderCacheHitsTotal      prometheus.Counter
	RenderCacheMissesTotal    prometheus.Counter
	RenderCacheEvictionsTotal prometheus.Counter
}

// NewMetrics creates and registers all Prometheus metrics
func NewMetrics(registry *prometheus.Registry) *Metrics {
	m := &Metrics{
		PluginsRegistered: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "inkwell_plugins_registered",
				Help: "Number of plugins in the registry after the last successful load",
			},
		),
		LoadSkippedTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "inkwell_plugin_load_skipped_total",
				Help: "Total number of plugin descriptors skipped during load",
			},
			[]string{"reason"},
		),
		LoadAttemptsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "inkwell_registry_load_attempts_total",
				Help: "Total number of registry load attempts",
			},
			[]string{"result"},
		),

		DispatchTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "inkwell_plugin_dispatch_total",
				Help: "Total number of lifecycle events raised",
			},
			[]string{"event"},
		),
		HandlersInvokedTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "inkwell_plugin_handlers_invoked_total",
				Help: "Total number of handler invocations",
			},
			[]string{"event", "plugin"},
		),
		HandlersSkippedTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "inkwell_plugin_handlers_skipped_total",
				Help: "Total number of handlers skipped during dispatch",
			},
			[]string{"event", "reason"},
		),
		HandlerErrorsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "inkwell_plugin_handler_errors_total",
				Help: "Total number of handler errors and panics discarded by dispatch",
			},
			[]string{"event", "plugin"},
		),

		RenderCacheHitsTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "inkwell_render_cache_hits_total",
				Help: "Total number of render cache hits",
			},
		),
		RenderCacheMissesTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "inkwell_render_cache_misses_total",
				Help: "Total number of render cache misses",
			},
		),
		RenderCacheEvictionsTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "inkwell_render_cache_evictions_total",
				Help: "Total number of render cache evictions",
			},
		),
	}

	// Register all metrics
	registry.MustRegister(
		m.PluginsRegistered,
		m.LoadSkippedTotal,
		m.LoadAttemptsTotal,
		m.DispatchTotal,
		m.HandlersInvokedTotal,
		m.HandlersSkippedTotal,
		m.HandlerErrorsTotal,
		m.RenderCacheHitsTotal,
		m.RenderCacheMissesTotal,
		m.RenderCacheEvictionsTotal,
	)

	return m
}
