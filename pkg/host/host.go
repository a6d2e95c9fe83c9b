package host

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/sirupsen/logrus"

	"github.com/inkwellcms/inkwell/pkg/config"
	"github.com/inkwellcms/inkwell/pkg/observability"
	"github.com/inkwellcms/inkwell/pkg/plugins"
	"github.com/inkwellcms/inkwell/pkg/rendercache"
	"github.com/inkwellcms/inkwell/pkg/tenant"
)

// Host is the composition root of the plugin framework
type Host struct {
	cfg     *config.Config
	log     *logrus.Logger
	metrics *observability.Metrics

	store *tenant.Store
	cache *rendercache.Cache

	registry atomic.Pointer[plugins.Registry]

	// Guards first-time registry initialization and the retry state
	mu          sync.Mutex
	retry       *backoff.ExponentialBackOff
	nextAttempt time.Time
	lastErr     error

	stopWatch context.CancelFunc
}

// New creates a host from the given configuration. The logger may be nil,
// in which case one is built from the configured log level. Metrics are
// optional.
func New(cfg *config.Config, log *logrus.Logger, metrics *observability.Metrics) (*Host, error) {
	if cfg == nil {
		return nil, fmt.Errorf("host requires a configuration")
	}
	if log == nil {
		log = observability.NewLogger(cfg.Observability.LogLevel)
	}

	h := &Host{
		cfg:     cfg,
		log:     log,
		metrics: metrics,
		store:   tenant.NewStore(cfg.Files.BlogsFile, log),
		cache:   rendercache.New(cfg.Registry.RenderCacheSize, metrics),
		retry:   newRetryBackoff(cfg.Registry),
	}

	// A missing blogs file is not fatal: the watcher picks it up when it
	// appears, and until then no plugin is enabled anywhere.
	if err := h.store.Load(); err != nil {
		log.Warnf("Failed to load blogs file at startup: %v", err)
	}

	if cfg.Files.WatchBlogs {
		ctx, cancel := context.WithCancel(context.Background())
		if err := h.store.Watch(ctx); err != nil {
			cancel()
			return nil, err
		}
		h.stopWatch = cancel
	}

	return h, nil
}

// newRetryBackoff builds the gate between failed registry loads
func newRetryBackoff(cfg config.RegistryConfig) *backoff.ExponentialBackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = cfg.RetryInitialInterval
	b.MaxInterval = cfg.RetryMaxInterval
	b.MaxElapsedTime = 0 // retry for as long as the process lives
	b.Reset()
	return b
}

// Registry returns the plugin registry, loading it on first use.
//
// The first caller performs the load; concurrent callers block until it
// finishes and then observe the published pointer. A failed load is not
// retried until its backoff window has passed, so callers inside the window
// get the previous error back without touching the plugins file.
func (h *Host) Registry() (*plugins.Registry, error) {
	if reg := h.registry.Load(); reg != nil {
		return reg, nil
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if reg := h.registry.Load(); reg != nil {
		return reg, nil
	}
	if h.lastErr != nil && time.Now().Before(h.nextAttempt) {
		return nil, h.lastErr
	}

	descriptors, err := config.LoadPlugins(h.cfg.Files.PluginsFile)
	if err != nil {
		h.lastErr = err
		h.nextAttempt = time.Now().Add(h.retry.NextBackOff())
		if h.metrics != nil {
			h.metrics.LoadAttemptsTotal.WithLabelValues("failure").Inc()
		}
		h.log.Errorf("Plugin registry load failed: %v", err)
		return nil, err
	}

	reg := plugins.Load(descriptors, plugins.Options{
		Logger:     h.log,
		Metrics:    h.metrics,
		Enablement: h.store,
	})
	h.registry.Store(reg)
	h.lastErr = nil

	if h.metrics != nil {
		h.metrics.LoadAttemptsTotal.WithLabelValues("success").Inc()
	}
	h.log.Infof("Plugin registry initialized with %d plugins", reg.Count())
	return reg, nil
}

// Blogs returns the tenant store backing per-blog plugin enablement
func (h *Host) Blogs() *tenant.Store {
	return h.store
}

// Close stops the blogs file watcher
func (h *Host) Close() {
	if h.stopWatch != nil {
		h.stopWatch()
	}
}
