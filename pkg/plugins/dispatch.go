package plugins

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/inkwellcms/inkwell/pkg/blog"
)

// Handler skip reasons recorded on the handlers_skipped metric
const (
	skipNoBlog   = "no_blog"
	skipDisabled = "disabled"
)

// Raise dispatches a lifecycle event to every subscribed handler in
// subscription order. Each handler runs under the
// invoke-and-discard-errors policy: a returned error or a panic is
// logged at error level, counted, and otherwise discarded, so one
// misbehaving plugin never blocks the entry pipeline or the handlers
// after it. Raising an event with no subscribers is a no-op.
//
// Enablement is evaluated per call against args.Blog. Without an
// active blog every handler is skipped, since there is no tenant to
// evaluate enablement against.
func (r *Registry) Raise(ctx context.Context, kind EventKind, e *blog.Entry, args *EventArgs) {
	if r.metrics != nil {
		r.metrics.DispatchTotal.WithLabelValues(string(kind)).Inc()
	}

	subs := r.handlers[kind]
	if len(subs) == 0 {
		return
	}

	for _, sub := range subs {
		if args == nil || args.Blog == nil {
			r.log.WithFields(logrus.Fields{
				"event":  kind,
				"plugin": sub.pluginID,
			}).Debug("No active blog, skipping handler")
			r.skipHandler(kind, skipNoBlog)
			continue
		}

		if r.enablement != nil && !r.enablement.Enabled(args.Blog.ID, sub.pluginID) {
			r.skipHandler(kind, skipDisabled)
			continue
		}

		args.PluginID = sub.pluginID
		r.invoke(ctx, kind, sub, e, args)
	}
}

// invoke runs a single handler, recovering panics and discarding errors
func (r *Registry) invoke(ctx context.Context, kind EventKind, sub subscription, e *blog.Entry, args *EventArgs) {
	defer func() {
		if rec := recover(); rec != nil {
			r.log.WithFields(logrus.Fields{
				"event":  kind,
				"plugin": sub.pluginID,
			}).Errorf("Plugin handler panicked: %v", rec)
			if r.metrics != nil {
				r.metrics.HandlerErrorsTotal.WithLabelValues(string(kind), sub.pluginID).Inc()
			}
		}
	}()

	if r.metrics != nil {
		r.metrics.HandlersInvokedTotal.WithLabelValues(string(kind), sub.pluginID).Inc()
	}

	if err := sub.handler(ctx, e, args); err != nil {
		r.log.WithFields(logrus.Fields{
			"event":  kind,
			"plugin": sub.pluginID,
		}).Errorf("Plugin handler failed: %v", err)
		if r.metrics != nil {
			r.metrics.HandlerErrorsTotal.WithLabelValues(string(kind), sub.pluginID).Inc()
		}
	}
}

// skipHandler counts one handler skipped during dispatch
func (r *Registry) skipHandler(kind EventKind, reason string) {
	if r.metrics != nil {
		r.metrics.HandlersSkippedTotal.WithLabelValues(string(kind), reason).Inc()
	}
}
