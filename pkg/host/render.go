package host

import (
	"context"
	"fmt"

	"github.com/inkwellcms/inkwell/pkg/blog"
	"github.com/inkwellcms/inkwell/pkg/plugins"
	"github.com/inkwellcms/inkwell/pkg/rendercache"
)

// EntryUpdating raises entry.updating. Call it before persisting a change
// so plugins can rewrite the entry that is about to be saved.
func (h *Host) EntryUpdating(ctx context.Context, b *blog.Blog, e *blog.Entry, state blog.EntryState) error {
	reg, err := h.Registry()
	if err != nil {
		return err
	}
	reg.Raise(ctx, plugins.EventEntryUpdating, e, &plugins.EventArgs{Blog: b, State: state})
	return nil
}

// EntryUpdated raises entry.updated. Call it after the change has been
// persisted.
func (h *Host) EntryUpdated(ctx context.Context, b *blog.Blog, e *blog.Entry, state blog.EntryState) error {
	reg, err := h.Registry()
	if err != nil {
		return err
	}
	reg.Raise(ctx, plugins.EventEntryUpdated, e, &plugins.EventArgs{Blog: b, State: state})
	return nil
}

// RenderEntry returns the entry body with rendering plugins applied.
//
// Rendered output is cached by blog, entry, and revision. On a miss the
// rendering events run against a copy of the entry, so stored content never
// carries rendered markup. Pass single for single-entry pages, which run
// the entry.rendering.single event on top of entry.rendering.
func (h *Host) RenderEntry(ctx context.Context, b *blog.Blog, e *blog.Entry, single bool) (string, error) {
	if b == nil {
		return "", fmt.Errorf("cannot render without an active blog")
	}
	if e == nil {
		return "", fmt.Errorf("cannot render a nil entry")
	}

	reg, err := h.Registry()
	if err != nil {
		return "", err
	}

	// Single-entry pages run an extra event, so they cache under their own key
	key := rendercache.Key(b, e)
	if single {
		key += "#single"
	}

	if rendered, ok := h.cache.Get(key); ok {
		return rendered, nil
	}

	draft := e.Clone()
	args := &plugins.EventArgs{Blog: b}
	reg.Raise(ctx, plugins.EventEntryRendering, draft, args)
	if single {
		reg.Raise(ctx, plugins.EventSingleEntryRendering, draft, args)
	}

	h.cache.Add(key, draft.Body)
	return draft.Body, nil
}
