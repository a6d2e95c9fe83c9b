package tenant

import (
	"context"

	"github.com/inkwellcms/inkwell/pkg/blog"
)

// Key is the type for context keys to prevent collisions
type Key string

// BlogKey contains *blog.Blog
// Set by: request plumbing in the hosting application
// Used by: raise wrappers and handlers that need the active blog
const BlogKey Key = "active_blog"

// NewContext returns a context carrying the active blog
func NewContext(ctx context.Context, b *blog.Blog) context.Context {
	return context.WithValue(ctx, BlogKey, b)
}

// FromContext extracts the active blog from the context
func FromContext(ctx context.Context) (*blog.Blog, bool) {
	b, ok := ctx.Value(BlogKey).(*blog.Blog)
	return b, ok
}
