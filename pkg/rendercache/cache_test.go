package rendercache

// Tests for the render cache.
// Tests cover:
// - Key construction and revision-based invalidation
// - Get and Add round trips
// - LRU eviction with metric counting
// - Purge and Len
// - Nil metrics and degenerate sizes

import (
	"fmt"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkwellcms/inkwell/pkg/blog"
	"github.com/inkwellcms/inkwell/pkg/observability"
)

func testEntry(updated time.Time) (*blog.Blog, *blog.Entry) {
	b := &blog.Blog{ID: "devblog", Host: "dev.example.com"}
	e := &blog.Entry{
		ID:        "e1",
		BlogID:    b.ID,
		Title:     "Hello",
		Body:      "raw body",
		UpdatedAt: updated,
	}
	return b, e
}

func TestKey(t *testing.T) {
	updated := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	b, e := testEntry(updated)

	want := fmt.Sprintf("devblog/e1@%d", updated.UnixNano())
	assert.Equal(t, want, Key(b, e))
}

func TestKey_ChangesWithRevision(t *testing.T) {
	updated := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	b, e := testEntry(updated)
	before := Key(b, e)

	e.UpdatedAt = updated.Add(time.Second)
	assert.NotEqual(t, before, Key(b, e))
}

func TestCache_GetAdd(t *testing.T) {
	c := New(8, nil)
	b, e := testEntry(time.Now())
	key := Key(b, e)

	_, ok := c.Get(key)
	assert.False(t, ok)

	c.Add(key, "<p>rendered</p>")

	rendered, ok := c.Get(key)
	require.True(t, ok)
	assert.Equal(t, "<p>rendered</p>", rendered)
	assert.Equal(t, 1, c.Len())
}

func TestCache_RevisionInvalidates(t *testing.T) {
	c := New(8, nil)
	b, e := testEntry(time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC))

	c.Add(Key(b, e), "old rendering")

	// An update bumps the revision, so the stale rendering is unreachable
	e.UpdatedAt = e.UpdatedAt.Add(time.Minute)
	_, ok := c.Get(Key(b, e))
	assert.False(t, ok)
}

func TestCache_Eviction(t *testing.T) {
	metrics := observability.NewMetrics(prometheus.NewRegistry())
	c := New(2, metrics)

	c.Add("a", "1")
	c.Add("b", "2")
	c.Add("c", "3")

	assert.Equal(t, 2, c.Len())
	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.RenderCacheEvictionsTotal))

	// Oldest key is gone, newest two remain
	_, ok := c.Get("a")
	assert.False(t, ok)
	_, ok = c.Get("c")
	assert.True(t, ok)
}

func TestCache_Metrics(t *testing.T) {
	metrics := observability.NewMetrics(prometheus.NewRegistry())
	c := New(8, metrics)

	c.Get("absent")
	c.Add("k", "v")
	c.Get("k")
	c.Get("k")

	assert.Equal(t, float64(2), testutil.ToFloat64(metrics.RenderCacheHitsTotal))
	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.RenderCacheMissesTotal))
}

func TestCache_Purge(t *testing.T) {
	c := New(8, nil)
	c.Add("a", "1")
	c.Add("b", "2")
	require.Equal(t, 2, c.Len())

	c.Purge()
	assert.Equal(t, 0, c.Len())
	_, ok := c.Get("a")
	assert.False(t, ok)
}

func TestNew_DegenerateSize(t *testing.T) {
	c := New(0, nil)

	c.Add("a", "1")
	rendered, ok := c.Get("a")
	require.True(t, ok)
	assert.Equal(t, "1", rendered)

	// Size is clamped to one slot
	c.Add("b", "2")
	_, ok = c.Get("a")
	assert.False(t, ok)
}
