package integration

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/inkwellcms/inkwell/pkg/blog"
	"github.com/inkwellcms/inkwell/pkg/config"
	"github.com/inkwellcms/inkwell/pkg/host"
	"github.com/inkwellcms/inkwell/pkg/observability"

	// Link in the shipped plugin implementations
	_ "github.com/inkwellcms/inkwell/pkg/plugins/lua"
	_ "github.com/inkwellcms/inkwell/pkg/plugins/transforms"
)

const greeterScript = `
plugin = {
    name = "Greeter",
    version = "1.0.0",
    author = "integration",
}

function on_entry_updating(entry, args)
    if entry.title == "" then
        entry.title = "Untitled"
    end
end

function on_single_entry_rendering(entry, args)
    entry.body = entry.body .. "\n<p>greetings from " .. args.blog.id .. "</p>"
end
`

const blogsYAML = `
blogs:
  - id: devblog
    host: dev.example.com
    title: Dev Blog
    plugins: [slugger, emoticons-main, footer-main, greeter]
  - id: minimal
    host: min.example.com
    plugins: [slugger]
`

// writeFixture lays out a full configuration on disk: a Lua script, a
// plugins file using every shipped impl plus one broken descriptor, and a
// blogs file with two differently-configured blogs
func writeFixture(t *testing.T) *config.Config {
	t.Helper()

	dir := t.TempDir()

	scriptPath := filepath.Join(dir, "greeter.lua")
	if err := os.WriteFile(scriptPath, []byte(greeterScript), 0o644); err != nil {
		t.Fatalf("Failed to write script: %v", err)
	}

	pluginsYAML := `
plugins:
  - id: slugger
    name: Slugger
    impl: slugger
  - id: emoticons-main
    name: Emoticons
    impl: emoticons
    settings:
      table: ":)=smile.gif ;)=wink.gif"
      base_url: /img/
  - id: footer-main
    name: Entry Footer
    impl: footer
    settings:
      html: '<p class="footer">thanks for reading</p>'
  - id: greeter
    name: Greeter
    impl: lua
    modules:
      script: "` + scriptPath + `"
  - id: broken
    name: Broken
    impl: no-such-impl
`

	pluginsPath := filepath.Join(dir, "plugins.yaml")
	if err := os.WriteFile(pluginsPath, []byte(pluginsYAML), 0o644); err != nil {
		t.Fatalf("Failed to write plugins file: %v", err)
	}

	blogsPath := filepath.Join(dir, "blogs.yaml")
	if err := os.WriteFile(blogsPath, []byte(blogsYAML), 0o644); err != nil {
		t.Fatalf("Failed to write blogs file: %v", err)
	}

	return &config.Config{
		Files: config.FilesConfig{
			PluginsFile: pluginsPath,
			BlogsFile:   blogsPath,
		},
		Registry: config.RegistryConfig{
			RenderCacheSize:      64,
			RetryInitialInterval: 500 * time.Millisecond,
			RetryMaxInterval:     2 * time.Minute,
		},
		Observability: config.ObservabilityConfig{LogLevel: "error"},
	}
}

func newHost(t *testing.T, cfg *config.Config) (*host.Host, *observability.Metrics) {
	t.Helper()

	metrics := observability.NewMetrics(prometheus.NewRegistry())
	logger := observability.NewNopLogger()

	h, err := host.New(cfg, logger, metrics)
	if err != nil {
		t.Fatalf("Failed to create host: %v", err)
	}
	t.Cleanup(h.Close)
	return h, metrics
}

// TestPluginLifecycle walks the whole pipeline: load, commit-side events,
// render-side events, and per-blog enablement
func TestPluginLifecycle(t *testing.T) {
	cfg := writeFixture(t)
	h, metrics := newHost(t, cfg)
	ctx := context.Background()

	// Load registers everything except the broken descriptor
	reg, err := h.Registry()
	if err != nil {
		t.Fatalf("Registry() failed: %v", err)
	}
	if reg.Count() != 4 {
		t.Fatalf("Expected 4 plugins, got %d", reg.Count())
	}
	for _, id := range []string{"slugger", "emoticons-main", "footer-main", "greeter"} {
		if !reg.Has(id) {
			t.Errorf("Expected plugin %s to be registered", id)
		}
	}
	if reg.Has("broken") {
		t.Error("Broken descriptor must not register")
	}
	if got := testutil.ToFloat64(metrics.LoadSkippedTotal.WithLabelValues("unknown_factory")); got != 1 {
		t.Errorf("Expected 1 unknown_factory skip, got %v", got)
	}

	dev := &blog.Blog{ID: "devblog", Host: "dev.example.com", Title: "Dev Blog"}
	entry := blog.NewEntry("devblog", "Hello, World!", "hi :) everyone")

	// Commit side: the slugger fills in the empty slug
	if err := h.EntryUpdating(ctx, dev, entry, blog.StateCreate); err != nil {
		t.Fatalf("EntryUpdating failed: %v", err)
	}
	if entry.Slug != "hello-world" {
		t.Errorf("Expected slug hello-world, got %q", entry.Slug)
	}
	if err := h.EntryUpdated(ctx, dev, entry, blog.StateCreate); err != nil {
		t.Fatalf("EntryUpdated failed: %v", err)
	}

	// Render side, listing page: emoticons replaced, no footer, no greeting
	listing, err := h.RenderEntry(ctx, dev, entry, false)
	if err != nil {
		t.Fatalf("RenderEntry failed: %v", err)
	}
	wantListing := `hi <img src="/img/smile.gif" alt=":)" /> everyone`
	if listing != wantListing {
		t.Errorf("Listing rendering = %q, want %q", listing, wantListing)
	}

	// Render side, permalink page: footer and Lua greeting on top
	single, err := h.RenderEntry(ctx, dev, entry, true)
	if err != nil {
		t.Fatalf("RenderEntry (single) failed: %v", err)
	}
	wantSingle := wantListing +
		"\n<p class=\"footer\">thanks for reading</p>" +
		"\n<p>greetings from devblog</p>"
	if single != wantSingle {
		t.Errorf("Single rendering = %q, want %q", single, wantSingle)
	}

	// The stored entry still holds the raw body
	if entry.Body != "hi :) everyone" {
		t.Errorf("Raw body was mutated by rendering: %q", entry.Body)
	}
}

// TestPluginLifecycle_PerBlogEnablement renders the same content for a blog
// with almost everything disabled
func TestPluginLifecycle_PerBlogEnablement(t *testing.T) {
	cfg := writeFixture(t)
	h, _ := newHost(t, cfg)
	ctx := context.Background()

	min := &blog.Blog{ID: "minimal", Host: "min.example.com"}
	entry := blog.NewEntry("minimal", "Another Post", "hi :) everyone")

	// Only the slugger is enabled for this blog
	if err := h.EntryUpdating(ctx, min, entry, blog.StateCreate); err != nil {
		t.Fatalf("EntryUpdating failed: %v", err)
	}
	if entry.Slug != "another-post" {
		t.Errorf("Expected slug another-post, got %q", entry.Slug)
	}

	rendered, err := h.RenderEntry(ctx, min, entry, true)
	if err != nil {
		t.Fatalf("RenderEntry failed: %v", err)
	}
	if rendered != "hi :) everyone" {
		t.Errorf("Disabled plugins still ran: %q", rendered)
	}
}

// TestPluginLifecycle_LuaDefaultTitle exercises the script's commit hook
// writing back through the bridge
func TestPluginLifecycle_LuaDefaultTitle(t *testing.T) {
	cfg := writeFixture(t)
	h, _ := newHost(t, cfg)

	dev := &blog.Blog{ID: "devblog"}
	entry := blog.NewEntry("devblog", "", "draft body")

	if err := h.EntryUpdating(context.Background(), dev, entry, blog.StateCreate); err != nil {
		t.Fatalf("EntryUpdating failed: %v", err)
	}
	if entry.Title != "Untitled" {
		t.Errorf("Expected Lua hook to default the title, got %q", entry.Title)
	}
}

// TestPluginLifecycle_RenderCache verifies rendering is served from cache
// until the entry changes
func TestPluginLifecycle_RenderCache(t *testing.T) {
	cfg := writeFixture(t)
	h, metrics := newHost(t, cfg)
	ctx := context.Background()

	dev := &blog.Blog{ID: "devblog"}
	entry := blog.NewEntry("devblog", "Cached", "hello :)")

	first, err := h.RenderEntry(ctx, dev, entry, false)
	if err != nil {
		t.Fatalf("RenderEntry failed: %v", err)
	}
	second, err := h.RenderEntry(ctx, dev, entry, false)
	if err != nil {
		t.Fatalf("RenderEntry failed: %v", err)
	}
	if first != second {
		t.Errorf("Cached rendering differs: %q vs %q", first, second)
	}
	if got := testutil.ToFloat64(metrics.RenderCacheHitsTotal); got != 1 {
		t.Errorf("Expected 1 cache hit, got %v", got)
	}

	// Saving the entry bumps its revision and invalidates the cache
	entry.Body = "hello ;)"
	entry.Touch()

	third, err := h.RenderEntry(ctx, dev, entry, false)
	if err != nil {
		t.Fatalf("RenderEntry failed: %v", err)
	}
	want := `hello <img src="/img/wink.gif" alt=";)" />`
	if third != want {
		t.Errorf("Post-update rendering = %q, want %q", third, want)
	}
	if got := testutil.ToFloat64(metrics.RenderCacheMissesTotal); got != 2 {
		t.Errorf("Expected 2 cache misses, got %v", got)
	}
}

// TestPluginLifecycle_BlogsReload edits the blogs file under a watching
// host and waits for enablement to change
func TestPluginLifecycle_BlogsReload(t *testing.T) {
	cfg := writeFixture(t)
	cfg.Files.WatchBlogs = true
	h, _ := newHost(t, cfg)

	if !h.Blogs().Enabled("devblog", "emoticons-main") {
		t.Fatal("Expected emoticons-main enabled before the edit")
	}

	updated := strings.Replace(blogsYAML, "[slugger, emoticons-main, footer-main, greeter]", "[slugger]", 1)
	if err := os.WriteFile(cfg.Files.BlogsFile, []byte(updated), 0o644); err != nil {
		t.Fatalf("Failed to rewrite blogs file: %v", err)
	}

	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		if !h.Blogs().Enabled("devblog", "emoticons-main") {
			break
		}
		time.Sleep(20 * time.Millisecond)
	}
	if h.Blogs().Enabled("devblog", "emoticons-main") {
		t.Fatal("Blogs file change was not picked up")
	}

	// A fresh entry renders without the now-disabled emoticons
	dev := &blog.Blog{ID: "devblog"}
	entry := blog.NewEntry("devblog", "After Reload", "bye :)")
	rendered, err := h.RenderEntry(context.Background(), dev, entry, false)
	if err != nil {
		t.Fatalf("RenderEntry failed: %v", err)
	}
	if rendered != "bye :)" {
		t.Errorf("Disabled plugin still ran after reload: %q", rendered)
	}
}
