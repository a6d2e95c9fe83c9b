package tenant

import (
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/inkwellcms/inkwell/pkg/blog"
)

// ErrBlogNotFound indicates the store has no blog with the given id
var ErrBlogNotFound = errors.New("blog not found")

// blogsFile is the on-disk shape of the blogs configuration
type blogsFile struct {
	Blogs []blogEntry `yaml:"blogs"`
}

// blogEntry is one configured blog plus its enabled plugin ids
type blogEntry struct {
	blog.Blog `yaml:",inline"`
	Plugins   []string `yaml:"plugins"`
}

// snapshot is one immutable parse of the blogs file
type snapshot struct {
	blogs   map[string]*blog.Blog
	order   []string
	plugins map[string][]string
	enabled map[string]map[string]bool
}

// Store serves per-blog plugin enablement from the blogs file. Reads
// are guarded against concurrent snapshot swaps by the watcher.
type Store struct {
	path string
	log  *logrus.Logger

	mu   sync.RWMutex
	snap *snapshot
}

// NewStore creates a store for the given blogs file. Call Load before
// first use.
func NewStore(path string, log *logrus.Logger) *Store {
	if log == nil {
		log = logrus.New()
	}

	return &Store{
		path: path,
		log:  log,
		snap: &snapshot{
			blogs:   make(map[string]*blog.Blog),
			plugins: make(map[string][]string),
			enabled: make(map[string]map[string]bool),
		},
	}
}

// Load reads and parses the blogs file, swapping in the new snapshot
// on success. On failure the previous snapshot stays in place.
func (s *Store) Load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return fmt.Errorf("failed to read blogs file: %w", err)
	}

	var file blogsFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("failed to parse blogs file: %w", err)
	}

	snap := &snapshot{
		blogs:   make(map[string]*blog.Blog, len(file.Blogs)),
		plugins: make(map[string][]string, len(file.Blogs)),
		enabled: make(map[string]map[string]bool, len(file.Blogs)),
	}

	for i := range file.Blogs {
		entry := file.Blogs[i]
		if entry.ID == "" {
			s.log.Warnf("Skipping blog with empty id in %s", s.path)
			continue
		}
		if _, exists := snap.blogs[entry.ID]; exists {
			s.log.Warnf("Skipping duplicate blog id %q in %s, keeping the first", entry.ID, s.path)
			continue
		}

		b := entry.Blog
		snap.blogs[entry.ID] = &b
		snap.order = append(snap.order, entry.ID)
		snap.plugins[entry.ID] = append([]string(nil), entry.Plugins...)

		enabled := make(map[string]bool, len(entry.Plugins))
		for _, pluginID := range entry.Plugins {
			enabled[pluginID] = true
		}
		snap.enabled[entry.ID] = enabled
	}

	s.mu.Lock()
	s.snap = snap
	s.mu.Unlock()

	return nil
}

// Reload re-reads the blogs file
func (s *Store) Reload() error {
	return s.Load()
}

// Enabled reports whether a plugin is enabled for a blog. Unknown
// blogs have nothing enabled.
func (s *Store) Enabled(blogID, pluginID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.snap.enabled[blogID][pluginID]
}

// Blog retrieves a configured blog by id
func (s *Store) Blog(id string) (*blog.Blog, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	b, exists := s.snap.blogs[id]
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrBlogNotFound, id)
	}
	return b, nil
}

// Blogs returns all configured blogs in file order
func (s *Store) Blogs() []*blog.Blog {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*blog.Blog, 0, len(s.snap.order))
	for _, id := range s.snap.order {
		result = append(result, s.snap.blogs[id])
	}
	return result
}

// EnabledPlugins returns the plugin ids a blog has enabled, in file
// order
func (s *Store) EnabledPlugins(blogID string) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return append([]string(nil), s.snap.plugins[blogID]...)
}

// Len returns the number of configured blogs
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.snap.blogs)
}
