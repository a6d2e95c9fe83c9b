package transforms

import (
	"context"
	"regexp"
	"strings"

	"github.com/inkwellcms/inkwell/pkg/blog"
	"github.com/inkwellcms/inkwell/pkg/plugins"
)

func init() {
	plugins.MustRegisterFactory("slugger", func(d *plugins.Descriptor) (plugins.Plugin, error) {
		return NewSlugger(d)
	})
}

// slugStrip matches character runs that a slug cannot contain
var slugStrip = regexp.MustCompile(`[^a-z0-9]+`)

// Slugger derives a URL slug from the entry title when a commit leaves
// the slug empty. An existing slug is never overwritten. The word
// separator defaults to "-" and can be changed with the "separator"
// setting.
type Slugger struct {
	id        string
	separator string
}

// NewSlugger builds a slugger plugin from its descriptor
func NewSlugger(d *plugins.Descriptor) (*Slugger, error) {
	separator := "-"
	if s, ok := d.Settings["separator"]; ok && s != "" {
		separator = s
	}
	return &Slugger{id: d.ID, separator: separator}, nil
}

// ID returns the configured instance id
func (p *Slugger) ID() string {
	return p.id
}

// Info returns the plugin metadata
func (p *Slugger) Info() *plugins.Info {
	return &plugins.Info{
		Name:        "Slugger",
		Description: "Derives entry URL slugs from titles",
		Author:      "Inkwell",
		Version:     "1.0.0",
	}
}

// Init subscribes the commit-side handler
func (p *Slugger) Init(hc *plugins.HostContext) error {
	return hc.Subscribe(plugins.EventEntryUpdating, p.onUpdating)
}

func (p *Slugger) onUpdating(ctx context.Context, e *blog.Entry, args *plugins.EventArgs) error {
	if args.State == blog.StateDelete {
		return nil
	}
	if e.Slug != "" || e.Title == "" {
		return nil
	}
	e.Slug = p.slugify(e.Title)
	return nil
}

// slugify lowercases the title and collapses everything that is not a
// letter or digit into single separators
func (p *Slugger) slugify(title string) string {
	slug := slugStrip.ReplaceAllString(strings.ToLower(title), p.separator)
	return strings.Trim(slug, p.separator)
}
