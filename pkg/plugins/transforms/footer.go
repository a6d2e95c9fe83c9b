package transforms

import (
	"context"
	"fmt"

	"github.com/inkwellcms/inkwell/pkg/blog"
	"github.com/inkwellcms/inkwell/pkg/plugins"
)

func init() {
	plugins.MustRegisterFactory("footer", func(d *plugins.Descriptor) (plugins.Plugin, error) {
		return NewFooter(d)
	})
}

// Footer appends a configured HTML fragment to entries rendered on
// their own permalink page. The fragment comes from the "html" setting
// and is required.
type Footer struct {
	id   string
	html string
}

// NewFooter builds a footer plugin from its descriptor
func NewFooter(d *plugins.Descriptor) (*Footer, error) {
	fragment := d.Settings["html"]
	if fragment == "" {
		return nil, fmt.Errorf("footer plugin requires an html setting")
	}
	return &Footer{id: d.ID, html: fragment}, nil
}

// ID returns the configured instance id
func (p *Footer) ID() string {
	return p.id
}

// Info returns the plugin metadata
func (p *Footer) Info() *plugins.Info {
	return &plugins.Info{
		Name:        "Entry Footer",
		Description: "Appends a footer to entries on their permalink page",
		Author:      "Inkwell",
		Version:     "1.0.0",
	}
}

// Init subscribes the single-entry rendering handler
func (p *Footer) Init(hc *plugins.HostContext) error {
	return hc.Subscribe(plugins.EventSingleEntryRendering, p.onSingleRendering)
}

func (p *Footer) onSingleRendering(ctx context.Context, e *blog.Entry, args *plugins.EventArgs) error {
	e.Body = e.Body + "\n" + p.html
	return nil
}
