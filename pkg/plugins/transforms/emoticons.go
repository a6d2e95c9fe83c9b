package transforms

import (
	"context"
	"fmt"
	"html"
	"strings"

	"github.com/inkwellcms/inkwell/pkg/blog"
	"github.com/inkwellcms/inkwell/pkg/plugins"
)

func init() {
	plugins.MustRegisterFactory("emoticons", func(d *plugins.Descriptor) (plugins.Plugin, error) {
		return NewEmoticons(d)
	})
}

// defaultEmoticonTable maps text smilies to image file names
var defaultEmoticonTable = []pair{
	{":)", "smile.gif"},
	{":(", "sad.gif"},
	{";)", "wink.gif"},
	{":D", "laugh.gif"},
	{":P", "tongue.gif"},
	{":O", "surprise.gif"},
}

const defaultEmoticonBaseURL = "/images/emoticons/"

// Emoticons replaces text smilies in rendered entry bodies with image
// tags. The table and image base URL are overridable through the
// descriptor settings "table" (whitespace-separated smiley=image
// tokens) and "base_url".
type Emoticons struct {
	id       string
	replacer *strings.Replacer
}

// NewEmoticons builds an emoticons plugin from its descriptor
func NewEmoticons(d *plugins.Descriptor) (*Emoticons, error) {
	table := defaultEmoticonTable
	if s, ok := d.Settings["table"]; ok {
		table = parsePairs(s)
		if len(table) == 0 {
			return nil, fmt.Errorf("emoticons table setting has no smiley=image tokens")
		}
	}

	baseURL := defaultEmoticonBaseURL
	if s, ok := d.Settings["base_url"]; ok {
		baseURL = s
	}

	oldnew := make([]string, 0, len(table)*2)
	for _, p := range table {
		img := fmt.Sprintf(`<img src="%s" alt="%s" />`,
			html.EscapeString(baseURL+p.value), html.EscapeString(p.key))
		oldnew = append(oldnew, p.key, img)
	}

	return &Emoticons{
		id:       d.ID,
		replacer: strings.NewReplacer(oldnew...),
	}, nil
}

// ID returns the configured instance id
func (p *Emoticons) ID() string {
	return p.id
}

// Info returns the plugin metadata
func (p *Emoticons) Info() *plugins.Info {
	return &plugins.Info{
		Name:        "Emoticons",
		Description: "Replaces text smilies in entry bodies with images",
		Author:      "Inkwell",
		Version:     "1.0.0",
	}
}

// Init subscribes the rendering handler
func (p *Emoticons) Init(hc *plugins.HostContext) error {
	return hc.Subscribe(plugins.EventEntryRendering, p.onRendering)
}

func (p *Emoticons) onRendering(ctx context.Context, e *blog.Entry, args *plugins.EventArgs) error {
	e.Body = p.replacer.Replace(e.Body)
	return nil
}
