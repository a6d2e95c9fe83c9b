package transforms

import (
	"context"
	"fmt"
	"html"
	"regexp"
	"strconv"

	"github.com/inkwellcms/inkwell/pkg/blog"
	"github.com/inkwellcms/inkwell/pkg/plugins"
)

func init() {
	plugins.MustRegisterFactory("keywords", func(d *plugins.Descriptor) (plugins.Plugin, error) {
		return NewKeywords(d)
	})
}

// keywordLink is one compiled keyword rule
type keywordLink struct {
	re  *regexp.Regexp
	url string
}

// Keywords auto-links configured words in rendered entry bodies.
// Matching is word-bounded and case-insensitive unless the
// "case_sensitive" setting is true. Only the first occurrence of each
// keyword is linked unless the "all" setting is true. The keyword list
// comes from the "keywords" setting as whitespace-separated word=url
// tokens.
type Keywords struct {
	id    string
	links []keywordLink
	all   bool
}

// NewKeywords builds a keywords plugin from its descriptor
func NewKeywords(d *plugins.Descriptor) (*Keywords, error) {
	pairs := parsePairs(d.Settings["keywords"])
	if len(pairs) == 0 {
		return nil, fmt.Errorf("keywords plugin requires a keywords setting with word=url tokens")
	}

	caseSensitive, _ := strconv.ParseBool(d.Settings["case_sensitive"])
	all, _ := strconv.ParseBool(d.Settings["all"])

	links := make([]keywordLink, 0, len(pairs))
	for _, p := range pairs {
		expr := `\b` + regexp.QuoteMeta(p.key) + `\b`
		if !caseSensitive {
			expr = `(?i)` + expr
		}
		re, err := regexp.Compile(expr)
		if err != nil {
			return nil, fmt.Errorf("bad keyword %q: %w", p.key, err)
		}
		links = append(links, keywordLink{re: re, url: p.value})
	}

	return &Keywords{id: d.ID, links: links, all: all}, nil
}

// ID returns the configured instance id
func (p *Keywords) ID() string {
	return p.id
}

// Info returns the plugin metadata
func (p *Keywords) Info() *plugins.Info {
	return &plugins.Info{
		Name:        "Keyword Links",
		Description: "Automatically links configured keywords in entry bodies",
		Author:      "Inkwell",
		Version:     "1.1.0",
	}
}

// Init subscribes the rendering handler
func (p *Keywords) Init(hc *plugins.HostContext) error {
	return hc.Subscribe(plugins.EventEntryRendering, p.onRendering)
}

func (p *Keywords) onRendering(ctx context.Context, e *blog.Entry, args *plugins.EventArgs) error {
	for _, link := range p.links {
		e.Body = link.apply(e.Body, p.all)
	}
	return nil
}

// apply links occurrences of the keyword, preserving the matched text
func (l keywordLink) apply(body string, all bool) string {
	anchor := func(match string) string {
		return fmt.Sprintf(`<a href="%s">%s</a>`, html.EscapeString(l.url), match)
	}

	if all {
		return l.re.ReplaceAllStringFunc(body, anchor)
	}

	loc := l.re.FindStringIndex(body)
	if loc == nil {
		return body
	}
	return body[:loc[0]] + anchor(body[loc[0]:loc[1]]) + body[loc[1]:]
}
