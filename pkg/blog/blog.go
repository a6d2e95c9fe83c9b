// Package blog defines the content and tenant model shared by the plugin
// framework: blogs (tenants), entries, and the commit states that trigger
// lifecycle events.
package blog

import (
	"time"

	"github.com/google/uuid"
)

// Blog is a single tenant of the publishing engine. Every blog has its own
// set of enabled plugins (see pkg/tenant).
type Blog struct {
	ID     string `json:"id" yaml:"id"`         // Unique blog id (e.g., "devblog")
	Host   string `json:"host" yaml:"host"`     // Hostname the blog is served under
	Title  string `json:"title" yaml:"title"`   // Display title
	Author string `json:"author" yaml:"author"` // Default author name
}

// EntryState describes the kind of content commit that triggered an
// entry.updating / entry.updated event pair.
type EntryState string

const (
	StateCreate EntryState = "create"
	StateUpdate EntryState = "update"
	StateDelete EntryState = "delete"
)

// Entry is a single post or article. Handlers mutate entries in place:
// commit-side events run before/after the entry is saved, render-side
// events rewrite Title/Body for display.
type Entry struct {
	ID         string    `json:"id"`
	BlogID     string    `json:"blog_id"`
	Title      string    `json:"title"`
	Slug       string    `json:"slug,omitempty"`
	Author     string    `json:"author,omitempty"`
	Body       string    `json:"body"`
	Categories []string  `json:"categories,omitempty"`
	Published  bool      `json:"published"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// NewEntry creates an entry for the given blog with a fresh id and
// timestamps.
func NewEntry(blogID, title, body string) *Entry {
	now := time.Now().UTC()
	return &Entry{
		ID:        uuid.New().String(),
		BlogID:    blogID,
		Title:     title,
		Body:      body,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Touch bumps the entry's UpdatedAt. Hosts call this on every save so the
// render cache key changes with the content.
func (e *Entry) Touch() {
	e.UpdatedAt = time.Now().UTC()
}

// Clone returns a deep copy of the entry. The render pipeline dispatches
// rendering events against a copy so stored content is never mutated.
func (e *Entry) Clone() *Entry {
	if e == nil {
		return nil
	}
	dup := *e
	if e.Categories != nil {
		dup.Categories = append([]string(nil), e.Categories...)
	}
	return &dup
}

// Revision identifies the content version of the entry, derived from its
// last update time. Used as part of render cache keys.
func (e *Entry) Revision() int64 {
	return e.UpdatedAt.UnixNano()
}
