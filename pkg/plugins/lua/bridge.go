package lua

import (
	lua "github.com/yuin/gopher-lua"

	"github.com/inkwellcms/inkwell/pkg/blog"
	"github.com/inkwellcms/inkwell/pkg/plugins"
)

// entryToTable converts an entry to the table passed to script hooks
func entryToTable(L *lua.LState, e *blog.Entry) *lua.LTable {
	t := L.NewTable()
	if e == nil {
		return t
	}

	t.RawSetString("id", lua.LString(e.ID))
	t.RawSetString("blog_id", lua.LString(e.BlogID))
	t.RawSetString("title", lua.LString(e.Title))
	t.RawSetString("slug", lua.LString(e.Slug))
	t.RawSetString("author", lua.LString(e.Author))
	t.RawSetString("body", lua.LString(e.Body))
	t.RawSetString("published", lua.LBool(e.Published))

	categories := L.NewTable()
	for i, c := range e.Categories {
		categories.RawSetInt(i+1, lua.LString(c))
	}
	t.RawSetString("categories", categories)

	return t
}

// argsToTable converts event args for the hook's second parameter
func argsToTable(L *lua.LState, args *plugins.EventArgs) *lua.LTable {
	t := L.NewTable()
	if args == nil {
		return t
	}

	t.RawSetString("plugin_id", lua.LString(args.PluginID))
	t.RawSetString("state", lua.LString(string(args.State)))

	if args.Blog != nil {
		b := L.NewTable()
		b.RawSetString("id", lua.LString(args.Blog.ID))
		b.RawSetString("host", lua.LString(args.Blog.Host))
		b.RawSetString("title", lua.LString(args.Blog.Title))
		b.RawSetString("author", lua.LString(args.Blog.Author))
		t.RawSetString("blog", b)
	}

	return t
}

// applyEntryTable copies the mutable fields back from the hook's entry
// table onto the Go entry
func applyEntryTable(t *lua.LTable, e *blog.Entry) {
	if e == nil {
		return
	}

	if s, ok := t.RawGetString("title").(lua.LString); ok {
		e.Title = string(s)
	}
	if s, ok := t.RawGetString("body").(lua.LString); ok {
		e.Body = string(s)
	}
	if s, ok := t.RawGetString("slug").(lua.LString); ok {
		e.Slug = string(s)
	}
}
