package lua

import (
	"context"
	"fmt"
	"sync"

	lua "github.com/yuin/gopher-lua"

	"github.com/inkwellcms/inkwell/pkg/blog"
	"github.com/inkwellcms/inkwell/pkg/plugins"
)

func init() {
	plugins.MustRegisterFactory("lua", func(d *plugins.Descriptor) (plugins.Plugin, error) {
		return NewScriptPlugin(d)
	})
}

// hookEvents maps the well-known script globals to lifecycle events
var hookEvents = []struct {
	global string
	kind   plugins.EventKind
}{
	{"on_entry_updating", plugins.EventEntryUpdating},
	{"on_entry_updated", plugins.EventEntryUpdated},
	{"on_entry_rendering", plugins.EventEntryRendering},
	{"on_single_entry_rendering", plugins.EventSingleEntryRendering},
}

// ScriptPlugin adapts one Lua script to the plugin contract. The
// script runs in its own Lua state for the life of the process.
type ScriptPlugin struct {
	id   string
	info *plugins.Info

	// mu serializes hook calls; an LState is not safe for concurrent use
	mu sync.Mutex
	L  *lua.LState
}

// NewScriptPlugin loads the descriptor's script module into a fresh
// Lua state. A script that fails to load fails construction, which
// skips the descriptor.
func NewScriptPlugin(d *plugins.Descriptor) (*ScriptPlugin, error) {
	path, ok := d.Modules["script"]
	if !ok || path == "" {
		return nil, fmt.Errorf("lua plugin requires a script module")
	}

	L := lua.NewState()
	if err := L.DoFile(path); err != nil {
		L.Close()
		return nil, fmt.Errorf("failed to load script %s: %w", path, err)
	}

	p := &ScriptPlugin{id: d.ID, L: L}
	p.readMetadata(d)

	return p, nil
}

// readMetadata fills id and info from the script's global plugin
// table, falling back to the descriptor
func (p *ScriptPlugin) readMetadata(d *plugins.Descriptor) {
	p.info = &plugins.Info{Name: d.Name, Author: "unknown"}

	tbl, ok := p.L.GetGlobal("plugin").(*lua.LTable)
	if !ok {
		return
	}

	get := func(key string) (string, bool) {
		if s, ok := tbl.RawGetString(key).(lua.LString); ok {
			return string(s), true
		}
		return "", false
	}

	if s, ok := get("id"); ok && s != "" {
		p.id = s
	}
	if s, ok := get("name"); ok && s != "" {
		p.info.Name = s
	}
	if s, ok := get("description"); ok {
		p.info.Description = s
	}
	if s, ok := get("author"); ok {
		p.info.Author = s
	}
	if s, ok := get("version"); ok {
		p.info.Version = s
	}
	if s, ok := get("homepage"); ok {
		p.info.HomePage = s
	}
}

// ID returns the instance id (script override or descriptor id)
func (p *ScriptPlugin) ID() string {
	return p.id
}

// Info returns the plugin metadata
func (p *ScriptPlugin) Info() *plugins.Info {
	return p.info
}

// Init subscribes a bridging handler for every hook global the script
// defines
func (p *ScriptPlugin) Init(hc *plugins.HostContext) error {
	subscribed := 0
	for _, hook := range hookEvents {
		fn, ok := p.L.GetGlobal(hook.global).(*lua.LFunction)
		if !ok {
			continue
		}

		fn := fn
		err := hc.Subscribe(hook.kind, func(ctx context.Context, e *blog.Entry, args *plugins.EventArgs) error {
			return p.call(fn, e, args)
		})
		if err != nil {
			return err
		}
		subscribed++
	}

	hc.Logger().Debugf("Lua plugin subscribed %d hooks", subscribed)
	return nil
}

// call bridges one hook invocation into the Lua state
func (p *ScriptPlugin) call(fn *lua.LFunction, e *blog.Entry, args *plugins.EventArgs) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	entryTbl := entryToTable(p.L, e)
	argsTbl := argsToTable(p.L, args)

	err := p.L.CallByParam(lua.P{
		Fn:      fn,
		NRet:    0,
		Protect: true,
	}, entryTbl, argsTbl)
	if err != nil {
		return fmt.Errorf("lua hook failed: %w", err)
	}

	applyEntryTable(entryTbl, e)
	return nil
}
