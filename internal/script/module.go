package script

import (
	"context"
	"log/slog"

	"github.com/tidwall/sjson"
	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/wysiwyg/internal/composer"
	"github.com/dshills/wysiwyg/internal/composer/action"
	"github.com/dshills/wysiwyg/internal/composer/menu"
	"github.com/dshills/wysiwyg/internal/logging"
)

// Host runs scripts against one composer model.
type Host struct {
	state  *State
	model  *composer.Model
	logger *slog.Logger
	last   composer.Update
}

// Option configures a Host.
type Option func(*Host, *[]StateOption)

// WithLogger sets the logger used to trace script commands.
func WithLogger(l *slog.Logger) Option {
	return func(h *Host, _ *[]StateOption) {
		if l != nil {
			h.logger = l
		}
	}
}

// WithStateOptions passes options to the underlying Lua state.
func WithStateOptions(opts ...StateOption) Option {
	return func(_ *Host, so *[]StateOption) {
		*so = append(*so, opts...)
	}
}

// New creates a host driving model.
func New(model *composer.Model, opts ...Option) *Host {
	h := &Host{
		model:  model,
		logger: logging.Nop(),
		last:   composer.Update{},
	}
	var stateOpts []StateOption
	for _, opt := range opts {
		opt(h, &stateOpts)
	}
	h.state = NewState(stateOpts...)
	h.register(h.state.L)
	return h
}

// Model returns the composer driven by scripts.
func (h *Host) Model() *composer.Model {
	return h.model
}

// LastUpdate returns the update produced by the most recent command.
func (h *Host) LastUpdate() composer.Update {
	return h.last
}

// Run executes a script file.
func (h *Host) Run(ctx context.Context, path string) error {
	h.logger.Debug("running script", slog.String("path", path))
	return h.state.DoFile(ctx, path)
}

// RunString executes a script chunk.
func (h *Host) RunString(ctx context.Context, code string) error {
	return h.state.DoString(ctx, code)
}

// Close releases the Lua state.
func (h *Host) Close() error {
	return h.state.Close()
}

// register installs the wysiwyg module as a global and as a preloaded
// module for require.
func (h *Host) register(L *lua.LState) {
	mod := L.NewTable()

	// Queries
	L.SetField(mod, "text", L.NewFunction(h.text))
	L.SetField(mod, "len", L.NewFunction(h.length))
	L.SetField(mod, "html", L.NewFunction(h.html))
	L.SetField(mod, "markdown", L.NewFunction(h.markdown))
	L.SetField(mod, "tree", L.NewFunction(h.tree))
	L.SetField(mod, "dump", L.NewFunction(h.dump))
	L.SetField(mod, "selection", L.NewFunction(h.selection))
	L.SetField(mod, "menu", L.NewFunction(h.menu))
	L.SetField(mod, "pending_actions", L.NewFunction(h.pendingActions))

	// Editing
	L.SetField(mod, "select", L.NewFunction(h.command("select", func(L *lua.LState) (composer.Update, error) {
		return h.model.Select(L.CheckInt(1), L.CheckInt(2))
	})))
	L.SetField(mod, "replace_text", L.NewFunction(h.command("replace_text", func(L *lua.LState) (composer.Update, error) {
		return h.model.ReplaceText(L.CheckString(1))
	})))
	L.SetField(mod, "replace_text_in", L.NewFunction(h.command("replace_text_in", func(L *lua.LState) (composer.Update, error) {
		return h.model.ReplaceTextIn(L.CheckString(1), L.CheckInt(2), L.CheckInt(3))
	})))
	L.SetField(mod, "delete_in", L.NewFunction(h.command("delete_in", func(L *lua.LState) (composer.Update, error) {
		return h.model.DeleteIn(L.CheckInt(1), L.CheckInt(2))
	})))
	L.SetField(mod, "set_content", L.NewFunction(h.command("set_content", func(L *lua.LState) (composer.Update, error) {
		return h.model.SetContentFromHTML(L.CheckString(1))
	})))
	L.SetField(mod, "apply", L.NewFunction(h.command("apply", func(L *lua.LState) (composer.Update, error) {
		return h.model.Apply(menu.Action(L.CheckString(1)))
	})))
	for name, fn := range map[string]func() (composer.Update, error){
		"backspace":      h.model.Backspace,
		"delete":         h.model.Delete,
		"enter":          h.model.Enter,
		"bold":           h.model.Bold,
		"italic":         h.model.Italic,
		"strike_through": h.model.StrikeThrough,
		"underline":      h.model.Underline,
		"inline_code":    h.model.InlineCode,
		"code_block":     h.model.CodeBlock,
		"quote":          h.model.Quote,
		"ordered_list":   h.model.OrderedList,
		"unordered_list": h.model.UnorderedList,
		"undo":           h.model.Undo,
		"redo":           h.model.Redo,
		"set_link":       h.model.SetLink,
	} {
		L.SetField(mod, name, L.NewFunction(h.command(name, func(*lua.LState) (composer.Update, error) {
			return fn()
		})))
	}

	// Pending actions
	L.SetField(mod, "action_response", L.NewFunction(h.command("action_response", h.actionResponse)))
	L.SetField(mod, "cancel_action", L.NewFunction(h.command("cancel_action", func(L *lua.LState) (composer.Update, error) {
		return h.model.CancelAction(action.ID(L.CheckString(1))), nil
	})))

	L.SetGlobal(ModuleName, mod)
	L.PreloadModule(ModuleName, func(L *lua.LState) int {
		L.Push(mod)
		return 1
	})
}

// command wraps a composer command: errors are raised as Lua errors,
// updates are returned as tables.
func (h *Host) command(name string, fn func(L *lua.LState) (composer.Update, error)) lua.LGFunction {
	return func(L *lua.LState) int {
		u, err := fn(L)
		if err != nil {
			h.logger.Debug("script command failed", slog.String("command", name), slog.Any("error", err))
			L.RaiseError("%s: %v", name, err)
			return 0
		}
		h.last = u
		L.Push(updateTable(L, u))
		return 1
	}
}

// action_response(id, response) -> update
// response is a JSON string or a table with url and text fields.
func (h *Host) actionResponse(L *lua.LState) (composer.Update, error) {
	id := action.ID(L.CheckString(1))

	var payload []byte
	switch v := L.Get(2).(type) {
	case lua.LString:
		payload = []byte(string(v))
	case *lua.LTable:
		json := "{}"
		var err error
		v.ForEach(func(k, val lua.LValue) {
			if err != nil {
				return
			}
			if ks, ok := k.(lua.LString); ok {
				json, err = sjson.Set(json, string(ks), val.String())
			}
		})
		if err != nil {
			return composer.Update{}, err
		}
		payload = []byte(json)
	default:
		L.ArgError(2, "string or table expected")
		return composer.Update{}, nil
	}
	return h.model.ActionResponse(id, payload)
}

// text() -> string
func (h *Host) text(L *lua.LState) int {
	L.Push(lua.LString(h.model.Text()))
	return 1
}

// len() -> number of UTF-16 code units
func (h *Host) length(L *lua.LState) int {
	L.Push(lua.LNumber(h.model.Len()))
	return 1
}

// html() -> string
func (h *Host) html(L *lua.LState) int {
	L.Push(lua.LString(h.model.GetContentAsHTML()))
	return 1
}

// markdown() -> string
func (h *Host) markdown(L *lua.LState) int {
	md, err := h.model.GetContentAsMarkdown()
	if err != nil {
		L.RaiseError("markdown: %v", err)
		return 0
	}
	L.Push(lua.LString(md))
	return 1
}

// tree() -> string
func (h *Host) tree(L *lua.LState) int {
	L.Push(lua.LString(h.model.Tree()))
	return 1
}

// dump() -> JSON string
func (h *Host) dump(L *lua.LState) int {
	L.Push(lua.LString(h.model.DumpState()))
	return 1
}

// selection() -> anchor, focus
func (h *Host) selection(L *lua.LState) int {
	sel := h.model.Selection()
	L.Push(lua.LNumber(sel.Anchor))
	L.Push(lua.LNumber(sel.Focus))
	return 2
}

// menu() -> {bold = {enabled = true, active = false}, ...}
func (h *Host) menu(L *lua.LState) int {
	L.Push(menuTable(L, h.model.MenuState()))
	return 1
}

// pending_actions() -> list of action tables
func (h *Host) pendingActions(L *lua.LState) int {
	L.Push(actionList(L, h.model.PendingActions()))
	return 1
}

func updateTable(L *lua.LState, u composer.Update) *lua.LTable {
	t := L.NewTable()
	switch tu := u.TextUpdate().(type) {
	case composer.ReplaceAll:
		t.RawSetString("kind", lua.LString("replace_all"))
		t.RawSetString("html", lua.LString(tu.HTML))
		t.RawSetString("start", lua.LNumber(tu.Start))
		t.RawSetString("end", lua.LNumber(tu.End))
	default:
		t.RawSetString("kind", lua.LString("keep"))
	}
	t.RawSetString("menu", menuTable(L, u.MenuState()))
	t.RawSetString("actions", actionList(L, u.Actions()))
	return t
}

func menuTable(L *lua.LState, st menu.State) *lua.LTable {
	t := L.NewTable()
	for _, s := range st.List() {
		entry := L.NewTable()
		entry.RawSetString("enabled", lua.LBool(s.Enabled))
		entry.RawSetString("active", lua.LBool(s.Active))
		t.RawSetString(string(s.Action), entry)
	}
	return t
}

func actionList(L *lua.LState, actions []action.Action) *lua.LTable {
	t := L.NewTable()
	for _, a := range actions {
		start, end := a.Kind().Span()
		entry := L.NewTable()
		entry.RawSetString("id", lua.LString(a.ID()))
		entry.RawSetString("kind", lua.LString(a.Kind().Name()))
		entry.RawSetString("start", lua.LNumber(start))
		entry.RawSetString("end", lua.LNumber(end))
		t.Append(entry)
	}
	return t
}
