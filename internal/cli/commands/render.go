package commands

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/dshills/wysiwyg/internal/composer"
	"github.com/dshills/wysiwyg/internal/composer/action"
	"github.com/dshills/wysiwyg/internal/composer/menu"
	"github.com/dshills/wysiwyg/internal/config"
)

// renderModel writes the composer content in the configured output format.
func renderModel(w io.Writer, m *composer.Model, format string) error {
	switch format {
	case config.OutputHTML:
		_, err := fmt.Fprintln(w, m.GetContentAsHTML())
		return err
	case config.OutputMarkdown:
		md, err := m.GetContentAsMarkdown()
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, md)
		return err
	case config.OutputJSON:
		return renderJSON(w, modelJSON(m))
	default:
		sel := m.Selection()
		_, _ = fmt.Fprintln(w, m.Tree())
		_, _ = fmt.Fprintf(w, "html:      %s\n", m.GetContentAsHTML())
		_, _ = fmt.Fprintf(w, "selection: %s\n", sel)
		renderActions(w, m.PendingActions())
		renderMenu(w, m.MenuState())
		return nil
	}
}

type menuEntry struct {
	Action  string `json:"action"`
	Enabled bool   `json:"enabled"`
	Active  bool   `json:"active"`
}

type actionEntry struct {
	ID    string `json:"id"`
	Kind  string `json:"kind"`
	Start int    `json:"start"`
	End   int    `json:"end"`
}

type modelOutput struct {
	Text           string          `json:"text"`
	HTML           string          `json:"html"`
	Selection      [2]int          `json:"selection"`
	Menu           []menuEntry     `json:"menu"`
	PendingActions []actionEntry   `json:"pending_actions"`
	State          json.RawMessage `json:"state"`
}

func modelJSON(m *composer.Model) modelOutput {
	sel := m.Selection()
	return modelOutput{
		Text:           m.Text(),
		HTML:           m.GetContentAsHTML(),
		Selection:      [2]int{sel.Anchor, sel.Focus},
		Menu:           menuJSON(m.MenuState()),
		PendingActions: actionsJSON(m.PendingActions()),
		State:          json.RawMessage(m.DumpState()),
	}
}

func menuJSON(st menu.State) []menuEntry {
	out := make([]menuEntry, 0, len(menu.All))
	for _, s := range st.List() {
		out = append(out, menuEntry{Action: string(s.Action), Enabled: s.Enabled, Active: s.Active})
	}
	return out
}

func actionsJSON(actions []action.Action) []actionEntry {
	out := make([]actionEntry, 0, len(actions))
	for _, a := range actions {
		start, end := a.Kind().Span()
		out = append(out, actionEntry{ID: string(a.ID()), Kind: a.Kind().Name(), Start: start, End: end})
	}
	return out
}

func renderJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// renderMenu writes the menu state as a table.
func renderMenu(w io.Writer, st menu.State) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Action", "Enabled", "Active"})
	for _, s := range st.List() {
		t.AppendRow(table.Row{s.Action, mark(s.Enabled), mark(s.Active)})
	}
	t.Render()
}

func renderActions(w io.Writer, actions []action.Action) {
	if len(actions) == 0 {
		return
	}
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Pending action", "Kind", "Range"})
	for _, a := range actions {
		start, end := a.Kind().Span()
		t.AppendRow(table.Row{a.ID(), a.Kind().Name(), fmt.Sprintf("[%d, %d)", start, end)})
	}
	t.Render()
}

// describeUpdate returns a one-line summary of an update.
func describeUpdate(u composer.Update) string {
	s := fmt.Sprint(u.TextUpdate())
	for _, a := range u.Actions() {
		s += " +" + a.String()
	}
	return s
}

func mark(b bool) string {
	if b {
		return "✓"
	}
	return ""
}
