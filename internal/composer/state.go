package composer

import (
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/dshills/wysiwyg/internal/composer/dom"
	"github.com/dshills/wysiwyg/internal/composer/selection"
)

// DumpState serializes the document, selection and pending formats as
// JSON. Equal states always produce identical dumps. Pending actions are
// not included.
//
//	{"selection":{"anchor":0,"focus":5},"pending_formats":[],
//	 "blocks":[{"kind":"paragraph","runs":[{"text":"Hello","formats":["bold"]}]}]}
func (m *Model) DumpState() string {
	sel := m.tracker.Selection()
	out := `{}`
	out = set(out, "selection.anchor", sel.Anchor)
	out = set(out, "selection.focus", sel.Focus)
	out = setRaw(out, "pending_formats", names(m.tracker.Pending()))
	out = setRaw(out, "blocks", "[]")

	for i, b := range m.doc.Blocks() {
		prefix := fmt.Sprintf("blocks.%d", i)
		out = set(out, prefix+".kind", b.Kind.String())
		out = setRaw(out, prefix+".runs", "[]")
		for j, r := range b.Runs {
			rp := fmt.Sprintf("%s.runs.%d", prefix, j)
			out = set(out, rp+".text", r.Text)
			out = setRaw(out, rp+".formats", names(r.Style.Formats))
			if r.Style.Link != "" {
				out = set(out, rp+".link", r.Style.Link)
			}
		}
	}
	return out
}

// NewFromState rebuilds a composer from a DumpState snapshot.
func NewFromState(dump string, opts ...Option) (*Model, error) {
	if !gjson.Valid(dump) {
		return nil, fmt.Errorf("%w: malformed json", ErrInvalidState)
	}
	root := gjson.Parse(dump)

	blocksJSON := root.Get("blocks")
	if !blocksJSON.IsArray() {
		return nil, fmt.Errorf("%w: missing blocks", ErrInvalidState)
	}
	var blocks []*dom.Block
	for i, bj := range blocksJSON.Array() {
		kind, err := dom.ParseBlockKind(bj.Get("kind").String())
		if err != nil {
			return nil, fmt.Errorf("%w: block %d: %w", ErrInvalidState, i, err)
		}
		var runs []dom.Run
		for j, rj := range bj.Get("runs").Array() {
			f, err := parseFormats(rj.Get("formats"))
			if err != nil {
				return nil, fmt.Errorf("%w: block %d run %d: %w", ErrInvalidState, i, j, err)
			}
			runs = append(runs, dom.Run{
				Text:  rj.Get("text").String(),
				Style: dom.Style{Formats: f, Link: rj.Get("link").String()},
			})
		}
		blocks = append(blocks, dom.NewBlock(kind, runs...))
	}
	doc := dom.NewFromBlocks(blocks...)
	if err := doc.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidState, err)
	}

	sel := selection.New(int(root.Get("selection.anchor").Int()), int(root.Get("selection.focus").Int()))
	if err := sel.Validate(doc.Len()); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidState, err)
	}
	pending, err := parseFormats(root.Get("pending_formats"))
	if err != nil {
		return nil, fmt.Errorf("%w: pending formats: %w", ErrInvalidState, err)
	}

	m := New(opts...)
	m.doc = doc
	m.tracker.Set(sel)
	m.tracker.SetPending(pending)
	m.logger.Debug("composer restored", "length", doc.Len(), "selection", sel.String())
	return m, nil
}

func parseFormats(v gjson.Result) (dom.Format, error) {
	var f dom.Format
	for _, name := range v.Array() {
		one, err := dom.ParseFormat(name.String())
		if err != nil {
			return 0, err
		}
		f |= one
	}
	return f, nil
}

// names renders formats as a raw JSON array of strings.
func names(f dom.Format) string {
	parts := f.Names()
	quoted := make([]string, len(parts))
	for i, p := range parts {
		quoted[i] = `"` + p + `"`
	}
	return "[" + strings.Join(quoted, ",") + "]"
}

// set and setRaw only fail on malformed paths, which are all built here.
func set(json, path string, value any) string {
	out, err := sjson.Set(json, path, value)
	if err != nil {
		panic(fmt.Sprintf("composer: dump %s: %v", path, err))
	}
	return out
}

func setRaw(json, path, raw string) string {
	out, err := sjson.SetRaw(json, path, raw)
	if err != nil {
		panic(fmt.Sprintf("composer: dump %s: %v", path, err))
	}
	return out
}
