package action

import (
	"fmt"
	"sort"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/dshills/wysiwyg/internal/composer/selection"
)

// IDGenerator produces unique action identifiers.
type IDGenerator func() ID

// UUIDGenerator returns a generator of random UUID identifiers.
func UUIDGenerator() IDGenerator {
	return func() ID {
		return ID(uuid.NewString())
	}
}

// SequentialGenerator returns a generator of monotonic identifiers
// ("act-1", "act-2", ...). It is useful for reproducible fixtures.
func SequentialGenerator() IDGenerator {
	var n uint64
	return func() ID {
		return ID(fmt.Sprintf("act-%d", atomic.AddUint64(&n, 1)))
	}
}

type entry struct {
	seq   uint64
	kind  Kind
	start int
	end   int
}

func (e *entry) action(id ID) Action {
	return Action{id: id, kind: e.kind.withSpan(e.start, e.end)}
}

// Registry maps action identifiers to the deferred edits they represent.
// Entries leave the registry when they are taken, cancelled, or
// invalidated by an edit touching the range they depend on.
type Registry struct {
	entries map[ID]*entry
	newID   IDGenerator
	seq     uint64
}

// NewRegistry creates an empty registry. A nil generator selects UUIDs.
func NewRegistry(gen IDGenerator) *Registry {
	if gen == nil {
		gen = UUIDGenerator()
	}
	return &Registry{
		entries: make(map[ID]*entry),
		newID:   gen,
	}
}

// Register records a new pending action and returns it.
func (r *Registry) Register(k Kind) Action {
	id := r.newID()
	for r.entries[id] != nil {
		id = r.newID()
	}
	start, end := k.Span()
	r.seq++
	e := &entry{seq: r.seq, kind: k, start: start, end: end}
	r.entries[id] = e
	return e.action(id)
}

// Lookup returns a pending action without consuming it.
func (r *Registry) Lookup(id ID) (Action, bool) {
	e, ok := r.entries[id]
	if !ok {
		return Action{}, false
	}
	return e.action(id), true
}

// Take removes and returns a pending action. The second result is false
// for unknown or already consumed identifiers.
func (r *Registry) Take(id ID) (Action, bool) {
	a, ok := r.Lookup(id)
	if ok {
		delete(r.entries, id)
	}
	return a, ok
}

// Cancel drops a pending action. It reports whether the action existed.
func (r *Registry) Cancel(id ID) bool {
	if _, ok := r.entries[id]; !ok {
		return false
	}
	delete(r.entries, id)
	return true
}

// CancelKind drops every pending action of the named kind and returns
// their identifiers.
func (r *Registry) CancelKind(names ...string) []ID {
	var dropped []ID
	for id, e := range r.entries {
		for _, name := range names {
			if e.kind.Name() == name {
				dropped = append(dropped, id)
				delete(r.entries, id)
				break
			}
		}
	}
	sort.Slice(dropped, func(i, j int) bool { return dropped[i] < dropped[j] })
	return dropped
}

// Apply updates pending actions after a text edit. Actions whose range
// the edit touches are invalidated and their identifiers returned;
// actions lying after the edit are shifted by its delta.
func (r *Registry) Apply(e selection.Edit) []ID {
	var dropped []ID
	for id, en := range r.entries {
		if e.Touches(en.start, en.end) {
			dropped = append(dropped, id)
			delete(r.entries, id)
			continue
		}
		en.start = selection.TransformOffset(en.start, e)
		en.end = selection.TransformOffset(en.end, e)
	}
	sort.Slice(dropped, func(i, j int) bool { return dropped[i] < dropped[j] })
	return dropped
}

// Pending returns all pending actions in registration order.
func (r *Registry) Pending() []Action {
	ids := make([]ID, 0, len(r.entries))
	for id := range r.entries {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		return r.entries[ids[i]].seq < r.entries[ids[j]].seq
	})
	out := make([]Action, len(ids))
	for i, id := range ids {
		out[i] = r.entries[id].action(id)
	}
	return out
}

// Len returns the number of pending actions.
func (r *Registry) Len() int {
	return len(r.entries)
}

// Clear drops every pending action.
func (r *Registry) Clear() {
	clear(r.entries)
}

// Clone returns an independent copy of the registry sharing its
// identifier generator.
func (r *Registry) Clone() *Registry {
	c := &Registry{
		entries: make(map[ID]*entry, len(r.entries)),
		newID:   r.newID,
		seq:     r.seq,
	}
	for id, e := range r.entries {
		cp := *e
		c.entries[id] = &cp
	}
	return c
}
