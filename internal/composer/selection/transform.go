package selection

// Edit describes a replacement of [Start, End) by NewLen code units.
type Edit struct {
	Start  int
	End    int
	NewLen int
}

// Delta returns the change in document length caused by the edit.
func (e Edit) Delta() int {
	return e.NewLen - (e.End - e.Start)
}

// TransformOffset updates an offset after an edit.
//
// Transformation rules:
//   - offset after the edit end, or at the end of a non-empty replaced
//     range: shifted by the edit's delta
//   - offset inside the replaced range: collapses to the edit start
//   - offset before the edit, or exactly at a pure insertion point:
//     unchanged
func TransformOffset(offset int, e Edit) int {
	switch {
	case offset > e.End, offset == e.End && e.End > e.Start:
		return offset + e.Delta()
	case offset > e.Start:
		return e.Start
	default:
		return offset
	}
}

// TransformSelection updates both ends of a selection after an edit.
func TransformSelection(s Selection, e Edit) Selection {
	return Selection{
		Anchor: TransformOffset(s.Anchor, e),
		Focus:  TransformOffset(s.Focus, e),
	}
}

// Touches reports whether the edit overlaps or is adjacent to [start, end].
func (e Edit) Touches(start, end int) bool {
	return e.Start <= end && e.End >= start
}
