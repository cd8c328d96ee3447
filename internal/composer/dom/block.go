package dom

import (
	"strings"

	"github.com/dshills/wysiwyg/internal/composer/textunit"
)

// Run is a maximal span of text sharing one Style.
type Run struct {
	Text  string
	Style Style
}

// Len returns the length of the run in UTF-16 code units.
func (r Run) Len() int {
	return textunit.Len(r.Text)
}

// Block is a block container holding an ordered sequence of runs.
// A block with no runs is empty but valid.
type Block struct {
	Kind BlockKind
	Runs []Run
}

// NewBlock creates a block of the given kind holding normalized runs.
func NewBlock(kind BlockKind, runs ...Run) *Block {
	return &Block{Kind: kind, Runs: normalizeRuns(runs)}
}

// Len returns the length of the block text in UTF-16 code units.
func (b Block) Len() int {
	n := 0
	for _, r := range b.Runs {
		n += r.Len()
	}
	return n
}

// Text returns the concatenated text of all runs.
func (b Block) Text() string {
	var sb strings.Builder
	for _, r := range b.Runs {
		sb.WriteString(r.Text)
	}
	return sb.String()
}

// IsEmpty returns true if the block holds no text.
func (b Block) IsEmpty() bool {
	return len(b.Runs) == 0
}

func (b *Block) clone() *Block {
	runs := make([]Run, len(b.Runs))
	copy(runs, b.Runs)
	return &Block{Kind: b.Kind, Runs: runs}
}

// splitRuns divides runs at a code unit offset, splitting the run that
// straddles the offset. Neither half is normalized.
func splitRuns(runs []Run, at int) ([]Run, []Run) {
	var left, right []Run
	pos := 0
	for _, r := range runs {
		n := r.Len()
		switch {
		case pos+n <= at:
			left = append(left, r)
		case pos >= at:
			right = append(right, r)
		default:
			a, b := textunit.Split(r.Text, at-pos)
			left = append(left, Run{Text: a, Style: r.Style})
			right = append(right, Run{Text: b, Style: r.Style})
		}
		pos += n
	}
	return left, right
}

// sliceRuns returns the three parts of runs before, inside and after the
// code unit range [start, end).
func sliceRuns(runs []Run, start, end int) (before, inside, after []Run) {
	before, rest := splitRuns(runs, start)
	inside, after = splitRuns(rest, end-start)
	return before, inside, after
}

// normalizeRuns drops empty runs and merges neighbours with equal styles.
func normalizeRuns(runs []Run) []Run {
	out := make([]Run, 0, len(runs))
	for _, r := range runs {
		if r.Text == "" {
			continue
		}
		if n := len(out); n > 0 && out[n-1].Style.Equal(r.Style) {
			out[n-1].Text += r.Text
			continue
		}
		out = append(out, r)
	}
	return out
}

func concatRuns(parts ...[]Run) []Run {
	var out []Run
	for _, p := range parts {
		out = append(out, p...)
	}
	return normalizeRuns(out)
}

// styleBefore returns the style of the character ending at offset.
func (b *Block) styleBefore(offset int) (Style, bool) {
	pos := 0
	for _, r := range b.Runs {
		pos += r.Len()
		if pos >= offset && offset > 0 {
			return r.Style, true
		}
	}
	return Style{}, false
}

// styleAfter returns the style of the character starting at offset.
func (b *Block) styleAfter(offset int) (Style, bool) {
	pos := 0
	for _, r := range b.Runs {
		n := r.Len()
		if offset < pos+n {
			return r.Style, true
		}
		pos += n
	}
	return Style{}, false
}
