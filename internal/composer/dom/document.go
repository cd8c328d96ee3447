package dom

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dshills/wysiwyg/internal/composer/textunit"
)

// Errors returned by document operations.
var (
	// ErrRange indicates an offset outside [0, Len()] or start > end.
	ErrRange = errors.New("range out of bounds")

	// ErrSplitNotAllowed indicates a block that cannot be split.
	ErrSplitNotAllowed = errors.New("block does not allow splitting")

	// ErrCorrupt indicates a broken structural invariant.
	ErrCorrupt = errors.New("document invariant violated")
)

// BlockSeparator is the character standing for a block boundary in the
// flattened text. Each boundary occupies exactly one code unit.
const BlockSeparator = "\n"

// Position is a location expressed in tree coordinates.
type Position struct {
	Block  int // Index of the block
	Offset int // Code units from the start of the block
	Byte   int // Bytes from the start of the block text
}

// Document owns the text content and its formatting. Offsets passed to
// its methods are UTF-16 code units over the flattened text, in which
// consecutive blocks are separated by BlockSeparator.
//
// A Document always holds at least one block.
type Document struct {
	blocks []*Block
}

// New creates a document holding a single empty paragraph.
func New() *Document {
	return &Document{blocks: []*Block{NewBlock(Paragraph)}}
}

// NewFromBlocks creates a document from existing blocks.
// An empty list yields a document with one empty paragraph.
func NewFromBlocks(blocks ...*Block) *Document {
	if len(blocks) == 0 {
		return New()
	}
	d := &Document{blocks: make([]*Block, len(blocks))}
	for i, b := range blocks {
		d.blocks[i] = NewBlock(b.Kind, b.Runs...)
	}
	return d
}

// NewFromText creates a plain document from text; newlines start new
// paragraphs.
func NewFromText(text string) *Document {
	d := New()
	_ = d.Replace(0, 0, text, Style{})
	return d
}

// Clone returns a deep copy of the document.
func (d *Document) Clone() *Document {
	c := &Document{blocks: make([]*Block, len(d.blocks))}
	for i, b := range d.blocks {
		c.blocks[i] = b.clone()
	}
	return c
}

// Len returns the length of the flattened text in UTF-16 code units.
func (d *Document) Len() int {
	n := len(d.blocks) - 1
	for _, b := range d.blocks {
		n += b.Len()
	}
	return n
}

// IsEmpty returns true if the document holds a single empty block.
func (d *Document) IsEmpty() bool {
	return len(d.blocks) == 1 && d.blocks[0].IsEmpty()
}

// Text returns the flattened text.
func (d *Document) Text() string {
	parts := make([]string, len(d.blocks))
	for i, b := range d.blocks {
		parts[i] = b.Text()
	}
	return strings.Join(parts, BlockSeparator)
}

// TextIn returns the flattened text in [start, end).
func (d *Document) TextIn(start, end int) (string, error) {
	if err := d.checkRange(start, end); err != nil {
		return "", err
	}
	return textunit.Slice(d.Text(), start, end), nil
}

// BlockCount returns the number of blocks.
func (d *Document) BlockCount() int {
	return len(d.blocks)
}

// Block returns a copy of the block at index i.
func (d *Document) Block(i int) Block {
	return *d.blocks[i].clone()
}

// Blocks returns copies of all blocks in order.
func (d *Document) Blocks() []Block {
	out := make([]Block, len(d.blocks))
	for i, b := range d.blocks {
		out[i] = *b.clone()
	}
	return out
}

// BlockRange returns the flattened [start, end) range of block i,
// excluding its trailing separator.
func (d *Document) BlockRange(i int) (int, int) {
	start := 0
	for j := 0; j < i; j++ {
		start += d.blocks[j].Len() + 1
	}
	return start, start + d.blocks[i].Len()
}

// Position converts a flattened offset to tree coordinates. An offset on
// a block boundary resolves to the end of the earlier block.
func (d *Document) Position(offset int) (Position, error) {
	if err := d.checkRange(offset, offset); err != nil {
		return Position{}, err
	}
	bi, off := d.locate(offset)
	b := d.blocks[bi]
	return Position{
		Block:  bi,
		Offset: off,
		Byte:   textunit.ByteOffset(b.Text(), off),
	}, nil
}

// Offset converts tree coordinates back to a flattened offset.
func (d *Document) Offset(p Position) (int, error) {
	if p.Block < 0 || p.Block >= len(d.blocks) || p.Offset < 0 || p.Offset > d.blocks[p.Block].Len() {
		return 0, fmt.Errorf("%w: position %d:%d", ErrRange, p.Block, p.Offset)
	}
	start, _ := d.BlockRange(p.Block)
	return start + p.Offset, nil
}

// locate returns the block index and in-block offset for a valid offset.
func (d *Document) locate(offset int) (int, int) {
	start := 0
	for i, b := range d.blocks {
		end := start + b.Len()
		if offset <= end {
			return i, offset - start
		}
		start = end + 1
	}
	last := len(d.blocks) - 1
	return last, d.blocks[last].Len()
}

// Snap rounds an offset that falls inside a surrogate pair forward to
// the end of the pair. Offsets outside [0, Len] are returned unchanged.
func (d *Document) Snap(offset int) int {
	if offset < 0 || offset > d.Len() {
		return offset
	}
	bi, bo := d.locate(offset)
	return offset - bo + textunit.Snap(d.blocks[bi].Text(), bo)
}

// BlockIndexAt returns the index of the block containing offset.
func (d *Document) BlockIndexAt(offset int) int {
	bi, _ := d.locate(offset)
	return bi
}

// BlocksIn returns the indexes of every block touched by [start, end].
func (d *Document) BlocksIn(start, end int) []int {
	first, _ := d.locate(start)
	last, _ := d.locate(end)
	out := make([]int, 0, last-first+1)
	for i := first; i <= last; i++ {
		out = append(out, i)
	}
	return out
}

func (d *Document) checkRange(start, end int) error {
	if start < 0 || end < 0 || start > end || end > d.Len() {
		return fmt.Errorf("%w: [%d, %d) in document of length %d", ErrRange, start, end, d.Len())
	}
	return nil
}

// Replace substitutes text for the range [start, end). The new text
// takes the given style. Newlines in text split blocks; removing a block
// separator merges the blocks on either side, keeping the first kind.
func (d *Document) Replace(start, end int, text string, style Style) error {
	if err := d.checkRange(start, end); err != nil {
		return err
	}

	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	bi, bo := d.locate(start)
	ei, eo := d.locate(end)
	kind := d.blocks[bi].Kind

	left, _ := splitRuns(d.blocks[bi].Runs, bo)
	_, right := splitRuns(d.blocks[ei].Runs, eo)

	lines := strings.Split(text, "\n")
	replacement := make([]*Block, len(lines))
	for i, line := range lines {
		runs := []Run{{Text: line, Style: style}}
		if i == 0 {
			runs = append(left, runs...)
		}
		if i == len(lines)-1 {
			runs = append(runs, right...)
		}
		replacement[i] = NewBlock(kind, runs...)
	}

	blocks := make([]*Block, 0, len(d.blocks)-(ei-bi+1)+len(replacement))
	blocks = append(blocks, d.blocks[:bi]...)
	blocks = append(blocks, replacement...)
	blocks = append(blocks, d.blocks[ei+1:]...)
	d.blocks = blocks
	return nil
}

// Insert inserts styled text at offset.
func (d *Document) Insert(offset int, text string, style Style) error {
	return d.Replace(offset, offset, text, style)
}

// Delete removes the range [start, end).
func (d *Document) Delete(start, end int) error {
	return d.Replace(start, end, "", Style{})
}

// SplitBlock splits the block containing offset in two. Code blocks
// refuse to split.
func (d *Document) SplitBlock(offset int) error {
	if err := d.checkRange(offset, offset); err != nil {
		return err
	}
	bi, _ := d.locate(offset)
	if d.blocks[bi].Kind == CodeBlock {
		return fmt.Errorf("%w: %s at offset %d", ErrSplitNotAllowed, CodeBlock, offset)
	}
	return d.Replace(offset, offset, BlockSeparator, Style{})
}

// MergeWithNext joins block i with the block that follows it.
func (d *Document) MergeWithNext(i int) error {
	if i < 0 || i >= len(d.blocks)-1 {
		return fmt.Errorf("%w: no block after %d", ErrRange, i)
	}
	_, end := d.BlockRange(i)
	return d.Delete(end, end+1)
}

// SetBlockKind changes the kind of every block touched by [start, end].
func (d *Document) SetBlockKind(start, end int, kind BlockKind) error {
	if err := d.checkRange(start, end); err != nil {
		return err
	}
	for _, i := range d.BlocksIn(start, end) {
		d.blocks[i].Kind = kind
	}
	return nil
}

// eachBlockSpan calls fn with the in-block range of every block that
// overlaps [start, end).
func (d *Document) eachBlockSpan(start, end int, fn func(b *Block, from, to int)) {
	pos := 0
	for _, b := range d.blocks {
		n := b.Len()
		from := max(start, pos)
		to := min(end, pos+n)
		if from < to {
			fn(b, from-pos, to-pos)
		}
		pos += n + 1
		if pos > end {
			break
		}
	}
}

// restyle applies fn to the style of every run inside [start, end).
func (d *Document) restyle(start, end int, fn func(Style) Style) error {
	if err := d.checkRange(start, end); err != nil {
		return err
	}
	d.eachBlockSpan(start, end, func(b *Block, from, to int) {
		before, inside, after := sliceRuns(b.Runs, from, to)
		for i := range inside {
			inside[i].Style = fn(inside[i].Style)
		}
		b.Runs = concatRuns(before, inside, after)
	})
	return nil
}

// SetFormat adds or removes a format over [start, end).
func (d *Document) SetFormat(start, end int, f Format, on bool) error {
	return d.restyle(start, end, func(s Style) Style {
		if on {
			s.Formats = s.Formats.With(f)
		} else {
			s.Formats = s.Formats.Without(f)
		}
		return s
	})
}

// ToggleFormat removes f from [start, end) if the whole range already has
// it, and applies it otherwise. It reports whether f is now applied.
func (d *Document) ToggleFormat(start, end int, f Format) (bool, error) {
	if err := d.checkRange(start, end); err != nil {
		return false, err
	}
	on := !d.FormatsIn(start, end).Has(f)
	return on, d.SetFormat(start, end, f, on)
}

// SetLink sets the link target of [start, end). An empty url removes it.
func (d *Document) SetLink(start, end int, url string) error {
	return d.restyle(start, end, func(s Style) Style {
		s.Link = url
		return s
	})
}

// FormatsIn returns the formats applied to every character in
// [start, end). Block separators carry no formats and are skipped.
// A range with no characters has no formats.
func (d *Document) FormatsIn(start, end int) Format {
	var common Format
	seen := false
	d.eachBlockSpan(start, end, func(b *Block, from, to int) {
		_, inside, _ := sliceRuns(b.Runs, from, to)
		for _, r := range inside {
			if !seen {
				common = r.Style.Formats
				seen = true
				continue
			}
			common &= r.Style.Formats
		}
	})
	return common
}

// LinkIn returns the link shared by every character in [start, end).
func (d *Document) LinkIn(start, end int) (string, bool) {
	link := ""
	seen, same := false, true
	d.eachBlockSpan(start, end, func(b *Block, from, to int) {
		_, inside, _ := sliceRuns(b.Runs, from, to)
		for _, r := range inside {
			if !seen {
				link, seen = r.Style.Link, true
			} else if r.Style.Link != link {
				same = false
			}
		}
	})
	return link, seen && same && link != ""
}

// StyleAt returns the style text typed at offset would inherit: the style
// of the preceding character in the same block, or of the following one
// at a block start. Links are never inherited.
func (d *Document) StyleAt(offset int) Style {
	if d.checkRange(offset, offset) != nil {
		return Style{}
	}
	bi, off := d.locate(offset)
	b := d.blocks[bi]
	s, ok := b.styleBefore(off)
	if !ok {
		s, _ = b.styleAfter(off)
	}
	s.Link = ""
	return s
}

// Validate checks the structural invariants of the document.
func (d *Document) Validate() error {
	if len(d.blocks) == 0 {
		return fmt.Errorf("%w: document has no blocks", ErrCorrupt)
	}
	for i, b := range d.blocks {
		if b == nil {
			return fmt.Errorf("%w: block %d is nil", ErrCorrupt, i)
		}
		if int(b.Kind) >= len(blockKindNames) {
			return fmt.Errorf("%w: block %d has unknown kind %d", ErrCorrupt, i, b.Kind)
		}
		for j, r := range b.Runs {
			if r.Text == "" {
				return fmt.Errorf("%w: block %d run %d is empty", ErrCorrupt, i, j)
			}
			if strings.Contains(r.Text, BlockSeparator) {
				return fmt.Errorf("%w: block %d run %d contains a separator", ErrCorrupt, i, j)
			}
			if !textunit.Valid(r.Text) {
				return fmt.Errorf("%w: block %d run %d is not valid UTF-8", ErrCorrupt, i, j)
			}
			if j > 0 && b.Runs[j-1].Style.Equal(r.Style) {
				return fmt.Errorf("%w: block %d runs %d and %d share style %s", ErrCorrupt, i, j-1, j, r.Style)
			}
		}
	}
	return nil
}

// Equal reports whether two documents hold the same blocks and runs.
func (d *Document) Equal(other *Document) bool {
	if len(d.blocks) != len(other.blocks) {
		return false
	}
	for i, b := range d.blocks {
		o := other.blocks[i]
		if b.Kind != o.Kind || len(b.Runs) != len(o.Runs) {
			return false
		}
		for j, r := range b.Runs {
			if r.Text != o.Runs[j].Text || !r.Style.Equal(o.Runs[j].Style) {
				return false
			}
		}
	}
	return true
}
