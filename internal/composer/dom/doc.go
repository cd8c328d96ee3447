// Package dom implements the formatted document of the composer.
//
// A Document is a non-empty ordered list of blocks (paragraph, quote, code
// block, list items). Each block owns an ordered list of runs, and each run
// owns a string plus the Style (inline formats and link) shared by all of
// its characters.
//
// # Coordinates
//
// All offsets are UTF-16 code units over the flattened text, where every
// boundary between two blocks counts as one code unit. Translation to tree
// coordinates (block index plus in-block offset) happens inside the
// package:
//
//	d := dom.NewFromText("Hello world")
//	_ = d.SplitBlock(5)       // "Hello" | " world"
//	d.Len()                   // 12
//	p, _ := d.Position(6)     // Position{Block: 1, Offset: 0}
//
// # Invariants
//
// Runs are maximal: no run is empty and no two adjacent runs share a
// Style. Every edit re-normalizes the runs it touches, and Validate checks
// the invariants explicitly.
package dom
