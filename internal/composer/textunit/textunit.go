// Package textunit converts between the UTF-16 code unit offsets used by
// host applications and the UTF-8 byte offsets used to store text.
//
// Every function is pure. Offsets that fall inside a surrogate pair are
// rounded forward to the end of the pair, so a host can never split a
// character outside the Basic Multilingual Plane.
package textunit

import (
	"unicode/utf16"
	"unicode/utf8"

	"github.com/rivo/uniseg"
)

// Len returns the length of s in UTF-16 code units.
func Len(s string) int {
	n := 0
	for _, r := range s {
		n += RuneLen(r)
	}
	return n
}

// RuneLen returns the number of UTF-16 code units needed to encode r.
func RuneLen(r rune) int {
	if r >= 0x10000 {
		return 2 // Surrogate pair
	}
	return 1
}

// ByteOffset converts a code unit offset within s to a byte offset.
// Offsets past the end of s map to len(s).
func ByteOffset(s string, units int) int {
	if units <= 0 {
		return 0
	}
	col := 0
	for i, r := range s {
		if col >= units {
			return i
		}
		col += RuneLen(r)
	}
	return len(s)
}

// FromByteOffset converts a byte offset within s to a code unit offset.
func FromByteOffset(s string, b int) int {
	if b > len(s) {
		b = len(s)
	}
	return Len(s[:b])
}

// Slice returns the substring of s between two code unit offsets.
func Slice(s string, start, end int) string {
	return s[ByteOffset(s, start):ByteOffset(s, end)]
}

// Split divides s at a code unit offset.
func Split(s string, at int) (string, string) {
	b := ByteOffset(s, at)
	return s[:b], s[b:]
}

// Snap returns the code unit offset actually addressed by units once
// rounding out of a surrogate pair is applied.
func Snap(s string, units int) int {
	return FromByteOffset(s, ByteOffset(s, units))
}

// PrevGrapheme returns the code unit offset of the grapheme cluster
// boundary immediately before units. It returns 0 at the start of s.
func PrevGrapheme(s string, units int) int {
	limit := ByteOffset(s, units)
	prev, pos := 0, 0
	rest := s
	state := -1
	for len(rest) > 0 && pos < limit {
		var cluster string
		cluster, rest, _, state = uniseg.FirstGraphemeClusterInString(rest, state)
		prev = pos
		pos += len(cluster)
	}
	return FromByteOffset(s, prev)
}

// NextGrapheme returns the code unit offset of the grapheme cluster
// boundary immediately after units. It returns Len(s) at the end of s.
func NextGrapheme(s string, units int) int {
	from := ByteOffset(s, units)
	pos := 0
	rest := s
	state := -1
	for len(rest) > 0 {
		var cluster string
		cluster, rest, _, state = uniseg.FirstGraphemeClusterInString(rest, state)
		pos += len(cluster)
		if pos > from {
			break
		}
	}
	return FromByteOffset(s, pos)
}

// Encode returns s as UTF-16 code units.
func Encode(s string) []uint16 {
	return utf16.Encode([]rune(s))
}

// Decode converts UTF-16 code units back to a string. Unpaired
// surrogates decode to U+FFFD.
func Decode(units []uint16) string {
	return string(utf16.Decode(units))
}

// Valid reports whether s is valid UTF-8.
func Valid(s string) bool {
	return utf8.ValidString(s)
}
