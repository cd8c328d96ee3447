package textunit

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLen(t *testing.T) {
	tests := []struct {
		input string
		want  int
	}{
		{"", 0},
		{"hello", 5},
		{"héllo", 5},
		{"日本", 2},
		{"👍", 2},
		{"a👍🏽", 5},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Len(tt.input), "Len(%q)", tt.input)
	}
}

func TestByteOffset(t *testing.T) {
	s := "aé👍b"
	tests := []struct {
		units int
		want  int
	}{
		{-1, 0},
		{0, 0},
		{1, 1},
		{2, 3},
		{3, 7}, // inside the surrogate pair: rounds forward
		{4, 7},
		{5, 8},
		{99, 8},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ByteOffset(s, tt.units), "ByteOffset(%d)", tt.units)
	}
}

func TestFromByteOffset(t *testing.T) {
	s := "aé👍b"
	assert.Equal(t, 0, FromByteOffset(s, 0))
	assert.Equal(t, 2, FromByteOffset(s, 3))
	assert.Equal(t, 4, FromByteOffset(s, 7))
	assert.Equal(t, 5, FromByteOffset(s, 100))
}

func TestSliceAndSplit(t *testing.T) {
	s := "x👍yz"
	assert.Equal(t, "👍", Slice(s, 1, 3))
	assert.Equal(t, "y", Slice(s, 2, 4)) // 2 lies inside the pair

	left, right := Split(s, 3)
	assert.Equal(t, "x👍", left)
	assert.Equal(t, "yz", right)
}

func TestSnap(t *testing.T) {
	assert.Equal(t, 3, Snap("a👍b", 2))
	assert.Equal(t, 1, Snap("a👍b", 1))
}

func TestGraphemes(t *testing.T) {
	tests := []struct {
		name     string
		s        string
		at       int
		wantPrev int
		wantNext int
	}{
		{"ascii middle", "abc", 1, 0, 2},
		{"start", "abc", 0, 0, 1},
		{"end", "abc", 3, 2, 3},
		{"skin tone", "a👍🏽b", 5, 1, 6},
		{"before emoji", "a👍🏽b", 1, 0, 5},
		{"combining mark", "e\u0301x", 2, 0, 3},
		{"zwj family", "👨‍👩‍👧!", 8, 0, 9},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantPrev, PrevGrapheme(tt.s, tt.at))
			assert.Equal(t, tt.wantNext, NextGrapheme(tt.s, tt.at))
		})
	}
}

func TestEncodeDecode(t *testing.T) {
	units := Encode("é👍")
	assert.Equal(t, []uint16{0xe9, 0xd83d, 0xdc4d}, units)
	assert.Equal(t, "é👍", Decode(units))
}

func TestValid(t *testing.T) {
	assert.True(t, Valid("héllo"))
	assert.False(t, Valid("\xff"))
}
