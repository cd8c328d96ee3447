package action

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseResponse(t *testing.T) {
	tests := []struct {
		name    string
		kind    Kind
		body    string
		want    Response
		wantErr bool
	}{
		{"link", SetLink{Start: 0, End: 3}, `{"url":"https://example.org"}`, LinkResponse{URL: "https://example.org"}, false},
		{"link ignores text", SetLink{Start: 0, End: 3}, `{"url":"u","text":"t"}`, LinkResponse{URL: "u"}, false},
		{"link with text", SetLinkWithText{At: 2}, `{"url":"u","text":"t"}`, LinkWithTextResponse{URL: "u", Text: "t"}, false},
		{"missing text", SetLinkWithText{At: 2}, `{"url":"u"}`, nil, true},
		{"empty text", SetLinkWithText{At: 2}, `{"url":"u","text":""}`, nil, true},
		{"malformed", SetLink{}, `{"url":`, nil, true},
		{"missing url", SetLink{}, `{}`, nil, true},
		{"numeric url", SetLink{}, `{"url":1}`, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseResponse(tt.kind, []byte(tt.body))
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidResponse)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestKinds(t *testing.T) {
	var k Kind = SetLink{Start: 2, End: 6}
	start, end := k.Span()
	assert.Equal(t, "set_link", k.Name())
	assert.Equal(t, [2]int{2, 6}, [2]int{start, end})

	k = SetLinkWithText{At: 4}
	start, end = k.Span()
	assert.Equal(t, "set_link_with_text", k.Name())
	assert.Equal(t, [2]int{4, 4}, [2]int{start, end})
}

func TestAction_String(t *testing.T) {
	r := NewRegistry(SequentialGenerator())
	a := r.Register(SetLink{Start: 1, End: 3})
	assert.Equal(t, "set_link(act-1 [1, 3))", a.String())
}
