package config

import (
	"errors"

	"github.com/pelletier/go-toml/v2"
)

// TOMLParser is a koanf parser for TOML configuration files.
type TOMLParser struct {
	// Path names the source in parse errors.
	Path string
}

// TOML returns a TOML parser reporting errors against path.
func TOML(path string) *TOMLParser {
	return &TOMLParser{Path: path}
}

// Unmarshal parses TOML bytes into a nested map.
func (p *TOMLParser) Unmarshal(data []byte) (map[string]any, error) {
	var out map[string]any
	if err := toml.Unmarshal(data, &out); err != nil {
		perr := &ParseError{Path: p.source(), Message: err.Error(), Err: err}
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			perr.Line, perr.Column = derr.Position()
		}
		return nil, perr
	}
	if out == nil {
		out = map[string]any{}
	}
	return out, nil
}

// Marshal encodes a nested map as TOML.
func (p *TOMLParser) Marshal(m map[string]any) ([]byte, error) {
	return toml.Marshal(m)
}

func (p *TOMLParser) source() string {
	if p.Path == "" {
		return "<toml>"
	}
	return p.Path
}
