// Package scenario replays scripted composer sessions described in YAML
// and checks their outcome.
//
//	name: bold a word
//	content: Hello
//	steps:
//	  - select: [0, 5]
//	  - command: bold
//	    expect:
//	      html: <strong>Hello</strong>
//	      update: replace_all
package scenario

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"
)

// ErrInvalidScenario indicates a scenario file that cannot be replayed.
var ErrInvalidScenario = errors.New("invalid scenario")

// Scenario is a named sequence of composer steps.
type Scenario struct {
	Name string `yaml:"name"`
	// Content is the initial plain text. The caret starts at its end.
	Content string `yaml:"content,omitempty"`
	// HTML, when set, replaces the initial content.
	HTML  string `yaml:"html,omitempty"`
	Steps []Step `yaml:"steps"`

	// Path is the file the scenario was loaded from.
	Path string `yaml:"-"`
}

// Step performs at most one operation, then checks its expectations.
type Step struct {
	Command        string          `yaml:"command,omitempty"`
	ReplaceText    *string         `yaml:"replace_text,omitempty"`
	ReplaceTextIn  *ReplaceTextIn  `yaml:"replace_text_in,omitempty"`
	Select         []int           `yaml:"select,omitempty,flow"`
	DeleteIn       []int           `yaml:"delete_in,omitempty,flow"`
	SetHTML        *string         `yaml:"set_html,omitempty"`
	ActionResponse *ActionResponse `yaml:"action_response,omitempty"`
	CancelAction   string          `yaml:"cancel_action,omitempty"`
	Expect         *Expect         `yaml:"expect,omitempty"`
}

// ReplaceTextIn replaces an explicit range.
type ReplaceTextIn struct {
	Text  string `yaml:"text"`
	Start int    `yaml:"start"`
	End   int    `yaml:"end"`
}

// ActionResponse answers a pending action. Response is the JSON payload.
type ActionResponse struct {
	Action   string `yaml:"action"`
	Response string `yaml:"response"`
}

// Expect lists the checks made after a step. Unset fields are not checked.
type Expect struct {
	Text      *string `yaml:"text,omitempty"`
	HTML      *string `yaml:"html,omitempty"`
	Markdown  *string `yaml:"markdown,omitempty"`
	Tree      *string `yaml:"tree,omitempty"`
	Selection []int   `yaml:"selection,omitempty,flow"`
	// Active is the exact set of active menu actions.
	Active []string `yaml:"active,omitempty,flow"`
	// Disabled lists actions that must be disabled.
	Disabled []string `yaml:"disabled,omitempty,flow"`
	// Enabled lists actions that must be enabled.
	Enabled []string `yaml:"enabled,omitempty,flow"`
	// Error is the expected error class; see ErrorClass.
	Error string `yaml:"error,omitempty"`
	// Update is "keep" or "replace_all".
	Update string `yaml:"update,omitempty"`
	// Created lists the kinds of actions the step created, in order.
	Created        []string `yaml:"created,omitempty,flow"`
	PendingActions *int     `yaml:"pending_actions,omitempty"`
}

// operation returns the name of the step's operation, or "" for a step
// that only checks expectations.
func (s Step) operation() (string, error) {
	var ops []string
	if s.Command != "" {
		ops = append(ops, s.Command)
	}
	if s.ReplaceText != nil {
		ops = append(ops, "replace_text")
	}
	if s.ReplaceTextIn != nil {
		ops = append(ops, "replace_text_in")
	}
	if s.Select != nil {
		ops = append(ops, "select")
	}
	if s.DeleteIn != nil {
		ops = append(ops, "delete_in")
	}
	if s.SetHTML != nil {
		ops = append(ops, "set_html")
	}
	if s.ActionResponse != nil {
		ops = append(ops, "action_response")
	}
	if s.CancelAction != "" {
		ops = append(ops, "cancel_action")
	}
	switch len(ops) {
	case 0:
		return "", nil
	case 1:
		return ops[0], nil
	default:
		return "", fmt.Errorf("%w: step has several operations %v", ErrInvalidScenario, ops)
	}
}

// Validate checks the structure of the scenario.
func (s *Scenario) Validate() error {
	if s.Name == "" {
		return fmt.Errorf("%w: missing name", ErrInvalidScenario)
	}
	if len(s.Steps) == 0 {
		return fmt.Errorf("%w: %s: no steps", ErrInvalidScenario, s.Name)
	}
	for i, st := range s.Steps {
		if _, err := st.operation(); err != nil {
			return fmt.Errorf("%s: step %d: %w", s.Name, i+1, err)
		}
		for _, pair := range []struct {
			name string
			v    []int
		}{{"select", st.Select}, {"delete_in", st.DeleteIn}} {
			if pair.v != nil && len(pair.v) != 2 {
				return fmt.Errorf("%w: %s: step %d: %s needs two offsets", ErrInvalidScenario, s.Name, i+1, pair.name)
			}
		}
		if st.Expect != nil && st.Expect.Selection != nil && len(st.Expect.Selection) != 2 {
			return fmt.Errorf("%w: %s: step %d: expected selection needs two offsets", ErrInvalidScenario, s.Name, i+1)
		}
	}
	return nil
}

// Parse decodes and validates a scenario.
func Parse(data []byte) (*Scenario, error) {
	var s Scenario
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidScenario, err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Load reads a scenario file.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scenario: %w", err)
	}
	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	s.Path = path
	return s, nil
}

// LoadAll reads every .yaml and .yml file in dir, sorted by file name.
func LoadAll(dir string) ([]*Scenario, error) {
	var paths []string
	for _, pattern := range []string{"*.yaml", "*.yml"} {
		matches, err := filepath.Glob(filepath.Join(dir, pattern))
		if err != nil {
			return nil, err
		}
		paths = append(paths, matches...)
	}
	sort.Strings(paths)

	out := make([]*Scenario, 0, len(paths))
	for _, p := range paths {
		s, err := Load(p)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

// Marshal encodes a scenario as YAML.
func Marshal(s *Scenario) ([]byte, error) {
	return yaml.Marshal(s)
}
