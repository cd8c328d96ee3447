// Package script runs Lua scripts against a composer.
//
// Scripts see a single global module, wysiwyg, whose functions drive one
// composer.Model:
//
//	wysiwyg.replace_text("Hello")
//	wysiwyg.select(0, 5)
//	wysiwyg.bold()
//	print(wysiwyg.html())  -- <strong>Hello</strong>
//
// gopher-lua states are not goroutine-safe. A State serialises Go-side
// calls with a mutex; a script must not be run from two goroutines at once.
package script

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	lua "github.com/yuin/gopher-lua"
)

// DefaultTimeout bounds a single script execution.
const DefaultTimeout = 5 * time.Second

// ErrStateClosed is returned by operations on a closed State.
var ErrStateClosed = errors.New("lua state closed")

// State wraps a sandboxed gopher-lua state.
type State struct {
	L *lua.LState

	mu      sync.Mutex
	timeout time.Duration
	output  io.Writer
	closed  bool
}

// StateOption configures a State.
type StateOption func(*State)

// WithTimeout sets the execution timeout. Zero disables it.
func WithTimeout(d time.Duration) StateOption {
	return func(s *State) {
		s.timeout = d
	}
}

// WithOutput redirects print to w.
func WithOutput(w io.Writer) StateOption {
	return func(s *State) {
		if w != nil {
			s.output = w
		}
	}
}

// NewState creates a new sandboxed Lua state.
func NewState(opts ...StateOption) *State {
	s := &State{
		timeout: DefaultTimeout,
		output:  os.Stdout,
	}
	for _, opt := range opts {
		opt(s)
	}

	s.L = lua.NewState(lua.Options{SkipOpenLibs: true})
	openSafeLibraries(s.L)
	installSandbox(s.L, s.output)
	return s
}

// openSafeLibraries opens only safe Lua standard libraries.
func openSafeLibraries(L *lua.LState) {
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)
	lua.OpenPackage(L)

	// io, os and debug are intentionally NOT opened.
}

// DoFile executes a Lua file.
func (s *State) DoFile(ctx context.Context, path string) error {
	code, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading script: %w", err)
	}
	return s.do(ctx, func() error {
		fn, err := s.L.Load(strings.NewReader(string(code)), path)
		if err != nil {
			return err
		}
		s.L.Push(fn)
		return s.L.PCall(0, lua.MultRet, nil)
	})
}

// DoString executes a Lua chunk.
func (s *State) DoString(ctx context.Context, code string) error {
	return s.do(ctx, func() error {
		return s.L.DoString(code)
	})
}

func (s *State) do(ctx context.Context, fn func() error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStateClosed
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}
	s.L.SetContext(ctx)
	defer s.L.RemoveContext()

	top := s.L.GetTop()
	err := s.doWithRecovery(fn)
	s.L.SetTop(top)
	if err != nil && ctx.Err() != nil {
		return fmt.Errorf("script interrupted: %w", ctx.Err())
	}
	return err
}

// doWithRecovery executes a function with panic recovery.
func (s *State) doWithRecovery(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("lua panic: %v", r)
		}
	}()
	return fn()
}

// SetGlobal sets a global variable.
func (s *State) SetGlobal(name string, value lua.LValue) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	s.L.SetGlobal(name, value)
}

// GetGlobal returns a global variable value.
func (s *State) GetGlobal(name string) lua.LValue {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return lua.LNil
	}
	return s.L.GetGlobal(name)
}

// Close releases the Lua state.
func (s *State) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.L.Close()
	s.closed = true
	return nil
}
