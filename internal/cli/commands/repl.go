package commands

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"

	"github.com/dshills/wysiwyg/internal/composer"
	"github.com/dshills/wysiwyg/internal/composer/action"
	"github.com/dshills/wysiwyg/internal/composer/menu"
)

// NewREPLCommand creates the interactive repl command.
func NewREPLCommand() *cobra.Command {
	var content string

	cmd := &cobra.Command{
		Use:   "repl",
		Short: "Edit a document interactively",
		Long: `Start an interactive session on a fresh composer. Every line is one
command, for example "type Hello", "select 0 5" or "bold". Type "help"
for the list of commands.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			env := EnvFrom(cmd.Context())
			s := newSession(env.NewModel(composer.WithContent(content)), cmd.OutOrStdout())

			rl, err := readline.NewEx(&readline.Config{
				Prompt:          "wysiwyg> ",
				HistoryFile:     env.Config.HistoryFile,
				AutoComplete:    newCommandCompleter(),
				InterruptPrompt: "^C",
				EOFPrompt:       "quit",
			})
			if err != nil {
				return fmt.Errorf("failed to initialize REPL: %w", err)
			}
			defer func() { _ = rl.Close() }()

			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "wysiwyg composer REPL")
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Type help for commands, quit to exit")

			for {
				line, err := rl.Readline()
				if errors.Is(err, readline.ErrInterrupt) {
					continue
				}
				if errors.Is(err, io.EOF) {
					return nil
				}
				if err != nil {
					return err
				}

				quit, err := s.exec(line)
				if err != nil {
					_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
				}
				if quit {
					return nil
				}
			}
		},
	}

	cmd.Flags().StringVar(&content, "content", "", "initial plain text content")
	return cmd
}

// session executes REPL lines against one composer.
type session struct {
	m   *composer.Model
	out io.Writer
}

func newSession(m *composer.Model, out io.Writer) *session {
	return &session{m: m, out: out}
}

type replCommand struct {
	usage string
	help  string
	run   func(s *session, args string) error
}

var replCommands map[string]replCommand

func init() {
	replCommands = map[string]replCommand{
		"type": {"type <text>", "replace the selection with text", func(s *session, args string) error {
			return s.update(s.m.ReplaceText(args))
		}},
		"select": {"select <anchor> <focus>", "set the selection", func(s *session, args string) error {
			n, _, err := ints(args, 2)
			if err != nil {
				return err
			}
			return s.update(s.m.Select(n[0], n[1]))
		}},
		"replace": {"replace <start> <end> <text>", "replace a range with text", func(s *session, args string) error {
			n, rest, err := ints(args, 2)
			if err != nil {
				return err
			}
			return s.update(s.m.ReplaceTextIn(rest, n[0], n[1]))
		}},
		"delete_in": {"delete_in <start> <end>", "delete a range", func(s *session, args string) error {
			n, _, err := ints(args, 2)
			if err != nil {
				return err
			}
			return s.update(s.m.DeleteIn(n[0], n[1]))
		}},
		"backspace": {"backspace", "delete backwards", func(s *session, _ string) error {
			return s.update(s.m.Backspace())
		}},
		"delete": {"delete", "delete forwards", func(s *session, _ string) error {
			return s.update(s.m.Delete())
		}},
		"enter": {"enter", "split the block at the caret", func(s *session, _ string) error {
			return s.update(s.m.Enter())
		}},
		"link": {"link", "request a link for the selection", func(s *session, _ string) error {
			return s.update(s.m.SetLink())
		}},
		"respond": {"respond <action-id> <json>", "answer a pending action", func(s *session, args string) error {
			id, payload, _ := strings.Cut(args, " ")
			if id == "" {
				return errors.New("usage: respond <action-id> <json>")
			}
			return s.update(s.m.ActionResponse(action.ID(id), []byte(strings.TrimSpace(payload))))
		}},
		"cancel": {"cancel <action-id>", "cancel a pending action", func(s *session, args string) error {
			return s.update(s.m.CancelAction(action.ID(args)), nil)
		}},
		"load": {"load <html>", "replace the content with HTML", func(s *session, args string) error {
			return s.update(s.m.SetContentFromHTML(args))
		}},
		"text": {"text", "print the plain text", func(s *session, _ string) error {
			_, err := fmt.Fprintf(s.out, "%q\n", s.m.Text())
			return err
		}},
		"html": {"html", "print the content as HTML", func(s *session, _ string) error {
			_, err := fmt.Fprintln(s.out, s.m.GetContentAsHTML())
			return err
		}},
		"markdown": {"markdown", "print the content as Markdown", func(s *session, _ string) error {
			md, err := s.m.GetContentAsMarkdown()
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(s.out, md)
			return err
		}},
		"tree": {"tree", "print the document tree", func(s *session, _ string) error {
			_, err := fmt.Fprint(s.out, s.m.Tree())
			return err
		}},
		"dump": {"dump", "print the JSON state", func(s *session, _ string) error {
			_, err := fmt.Fprintln(s.out, s.m.DumpState())
			return err
		}},
		"menu": {"menu", "print the menu state", func(s *session, _ string) error {
			renderMenu(s.out, s.m.MenuState())
			return nil
		}},
		"actions": {"actions", "list pending actions", func(s *session, _ string) error {
			if len(s.m.PendingActions()) == 0 {
				_, err := fmt.Fprintln(s.out, "(no pending actions)")
				return err
			}
			renderActions(s.out, s.m.PendingActions())
			return nil
		}},
	}
	for _, a := range menu.All {
		if a == menu.Link {
			continue
		}
		replCommands[string(a)] = replCommand{string(a), "toggle " + strings.ReplaceAll(string(a), "_", " "), func(s *session, _ string) error {
			return s.update(s.m.Apply(a))
		}}
	}
}

// exec runs one line. It reports whether the session should end.
func (s *session) exec(line string) (bool, error) {
	line = strings.TrimSpace(line)
	if line == "" {
		return false, nil
	}
	name, args, _ := strings.Cut(line, " ")
	name = strings.ToLower(name)

	switch name {
	case "quit", "exit":
		return true, nil
	case "help":
		s.help()
		return false, nil
	}

	c, ok := replCommands[name]
	if !ok {
		return false, fmt.Errorf("unknown command %q (type help)", name)
	}
	return false, c.run(s, args)
}

func (s *session) update(u composer.Update, err error) error {
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(s.out, "%s\n%s\n", describeUpdate(u), u.MenuState())
	return err
}

func (s *session) help() {
	for _, name := range commandNames() {
		c := replCommands[name]
		_, _ = fmt.Fprintf(s.out, "  %-30s %s\n", c.usage, c.help)
	}
	_, _ = fmt.Fprintf(s.out, "  %-30s %s\n", "quit", "leave the REPL")
}

func commandNames() []string {
	names := make([]string, 0, len(replCommands))
	for name := range replCommands {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// newCommandCompleter creates a readline completer for command names.
func newCommandCompleter() *readline.PrefixCompleter {
	var items []readline.PrefixCompleterInterface
	for _, name := range commandNames() {
		items = append(items, readline.PcItem(name))
	}
	items = append(items, readline.PcItem("help"), readline.PcItem("quit"))
	return readline.NewPrefixCompleter(items...)
}

// ints parses n leading integers and returns them with the remainder.
func ints(args string, n int) ([]int, string, error) {
	out := make([]int, n)
	rest := strings.TrimSpace(args)
	for i := range n {
		var field string
		field, rest, _ = strings.Cut(rest, " ")
		v, err := strconv.Atoi(field)
		if err != nil {
			return nil, "", fmt.Errorf("expected %d offsets, got %q", n, args)
		}
		out[i] = v
		rest = strings.TrimLeft(rest, " ")
	}
	return out, rest, nil
}
