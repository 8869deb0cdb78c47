// Package shell is a line-oriented command interpreter over a
// [filesystem.FileSystem]. Each input line is split on whitespace into an
// action and its arguments, dispatched through a [Registry], and the result
// is printed as human readable text.
package shell

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/brettbedarf/memfs/config"
	"github.com/brettbedarf/memfs/filesystem"
	"github.com/brettbedarf/memfs/internal/util"
)

// ErrExit is returned by a handler to stop [Shell.Run]
var ErrExit = errors.New("exit")

type Shell struct {
	fs       FileSystem
	cfg      *config.Config
	out      io.Writer
	registry *Registry
	styles   Styles
	origin   *filesystem.Origin // attached to files created by touch and echo
}

// New creates a shell writing to out with the builtin commands registered.
// Output is styled only when cfg enables color and out is a terminal.
func New(fsys FileSystem, cfg *config.Config, out io.Writer) *Shell {
	if cfg == nil {
		cfg = config.NewDefaultConfig()
	}
	s := &Shell{
		fs:       fsys,
		cfg:      cfg,
		out:      out,
		registry: NewRegistry(),
		styles:   PlainStyles(),
	}
	if cfg.Color && IsTerminal(out) {
		s.styles = DefaultStyles(out)
	}
	if cfg.DefaultOrigin != "" {
		s.origin = &filesystem.Origin{Type: cfg.DefaultOrigin}
	}
	registerBuiltins(s.registry)
	return s
}

// Registry exposes the command registry so callers can add commands
func (s *Shell) Registry() *Registry {
	return s.registry
}

// Exec runs a single command line and reports whether the shell should exit.
// Blank lines are ignored.
func (s *Shell) Exec(line string) (exit bool) {
	logger := util.GetLogger("Shell.Exec")

	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false
	}
	action, args := fields[0], fields[1:]

	cmd, ok := s.registry.Get(action)
	if !ok {
		s.println(s.styles.Error.Render("Unknown command: " + action))
		return false
	}

	logger.Debug().Str("action", action).Strs("args", args).Msg("Dispatching command")
	if err := cmd.Exec(s, args); err != nil {
		if errors.Is(err, ErrExit) {
			return true
		}
		logger.Debug().Err(err).Str("action", action).Msg("Command failed")
		s.println(s.styles.Error.Render("error:"), err.Error())
	}
	return false
}

// Run reads commands from in until EOF, the exit command, or ctx is done.
// A prompt is printed before each line when the configured prompt mode
// allows it (see [PromptEnabled]).
func (s *Shell) Run(ctx context.Context, in io.Reader) error {
	logger := util.GetLogger("Shell.Run")
	prompt := PromptEnabled(s.cfg.PromptMode, in, s.out)
	logger.Debug().Bool("prompt", prompt).Msg("Shell started")

	lines := make(chan string)
	errc := make(chan error, 1)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				errc <- ctx.Err()
				return
			}
		}
		errc <- scanner.Err()
	}()

	for {
		if prompt {
			fmt.Fprint(s.out, s.Prompt())
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case line, ok := <-lines:
			if !ok {
				if prompt {
					fmt.Fprintln(s.out)
				}
				return <-errc
			}
			if s.Exec(line) {
				logger.Debug().Msg("Exit requested")
				return nil
			}
		}
	}
}

// Prompt returns the prompt for the current cursor, i.e. "[root/docs]$ "
func (s *Shell) Prompt() string {
	path := strings.Join(s.fs.CursorPathNames(), filesystem.Separator)
	return s.styles.Prompt.Render("["+path+"]$") + " "
}

func (s *Shell) println(a ...any) {
	fmt.Fprintln(s.out, a...)
}

func (s *Shell) printf(format string, a ...any) {
	fmt.Fprintf(s.out, format, a...)
}

// IsTerminal reports whether v is a file attached to a terminal
func IsTerminal(v any) bool {
	f, ok := v.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// PromptEnabled resolves a prompt mode. PromptAuto enables the prompt only
// when both in and out are terminals.
func PromptEnabled(mode string, in io.Reader, out io.Writer) bool {
	switch mode {
	case config.PromptAlways:
		return true
	case config.PromptNever:
		return false
	default:
		return IsTerminal(in) && IsTerminal(out)
	}
}
