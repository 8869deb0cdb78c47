package shell

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/puzpuzpuz/xsync/v4"
)

// Handler runs a command with its arguments (the action word excluded)
type Handler func(s *Shell, args []string) error

// Command describes one shell action
type Command struct {
	Name    string
	Usage   string // i.e. "mv <src> <dst>"
	Summary string
	MinArgs int
	MaxArgs int // -1 for unlimited
	Run     Handler
}

// Exec validates the argument count and runs the handler
func (c *Command) Exec(s *Shell, args []string) error {
	if len(args) < c.MinArgs || (c.MaxArgs >= 0 && len(args) > c.MaxArgs) {
		return fmt.Errorf("usage: %s", c.Usage)
	}
	return c.Run(s, args)
}

// Registry maps action names to commands
type Registry struct {
	commands *xsync.Map[string, *Command]
}

func NewRegistry() *Registry {
	return &Registry{commands: xsync.NewMap[string, *Command]()}
}

// Register adds cmd under its name, replacing any command already registered
// with that name
func (r *Registry) Register(cmd *Command) {
	r.commands.Store(cmd.Name, cmd)
}

// Get returns the command for name
func (r *Registry) Get(name string) (*Command, bool) {
	return r.commands.Load(name)
}

// Commands returns all registered commands sorted by name
func (r *Registry) Commands() []*Command {
	var cmds []*Command
	r.commands.Range(func(_ string, cmd *Command) bool {
		cmds = append(cmds, cmd)
		return true
	})
	slices.SortFunc(cmds, func(a, b *Command) int {
		return cmp.Compare(a.Name, b.Name)
	})
	return cmds
}
