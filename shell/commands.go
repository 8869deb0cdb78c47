package shell

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/brettbedarf/memfs/filesystem"
)

func registerBuiltins(r *Registry) {
	for _, cmd := range []*Command{
		{Name: "mkdir", Usage: "mkdir <name>", Summary: "create a directory in the current directory", MinArgs: 1, MaxArgs: 1, Run: mkdir},
		{Name: "cd", Usage: "cd [<path>|..|~|-<n>]", Summary: "change directory; no argument prints the current path", MinArgs: 0, MaxArgs: 1, Run: cd},
		{Name: "ls", Usage: "ls [<path>]", Summary: "list a directory", MinArgs: 0, MaxArgs: 1, Run: ls},
		{Name: "cat", Usage: "cat <name|path>", Summary: "print a file's content", MinArgs: 1, MaxArgs: 1, Run: cat},
		{Name: "touch", Usage: "touch <name>", Summary: "create an empty file", MinArgs: 1, MaxArgs: 1, Run: touch},
		{Name: "echo", Usage: "echo <text...> <name>", Summary: "create a file holding text unless it exists", MinArgs: 2, MaxArgs: -1, Run: echo},
		{Name: "mv", Usage: "mv <src> <dst>", Summary: "move an item into a directory", MinArgs: 2, MaxArgs: 2, Run: mv},
		{Name: "cp", Usage: "cp <src> <dst>", Summary: "copy an item into a directory as \"<name> copy\"", MinArgs: 2, MaxArgs: 2, Run: cp},
		{Name: "rm", Usage: "rm <name|path>", Summary: "remove an item", MinArgs: 1, MaxArgs: 1, Run: rm},
		{Name: "rename", Usage: "rename <old> <new>", Summary: "rename an item in the current directory", MinArgs: 2, MaxArgs: 2, Run: rename},
		{Name: "pwd", Usage: "pwd", Summary: "print the current path", MinArgs: 0, MaxArgs: 0, Run: pwd},
		{Name: "find", Usage: "find <name>", Summary: "find items by name below the current directory", MinArgs: 1, MaxArgs: 1, Run: find},
		{Name: "tree", Usage: "tree [<path>]", Summary: "print a directory tree", MinArgs: 0, MaxArgs: 1, Run: tree},
		{Name: "back", Usage: "back <dir-name>", Summary: "go back to the nearest enclosing directory with that name", MinArgs: 1, MaxArgs: 1, Run: back},
		{Name: "help", Usage: "help", Summary: "list commands", MinArgs: 0, MaxArgs: 0, Run: help},
		{Name: "exit", Usage: "exit", Summary: "leave the shell", MinArgs: 0, MaxArgs: 0, Run: exit},
	} {
		r.Register(cmd)
	}
}

func mkdir(s *Shell, args []string) error {
	name := args[0]
	existed := s.fs.HasItem(name)
	d, err := s.fs.CreateDirectory(name, filesystem.DefaultDirKind)
	if err != nil {
		return err
	}
	if d == nil {
		return fmt.Errorf("%q exists and is not a directory", name)
	}
	if existed {
		s.printf("Directory %q already exists\n", d.Name())
		return nil
	}
	s.printf("Directory %q created\n", d.Name())
	return nil
}

func cd(s *Shell, args []string) error {
	if len(args) == 0 {
		s.printCursor()
		return nil
	}

	target := args[0]
	switch {
	case target == "..":
		if s.fs.GoBack(1) == nil {
			return fmt.Errorf("already at the root directory")
		}
	case target == "~":
		s.fs.OpenDirectory(filesystem.Separator)
	case isStepCount(target):
		steps, _ := strconv.Atoi(target[1:])
		if steps < 1 {
			return fmt.Errorf("invalid step count %q", target[1:])
		}
		if s.fs.GoBack(steps) == nil {
			return fmt.Errorf("cannot go back %d level(s) from %s", steps, s.cursorPath())
		}
	default:
		if s.fs.OpenDirectory(target) == nil {
			return fmt.Errorf("directory not found: %s", target)
		}
	}
	s.printf("Changed directory to: [%s]\n", s.cursorPath())
	return nil
}

// isStepCount reports whether a cd target is "-<n>". Other names starting
// with "-" are directories.
func isStepCount(target string) bool {
	if !strings.HasPrefix(target, "-") || len(target) < 2 {
		return false
	}
	_, err := strconv.Atoi(target[1:])
	return err == nil
}

func ls(s *Shell, args []string) error {
	var items []filesystem.Node
	if len(args) == 0 {
		items = s.fs.List()
	} else {
		d, ok := s.fs.ResolvePath(args[0]).(*filesystem.Dir)
		if !ok {
			return fmt.Errorf("directory not found: %s", args[0])
		}
		items = d.List()
	}

	if len(items) == 0 {
		s.println(s.styles.Muted.Render("(empty)"))
		return nil
	}
	for _, item := range items {
		s.println(s.entry(item))
	}
	return nil
}

func cat(s *Shell, args []string) error {
	switch n := s.fs.GetItem(args[0]).(type) {
	case *filesystem.File:
		s.println(n.Content())
		return nil
	case *filesystem.Dir:
		return fmt.Errorf("%s is a directory", args[0])
	default:
		return fmt.Errorf("file not found: %s", args[0])
	}
}

func touch(s *Shell, args []string) error {
	name := args[0]
	existed := s.fs.HasItem(name)
	f, err := s.fs.CreateFile(name, nil, s.origin)
	if err != nil {
		return err
	}
	if f == nil {
		return fmt.Errorf("%q exists and is not a file", name)
	}
	if existed {
		s.printf("File %q already exists\n", f.Name())
		return nil
	}
	s.printf("File %q created\n", f.Name())
	return nil
}

func echo(s *Shell, args []string) error {
	name := args[len(args)-1]
	text := strings.Join(args[:len(args)-1], " ")

	if s.fs.HasItem(name) {
		s.printf("File %q already exists\n", name)
		return nil
	}
	f, err := s.fs.CreateFile(name, text, s.origin)
	if err != nil {
		return err
	}
	if f == nil {
		return fmt.Errorf("failed to write text to %q", name)
	}
	s.printf("Text written to %q\n", f.Name())
	return nil
}

func mv(s *Shell, args []string) error {
	item := s.fs.GetItem(args[0])
	dest, err := s.fs.MoveItemTo(args[0], args[1])
	if err != nil {
		return err
	}
	if dest == nil {
		return fmt.Errorf("move failed: check source and destination paths")
	}
	s.printf("Moved %s %q to %s\n", kindLabel(item), item.Name(), dest.Path())
	return nil
}

func cp(s *Shell, args []string) error {
	item := s.fs.GetItem(args[0])
	c, err := s.fs.CopyItemTo(args[0], args[1])
	if err != nil {
		return err
	}
	if c == nil {
		return fmt.Errorf("copy failed: check source and destination paths")
	}
	s.printf("Copied %s %q to %s\n", kindLabel(item), item.Name(), c.Path())
	return nil
}

func rm(s *Shell, args []string) error {
	item := s.fs.GetItem(args[0])
	if item == nil {
		return fmt.Errorf("item not found: %s", args[0])
	}
	if !s.fs.RemoveItem(args[0]) {
		return fmt.Errorf("cannot remove %s %q: it is the current directory or one of its parents", kindLabel(item), item.Name())
	}
	s.printf("Removed %s %q\n", kindLabel(item), item.Name())
	return nil
}

func rename(s *Shell, args []string) error {
	item, err := s.fs.RenameItem(args[0], args[1])
	if err != nil {
		return err
	}
	if item == nil {
		return fmt.Errorf("item not found: %s", args[0])
	}
	s.printf("Renamed %q to %q\n", args[0], item.Name())
	return nil
}

func pwd(s *Shell, _ []string) error {
	s.printCursor()
	return nil
}

func find(s *Shell, args []string) error {
	found := s.fs.FindAllItems(filesystem.ByName(args[0]), s.fs.Cursor())
	if len(found) == 0 {
		s.println(s.styles.Muted.Render("(no matches)"))
		return nil
	}
	for _, n := range found {
		s.println(s.entryPath(n))
	}
	return nil
}

func tree(s *Shell, args []string) error {
	dir := s.fs.Cursor()
	if len(args) == 1 {
		d, ok := s.fs.ResolvePath(args[0]).(*filesystem.Dir)
		if !ok {
			return fmt.Errorf("directory not found: %s", args[0])
		}
		dir = d
	}
	s.println(s.styles.Dir.Render(dir.Name()))
	s.printTree(dir, "", 1)
	return nil
}

func back(s *Shell, args []string) error {
	if s.fs.GoBackToDirectory(args[0]) == nil {
		return fmt.Errorf("no enclosing directory named %q", args[0])
	}
	s.printf("Changed directory to: [%s]\n", s.cursorPath())
	return nil
}

func help(s *Shell, _ []string) error {
	cmds := s.registry.Commands()
	width := 0
	for _, c := range cmds {
		width = max(width, len(c.Usage))
	}
	for _, c := range cmds {
		s.printf("  %-*s  %s\n", width, c.Usage, s.styles.Muted.Render(c.Summary))
	}
	return nil
}

func exit(_ *Shell, _ []string) error {
	return ErrExit
}

func (s *Shell) printTree(dir *filesystem.Dir, prefix string, depth int) {
	children := dir.List()
	if depth > s.cfg.MaxTreeDepth {
		if len(children) > 0 {
			s.println(prefix + "└── " + s.styles.Muted.Render("..."))
		}
		return
	}
	for i, child := range children {
		branch, indent := "├── ", "│   "
		if i == len(children)-1 {
			branch, indent = "└── ", "    "
		}
		s.println(prefix + branch + s.name(child))
		if d, ok := child.(*filesystem.Dir); ok {
			s.printTree(d, prefix+indent, depth+1)
		}
	}
}

func (s *Shell) printCursor() {
	s.println(s.cursorPath())
}

func (s *Shell) cursorPath() string {
	return strings.Join(s.fs.CursorPathNames(), filesystem.Separator)
}

// entry formats a listing line, i.e. "[D]-> docs"
func (s *Shell) entry(n filesystem.Node) string {
	return s.styles.Tag.Render(tag(n)+"->") + " " + s.name(n)
}

func (s *Shell) entryPath(n filesystem.Node) string {
	return s.styles.Tag.Render(tag(n)+"->") + " " + n.Path()
}

func (s *Shell) name(n filesystem.Node) string {
	if _, ok := n.(*filesystem.Dir); ok {
		return s.styles.Dir.Render(n.Name())
	}
	return s.styles.File.Render(n.Name())
}

func tag(n filesystem.Node) string {
	if _, ok := n.(*filesystem.Dir); ok {
		return "[D]"
	}
	return "[F]"
}

func kindLabel(n filesystem.Node) string {
	if _, ok := n.(*filesystem.Dir); ok {
		return "directory"
	}
	return "file"
}
