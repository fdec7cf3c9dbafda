package cli

import (
	"context"
	"errors"
	"fmt"
	flag "github.com/spf13/pflag"
	"regexp"
	"slices"
	"strings"
)

var (
	ErrUnknownCommand = errors.New("unknown command")
	HelpPatterns      = []string{"--help", "-h"} // HelpPatterns print the [CommandSet] usage when given as the first argument.

	keyCleansePattern = regexp.MustCompile(`\s`)
)

// CommandFunc is the work done by a [Command], called with its parsed flags.
type CommandFunc = func(ctx context.Context, flags *flag.FlagSet, printer *Printer) error

// Command is a sub-command in a [CommandSet].
type Command struct {
	flags      *flag.FlagSet
	exec       CommandFunc
	key        string
	parent     string
	shortUsage string
	usage      string
	printer    *Printer
}

func cleanseKey(key string) string {
	return keyCleansePattern.ReplaceAllString(strings.ToLower(key), "")
}

func newCommand(key, parent, shortUsage string, printer *Printer) *Command {
	cmd := &Command{key: key, parent: parent, shortUsage: shortUsage, printer: printer}
	cmd.flags = flag.NewFlagSet(key, flag.ContinueOnError)
	cmd.flags.BoolP("help", "h", false, "Prints this usage information")
	cmd.flags.SetInterspersed(false)
	cmd.flags.SetOutput(printer)
	cmd.flags.Usage = cmd.PrintUsage
	return cmd
}

// Does specifies the [CommandFunc] that should be executed by this [Command].
func (c *Command) Does(commandFunc CommandFunc) *Command {
	if commandFunc == nil {
		return c
	}
	c.exec = commandFunc
	return c
}

// Flags returns the [flag.FlagSet] for this [Command].
func (c *Command) Flags() *flag.FlagSet {
	return c.flags
}

// Usage sets a usage hint, which is prefixed with the parent [CommandSet] name.
func (c *Command) Usage(format string, args ...any) *Command {
	c.usage = fmt.Sprintf(format, args...)
	return c
}

// PrintUsage prints the short description, usage hint, and flags of this [Command].
func (c *Command) PrintUsage() {
	var buf strings.Builder
	buf.WriteString(c.shortUsage + "\n")
	if len(c.usage) > 0 {
		usage := c.usage
		if len(c.parent) > 0 {
			usage = c.parent + " " + usage
		}
		buf.WriteString("\nUSAGE:\n" + strings.TrimSuffix(usage, "\n") + "\n")
	}
	buf.WriteString("\nFLAGS\n")
	buf.WriteString(c.flags.FlagUsages())
	c.printer.Print(buf.String())
}

// Exec parses args as flags and runs the [Command].
// A [UsageError] returned from the [CommandFunc] is printed along with usage, and then returned.
func (c *Command) Exec(ctx context.Context, args []string) error {
	if err := c.flags.Parse(args); err != nil {
		return err
	}
	if help, _ := c.flags.GetBool("help"); help || c.exec == nil {
		c.PrintUsage()
		return nil
	}
	err := c.exec(ctx, c.flags, c.printer)
	if errors.Is(err, &UsageError{}) {
		c.printer.Println(err.Error())
		c.printer.Println()
		c.PrintUsage()
	}
	return err
}

// CommandSet is the root of a CLI, and dispatches to its sub-commands.
type CommandSet struct {
	commands map[string]*Command
	printer  *Printer
	name     string
}

// NewCommandSet creates a [CommandSet] for a CLI invoked as name.
func NewCommandSet(name string) *CommandSet {
	return &CommandSet{printer: NewPrinter(), name: name}
}

// Printer returns the [Printer] shared by this [CommandSet] and its commands.
func (s *CommandSet) Printer() *Printer {
	if s.printer == nil {
		s.printer = NewPrinter()
	}
	return s.printer
}

// AddCommand adds a sub-command to this [CommandSet].
// The key is cleansed to remove spaces, and normalized to lower-case.
func (s *CommandSet) AddCommand(key, shortUsage string) *Command {
	key = cleanseKey(key)
	cmd := newCommand(key, s.name, shortUsage, s.Printer())
	if s.commands == nil {
		s.commands = map[string]*Command{}
	}
	s.commands[key] = cmd
	return cmd
}

// Exec runs the sub-command named by the first argument, which is matched case-insensitive.
// Usage is printed when no arguments or a [HelpPatterns] flag is given, and when the sub-command is unknown.
func (s *CommandSet) Exec(ctx context.Context, args []string) error {
	if s.RespondUsage(args) {
		return nil
	}
	cmd, ok := s.commands[strings.ToLower(args[0])]
	if !ok {
		s.PrintUsage()
		return fmt.Errorf("%w: %s", ErrUnknownCommand, args[0])
	}
	return cmd.Exec(ctx, args[1:])
}

// RespondUsage prints usage and returns true if args are empty or start with one of [HelpPatterns].
func (s *CommandSet) RespondUsage(args []string) bool {
	if len(args) > 0 && !slices.Contains(HelpPatterns, args[0]) {
		return false
	}
	s.PrintUsage()
	return true
}

func (s *CommandSet) PrintUsage() {
	s.Printer().Printf("USAGE:\n%s COMMAND [FLAGS...]\n\nCOMMANDS:\n%s", s.name, s.CommandUsages())
}

// CommandUsages lists each sub-command with its short description, sorted by key.
func (s *CommandSet) CommandUsages() string {
	var (
		buf    strings.Builder
		keys   = make([]string, 0, len(s.commands))
		maxLen int
	)
	for key := range s.commands {
		keys = append(keys, key)
		maxLen = max(maxLen, len(key))
	}
	slices.Sort(keys)
	fmtStr := fmt.Sprintf("  %%-%ds\t%%s\n", maxLen)
	for _, key := range keys {
		buf.WriteString(fmt.Sprintf(fmtStr, key, s.commands[key].shortUsage))
	}
	return buf.String()
}
