package shell

import (
	"errors"
	"io"
	"strconv"
	"sync"
)

// Handler runs one command. Output goes to w; returned errors are printed
// by the shell.
type Handler func(w io.Writer, args Args) error

// Command is a registered shell command
type Command struct {
	Name    string
	Usage   string // argument list and description shown by help
	Handler Handler
}

// Registry holds the commands of a shell, in registration order
type Registry struct {
	mu       sync.RWMutex
	commands map[string]*Command
	order    []string
	usage    string
}

// NewRegistry creates an empty command registry
func NewRegistry() *Registry {
	return &Registry{
		commands: make(map[string]*Command),
	}
}

// Register adds a command. Registering a name twice keeps the first.
func (r *Registry) Register(name, usage string, handler Handler) *Command {
	r.mu.Lock()
	defer r.mu.Unlock()

	if cmd, exists := r.commands[name]; exists {
		return cmd
	}

	cmd := &Command{
		Name:    name,
		Usage:   usage,
		Handler: handler,
	}
	r.commands[name] = cmd
	r.order = append(r.order, name)

	r.rebuildUsage()

	return cmd
}

// Lookup finds a command by name
func (r *Registry) Lookup(name string) (*Command, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	cmd, ok := r.commands[name]
	return cmd, ok
}

// Count returns the number of registered commands
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.commands)
}

// Usage returns one "  name usage" line per command
func (r *Registry) Usage() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.usage
}

// rebuildUsage must be called with the lock held
func (r *Registry) rebuildUsage() {
	s := ""
	for _, name := range r.order {
		cmd := r.commands[name]
		if cmd.Usage != "" {
			s += "  " + cmd.Name + " " + cmd.Usage + "\n"
		} else {
			s += "  " + cmd.Name + "\n"
		}
	}
	r.usage = s
}

// errUnknownCommand is returned by Dispatch for names not registered
var errUnknownCommand = errors.New("unknown command")

// Dispatch runs the command named by args[0] with the remaining args
func (r *Registry) Dispatch(w io.Writer, args []string) error {
	if len(args) == 0 {
		return nil
	}
	cmd, ok := r.Lookup(args[0])
	if !ok || cmd.Handler == nil {
		return errUnknownCommand
	}
	return cmd.Handler(w, Args(args[1:]))
}

// Args are the positional arguments of a command. Missing arguments read
// as zero.
type Args []string

// Int parses argument i as a decimal integer
func (a Args) Int(i int) (int32, error) {
	if i >= len(a) {
		return 0, nil
	}
	n, err := strconv.ParseInt(a[i], 10, 32)
	if err != nil {
		return 0, errors.New("invalid integer '" + a[i] + "'")
	}
	return int32(n), nil
}

// Float parses argument i as a decimal number
func (a Args) Float(i int) (float64, error) {
	if i >= len(a) {
		return 0, nil
	}
	f, err := strconv.ParseFloat(a[i], 64)
	if err != nil {
		return 0, errors.New("invalid number '" + a[i] + "'")
	}
	return f, nil
}

// Bool reads argument i as a flag: any nonzero integer is true
func (a Args) Bool(i int) (bool, error) {
	n, err := a.Int(i)
	return n != 0, err
}
