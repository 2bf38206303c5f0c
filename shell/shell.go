// Package shell is the line-oriented command interpreter of the robot. It
// runs the same on the board UART and on a host terminal.
package shell

import (
	"bufio"
	"io"
	"strings"

	"github.com/google/shlex"

	"woebot/platform"
)

// DefaultPrompt is printed before every command line
const DefaultPrompt = "shell# "

// Platform is the motion API of the differential-drive base
type Platform interface {
	Go(velocity, acceleration, angular, distance float64) error
	Stop(hard bool) error
	Idle() error
	Status() (platform.Status, error)
}

// Config wires a shell to the machine it controls
type Config struct {
	Steppers platform.Axes
	Platform Platform // optional
	Reset    func()   // optional board reset
	Prompt   string
	Echo     bool // echo typed characters, for raw serial terminals
}

// Shell reads commands and runs them
type Shell struct {
	cfg      Config
	registry *Registry
}

// New creates a shell with the stepper and platform commands registered
func New(cfg Config) *Shell {
	if cfg.Prompt == "" {
		cfg.Prompt = DefaultPrompt
	}
	s := &Shell{
		cfg:      cfg,
		registry: NewRegistry(),
	}
	s.registerCommands()
	return s
}

// Registry exposes the command table, for boards adding their own commands
func (s *Shell) Registry() *Registry {
	return s.registry
}

// Execute runs one command line. Spaces and commas both separate arguments.
func (s *Shell) Execute(w io.Writer, line string) {
	line = strings.TrimSpace(line)
	if line == "" {
		return
	}

	args, err := shlex.Split(strings.ReplaceAll(line, ",", " "))
	if err != nil {
		io.WriteString(w, "error: "+err.Error()+"\n")
		return
	}
	if len(args) == 0 {
		return
	}

	err = s.registry.Dispatch(w, args)
	switch {
	case err == errUnknownCommand:
		io.WriteString(w, "no such command '"+line+"'\ntry 'help'\n")
	case err != nil:
		io.WriteString(w, "error: "+err.Error()+"\n")
	}
}

// Serve prompts, reads a line from r, runs it, and repeats until r is
// exhausted. Lines end with CR, LF or CRLF; backspace edits the line.
func (s *Shell) Serve(r io.Reader, w io.Writer) error {
	br := bufio.NewReader(r)
	line := make([]byte, 0, 256)
	lastCR := false

	io.WriteString(w, s.cfg.Prompt)
	for {
		c, err := br.ReadByte()
		if err != nil {
			if err == io.EOF {
				if len(line) > 0 {
					s.Execute(w, string(line))
				}
				return nil
			}
			return err
		}

		switch {
		case c == '\n' && lastCR:
			// second half of CRLF
		case c == '\r' || c == '\n':
			if s.cfg.Echo {
				io.WriteString(w, "\r\n")
			}
			s.Execute(w, string(line))
			line = line[:0]
			io.WriteString(w, s.cfg.Prompt)
		case c == 8 || c == 127:
			if len(line) > 0 {
				line = line[:len(line)-1]
				if s.cfg.Echo {
					io.WriteString(w, "\b \b")
				}
			}
		case c >= ' ':
			if len(line) < cap(line) {
				line = append(line, c)
				if s.cfg.Echo {
					w.Write([]byte{c})
				}
			}
		default:
			// other control characters discard the line
			line = line[:0]
			if s.cfg.Echo {
				io.WriteString(w, "\r\n")
			}
			io.WriteString(w, s.cfg.Prompt)
		}
		lastCR = c == '\r'
	}
}
