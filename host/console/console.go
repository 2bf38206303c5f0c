// Package console drives the robot's command shell over a serial link: it
// sends one command line at a time and collects the text printed before the
// next prompt.
package console

import (
	"bytes"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/pkg/errors"

	"woebot/host/serial"
)

var (
	ErrNotConnected = errors.New("not connected to robot")
	ErrTimeout      = errors.New("timed out waiting for prompt")
)

const (
	eofBackoff = 10 * time.Millisecond
	settleTime = 50 * time.Millisecond
)

// DefaultPrompt is the prompt printed by the robot shell.
const DefaultPrompt = "shell# "

// Console is a connection to the robot shell.
type Console struct {
	port   serial.Port
	prompt string

	mu      sync.Mutex
	pending bytes.Buffer
	chunks  chan []byte
	readErr error
	closed  chan struct{}

	connected bool
}

// New wraps an open port. An empty prompt selects DefaultPrompt.
func New(port serial.Port, prompt string) *Console {
	if prompt == "" {
		prompt = DefaultPrompt
	}
	c := &Console{
		port:      port,
		prompt:    prompt,
		chunks:    make(chan []byte, 16),
		closed:    make(chan struct{}),
		connected: true,
	}
	go c.readLoop()
	return c
}

// Connect opens the serial device with the default console settings.
func Connect(device string) (*Console, error) {
	return ConnectWithConfig(serial.DefaultConfig(device))
}

// ConnectWithConfig opens the serial port described by cfg.
func ConnectWithConfig(cfg *serial.Config) (*Console, error) {
	port, err := serial.Open(cfg)
	if err != nil {
		return nil, err
	}
	if err := port.Flush(); err != nil {
		port.Close()
		return nil, err
	}
	return New(port, ""), nil
}

// Close closes the connection to the robot
func (c *Console) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.connected {
		return nil
	}
	c.connected = false
	close(c.closed)
	return c.port.Close()
}

// Sync sends an empty line and waits for the prompt, then discards
// whatever else arrives until the link goes quiet.
func (c *Console) Sync(timeout time.Duration) error {
	if _, err := c.Exec("", timeout); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	for {
		select {
		case _, ok := <-c.chunks:
			if !ok {
				return nil
			}
		case <-time.After(settleTime):
			return nil
		}
	}
}

// Exec sends one command line and returns its output, without the echoed
// command and the trailing prompt. Line endings are normalised to "\n".
func (c *Console) Exec(line string, timeout time.Duration) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.connected {
		return "", ErrNotConnected
	}

	c.pending.Reset()
	c.drain()
	if _, err := c.port.Write([]byte(line + "\r")); err != nil {
		return "", errors.Wrap(err, "write command")
	}

	raw, err := c.readPrompt(timeout)
	if err != nil {
		return "", err
	}
	return clean(raw, line), nil
}

// readPrompt collects input until it ends with the prompt.
func (c *Console) readPrompt(timeout time.Duration) (string, error) {
	deadline := time.NewTimer(timeout)
	defer deadline.Stop()

	for {
		if s := c.pending.String(); strings.HasSuffix(s, c.prompt) {
			return strings.TrimSuffix(s, c.prompt), nil
		}
		select {
		case b, ok := <-c.chunks:
			if !ok {
				if c.readErr != nil {
					return "", errors.Wrap(c.readErr, "read console")
				}
				return "", ErrNotConnected
			}
			c.pending.Write(b)
		case <-deadline.C:
			return "", errors.Wrapf(ErrTimeout, "after %v (got %q)", timeout, c.pending.String())
		}
	}
}

// drain drops output that arrived between commands.
func (c *Console) drain() {
	for {
		select {
		case _, ok := <-c.chunks:
			if !ok {
				return
			}
		default:
			return
		}
	}
}

func (c *Console) readLoop() {
	defer close(c.chunks)
	buf := make([]byte, 256)
	for {
		n, err := c.port.Read(buf)
		if n > 0 {
			b := make([]byte, n)
			copy(b, buf[:n])
			select {
			case c.chunks <- b:
			case <-c.closed:
				return
			}
		}
		if err == io.EOF {
			// tarm/serial reports a read timeout as EOF.
			select {
			case <-c.closed:
				return
			case <-time.After(eofBackoff):
			}
			continue
		}
		if err != nil {
			c.readErr = err
			return
		}
	}
}

// clean strips the echoed command line and normalises line endings.
func clean(raw, line string) string {
	s := strings.ReplaceAll(raw, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	if line != "" {
		s = strings.TrimPrefix(s, line)
	}
	return strings.TrimPrefix(s, "\n")
}
