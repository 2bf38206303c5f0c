package main

import (
	"os"
	"time"

	"github.com/jessevdk/go-flags"

	"woebot/host/console"
	"woebot/host/serial"
)

// ConnOptions select the robot's serial console.
type ConnOptions struct {
	Device  string        `short:"d" long:"device" default:"/dev/ttyUSB0" description:"Serial device path"`
	Baud    int           `short:"b" long:"baud" default:"115200" description:"Baud rate"`
	Timeout time.Duration `short:"t" long:"timeout" default:"2s" description:"Time to wait for the shell prompt"`
}

type Options struct {
	Conn ConnOptions `group:"Connection"`

	Console ConsoleCommand `command:"console" alias:"c" description:"Interactive session with the robot shell"`
	Exec    ExecCommand    `command:"exec" alias:"x" description:"Run one shell command and print its output"`
	Monitor MonitorCommand `command:"monitor" alias:"mon" description:"Chart the wheel velocities live"`
}

var opts Options
var parser = flags.NewParser(&opts, flags.Default)

func main() {
	parser.LongDescription = "woebot-host - serial console for the woebot differential-drive robot"

	_, err := parser.Parse()
	if err != nil {
		if flagsErr, ok := err.(*flags.Error); ok {
			if flagsErr.Type == flags.ErrHelp {
				os.Exit(0)
			}
		}
		os.Exit(1)
	}
}

// connect opens the console and waits for the first prompt.
func connect() (*console.Console, error) {
	cfg := serial.DefaultConfig(opts.Conn.Device)
	cfg.Baud = opts.Conn.Baud

	c, err := console.ConnectWithConfig(cfg)
	if err != nil {
		return nil, err
	}
	if err := c.Sync(opts.Conn.Timeout); err != nil {
		c.Close()
		return nil, err
	}
	return c, nil
}
