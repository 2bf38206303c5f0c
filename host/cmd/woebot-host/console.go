package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	promptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

type ConsoleCommand struct{}

func (c *ConsoleCommand) Execute(args []string) error {
	fmt.Println(titleStyle.Render("woebot console"))
	fmt.Println(statusStyle.Render("Connecting to " + opts.Conn.Device + "..."))

	con, err := connect()
	if err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render("Error: "+err.Error()))
		return err
	}
	defer con.Close()

	fmt.Println(statusStyle.Render("Connected. Type 'help' for robot commands, 'quit' to exit."))

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print(promptStyle.Render("woebot> "))
		if !scanner.Scan() {
			break
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "quit" || line == "exit" {
			break
		}

		out, err := con.Exec(line, opts.Conn.Timeout)
		if err != nil {
			fmt.Fprintln(os.Stderr, errorStyle.Render("Error: "+err.Error()))
			continue
		}
		fmt.Print(out)
	}
	return scanner.Err()
}

type ExecCommand struct {
	Args struct {
		Command []string `positional-arg-name:"command" required:"1"`
	} `positional-args:"yes"`
}

func (c *ExecCommand) Execute(args []string) error {
	con, err := connect()
	if err != nil {
		return err
	}
	defer con.Close()

	out, err := con.Exec(strings.Join(c.Args.Command, " "), opts.Conn.Timeout)
	if err != nil {
		return err
	}
	fmt.Print(out)
	return nil
}
