package main

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/pkg/errors"

	"github.com/NimbleMarkets/ntcharts/canvas/runes"
	"github.com/NimbleMarkets/ntcharts/linechart/streamlinechart"

	"woebot/host/console"
)

type MonitorCommand struct {
	Interval time.Duration `short:"i" long:"interval" default:"100ms" description:"Polling interval"`
	Right    int           `long:"right" default:"0" description:"Right wheel stepper id"`
	Left     int           `long:"left" default:"1" description:"Left wheel stepper id"`
	Range    float64       `long:"range" default:"1600" description:"Chart range in steps/s"`
}

const (
	headerHeight = 2
	legendHeight = 2
	footerHeight = 3
	borderSize   = 2
)

var (
	chartStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240"))

	wheelColors = map[string]string{
		"right": "196",
		"left":  "51",
	}
)

type wheelMsg struct {
	right, left console.AxisReport
	err         error
}

// stopMsg reports how an emergency stop went
type stopMsg struct {
	err error
}

// stopCmd hard-stops the platform without blocking the UI.
func stopCmd(con *console.Console, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		out, err := con.Exec("ps 1", timeout)
		if err == nil && strings.HasPrefix(out, "error: ") {
			err = errors.New(strings.TrimSpace(strings.TrimPrefix(out, "error: ")))
		}
		if err != nil {
			return stopMsg{errors.Wrap(err, "emergency stop")}
		}
		return stopMsg{}
	}
}

type monitorModel struct {
	con    *console.Console
	cmd    *MonitorCommand
	chart  *streamlinechart.Model
	width  int
	height int
	last   wheelMsg
}

func (c *MonitorCommand) poll(con *console.Console) tea.Cmd {
	return tea.Tick(c.Interval, func(time.Time) tea.Msg {
		var m wheelMsg
		m.right, m.err = con.AxisStatus(c.Right, opts.Conn.Timeout)
		if m.err == nil {
			m.left, m.err = con.AxisStatus(c.Left, opts.Conn.Timeout)
		}
		return m
	})
}

func (m *monitorModel) resizeChart() {
	w := m.width - borderSize - 2
	if w < 40 {
		w = 40
	}
	h := m.height - headerHeight - legendHeight - footerHeight - borderSize
	if h < 10 {
		h = 10
	}
	m.chart.Resize(w, h)
}

func (m monitorModel) Init() tea.Cmd {
	return m.cmd.poll(m.con)
}

func (m monitorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resizeChart()
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			return m, stopCmd(m.con, opts.Conn.Timeout)
		}

	case stopMsg:
		m.last.err = msg.err
		return m, nil

	case wheelMsg:
		m.last = msg
		if msg.err == nil {
			m.chart.PushDataSet("right", float64(msg.right.Velocity))
			m.chart.PushDataSet("left", float64(msg.left.Velocity))
			m.chart.DrawAll()
		}
		return m, m.cmd.poll(m.con)
	}

	return m, nil
}

func (m monitorModel) View() string {
	var sb strings.Builder

	sb.WriteString(titleStyle.Render("woebot monitor"))
	sb.WriteString(statusStyle.Render(fmt.Sprintf(" - %s every %v", opts.Conn.Device, m.cmd.Interval)))
	sb.WriteString("\n\n")

	sb.WriteString(chartStyle.Render(m.chart.View()))
	sb.WriteString("\n")

	var items []string
	for _, name := range []string{"right", "left"} {
		style := lipgloss.NewStyle().Foreground(lipgloss.Color(wheelColors[name])).Bold(true)
		items = append(items, style.Render("━━")+" "+name)
	}
	sb.WriteString(strings.Join(items, "  "))
	sb.WriteString("\n\n")

	if m.last.err != nil {
		sb.WriteString(errorStyle.Render(m.last.err.Error()))
	} else {
		sb.WriteString(statusStyle.Render(fmt.Sprintf(
			"right %d/%d SPS, %d steps left   left %d/%d SPS, %d steps left   [space] stop  [q] quit",
			m.last.right.Velocity, m.last.right.Target, m.last.right.Remaining,
			m.last.left.Velocity, m.last.left.Target, m.last.left.Remaining)))
	}
	sb.WriteString("\n")
	return sb.String()
}

func (c *MonitorCommand) Execute(args []string) error {
	con, err := connect()
	if err != nil {
		return err
	}
	defer con.Close()

	chart := streamlinechart.New(80, 20,
		streamlinechart.WithYRange(-c.Range, c.Range),
	)
	for name, color := range wheelColors {
		chart.SetDataSetStyles(name, runes.ThinLineStyle, lipgloss.NewStyle().Foreground(lipgloss.Color(color)))
	}

	m := monitorModel{con: con, cmd: c, chart: &chart}
	_, err = tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
