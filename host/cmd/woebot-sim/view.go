package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/NimbleMarkets/ntcharts/canvas/runes"
	"github.com/NimbleMarkets/ntcharts/linechart/streamlinechart"

	"woebot/core"
	"woebot/platform"
	"woebot/shell"
)

var (
	titleStyle       = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	dimStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	chartStyle       = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240"))
	tableHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")).Padding(0, 1)
	tableCellStyle   = lipgloss.NewStyle().Padding(0, 1)
	movingStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Padding(0, 1)

	wheelColors = map[string]string{
		"right": "196",
		"left":  "51",
	}
)

func (s *simulation) view(w io.Writer, _ shell.Args) error {
	st, err := s.Platform.Status()
	if err != nil {
		return err
	}
	fmt.Fprintln(w, statusTable(st, s.clock.Now(), s.clock.Frequency(), s.Platform.Kinematics().MaxVelocity()))
	return nil
}

// statusTable renders both wheels side by side. Step periods are shown in
// microseconds of the freq Hz step clock.
func statusTable(st platform.Status, now uint64, freq uint32, vmax float64) string {
	row := func(name string, a core.AxisStatus) []string {
		return []string{
			name,
			a.Motion().String(),
			strconv.Itoa(int(a.State.Velocity)),
			strconv.Itoa(int(a.Command.Velocity)),
			strconv.Itoa(int(a.Command.Acceleration)),
			strconv.FormatUint(uint64(a.State.Steps), 10) + "/" + strconv.FormatUint(uint64(a.Command.Steps), 10),
			strconv.Itoa(int(a.State.Reload)),
			strconv.FormatUint(core.TimerToUS(uint64(a.State.Period), freq), 10),
		}
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(dimStyle).
		Headers("Wheel", "Motion", "SPS", "Target", "Accel", "Steps left", "Reload", "Period us").
		Rows(row("right", st.Right), row("left", st.Left)).
		StyleFunc(func(r, col int) lipgloss.Style {
			if r == table.HeaderRow {
				return tableHeaderStyle
			}
			if col == 1 && st.State == platform.StateMoving {
				return movingStyle
			}
			return tableCellStyle
		})

	header := titleStyle.Render("platform "+st.State.String()) +
		dimStyle.Render(fmt.Sprintf("  t=%v  vmax=%.3f m/s", core.TicksToDuration(now, freq), vmax))
	return header + "\n" + t.Render()
}

// trace collects wheel velocities for a streaming line chart.
type trace struct {
	chart   streamlinechart.Model
	samples int
}

func newTrace(width, height int, limit float64) *trace {
	chart := streamlinechart.New(width, height,
		streamlinechart.WithYRange(-limit, limit),
	)
	for name, color := range wheelColors {
		chart.SetDataSetStyles(name, runes.ThinLineStyle, lipgloss.NewStyle().Foreground(lipgloss.Color(color)))
	}
	return &trace{chart: chart}
}

func (t *trace) push(st platform.Status) {
	t.chart.PushDataSet("right", float64(st.Right.State.Velocity))
	t.chart.PushDataSet("left", float64(st.Left.State.Velocity))
	t.samples++
}

func (t *trace) render() string {
	t.chart.DrawAll()

	legend := ""
	for _, name := range []string{"right", "left"} {
		style := lipgloss.NewStyle().Foreground(lipgloss.Color(wheelColors[name])).Bold(true)
		legend += style.Render("━━") + " " + name + "  "
	}
	return chartStyle.Render(t.chart.View()) + "\n" + legend +
		dimStyle.Render(fmt.Sprintf("(%d samples, steps/s)", t.samples))
}
