package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"follow/internal/follow"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	cellStyle   = lipgloss.NewStyle().PaddingRight(2)
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// report lists what the engine tracks on a page.
func report(path string, engine *follow.Engine) string {
	options := engine.Options()
	elements := engine.Elements()

	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("%s: %d tracked element(s)", path, len(elements))))
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render(fmt.Sprintf("attribute=%s factor=%d autoStart=%t debug=%t",
		options.Attribute, options.Factor, options.AutoStart, options.Debug)))
	b.WriteString("\n\n")

	if len(elements) == 0 {
		b.WriteString(mutedStyle.Render("nothing carries the attribute"))
		b.WriteString("\n")
		return b.String()
	}

	rows := [][]string{{"#", "label", "factor", "baseline", "transform"}}
	for i, element := range elements {
		label := ""
		if labeled, ok := element.Target().(interface{ Name() string }); ok {
			label = labeled.Name()
		}
		baseline := element.Baseline()
		rows = append(rows, []string{
			fmt.Sprint(i + 1),
			label,
			fmt.Sprint(element.Factor()),
			fmt.Sprintf("(%g, %g)", baseline.X, baseline.Y),
			element.Target().Transform(),
		})
	}

	widths := make([]int, len(rows[0]))
	for _, row := range rows {
		for i, cell := range row {
			widths[i] = max(widths[i], lipgloss.Width(cell))
		}
	}

	for r, row := range rows {
		cells := make([]string, len(row))
		for i, cell := range row {
			style := cellStyle.Width(widths[i] + 2)
			if r == 0 {
				style = style.Inherit(headerStyle)
			}
			cells[i] = style.Render(cell)
		}
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, cells...))
		b.WriteString("\n")
	}
	return b.String()
}
