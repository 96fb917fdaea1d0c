// Package ui renders CLI output lines.
package ui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

var (
	okStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	failStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	warnStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	dimStyle  = lipgloss.NewStyle().Faint(true)
)

func ConvertedLine(w io.Writer, path string, todos, warnings int) {
	line := okStyle.Render("ok") + "    " + path
	if todos+warnings > 0 {
		line += dimStyle.Render(fmt.Sprintf("  (%d todo, %d warn)", todos, warnings))
	}
	fmt.Fprintln(w, line)
}

func FailedLine(w io.Writer, path, phase string, err error) {
	fmt.Fprintln(w, failStyle.Render("fail")+"  "+path+dimStyle.Render(fmt.Sprintf("  [%s] %v", phase, err)))
}

func SkippedLine(w io.Writer, path string) {
	fmt.Fprintln(w, dimStyle.Render("skip  "+path+"  (unchanged)"))
}

func DetectLine(w io.Writer, dialect string, confidence int) {
	fmt.Fprintf(w, "%s %s\n", okStyle.Render(dialect), dimStyle.Render(fmt.Sprintf("(confidence %d)", confidence)))
}

func EvidenceLine(w io.Writer, desc string, weight int) {
	fmt.Fprintln(w, dimStyle.Render(fmt.Sprintf("  %+d  %s", weight, desc)))
}

func SummaryLine(w io.Writer, converted, failed, todos, warnings int) {
	line := fmt.Sprintf("converted %d files", converted)
	if failed > 0 {
		line += ", " + failStyle.Render(fmt.Sprintf("%d failed", failed))
	}
	if todos > 0 {
		line += ", " + warnStyle.Render(fmt.Sprintf("%d todos", todos))
	}
	if warnings > 0 {
		line += ", " + warnStyle.Render(fmt.Sprintf("%d warnings", warnings))
	}
	fmt.Fprintln(w, line)
}
