package internal

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	labelStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	okStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	failStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
	dimStyle   = lipgloss.NewStyle().Faint(true)
)

// renderInfo formats the dump of res with styled labels.
func renderInfo(res *infoResult) string {
	var b strings.Builder
	line := func(label, value string) {
		b.WriteString(labelStyle.Render(label + ":"))
		b.WriteByte(' ')
		b.WriteString(value)
		b.WriteByte('\n')
	}
	res.Info.Dump(func(s string) {
		label, value, _ := strings.Cut(s, ": ")
		line(label, value)
	})
	path := res.Compiler
	if res.Cached {
		path += " " + dimStyle.Render("(cached)")
	}
	line("Compiler", path)
	line("C library", res.LibC)
	return b.String()
}

func renderStatus(ok bool, msg string) string {
	if ok {
		return okStyle.Render("ok") + " " + msg
	}
	return failStyle.Render("FAIL") + " " + msg
}
