package ui

import "github.com/charmbracelet/lipgloss"

var styles = newPalette("#1DB954", "#04B575", "#E22134", "#FFA42B", "#626262")

// palette is a small stylesheet of named [lipgloss.Style] values.
type palette struct {
	title lipgloss.Style
	ok    lipgloss.Style
	err   lipgloss.Style
	warn  lipgloss.Style
	help  lipgloss.Style
	mark  lipgloss.Style
}

func newPalette(title, ok, err, warn, help string) *palette {
	return &palette{
		title: bold(title).MarginBottom(1),
		ok:    bold(ok),
		err:   bold(err),
		warn:  fg(warn),
		help:  fg(help).Italic(true),
		mark:  bold(title),
	}
}

func fg(color string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color))
}

func bold(color string) lipgloss.Style {
	return fg(color).Bold(true)
}
