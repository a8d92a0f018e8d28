package tui

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// UI styles and layout settings
// Color palette "Blue Moon" from https://gogh-co.github.io/Gogh/
const (
	colorGray     = "#353b52"
	colorWhite    = "#ffffff"
	colorGreen    = "#acfab4"
	colorGreenDim = "#b4c4b4"
	colorRed      = "#e61f44"
	colorRedDim   = "#d06178"
	colorPurple   = "#b9a3eb"
	colorBlue     = "#89ddff"

	marqueeTickDuration = time.Duration(time.Second / 20)

	bordersAndPaddingWidth = 4
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).
			Foreground(lipgloss.Color(colorBlue)).
			Background(lipgloss.Color(colorGray)).
			Padding(0, 2).Align(lipgloss.Center)
	subtitleStyle = lipgloss.NewStyle().Bold(true).
			Foreground(lipgloss.Color(colorBlue))
	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(colorGray)).
			Background(lipgloss.Color(colorGreen))
	dangerSelectedStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color(colorGray)).
				Background(lipgloss.Color(colorRed))
	inactiveStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(colorWhite))
	textRedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color(colorRed))
	labelStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color(colorBlue))
	tagStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color(colorPurple))

	footerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(colorGray))
)

// Status colors for TextStatusColorize.
const (
	statusUnknown = iota
	statusGood
	statusBad
)

// TextStatusColorize colors text by status: statusGood is green,
// statusBad red, anything else gray.
func TextStatusColorize(text string, status int) string {
	switch status {
	case statusGood:
		return lipgloss.NewStyle().Foreground(lipgloss.Color(colorGreenDim)).Render(text)
	case statusBad:
		return lipgloss.NewStyle().Foreground(lipgloss.Color(colorRedDim)).Render(text)
	default:
		return lipgloss.NewStyle().Foreground(lipgloss.Color(colorGray)).Render(text)
	}
}

// Create a padded version marquee text for scrolling
func marqueeText(text string, offset, availableWidth int) string {
	if len(text) <= availableWidth {
		return text
	}
	paddedText := text + "    " + text
	offset %= len(text) + 4
	if offset+availableWidth <= len(paddedText) {
		text = paddedText[offset : offset+availableWidth]
	}
	return text
}

// truncate shortens text to width, marking the cut with "..".
func truncate(text string, width int) string {
	if len(text) <= width || width <= 3 {
		return text
	}
	return text[:width-2] + ".."
}

// columnWidths splits the terminal into list, history and detail columns
// (25%, 25%, 50%). The focused column grows when dynamic is set.
func columnWidths(width, focus int, dynamic bool) (int, int, int) {
	if !dynamic {
		halfWidth := width / 2
		left := halfWidth / 2
		middle := halfWidth - left
		return left, middle, width - (left + middle)
	}
	switch focus {
	case focusHistory:
		left := width * 20 / 100
		middle := width * 40 / 100
		return left, middle, width - (left + middle)
	default:
		left := width * 30 / 100
		middle := width * 30 / 100
		return left, middle, width - (left + middle)
	}
}

func pointer(focused bool) string {
	if focused {
		return "> "
	}
	return strings.Repeat(" ", 2)
}
