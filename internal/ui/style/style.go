// Package style holds the palette and icons shared by the terminal output.
package style

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Palette.
var (
	Green  = lipgloss.Color("#76B900")
	Slate  = lipgloss.Color("#667085")
	White  = lipgloss.Color("#FFFFFF")
	Red    = lipgloss.Color("#D93025")
	Yellow = lipgloss.Color("#F59E0B")
	Cyan   = lipgloss.Color("#22B8CF")
)

// Icons.
const (
	Check   = "✓"
	Cross   = "✗"
	Warning = "!"
	Dot     = "•"
	Arrow   = "→"
)

// Term converts a palette color for use with termenv.
func Term(c lipgloss.Color) termenv.Color {
	return termenv.RGBColor(string(c))
}

// Pad left-aligns s in a cell of the given width.
func Pad(s string, width int) string {
	if lipgloss.Width(s) >= width {
		return s
	}
	return lipgloss.NewStyle().Width(width).Render(s)
}

// PadLeft right-aligns s in a cell of the given width.
func PadLeft(s string, width int) string {
	if lipgloss.Width(s) >= width {
		return s
	}
	return lipgloss.NewStyle().Width(width).Align(lipgloss.Right).Render(s)
}
