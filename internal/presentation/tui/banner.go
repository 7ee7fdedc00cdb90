package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// Palette colours status lines. The zero value prints plain text.
type Palette struct {
	profile termenv.Profile
	enabled bool
}

// NewPalette detects the colour profile of w. color=false forces plain output.
func NewPalette(w io.Writer, color bool) Palette {
	if !color {
		return Palette{profile: termenv.Ascii}
	}
	return Palette{profile: termenv.NewOutput(w).ColorProfile(), enabled: true}
}

func (p Palette) paint(s, hex string) string {
	if !p.enabled {
		return s
	}
	return termenv.String(s).Foreground(p.profile.Color(hex)).String()
}

// OK renders a success line.
func (p Palette) OK(s string) string { return p.paint("✔ "+s, "#34d399") }

// Error renders a failure line.
func (p Palette) Error(s string) string { return p.paint("✘ "+s, "#f87171") }

// Warn renders a warning line.
func (p Palette) Warn(s string) string { return p.paint("! "+s, "#fbbf24") }

// Faint renders secondary text.
func (p Palette) Faint(s string) string {
	if !p.enabled {
		return s
	}
	return termenv.String(s).Faint().String()
}

// PrintBanner writes the envcheck banner to w.
func PrintBanner(w io.Writer, p Palette) {
	lines := []struct{ text, hex string }{
		{"                        _               _    ", "#818cf8"},
		{"  ___ _ ____   __   ___| |__   ___  ___| | __", "#a78bfa"},
		{" / _ \\ '_ \\ \\ / /  / __| '_ \\ / _ \\/ __| |/ /", "#c084fc"},
		{"|  __/ | | \\ V /  | (__| | | |  __/ (__|   < ", "#e879f9"},
		{" \\___|_| |_|\\_/    \\___|_| |_|\\___|\\___|_|\\_\\", "#f472b6"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, p.paint(l.text, l.hex))
	}
	fmt.Fprintln(w)
}
