package cli

import (
	"io"
	"log/slog"
	"os"

	"github.com/aretw0/envcheck/internal/logging"
	"github.com/aretw0/envcheck/internal/presentation/tui"
	"golang.org/x/term"
)

// CreateLogger configures the application logger on Stderr.
// Only warnings are shown unless debug is set.
func CreateLogger(debug bool) *slog.Logger {
	return CreateLoggerWithFormat(debug, logging.FormatText)
}

// CreateLoggerWithFormat is CreateLogger with a choice of handler.
func CreateLoggerWithFormat(debug bool, format logging.Format) *slog.Logger {
	level := slog.LevelWarn
	if debug {
		level = slog.LevelDebug
	}
	return logging.NewWithWriter(os.Stderr, level, format)
}

// IsTerminal reports whether w is an interactive terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// Palette returns coloured status lines for terminals and plain text otherwise.
func Palette(w io.Writer, noColor bool) tui.Palette {
	return tui.NewPalette(w, !noColor && IsTerminal(w))
}

// MarkdownRenderer renders markdown with glamour on terminals and passes
// it through unchanged when output is piped.
func MarkdownRenderer(w io.Writer) tui.Renderer {
	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return tui.Plain
	}

	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil || width > 100 {
		width = 100
	}
	render, err := tui.NewRenderer(width)
	if err != nil {
		return tui.Plain
	}
	return render
}
