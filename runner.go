package envcheck

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/aretw0/envcheck/internal/presentation/tui"
	"github.com/aretw0/envcheck/pkg/domain"
)

// Runner checks a workspace and prints the outcome, once or on every
// change of the workspace files.
type Runner struct {
	Output  io.Writer
	Palette tui.Palette
	// JSON prints reports as JSON instead of status lines.
	JSON bool
	// Watch keeps re-checking until the context is done.
	Watch bool
}

// NewRunner creates a Runner writing plain text to stdout.
func NewRunner() *Runner {
	return &Runner{Output: os.Stdout}
}

// Run checks once and, in watch mode, again after every change.
// It returns the last report.
func (r *Runner) Run(ctx context.Context, eng *Engine) (*domain.Report, error) {
	report, err := eng.Check(ctx)
	if err != nil {
		return nil, err
	}
	if err := r.Print(report); err != nil {
		return nil, err
	}
	if !r.Watch {
		return report, nil
	}

	changes, err := eng.Watch(ctx)
	if err != nil {
		return report, err
	}
	fmt.Fprintln(r.out(), r.Palette.Faint("watching for changes..."))

	for range changes {
		if err := eng.Reload(ctx); err != nil {
			if ctx.Err() != nil {
				break
			}
			fmt.Fprintln(r.out(), r.Palette.Error(err.Error()))
			continue
		}
		next, err := eng.Check(ctx)
		if err != nil {
			if ctx.Err() != nil {
				break
			}
			fmt.Fprintln(r.out(), r.Palette.Error(err.Error()))
			continue
		}
		report = next
		if err := r.Print(report); err != nil {
			return report, err
		}
	}
	return report, nil
}

// Print writes one report.
func (r *Runner) Print(report *domain.Report) error {
	if r.JSON {
		enc := json.NewEncoder(r.out())
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}

	_, err := io.WriteString(r.out(), FormatReport(report, r.Palette))
	return err
}

func (r *Runner) out() io.Writer {
	if r.Output == nil {
		return os.Stdout
	}
	return r.Output
}

// FormatReport renders a report as status lines.
func FormatReport(report *domain.Report, p tui.Palette) string {
	var b strings.Builder

	files := "no env file"
	if len(report.EnvFiles) > 0 {
		files = strings.Join(report.EnvFiles, ", ")
	}
	fmt.Fprintf(&b, "%s\n", p.Faint(fmt.Sprintf("%s: %d variables declared, checked %s", report.Workspace, report.Variables, files)))

	for _, v := range report.Missing {
		line := "missing " + v.Name
		if v.Description != "" {
			line += " (" + v.Description + ")"
		}
		fmt.Fprintln(&b, p.Error(line))
	}
	for _, d := range report.Diagnostics {
		if d.Severity == domain.SeverityWarning {
			fmt.Fprintln(&b, p.Warn(fmt.Sprintf("%s:%d %s", d.File, d.Range.Start.Line+1, d.Message)))
		}
	}
	for _, u := range report.Unused {
		fmt.Fprintln(&b, p.Warn(fmt.Sprintf("unused %s (%s:%d)", u.Name, u.File, u.Line+1)))
	}

	if report.OK() {
		fmt.Fprintln(&b, p.OK("all required variables are set"))
	} else {
		fmt.Fprintln(&b, p.Error(fmt.Sprintf("%d required variable(s) missing", len(report.Missing))))
	}
	return b.String()
}
