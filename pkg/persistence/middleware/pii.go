package middleware

import (
	"context"
	"regexp"
	"slices"

	"github.com/aretw0/envcheck/pkg/domain"
	"github.com/aretw0/envcheck/pkg/ports"
)

// DefaultSensitivePatterns match variable names whose values must never
// reach a store.
var DefaultSensitivePatterns = []string{
	`(?i)secret`,
	`(?i)password`,
	`(?i)passwd`,
	`(?i)token`,
	`(?i)(^|_)key($|_)`,
	`(?i)apikey`,
	`[a-z0-9]Key($|[A-Z_0-9])`,
	`(?i)private`,
	`(?i)credential`,
}

const mask = "***"

// quotedValue matches the quoted value that invalid-value diagnostics echo.
var quotedValue = regexp.MustCompile(`"(?:[^"\\]|\\.)*"`)

type piiMiddleware struct {
	next     ports.ReportStore
	patterns []*regexp.Regexp
}

// NewPIIMiddleware creates a middleware that masks values of variables
// whose names match the patterns, both in unused entries and in the
// diagnostic messages.
func NewPIIMiddleware(patternStrings []string) Middleware {
	patterns := make([]*regexp.Regexp, len(patternStrings))
	for i, p := range patternStrings {
		patterns[i] = regexp.MustCompile(p)
	}
	return func(next ports.ReportStore) ports.ReportStore {
		return &piiMiddleware{next: next, patterns: patterns}
	}
}

func (m *piiMiddleware) Save(ctx context.Context, workspace string, report *domain.Report) error {
	// Copy so the caller's report stays intact.
	cloned := *report
	cloned.Unused = slices.Clone(report.Unused)
	cloned.Diagnostics = slices.Clone(report.Diagnostics)

	for i, e := range cloned.Unused {
		if e.Value != "" && m.sensitive(e.Name) {
			cloned.Unused[i].Value = mask
		}
	}
	for i, d := range cloned.Diagnostics {
		if d.Variable != "" && m.sensitive(d.Variable) {
			cloned.Diagnostics[i].Message = maskMessage(d)
		}
	}

	return m.next.Save(ctx, workspace, &cloned)
}

func (m *piiMiddleware) Load(ctx context.Context, workspace string) (*domain.Report, error) {
	return m.next.Load(ctx, workspace)
}

func (m *piiMiddleware) Delete(ctx context.Context, workspace string) error {
	return m.next.Delete(ctx, workspace)
}

func (m *piiMiddleware) List(ctx context.Context) ([]string, error) {
	return m.next.List(ctx)
}

func (m *piiMiddleware) sensitive(name string) bool {
	for _, p := range m.patterns {
		if p.MatchString(name) {
			return true
		}
	}
	return false
}

// maskMessage replaces every quoted value in the message. Variable names
// are single-quoted, so they survive.
func maskMessage(d domain.Diagnostic) string {
	return quotedValue.ReplaceAllLiteralString(d.Message, `"`+mask+`"`)
}
