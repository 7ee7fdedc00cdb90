// Package dotenv writes .env content from variable declarations.
package dotenv

import (
	"fmt"
	"strings"

	"github.com/aretw0/envcheck/internal/validator"
	"github.com/aretw0/envcheck/pkg/domain"
)

// Options control rendering.
type Options struct {
	// Rename maps declared group names to display names.
	Rename func(string) string
}

// Example renders a complete .env.example: one "# Group" section per
// group, each variable preceded by its description. Optional variables
// are commented out and filled with their default.
func Example(vars []domain.Variable, opts Options) string {
	var b strings.Builder
	for _, g := range validator.Group(vars, opts.Rename) {
		fmt.Fprintf(&b, "# %s\n", g.Name)
		for _, v := range g.Variables {
			b.WriteString(entry(v))
		}
		b.WriteByte('\n')
	}
	return strings.TrimRight(b.String(), "\n")
}

// Append renders a block of variables to add to an existing .env file,
// with a blank line before each group header.
func Append(vars []domain.Variable, opts Options) string {
	var b strings.Builder
	for _, g := range validator.Group(vars, opts.Rename) {
		fmt.Fprintf(&b, "\n# %s\n", g.Name)
		for _, v := range g.Variables {
			b.WriteString(entry(v))
		}
	}
	return strings.TrimPrefix(b.String(), "\n")
}

// AppendTo returns content with the block for vars appended, separated
// from existing lines by exactly one newline.
func AppendTo(content string, vars []domain.Variable, opts Options) string {
	block := Append(vars, opts)
	if block == "" {
		return content
	}
	if content != "" && !strings.HasSuffix(content, "\n") {
		content += "\n"
	}
	return content + block
}

func entry(v domain.Variable) string {
	var b strings.Builder
	if v.Description != "" {
		fmt.Fprintf(&b, "# %s\n", v.Description)
	}
	if v.Optional {
		b.WriteByte('#')
	}
	fmt.Fprintf(&b, "%s=%s\n", v.Name, v.Default)
	return b.String()
}
