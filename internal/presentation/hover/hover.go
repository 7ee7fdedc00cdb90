// Package hover renders the markdown shown for a variable on hover or by
// the describe command.
package hover

import (
	"fmt"
	"strings"

	"github.com/aretw0/envcheck/pkg/domain"
)

// Markdown describes v as markdown.
func Markdown(v domain.Variable) string {
	var b strings.Builder

	fmt.Fprintf(&b, "**Type:** `%s`\n\n", typeName(v.Type))
	if v.Description != "" {
		fmt.Fprintf(&b, "**Description:** %s\n\n", v.Description)
	}
	if v.HasDefault {
		fmt.Fprintf(&b, "**Default:** `%s`\n\n", v.Default)
	}
	fmt.Fprintf(&b, "**Required:** `%t`\n", v.Required())
	if v.Group != "" {
		fmt.Fprintf(&b, "\n**Group:** `%s`", v.Group)
	}
	if v.EnvType != "" {
		fmt.Fprintf(&b, "\n\n**Env type:** `%s`", v.EnvType)
	}

	return b.String()
}

// Titled prefixes Markdown with a heading naming the variable.
func Titled(v domain.Variable) string {
	return fmt.Sprintf("### %s\n\n%s\n", v.Name, Markdown(v))
}

func typeName(t domain.VarType) string {
	if t == "" {
		return string(domain.TypeString)
	}
	return string(t)
}
