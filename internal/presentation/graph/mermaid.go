package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/envcheck/internal/validator"
	"github.com/aretw0/envcheck/pkg/domain"
)

// Overlay carries check results to highlight on the diagram.
type Overlay struct {
	Missing []string
	Present []string
}

// GenerateMermaid produces a Mermaid flowchart with one subgraph per
// variable group. Shapes follow the declaration:
// - Required: [Rectangle]
// - Optional: (Rounded)
// - Build-time: [[Subroutine]]
// Missing and present variables are styled when an overlay is given.
func GenerateMermaid(vars []domain.Variable, rename func(string) string, overlay *Overlay) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")

	for _, g := range validator.Group(vars, rename) {
		fmt.Fprintf(&sb, "    subgraph %s[\"%s\"]\n", "group_"+sanitizeMermaidID(g.Name), escapeLabel(g.Name))
		for _, v := range g.Variables {
			opener, closer := "[", "]"
			switch {
			case v.EnvType == "build-time":
				opener, closer = "[[", "]]"
			case v.Optional:
				opener, closer = "(", ")"
			}

			label := v.Name
			if v.HasDefault {
				label = fmt.Sprintf("%s <br/> = %s", v.Name, escapeLabel(v.Default))
			}
			fmt.Fprintf(&sb, "        %s%s\"%s\"%s\n", sanitizeMermaidID(v.Name), opener, label, closer)
		}
		sb.WriteString("    end\n")
	}

	if overlay != nil {
		sb.WriteString("\n    %% Overlay Styles\n")
		// Force black text for contrast on both light and dark themes.
		sb.WriteString("    classDef present fill:#e8f5e9,stroke:#2e7d32,stroke-width:2px,color:#000;\n")
		sb.WriteString("    classDef missing fill:#ffebee,stroke:#c62828,stroke-width:4px,color:#000;\n")
		writeClass(&sb, overlay.Present, "present")
		writeClass(&sb, overlay.Missing, "missing")
	}

	return sb.String()
}

func writeClass(sb *strings.Builder, names []string, class string) {
	seen := make(map[string]bool)
	for _, name := range names {
		id := sanitizeMermaidID(name)
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		fmt.Fprintf(sb, "    class %s %s;\n", id, class)
	}
}

func escapeLabel(s string) string {
	return strings.ReplaceAll(s, "\"", "'")
}

func sanitizeMermaidID(id string) string {
	r := strings.NewReplacer(".", "_", "-", "_", "/", "_", "\\", "_", " ", "_")
	return r.Replace(id)
}
