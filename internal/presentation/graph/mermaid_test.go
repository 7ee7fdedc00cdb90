package graph_test

import (
	"strings"
	"testing"

	"github.com/aretw0/envcheck/internal/presentation/graph"
	"github.com/aretw0/envcheck/pkg/domain"
)

func TestGenerateMermaid(t *testing.T) {
	tests := []struct {
		name     string
		vars     []domain.Variable
		overlay  *graph.Overlay
		contains []string
		excludes []string
	}{
		{
			name: "Required Shape",
			vars: []domain.Variable{{Name: "apiUrl", Group: "API"}},
			contains: []string{
				"subgraph group_API[\"API\"]",
				"apiUrl[\"apiUrl\"]",
				"    end\n",
			},
		},
		{
			name: "Optional With Default",
			vars: []domain.Variable{{Name: "debug", Optional: true, HasDefault: true, Default: "false"}},
			contains: []string{
				"subgraph group_Other[\"Other\"]",
				"debug(\"debug <br/> = false\")",
			},
		},
		{
			name: "Build Time Shape",
			vars: []domain.Variable{{Name: "NEXT_PUBLIC_URL", EnvType: "build-time"}},
			contains: []string{
				"NEXT_PUBLIC_URL[[\"NEXT_PUBLIC_URL\"]]",
			},
		},
		{
			name: "ID Sanitization",
			vars: []domain.Variable{{Name: "app.port", Group: "web server"}},
			contains: []string{
				"subgraph group_web_server[\"web server\"]",
				"app_port[\"app.port\"]",
			},
		},
		{
			name:     "No Overlay",
			vars:     []domain.Variable{{Name: "A"}},
			excludes: []string{"classDef"},
		},
		{
			name: "Overlay",
			vars: []domain.Variable{{Name: "A"}, {Name: "B"}},
			overlay: &graph.Overlay{
				Missing: []string{"A", "A"},
				Present: []string{"B"},
			},
			contains: []string{
				"classDef missing",
				"class A missing;",
				"class B present;",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := graph.GenerateMermaid(tt.vars, nil, tt.overlay)
			if !strings.HasPrefix(got, "graph TD\n") {
				t.Errorf("missing header:\n%s", got)
			}
			for _, want := range tt.contains {
				if !strings.Contains(got, want) {
					t.Errorf("expected output to contain %q\nGot:\n%s", want, got)
				}
			}
			for _, bad := range tt.excludes {
				if strings.Contains(got, bad) {
					t.Errorf("expected output not to contain %q\nGot:\n%s", bad, got)
				}
			}
			if tt.overlay != nil && strings.Count(got, "class A missing;") != 1 {
				t.Errorf("overlay classes should be deduplicated\nGot:\n%s", got)
			}
		})
	}
}

func TestGenerateMermaid_Rename(t *testing.T) {
	got := graph.GenerateMermaid(
		[]domain.Variable{{Name: "A", Group: "api"}},
		func(string) string { return "Backend" },
		nil,
	)
	if !strings.Contains(got, "subgraph group_Backend[\"Backend\"]") {
		t.Errorf("rename not applied:\n%s", got)
	}
}
