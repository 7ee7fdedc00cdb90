// Package sources reads environment variable declarations out of schema
// files written for other ecosystems: Zod objects in TypeScript, Pydantic
// settings classes in Python, and plain YAML documents.
package sources

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/aretw0/envcheck/pkg/domain"
)

// Parse reads the file behind src and returns its declarations.
// It returns nil, nil when the file declares no variables.
func Parse(src domain.SchemaSource) (*domain.ParsedSchema, error) {
	content, err := os.ReadFile(src.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s schema %s: %w", src.Kind, src.Path, err)
	}

	var vars []domain.Variable
	switch src.Kind {
	case domain.SourceZod:
		vars = ParseZod(string(content))
	case domain.SourcePydantic:
		vars = ParsePydantic(string(content))
	case domain.SourceYAML:
		vars, err = ParseYAML(content)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", src.Path, err)
		}
	default:
		return nil, fmt.Errorf("unsupported schema kind: %q", src.Kind)
	}

	if len(vars) == 0 {
		return nil, nil
	}
	return &domain.ParsedSchema{Source: src, Variables: vars}, nil
}

// KindForPath infers the schema flavour from a file extension.
func KindForPath(path string) (domain.SourceKind, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".ts", ".js", ".tsx", ".jsx", ".mts", ".mjs":
		return domain.SourceZod, true
	case ".py":
		return domain.SourcePydantic, true
	case ".yml", ".yaml":
		return domain.SourceYAML, true
	default:
		return "", false
	}
}

// MapType maps a loosely spelled type name to a VarType.
// "int" wins over "number" so that z.int and conint both become integers.
func MapType(typeStr string) domain.VarType {
	t := strings.ToLower(typeStr)
	switch {
	case strings.Contains(t, "bool"):
		return domain.TypeBoolean
	case strings.Contains(t, "int"):
		return domain.TypeInteger
	case strings.Contains(t, "number"), strings.Contains(t, "float"):
		return domain.TypeNumber
	default:
		return domain.TypeString
	}
}

// unquote strips one level of matching single, double or back quotes.
func unquote(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if len(s) >= 2 {
		first, last := s[0], s[len(s)-1]
		if first == last && (first == '"' || first == '\'' || first == '`') {
			return s[1 : len(s)-1], true
		}
	}
	return s, false
}
