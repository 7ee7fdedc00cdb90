package sources

import (
	"regexp"
	"strings"

	"github.com/aretw0/envcheck/pkg/domain"
)

var (
	pyClassHeader = regexp.MustCompile(`^class\s+\w+\s*(\([^)]*\))?\s*:\s*(#.*)?$`)
	pyAnnotated   = regexp.MustCompile(`^(\w+)\s*:\s*([^=#]+?)\s*(?:=\s*(.+?))?\s*(?:#.*)?$`)
	pyDescription = regexp.MustCompile(`description\s*=\s*(?:"([^"]*)"|'([^']*)')`)
	pyDefault     = regexp.MustCompile(`default\s*=\s*([^,)]+)`)
)

// ParsePydantic extracts annotated fields from the classes in a Python
// settings module. Names are upper-cased to match their environment keys.
//
// A field is optional when its annotation is Optional[...] or "| None",
// or when it has a default, either assigned directly or through
// Field(default=...).
func ParsePydantic(content string) []domain.Variable {
	var vars []domain.Variable
	seen := make(map[string]bool)

	lines := strings.Split(strings.ReplaceAll(content, "\r\n", "\n"), "\n")
	for i := 0; i < len(lines); i++ {
		if !pyClassHeader.MatchString(strings.TrimRight(lines[i], " \t")) {
			continue
		}

		// The body is every following line indented deeper than column 0.
		// Only lines at the first body indent are fields; nested classes
		// such as "class Config:" are skipped with their bodies.
		bodyIndent := ""
		for i+1 < len(lines) {
			line := lines[i+1]
			if strings.TrimSpace(line) == "" {
				i++
				continue
			}
			indent := line[:len(line)-len(strings.TrimLeft(line, " \t"))]
			if indent == "" {
				break
			}
			i++
			if bodyIndent == "" {
				bodyIndent = indent
			}
			if indent != bodyIndent {
				continue
			}

			v, ok := parsePydanticField(strings.TrimSpace(line))
			if !ok || seen[v.Name] {
				continue
			}
			seen[v.Name] = true
			vars = append(vars, v)
		}
	}

	return vars
}

func parsePydanticField(line string) (domain.Variable, bool) {
	if strings.HasPrefix(line, "#") || strings.HasPrefix(line, "def ") || strings.HasPrefix(line, "class ") || strings.HasPrefix(line, "@") {
		return domain.Variable{}, false
	}

	m := pyAnnotated.FindStringSubmatch(line)
	if m == nil {
		return domain.Variable{}, false
	}
	name, hint, value := m[1], strings.TrimSpace(m[2]), strings.TrimSpace(m[3])
	if name == "model_config" || strings.HasPrefix(hint, "ClassVar") {
		return domain.Variable{}, false
	}

	v := domain.Variable{
		Name: strings.ToUpper(name),
		Type: MapType(hint),
	}

	if strings.Contains(hint, "Optional[") || strings.Contains(hint, "| None") || strings.Contains(hint, "None |") || strings.Contains(hint, "NoneType") {
		v.Optional = true
	}

	switch {
	case strings.HasPrefix(value, "Field("):
		if d := pyDescription.FindStringSubmatch(value); d != nil {
			v.Description = d[1] + d[2]
		}
		if d := pyDefault.FindStringSubmatch(value); d != nil {
			v.Default = pythonLiteral(d[1])
			v.HasDefault = true
		}
	case value != "":
		v.Default = pythonLiteral(value)
		v.HasDefault = true
	}

	if v.HasDefault {
		v.Optional = true
	}
	return v, true
}

// pythonLiteral renders a Python literal the way it would be written in a .env file.
func pythonLiteral(value string) string {
	value = strings.TrimSpace(value)
	if s, ok := unquote(value); ok {
		return s
	}
	switch value {
	case "True":
		return "true"
	case "False":
		return "false"
	case "None":
		return ""
	default:
		return value
	}
}
