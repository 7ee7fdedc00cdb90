package sources

import (
	"regexp"
	"strings"

	"github.com/aretw0/envcheck/pkg/domain"
)

var (
	zodObjectCall = regexp.MustCompile(`\.object\s*\(\s*\{`)
	zodProperty   = regexp.MustCompile(`(?s)^\s*["']?([A-Za-z_$][A-Za-z0-9_$]*)["']?\s*:\s*(.+?)\s*$`)
	zodMetaEntry  = regexp.MustCompile(`([A-Za-z_]\w*)\s*:\s*("[^"]*"|'[^']*'|` + "`[^`]*`" + `)`)
)

var zodTypeChecks = []struct {
	token string
	typ   domain.VarType
}{
	{"z.coerce.boolean", domain.TypeBoolean},
	{"z.coerce.number", domain.TypeNumber},
	{"z.coerce.bigint", domain.TypeInteger},
	{"z.coerce.string", domain.TypeString},
	{"z.stringbool", domain.TypeBoolean},
	{"z.boolean", domain.TypeBoolean},
	{"z.number", domain.TypeNumber},
	{"z.int", domain.TypeInteger},
	{"z.bigint", domain.TypeInteger},
	{"z.float", domain.TypeNumber},
	{"z.string", domain.TypeString},
}

// ParseZod extracts the properties of every z.object({...}) literal.
//
// Each property chain is read for its base type, .optional()/.nullable(),
// .describe(), .default(), and the group/envType passed to .register()
// or .meta(). A default makes the variable optional.
func ParseZod(content string) []domain.Variable {
	src := stripComments(content)

	var vars []domain.Variable
	seen := make(map[string]bool)

	for _, loc := range zodObjectCall.FindAllStringIndex(src, -1) {
		open := loc[1] - 1
		end := matchClose(src, open)
		if end < 0 {
			continue
		}

		for _, prop := range splitTopLevel(src[open+1:end], ',') {
			v, ok := parseZodProperty(prop)
			if !ok || seen[v.Name] {
				continue
			}
			seen[v.Name] = true
			vars = append(vars, v)
		}
	}

	return vars
}

func parseZodProperty(prop string) (domain.Variable, bool) {
	m := zodProperty.FindStringSubmatch(prop)
	if m == nil {
		return domain.Variable{}, false
	}
	name, chain := m[1], m[2]

	// Nested objects are picked up by their own .object( match.
	if strings.Contains(chain, ".object(") || !strings.Contains(chain, "z.") {
		return domain.Variable{}, false
	}

	v := domain.Variable{
		Name: name,
		Type: zodType(chain),
	}

	code := blankLiterals(chain)
	if strings.Contains(code, ".optional(") || strings.Contains(code, ".nullable(") || strings.Contains(code, ".nullish(") {
		v.Optional = true
	}

	if args, ok := callArgs(chain, ".describe"); ok {
		v.Description, _ = unquote(args)
	}

	if args, ok := callArgs(chain, ".default"); ok {
		v.Default, _ = unquote(args)
		v.HasDefault = true
		v.Optional = true
	}

	for _, method := range []string{".register", ".meta"} {
		args, ok := callArgs(chain, method)
		if !ok {
			continue
		}
		meta := zodMetaLiteral(args)
		if g, ok := meta["group"]; ok && v.Group == "" {
			v.Group = g
		}
		if e, ok := meta["envType"]; ok && v.EnvType == "" {
			v.EnvType = e
		}
		if d, ok := meta["description"]; ok && v.Description == "" {
			v.Description = d
		}
	}

	return v, true
}

// zodType reads the base type from the first type call of the chain.
// String literals are blanked first so descriptions can't match.
func zodType(chain string) domain.VarType {
	code := blankLiterals(chain)

	typ, at := domain.TypeString, -1
	for _, check := range zodTypeChecks {
		i := strings.Index(code, check.token)
		if i < 0 || (at >= 0 && i >= at) {
			continue
		}
		typ, at = check.typ, i
	}
	if typ == domain.TypeNumber && strings.Contains(code, ".int(") {
		return domain.TypeInteger
	}
	return typ
}

// blankLiterals replaces the contents of quoted literals with spaces,
// keeping the quotes and every offset.
func blankLiterals(src string) string {
	out := []byte(src)
	var quote byte
	for i := 0; i < len(out); i++ {
		c := out[i]
		switch {
		case quote == 0:
			if c == '"' || c == '\'' || c == '`' {
				quote = c
			}
		case c == '\\' && i+1 < len(out):
			out[i], out[i+1] = ' ', ' '
			i++
		case c == quote:
			quote = 0
		default:
			out[i] = ' '
		}
	}
	return string(out)
}

// zodMetaLiteral reads the string-valued keys of the object literal found
// in a call's arguments, e.g. `envRegistry, { envType: "runtime", group: "API" }`.
func zodMetaLiteral(args string) map[string]string {
	out := make(map[string]string)

	start := strings.Index(args, "{")
	if start < 0 {
		return out
	}
	end := matchClose(args, start)
	if end < 0 {
		return out
	}

	for _, m := range zodMetaEntry.FindAllStringSubmatch(args[start+1:end], -1) {
		val, _ := unquote(m[2])
		out[m[1]] = val
	}
	return out
}
