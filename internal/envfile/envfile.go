// Package envfile reads .env files into positioned entries.
package envfile

import (
	"bufio"
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"regexp"
	"sort"
	"strings"

	"github.com/aretw0/envcheck/internal/logging"
	"github.com/aretw0/envcheck/pkg/domain"
	"github.com/joho/godotenv"
)

var assignment = regexp.MustCompile(`^\s*(?:export\s+)?([A-Za-z_][A-Za-z0-9_.]*)\s*[=:]`)

// Parse reads the .env file at path.
// Values are decoded by godotenv (quotes, escapes, export prefixes and
// comments); entries keep file order and their zero-based line.
// Lines that are not assignments are skipped and logged at debug.
func Parse(path string, logger *slog.Logger) ([]domain.EnvEntry, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read env file %s: %w", path, err)
	}
	return ParseBytes(path, content, logger), nil
}

// ParseBytes parses content as if it had been read from path.
// When godotenv rejects the file as a whole, each assignment line is
// decoded on its own and the rest are skipped.
func ParseBytes(path string, content []byte, logger *slog.Logger) []domain.EnvEntry {
	if logger == nil {
		logger = logging.NewNop()
	}

	lines := keyLines(content)
	values, err := godotenv.Parse(bytes.NewReader(content))
	if err != nil {
		logger.Debug("env file is not valid as a whole, decoding line by line", "file", path, "error", err)
		values, lines = parseLines(path, content, logger)
	}

	entries := make([]domain.EnvEntry, 0, len(values))
	for name, value := range values {
		line, ok := lines[name]
		if !ok {
			line = -1
		}
		entries = append(entries, domain.EnvEntry{
			Name:     name,
			Value:    value,
			HasValue: value != "",
			Line:     line,
			File:     path,
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		li, lj := entries[i].Line, entries[j].Line
		if li != lj {
			// Unlocated keys sort last.
			if li < 0 {
				return false
			}
			if lj < 0 {
				return true
			}
			return li < lj
		}
		return entries[i].Name < entries[j].Name
	})

	return entries
}

// parseLines decodes every assignment line independently. A later
// assignment of the same key wins, as with godotenv.
func parseLines(path string, content []byte, logger *slog.Logger) (map[string]string, map[string]int) {
	values := make(map[string]string)
	lines := make(map[string]int)

	scanner := newScanner(content)
	for n := 0; scanner.Scan(); n++ {
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		if !assignment.MatchString(text) {
			logger.Debug("skipping env line", "file", path, "line", n+1)
			continue
		}
		parsed, err := godotenv.Unmarshal(text)
		if err != nil {
			logger.Debug("skipping env line", "file", path, "line", n+1, "error", err)
			continue
		}
		for name, value := range parsed {
			values[name] = value
			lines[name] = n
		}
	}
	return values, lines
}

// keyLines maps each assigned key to the line of its last assignment,
// the one whose value godotenv keeps.
func keyLines(content []byte) map[string]int {
	lines := make(map[string]int)
	scanner := newScanner(content)
	for n := 0; scanner.Scan(); n++ {
		m := assignment.FindSubmatch(scanner.Bytes())
		if m == nil {
			continue
		}
		lines[string(m[1])] = n
	}
	return lines
}

func newScanner(content []byte) *bufio.Scanner {
	scanner := bufio.NewScanner(bytes.NewReader(content))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	return scanner
}
