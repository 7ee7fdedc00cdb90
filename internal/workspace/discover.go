package workspace

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/aretw0/envcheck/internal/sources"
	"github.com/aretw0/envcheck/pkg/domain"
	"github.com/bmatcuk/doublestar/v4"
)

var discoveryPatterns = map[domain.SourceKind][]string{
	domain.SourceZod: {
		"**/schema.ts", "**/schema.js",
		"**/config.ts", "**/config.js",
		"**/env.ts", "**/env.js",
		"**/*config.ts", "**/*config.js",
	},
	domain.SourcePydantic: {
		"**/config.py", "**/settings.py", "**/env.py",
		"**/configuration.py", "**/app_config.py",
	},
	domain.SourceYAML: {
		"**/env.schema.yml", "**/env.schema.yaml",
		"**/.env.schema.yml", "**/.env.schema.yaml",
	},
}

// discoveryOrder keeps results stable across runs.
var discoveryOrder = []domain.SourceKind{domain.SourceZod, domain.SourcePydantic, domain.SourceYAML}

var skippedDirs = map[string]bool{
	"node_modules": true,
	".git":         true,
	"vendor":       true,
	".venv":        true,
	"__pycache__":  true,
	"dist":         true,
}

// DiscoverSchemas lists the schema files of the workspace: discovered ones
// first (when auto-discovery is on), then those configured explicitly.
// Paths are absolute and unique.
func DiscoverSchemas(root string, cfg domain.WorkspaceConfig) ([]domain.SchemaSource, error) {
	var out []domain.SchemaSource
	seen := make(map[string]bool)

	add := func(kind domain.SourceKind, path string) {
		if seen[path] {
			return
		}
		seen[path] = true
		out = append(out, domain.SchemaSource{Kind: kind, Path: path})
	}

	if cfg.AutoDiscover {
		fsys := os.DirFS(root)
		for _, kind := range discoveryOrder {
			for _, pattern := range discoveryPatterns[kind] {
				matches, err := doublestar.Glob(fsys, pattern, doublestar.WithFilesOnly())
				if err != nil {
					return nil, fmt.Errorf("failed to discover schemas (%s): %w", pattern, err)
				}
				sort.Strings(matches)
				for _, m := range matches {
					if inSkippedDir(m) {
						continue
					}
					add(kind, filepath.Join(root, filepath.FromSlash(m)))
				}
			}
		}
	}

	for _, rel := range cfg.SchemaFiles {
		path := filepath.Join(root, rel)
		info, err := os.Stat(path)
		if err != nil || info.IsDir() {
			continue
		}
		kind, ok := sources.KindForPath(path)
		if !ok {
			continue
		}
		add(kind, path)
	}

	return out, nil
}

// EnvFilePaths resolves the configured env files, which may be literal
// paths or glob patterns. It falls back to .env when nothing matches.
func EnvFilePaths(root string, cfg domain.WorkspaceConfig) ([]string, error) {
	var out []string
	seen := make(map[string]bool)

	add := func(path string) {
		if !seen[path] {
			seen[path] = true
			out = append(out, path)
		}
	}

	fsys := os.DirFS(root)
	for _, pattern := range cfg.EnvFiles {
		path := filepath.Join(root, pattern)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			add(path)
			continue
		}

		matches, err := doublestar.Glob(fsys, filepath.ToSlash(pattern), doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("invalid env file pattern %q: %w", pattern, err)
		}
		sort.Strings(matches)
		for _, m := range matches {
			add(filepath.Join(root, filepath.FromSlash(m)))
		}
	}

	if len(out) == 0 {
		path := filepath.Join(root, ".env")
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			add(path)
		}
	}

	return out, nil
}

func inSkippedDir(slashPath string) bool {
	parts := strings.Split(slashPath, "/")
	for _, p := range parts[:len(parts)-1] {
		if skippedDirs[p] {
			return true
		}
	}
	return false
}
