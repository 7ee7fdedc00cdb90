// Package workspace locates the schema and env files of a project and
// reads its optional .envchecker.json configuration.
package workspace

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/aretw0/envcheck/pkg/domain"
	"github.com/tidwall/jsonc"
)

// LoadConfig reads .envchecker.json from root.
// A missing file yields the defaults. Comments and trailing commas are allowed.
func LoadConfig(root string) (domain.WorkspaceConfig, error) {
	cfg := domain.DefaultWorkspaceConfig()

	path := filepath.Join(root, domain.ConfigFileName)
	content, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read %s: %w", domain.ConfigFileName, err)
	}

	if err := json.Unmarshal(jsonc.ToJSON(content), &cfg); err != nil {
		return domain.DefaultWorkspaceConfig(), fmt.Errorf("failed to parse %s: %w", domain.ConfigFileName, err)
	}
	if cfg.Groups == nil {
		cfg.Groups = map[string]string{}
	}
	return cfg, nil
}
