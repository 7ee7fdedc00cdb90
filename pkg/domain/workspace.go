package domain

// ConfigFileName is the name of the optional workspace configuration file.
const ConfigFileName = ".envchecker.json"

// WorkspaceConfig is the content of .envchecker.json.
type WorkspaceConfig struct {
	SchemaFiles  []string          `json:"schema_files"`
	EnvFiles     []string          `json:"env_files"`
	AutoDiscover bool              `json:"auto_discover"`
	Groups       map[string]string `json:"groups"`
}

// DefaultWorkspaceConfig returns the configuration used when no file is present.
func DefaultWorkspaceConfig() WorkspaceConfig {
	return WorkspaceConfig{
		SchemaFiles:  []string{},
		EnvFiles:     []string{".env"},
		AutoDiscover: true,
		Groups:       map[string]string{},
	}
}

// GroupName resolves a declared group through the configured aliases.
func (c WorkspaceConfig) GroupName(group string) string {
	if alias, ok := c.Groups[group]; ok && alias != "" {
		return alias
	}
	return group
}
