package sources

import (
	"fmt"
	"strings"

	"github.com/aretw0/envcheck/pkg/domain"
	"gopkg.in/yaml.v3"
)

// yamlVar is one entry under the top-level "variables" mapping.
type yamlVar struct {
	Type        string    `yaml:"type"`
	Description string    `yaml:"description"`
	Default     yaml.Node `yaml:"default"`
	Required    bool      `yaml:"required"`
	Group       string    `yaml:"group"`
	EnvType     string    `yaml:"env_type"`
}

// ParseYAML reads an env schema document of the form
//
//	variables:
//	  api_url:
//	    type: string
//	    required: true
//	    group: API
//
// Variables keep document order; names are upper-cased. Variables are
// optional unless required is true.
func ParseYAML(content []byte) ([]domain.Variable, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(content, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse YAML schema: %w", err)
	}
	if len(doc.Content) == 0 {
		return nil, nil
	}

	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("failed to parse YAML schema: top level is not a mapping")
	}

	var varsNode *yaml.Node
	for i := 0; i+1 < len(root.Content); i += 2 {
		if root.Content[i].Value == "variables" {
			varsNode = root.Content[i+1]
			break
		}
	}
	if varsNode == nil || varsNode.Kind != yaml.MappingNode {
		return nil, nil
	}

	vars := make([]domain.Variable, 0, len(varsNode.Content)/2)
	for i := 0; i+1 < len(varsNode.Content); i += 2 {
		name := varsNode.Content[i].Value

		var yv yamlVar
		if err := varsNode.Content[i+1].Decode(&yv); err != nil {
			return nil, fmt.Errorf("variable %s: %w", name, err)
		}

		v := domain.Variable{
			Name:        strings.ToUpper(name),
			Type:        MapType(yv.Type),
			Description: yv.Description,
			Optional:    !yv.Required,
			Group:       yv.Group,
			EnvType:     yv.EnvType,
		}
		if yv.Default.Kind == yaml.ScalarNode && yv.Default.Tag != "!!null" {
			v.Default = yv.Default.Value
			v.HasDefault = true
		}
		vars = append(vars, v)
	}

	return vars, nil
}
