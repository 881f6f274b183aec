// Package config provides configuration loading for handle schemas.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/stepflowhq/stepflow/pkg/models"
)

// HandleSchemaFile represents the structure of a handle-schemas.yaml file:
// named handle sets plus per-step-id overrides referencing them.
type HandleSchemaFile struct {
	Schemas map[string][]HandleConfig `yaml:"schemas"`
	Steps   map[string]string         `yaml:"steps"`
}

// HandleConfig is one handle declaration in the YAML file.
type HandleConfig struct {
	ID             string `yaml:"id"`
	Type           string `yaml:"type"`
	Position       string `yaml:"position"`
	MaxConnections int    `yaml:"max_connections"`
}

func (h HandleConfig) handle() (models.Handle, error) {
	handleType := models.HandleType(h.Type)
	if handleType != models.HandleTypeInput && handleType != models.HandleTypeOutput {
		return models.Handle{}, fmt.Errorf("handle %q has unknown type %q", h.ID, h.Type)
	}

	return models.Handle{
		ID:             h.ID,
		Type:           handleType,
		Position:       models.HandlePosition(h.Position),
		MaxConnections: h.MaxConnections,
	}, nil
}

// LoadHandleSchemas loads per-step handle overrides from a YAML file. The
// result maps step ids to their full handle set.
func LoadHandleSchemas(filepath string) (map[string][]models.Handle, error) {
	data, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", filepath, err)
	}

	var configFile HandleSchemaFile
	if err := yaml.Unmarshal(data, &configFile); err != nil {
		return nil, fmt.Errorf("failed to parse YAML config: %w", err)
	}

	sets := make(map[string][]models.Handle, len(configFile.Schemas))

	for name, handleConfigs := range configFile.Schemas {
		handles := make([]models.Handle, 0, len(handleConfigs))

		for _, handleConfig := range handleConfigs {
			handle, err := handleConfig.handle()
			if err != nil {
				return nil, fmt.Errorf("schema %q: %w", name, err)
			}

			handles = append(handles, handle)
		}

		sets[name] = handles
	}

	overrides := make(map[string][]models.Handle, len(configFile.Steps))

	for stepID, schemaName := range configFile.Steps {
		set, ok := sets[schemaName]
		if !ok {
			return nil, fmt.Errorf("step %q references unknown schema %q", stepID, schemaName)
		}

		overrides[stepID] = set
	}

	return overrides, nil
}
