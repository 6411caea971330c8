// Package assets holds content embedded into the assetsync binary.
package assets

import (
	"embed"
)

//go:embed embedded_schemas
var schemaFS embed.FS

// SchemaInfo holds schema metadata.
type SchemaInfo struct {
	Name string `json:"name"`
	Path string `json:"path"`
}

// GetSchema returns embedded schema bytes by relative path
// (e.g., "embedded_schemas/asset-manifest-v1.0.0.yaml").
func GetSchema(relPath string) ([]byte, bool) {
	data, err := schemaFS.ReadFile(relPath)
	return data, err == nil
}

// GetSchemaNames returns the available schemas with metadata.
func GetSchemaNames() []SchemaInfo {
	knownSchemas := map[string]string{
		"asset-manifest-v1.0.0": "embedded_schemas/asset-manifest-v1.0.0.yaml",
	}

	var infos []SchemaInfo
	for name, path := range knownSchemas {
		if _, ok := GetSchema(path); ok {
			infos = append(infos, SchemaInfo{Name: name, Path: path})
		}
	}

	return infos
}
