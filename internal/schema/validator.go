// Package schema validates asset manifests against the embedded JSON schemas.
package schema

import (
	"encoding/json"
	"fmt"

	"github.com/fulmenhq/assetsync/internal/assets"
	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"
)

// ValidationError represents a single validation error.
type ValidationError struct {
	Path    string `json:"path,omitempty"`
	Message string `json:"message"`
}

// Result holds the validation result.
type Result struct {
	Valid  bool              `json:"valid"`
	Errors []ValidationError `json:"errors,omitempty"`
}

// ManifestSchema is the registry name of the current asset manifest schema.
const ManifestSchema = "asset-manifest-v1.0.0"

// registry holds pre-compiled schemas by name.
var registry = make(map[string]*gojsonschema.Schema)

// init populates the registry with the embedded schemas. Schemas are stored
// as YAML and converted to JSON before compilation.
func init() {
	for _, info := range assets.GetSchemaNames() {
		schemaBytes, ok := assets.GetSchema(info.Path)
		if !ok || len(schemaBytes) == 0 {
			continue
		}

		var schemaData interface{}
		if err := yaml.Unmarshal(schemaBytes, &schemaData); err != nil {
			continue
		}

		jsonBytes, err := json.Marshal(schemaData)
		if err != nil {
			continue
		}

		schemaLoader := gojsonschema.NewBytesLoader(jsonBytes)
		schema, err := gojsonschema.NewSchema(schemaLoader)
		if err != nil {
			continue
		}
		registry[info.Name] = schema
	}
}

// Validate validates data (interface{}) against the named schema.
func Validate(data interface{}, schemaName string) (*Result, error) {
	schema, ok := registry[schemaName]
	if !ok {
		return nil, fmt.Errorf("schema %s not found in registry", schemaName)
	}

	docLoader := gojsonschema.NewGoLoader(data)
	result, err := schema.Validate(docLoader)
	if err != nil {
		return nil, fmt.Errorf("validation error: %w", err)
	}

	res := &Result{Valid: result.Valid()}
	if !result.Valid() {
		for _, verr := range result.Errors() {
			field := verr.Field()
			if field == "" {
				field = "root"
			}
			res.Errors = append(res.Errors, ValidationError{
				Path:    field,
				Message: verr.Description(),
			})
		}
	}

	return res, nil
}
