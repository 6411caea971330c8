// Package manifest loads asset manifests and resolves their records into
// downloadable assets. Manifests are loosely typed JSON: the package never
// assumes a fixed shape and falls back to heuristic key scans.
package manifest

import (
	"encoding/json"
	"os"

	"github.com/fulmenhq/assetsync/pkg/logger"
)

// Load obtains the manifest document from a file path or an inline JSON
// string. The file path wins when both are set. Any read or parse failure
// is logged and yields nil; errors never propagate past this boundary.
func Load(jsonFile, jsonString string) interface{} {
	switch {
	case jsonFile != "":
		raw, err := os.ReadFile(jsonFile) // #nosec G304 -- path is operator-supplied input
		if err != nil {
			logger.Error("Failed to load JSON from file", logger.String("file", jsonFile), logger.Err(err))
			return nil
		}
		var data interface{}
		if err := json.Unmarshal(raw, &data); err != nil {
			logger.Error("Failed to load JSON from file", logger.String("file", jsonFile), logger.Err(err))
			return nil
		}
		return data
	case jsonString != "":
		var data interface{}
		if err := json.Unmarshal([]byte(jsonString), &data); err != nil {
			logger.Error("Failed to parse JSON string", logger.Err(err))
			return nil
		}
		return data
	default:
		logger.Error("No JSON input provided")
		return nil
	}
}
