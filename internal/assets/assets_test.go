package assets

import (
	"strings"
	"testing"
)

func TestGetSchema(t *testing.T) {
	data, ok := GetSchema("embedded_schemas/asset-manifest-v1.0.0.yaml")
	if !ok {
		t.Fatal("expected embedded manifest schema to be present")
	}
	if !strings.Contains(string(data), "Asset manifest") {
		t.Errorf("unexpected schema content: %.80s", string(data))
	}

	if _, ok := GetSchema("embedded_schemas/does-not-exist.yaml"); ok {
		t.Error("expected miss for unknown schema path")
	}
}

func TestGetSchemaNames(t *testing.T) {
	infos := GetSchemaNames()
	if len(infos) == 0 {
		t.Fatal("expected at least one embedded schema")
	}
	found := false
	for _, info := range infos {
		if info.Name == "asset-manifest-v1.0.0" {
			found = true
		}
	}
	if !found {
		t.Error("asset-manifest-v1.0.0 not listed")
	}
}
