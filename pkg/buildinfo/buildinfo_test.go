package buildinfo

import "testing"

func TestBinaryVersion(t *testing.T) {
	if BinaryVersion == "" {
		t.Error("BinaryVersion should not be empty")
	}
	if BinaryVersion != "dev" {
		t.Errorf("Expected BinaryVersion default 'dev', got '%s'", BinaryVersion)
	}
}

func TestModuleVersion(t *testing.T) {
	version := ModuleVersion()
	// Version can be empty when build info is unavailable (test binaries).
	if version == "" {
		t.Log("ModuleVersion returned empty string (build info not available)")
	}
}
