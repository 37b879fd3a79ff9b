package testsupport

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

const fixtureDir = "testdata"

// FixturePath resolves name against the testdata directory of the calling
// package. Absolute paths are returned untouched.
func FixturePath(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(fixtureDir, name)
}

// LoadFixture reads the named fixture and fails the test if it is missing.
func LoadFixture(t testing.TB, name string) []byte {
	t.Helper()

	path := FixturePath(name)
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("fixture %s: %v", path, err)
	}
	return data
}

// LoadFixtureJSON decodes the named fixture into dest.
// Fields that dest does not declare fail the test.
func LoadFixtureJSON(t testing.TB, name string, dest any) {
	t.Helper()

	dec := json.NewDecoder(bytes.NewReader(LoadFixture(t, name)))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dest); err != nil {
		t.Fatalf("fixture %s: decode: %v", FixturePath(name), err)
	}
}
