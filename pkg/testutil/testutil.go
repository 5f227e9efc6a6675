// Package testutil provides shared helpers for building documentation
// corpora in tests.
package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// WriteCorpus writes the given documents into a fresh temporary directory
// and returns its path. Keys are file names, values are file contents.
func WriteCorpus(t *testing.T, docs map[string]string) string {
	t.Helper()

	dir := t.TempDir()
	for name, content := range docs {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatalf("Failed to write corpus file %s: %v", name, err)
		}
	}
	return dir
}

// WrapConfiguration embeds a schema body in a minimal integration document:
// front matter, some prose, and the configuration sentinel region.
func WrapConfiguration(title, body string) string {
	var sb strings.Builder
	sb.WriteString("---\ntitle: \"" + title + "\"\n---\n\n")
	sb.WriteString("Prose before the block.\n\n")
	sb.WriteString("{% configuration %}\n")
	sb.WriteString(strings.TrimSuffix(body, "\n"))
	sb.WriteString("\n{% endconfiguration %}\n")
	return sb.String()
}

// ReadOutput reads a generated file, failing the test on error.
func ReadOutput(t *testing.T, path string) string {
	t.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read output %s: %v", path, err)
	}
	return string(data)
}

// AssertErrorContains checks that an error occurred and that its message
// contains the expected fragment.
func AssertErrorContains(t *testing.T, err error, expectedMsg string) {
	t.Helper()

	if err == nil {
		t.Fatalf("Expected error containing %q, got nil", expectedMsg)
	}
	if !strings.Contains(err.Error(), expectedMsg) {
		t.Errorf("Expected error to contain %q, got: %v", expectedMsg, err)
	}
}

// AssertContains checks that haystack contains needle.
func AssertContains(t *testing.T, haystack, needle string) {
	t.Helper()

	if !strings.Contains(haystack, needle) {
		t.Errorf("Expected output to contain %q, got:\n%s", needle, haystack)
	}
}
