//go:build integration

package integration_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// setupSite creates a site root in a temp directory with the IAMMETER-style
// layout: one static app with a screenshot, one hosted app behind the fixed
// gateway. Returns the site root.
func setupSite(t *testing.T) string {
	t.Helper()

	t.Setenv("PAGES_BASE_URL", "")
	t.Setenv("OPENAPPS_PAGES_BASE_URL", "")

	root := t.TempDir()

	// --- Static app ---
	writeFile(t, filepath.Join(root, "apps/meter-viewer/manifest.json"), `{
  "id": "meter-viewer",
  "name": "Meter Viewer",
  "description": "Live dashboard for IAMMETER meters",
  "author": "IAMMETER",
  "version": "1.2.0",
  "tags": ["dashboard", "realtime"],
  "runtime": "static",
  "entry": "index.html",
  "links": {
    "source": "https://github.com/IAMMETER/IAMMETER-OpenApps/",
    "docs": "apps/meter-viewer/README.md"
  }
}
`)
	writeFile(t, filepath.Join(root, "apps/meter-viewer/index.html"), "<!doctype html>\n")
	writeFile(t, filepath.Join(root, "apps/meter-viewer/screenshot.png"), "png")

	// --- Hosted app ---
	writeFile(t, filepath.Join(root, "apps/energy-bridge/manifest.json"), `{
  "id": "energy-bridge",
  "name": "Energy Bridge",
  "description": "Bridges meter data to home automation",
  "author": "IAMMETER",
  "version": "0.3.1",
  "tags": ["gateway"],
  "runtime": "hosted",
  "entry": "index.html",
  "hosted": {
    "hostedUrl": "https://bridge.example.com/",
    "status": "beta",
    "gateway": {"health": "/health", "wsPath": "/ws", "apiBase": "/api"}
  }
}
`)
	writeFile(t, filepath.Join(root, "apps/energy-bridge/index.html"), "<!doctype html>\n")

	return root
}

// writeFile creates a file at the given path with the given content.
func writeFile(t *testing.T, path, content string) {
	t.Helper()
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("creating dir %s: %v", dir, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
}

// assertFileExists fails the test if the file does not exist.
func assertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected file to exist: %s (error: %v)", path, err)
	}
}

// assertFileNotExists fails the test if the file exists.
func assertFileNotExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err == nil {
		t.Errorf("expected file NOT to exist: %s", path)
	}
}

// assertFileContains fails if the file doesn't exist or doesn't contain substr.
func assertFileContains(t *testing.T, path, substr string) {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Errorf("reading %s: %v", path, err)
		return
	}
	if !strings.Contains(string(data), substr) {
		t.Errorf("file %s does not contain %q.\nContents:\n%s", path, substr, string(data))
	}
}
