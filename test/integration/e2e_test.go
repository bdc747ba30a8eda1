//go:build integration

package integration_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/iammeter/openapps/internal/config"
	"github.com/iammeter/openapps/internal/contract"
	"github.com/iammeter/openapps/internal/index"
	"github.com/iammeter/openapps/internal/pipeline"
	"github.com/spf13/afero"
)

// TestFullFlowValidateAndGenerate runs the complete flow against a real
// directory: load settings -> validate -> generate -> read the index back.
func TestFullFlowValidateAndGenerate(t *testing.T) {
	root := setupSite(t)
	fs := afero.NewOsFs()

	// Step 1: Settings from a site config file.
	if err := config.Set(fs, root, "", config.KeyPagesBaseURL, "https://apps.example.org/"); err != nil {
		t.Fatalf("config.Set: %v", err)
	}
	settings, err := config.Load(fs, root, "")
	if err != nil {
		t.Fatalf("config.Load: %v", err)
	}

	vopts := pipeline.ValidateOptions{Fs: fs, Root: root, AppsDir: settings.AppsDir, Jobs: 2}

	// Step 2: Validate.
	report, err := pipeline.Validate(context.Background(), vopts)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if report.Count != 2 {
		t.Errorf("Count = %d, want 2", report.Count)
	}

	// Step 3: Generate.
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	result, err := pipeline.Generate(context.Background(), pipeline.GenerateOptions{
		ValidateOptions: vopts,
		PagesBaseURL:    settings.PagesBaseURL,
		IndexPath:       settings.IndexPath,
		Now:             func() time.Time { return now },
	})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	indexPath := filepath.Join(root, "apps", "index.json")
	assertFileExists(t, indexPath)
	assertFileContains(t, indexPath, `"generatedAt": "2026-01-02T03:04:05.000Z"`)
	assertFileContains(t, indexPath, `"pagesUrl": "https://apps.example.org/apps/meter-viewer/index.html"`)
	assertFileContains(t, indexPath, `"screenshotUrl": "https://apps.example.org/apps/meter-viewer/screenshot.png"`)
	assertFileContains(t, indexPath, `"rawFileUrl": "https://raw.githubusercontent.com/IAMMETER/IAMMETER-OpenApps/main/apps/meter-viewer/index.html"`)
	assertFileContains(t, indexPath, `"docsUrl": "https://github.com/IAMMETER/IAMMETER-OpenApps/blob/main/apps/meter-viewer/README.md"`)
	assertFileContains(t, indexPath, `"hostedStatus": "beta"`)

	// Step 4: The written index matches what was assembled.
	read, err := index.Read(fs, indexPath)
	if err != nil {
		t.Fatalf("index.Read: %v", err)
	}
	if read.Total != 2 || read.Apps[0].ID != "energy-bridge" || read.Apps[1].ID != "meter-viewer" {
		t.Errorf("index apps = %v, total %d", read.Apps, read.Total)
	}
	if read.GeneratedAt != result.Index.GeneratedAt {
		t.Errorf("GeneratedAt = %q, want %q", read.GeneratedAt, result.Index.GeneratedAt)
	}

	// No temp files are left next to the index.
	entries, err := os.ReadDir(filepath.Dir(indexPath))
	if err != nil {
		t.Fatal(err)
	}
	for _, e := range entries {
		if !e.IsDir() && e.Name() != "index.json" {
			t.Errorf("unexpected file in apps/: %s", e.Name())
		}
	}
}

// TestGenerateFailureKeepsPreviousIndex checks that a contract violation
// aborts generation without touching the existing index.
func TestGenerateFailureKeepsPreviousIndex(t *testing.T) {
	root := setupSite(t)
	fs := afero.NewOsFs()
	opts := pipeline.GenerateOptions{ValidateOptions: pipeline.ValidateOptions{Fs: fs, Root: root}}

	if _, err := pipeline.Generate(context.Background(), opts); err != nil {
		t.Fatalf("first Generate: %v", err)
	}
	indexPath := filepath.Join(root, "apps", "index.json")
	before, err := os.ReadFile(indexPath)
	if err != nil {
		t.Fatal(err)
	}

	// Break the hosted app's gateway.
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
    "gateway": {"health": "/status", "wsPath": "/ws", "apiBase": "/api"}
  }
}
`)

	_, err = pipeline.Generate(context.Background(), opts)
	var gw *contract.GatewayContractError
	if !errors.As(err, &gw) {
		t.Fatalf("error = %v, want *GatewayContractError", err)
	}
	if gw.Field != "hosted.gateway.health" {
		t.Errorf("Field = %q", gw.Field)
	}

	after, err := os.ReadFile(indexPath)
	if err != nil {
		t.Fatal(err)
	}
	if string(before) != string(after) {
		t.Error("index changed after a failed run")
	}
}

// TestDryRunWritesNothing checks that a dry run leaves the site untouched.
func TestDryRunWritesNothing(t *testing.T) {
	root := setupSite(t)

	result, err := pipeline.Generate(context.Background(), pipeline.GenerateOptions{
		ValidateOptions: pipeline.ValidateOptions{Fs: afero.NewOsFs(), Root: root},
		DryRun:          true,
	})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if result.Index.Total != 2 {
		t.Errorf("Total = %d, want 2", result.Index.Total)
	}
	assertFileNotExists(t, filepath.Join(root, "apps", "index.json"))
}
