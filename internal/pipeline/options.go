package pipeline

import (
	"log/slog"
	"path/filepath"
	"time"

	"github.com/iammeter/openapps/internal/branding"
	"github.com/iammeter/openapps/internal/logger"
	"github.com/spf13/afero"
)

// ValidateOptions configures a validation run.
type ValidateOptions struct {
	Fs      afero.Fs // defaults to the OS filesystem
	Root    string   // site root; defaults to "."
	AppsDir string   // relative to Root; defaults to branding.AppsDir()
	Schema  string   // external schema path; empty selects the embedded schema

	// CollectAll keeps validating after the first violation and reports
	// every violation. By default the run stops at the first one.
	CollectAll bool
	// Jobs bounds how many manifests are checked concurrently.
	Jobs int

	Logger *slog.Logger
}

// GenerateOptions configures an index generation run.
type GenerateOptions struct {
	ValidateOptions

	PagesBaseURL string           // empty selects branding.PagesBaseURL()
	IndexPath    string           // relative to Root; defaults to <AppsDir>/index.json
	DryRun       bool             // assemble without writing
	Now          func() time.Time // defaults to time.Now
}

func (o ValidateOptions) withDefaults() ValidateOptions {
	if o.Fs == nil {
		o.Fs = afero.NewOsFs()
	}
	if o.Root == "" {
		o.Root = "."
	}
	if o.AppsDir == "" {
		o.AppsDir = branding.AppsDir()
	}
	if o.Jobs < 1 {
		o.Jobs = 1
	}
	if o.Logger == nil {
		o.Logger = logger.Discard()
	}
	return o
}

func (o GenerateOptions) withDefaults() GenerateOptions {
	o.ValidateOptions = o.ValidateOptions.withDefaults()
	if o.PagesBaseURL == "" {
		o.PagesBaseURL = branding.PagesBaseURL()
	}
	if o.IndexPath == "" {
		o.IndexPath = filepath.Join(o.AppsDir, branding.IndexFile())
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	return o
}

// resolve joins p to root unless p is absolute.
func resolve(root, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(root, p)
}
