package pipeline

import (
	"context"
	"fmt"

	"github.com/iammeter/openapps/internal/index"
	"github.com/iammeter/openapps/internal/manifest"
	"github.com/iammeter/openapps/internal/record"
)

// GenerateResult describes a generated index.
type GenerateResult struct {
	Index   *index.Index
	Path    string // where the index was (or would have been) written
	Written bool
}

// Generate validates the site, derives one record per manifest and writes
// the assembled index. Any violation aborts the run before anything is
// written.
func Generate(ctx context.Context, opts GenerateOptions) (*GenerateResult, error) {
	opts = opts.withDefaults()
	log := opts.Logger

	report, err := Validate(ctx, opts.ValidateOptions)
	if err != nil {
		return nil, err
	}

	now := opts.Now()
	records := make([]*record.Record, 0, len(report.Accepted))
	for _, a := range report.Accepted {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		ropts := record.Options{
			PagesBaseURL: opts.PagesBaseURL,
			AppsDir:      opts.AppsDir,
		}
		if a.Manifest.Runtime == manifest.RuntimeStatic {
			shot, err := record.FindScreenshot(opts.Fs, a.File.AppDir)
			if err != nil {
				return nil, err
			}
			ropts.Screenshot = shot
		}

		r, err := record.Derive(a.Manifest, ropts)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", a.File.RelPath, err)
		}
		if r.RepoURL != "" && r.RawFileURL == "" {
			log.Warn("raw file URL omitted", "id", r.ID, "repoUrl", r.RepoURL)
		}
		records = append(records, r)
	}

	idx := index.Assemble(records, now)
	result := &GenerateResult{
		Index: idx,
		Path:  resolve(opts.Root, opts.IndexPath),
	}

	if opts.DryRun {
		log.Info("index assembled", "total", idx.Total, "dryRun", true)
		return result, nil
	}

	if err := index.Write(opts.Fs, result.Path, idx); err != nil {
		return nil, err
	}
	result.Written = true
	log.Info("index written", "path", result.Path, "total", idx.Total)
	return result, nil
}
