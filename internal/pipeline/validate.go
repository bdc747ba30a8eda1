package pipeline

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/iammeter/openapps/internal/contract"
	"github.com/iammeter/openapps/internal/manifest"
	"github.com/iammeter/openapps/internal/registry"
	"github.com/spf13/afero"
	"golang.org/x/sync/errgroup"
)

// ValidationReport summarizes a successful validation run.
type ValidationReport struct {
	Count    int
	Accepted []contract.Accepted // in discovery order
}

// outcome is the per-manifest result slot filled by a worker.
type outcome struct {
	manifest *manifest.Manifest // set once the schema passed
	err      error
	done     bool
}

// Validate checks every manifest of the site. On failure it returns the first
// violation in discovery order, or every violation joined when
// opts.CollectAll is set.
func Validate(ctx context.Context, opts ValidateOptions) (*ValidationReport, error) {
	opts = opts.withDefaults()
	log := opts.Logger

	files, err := registry.Discover(opts.Fs, opts.Root, opts.AppsDir)
	if err != nil {
		return nil, err
	}
	log.Debug("discovered manifests", "count", len(files), "pattern", registry.Pattern(opts.AppsDir))

	validator, err := manifest.NewValidator(opts.Fs, resolve(opts.Root, opts.Schema))
	if err != nil {
		return nil, err
	}

	outcomes := make([]outcome, len(files))

	// firstFailed is the lowest index that failed so far. Fail-fast runs skip
	// manifests after it, so everything before the first failure is always
	// checked.
	var firstFailed atomic.Int64
	firstFailed.Store(int64(len(files)))

	var g errgroup.Group
	g.SetLimit(opts.Jobs)
	for i, file := range files {
		g.Go(func() error {
			if ctx.Err() != nil {
				return nil
			}
			if !opts.CollectAll && int64(i) > firstFailed.Load() {
				return nil
			}
			m, err := checkOne(opts.Fs, validator, file)
			outcomes[i] = outcome{manifest: m, err: err, done: true}
			if err != nil {
				log.Debug("manifest rejected", "path", file.RelPath, "error", err)
				lowerTo(&firstFailed, int64(i))
				return nil
			}
			log.Debug("manifest accepted", "path", file.RelPath, "id", m.ID)
			return nil
		})
	}
	_ = g.Wait()
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var errs []error
	var decoded []contract.Accepted // schema-valid, contracts aside
	report := &ValidationReport{}
	for i, o := range outcomes {
		if !o.done {
			continue
		}
		if o.manifest != nil {
			decoded = append(decoded, contract.Accepted{File: files[i], Manifest: o.manifest})
		}
		if o.err != nil {
			if !opts.CollectAll {
				return nil, o.err
			}
			errs = append(errs, o.err)
			continue
		}
		report.Accepted = append(report.Accepted, contract.Accepted{File: files[i], Manifest: o.manifest})
	}

	// Uniqueness covers every schema-valid manifest so a copied manifest is
	// reported as a duplicate even when it also fails its identity check.
	if dups := contract.CheckUnique(decoded); len(dups) > 0 {
		if !opts.CollectAll {
			return nil, dups[0]
		}
		errs = append(errs, dups...)
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	report.Count = len(report.Accepted)
	log.Info("manifests validated", "count", report.Count)
	return report, nil
}

// lowerTo sets v to i if i is smaller.
func lowerTo(v *atomic.Int64, i int64) {
	for {
		cur := v.Load()
		if i >= cur || v.CompareAndSwap(cur, i) {
			return
		}
	}
}

// checkOne runs read, JSON decode, schema validation and contract checks for
// a single manifest. A manifest that passed the schema is returned alongside
// a contract violation.
func checkOne(fs afero.Fs, validator *manifest.Validator, file registry.ManifestFile) (*manifest.Manifest, error) {
	data, err := afero.ReadFile(fs, file.Path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", file.RelPath, err)
	}

	doc, err := manifest.Decode(file.RelPath, data)
	if err != nil {
		return nil, err
	}

	result, err := validator.Validate(doc)
	if err != nil {
		return nil, fmt.Errorf("validating %s: %w", file.RelPath, err)
	}
	if err := result.Err(file.RelPath); err != nil {
		return nil, err
	}

	m, err := doc.Manifest()
	if err != nil {
		return nil, err
	}
	if err := contract.Check(fs, file, m); err != nil {
		return m, err
	}
	return m, nil
}
