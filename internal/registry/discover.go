package registry

import (
	"fmt"
	"path"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/iammeter/openapps/internal/branding"
	"github.com/spf13/afero"
)

// Pattern returns the glob matching every manifest below appsDir,
// e.g. "apps/*/manifest.json".
func Pattern(appsDir string) string {
	return path.Join(filepath.ToSlash(appsDir), "*", branding.ManifestFile())
}

// Discover finds every <appsDir>/*/manifest.json below root. Results are in
// lexical order; app directories starting with "." are skipped.
func Discover(fs afero.Fs, root, appsDir string) ([]ManifestFile, error) {
	pattern := Pattern(appsDir)

	matches, err := doublestar.Glob(afero.NewIOFS(rootFs(fs, root)), pattern)
	if err != nil {
		return nil, fmt.Errorf("globbing %s: %w", pattern, err)
	}
	slices.Sort(matches)

	var result []ManifestFile
	for _, rel := range matches {
		dirName := path.Base(path.Dir(rel))
		if strings.HasPrefix(dirName, ".") {
			continue
		}

		p := filepath.Join(root, filepath.FromSlash(rel))
		result = append(result, ManifestFile{
			Path:    p,
			RelPath: rel,
			AppDir:  filepath.Dir(p),
			DirName: dirName,
		})
	}

	if len(result) == 0 {
		return nil, fmt.Errorf("%w under %s", ErrNoManifests, pattern)
	}
	return result, nil
}

// rootFs scopes fs to root so glob patterns stay relative.
func rootFs(fs afero.Fs, root string) afero.Fs {
	if root == "" || root == "." {
		return fs
	}
	return afero.NewBasePathFs(fs, root)
}
