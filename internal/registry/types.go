package registry

import "errors"

// ErrNoManifests is returned when the apps directory holds no manifests.
var ErrNoManifests = errors.New("no manifests found")

// ManifestFile is one discovered manifest.
type ManifestFile struct {
	Path    string // path usable with the filesystem Discover was given
	RelPath string // slash-separated, relative to the site root (e.g., "apps/meter-viewer/manifest.json")
	AppDir  string // directory containing the manifest, same base as Path
	DirName string // name of AppDir, which the manifest id must equal
}
