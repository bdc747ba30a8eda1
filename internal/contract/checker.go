package contract

import (
	"encoding/json"
	"fmt"
	"maps"
	"path/filepath"
	"slices"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/iammeter/openapps/internal/manifest"
	"github.com/iammeter/openapps/internal/registry"
	"github.com/spf13/afero"
)

// Check runs the per-manifest contracts in order (identity, entry, gateway,
// version) and returns the first violation.
func Check(fs afero.Fs, file registry.ManifestFile, m *manifest.Manifest) error {
	if err := CheckIdentity(file, m); err != nil {
		return err
	}
	if err := CheckEntry(fs, file, m); err != nil {
		return err
	}
	if err := CheckGateway(file, m); err != nil {
		return err
	}
	return CheckVersion(file, m)
}

// CheckIdentity requires the manifest id to equal its directory name.
func CheckIdentity(file registry.ManifestFile, m *manifest.Manifest) error {
	if m.ID != file.DirName {
		return &IdentityMismatchError{Path: file.RelPath, ID: m.ID, Dir: file.DirName}
	}
	return nil
}

// CheckEntry requires the entry file to exist inside the app directory.
func CheckEntry(fs afero.Fs, file registry.ManifestFile, m *manifest.Manifest) error {
	expected := filepath.Join(file.AppDir, filepath.FromSlash(m.Entry))
	if filepath.IsAbs(filepath.FromSlash(m.Entry)) {
		expected = filepath.FromSlash(m.Entry)
	}

	exists, err := afero.Exists(fs, expected)
	if err != nil {
		return fmt.Errorf("checking entry %s: %w", expected, err)
	}
	if !exists {
		return &MissingEntryError{Path: file.RelPath, Entry: m.Entry, Expected: expected}
	}
	return nil
}

// CheckGateway requires hosted apps to declare exactly the fixed gateway
// object: the three keys with their fixed string values and nothing else.
// Other runtimes are not checked.
func CheckGateway(file registry.ManifestFile, m *manifest.Manifest) error {
	if m.Runtime != manifest.RuntimeHosted {
		return nil
	}
	if m.Hosted == nil || m.Hosted.Gateway == nil {
		return &GatewayContractError{Path: file.RelPath, Field: "hosted.gateway", Missing: true}
	}

	obj, ok := m.Hosted.Gateway.(map[string]any)
	if !ok {
		return &GatewayContractError{Path: file.RelPath, Field: "hosted.gateway", Got: jsonText(m.Hosted.Gateway)}
	}

	want := manifest.RequiredGateway
	for _, key := range manifest.GatewayFields {
		field := "hosted.gateway." + key
		got, present := obj[key]
		if !present {
			return &GatewayContractError{Path: file.RelPath, Field: field, Want: want.Value(key), Missing: true}
		}
		if s, isString := got.(string); !isString || s != want.Value(key) {
			return &GatewayContractError{Path: file.RelPath, Field: field, Got: jsonText(got), Want: want.Value(key)}
		}
	}

	extra := slices.Sorted(maps.Keys(obj))
	for _, key := range extra {
		if !slices.Contains(manifest.GatewayFields, key) {
			return &GatewayContractError{Path: file.RelPath, Field: "hosted.gateway." + key, Got: jsonText(obj[key]), Unexpected: true}
		}
	}
	return nil
}

// jsonText renders a decoded JSON value the way it appears in a manifest.
func jsonText(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return string(b)
}

// CheckVersion requires a strict semantic version. A leading "v" is tolerated.
func CheckVersion(file registry.ManifestFile, m *manifest.Manifest) error {
	if _, err := semver.StrictNewVersion(strings.TrimPrefix(m.Version, "v")); err != nil {
		return &VersionError{Path: file.RelPath, Version: m.Version, Err: err}
	}
	return nil
}

// Accepted pairs a decoded manifest with its file.
type Accepted struct {
	File     registry.ManifestFile
	Manifest *manifest.Manifest
}

// CheckUnique requires ids to be unique across the given manifests. It
// returns one error per duplicated id, in order of first occurrence.
func CheckUnique(accepted []Accepted) []error {
	paths := make(map[string][]string)
	var order []string
	for _, a := range accepted {
		if _, seen := paths[a.Manifest.ID]; !seen {
			order = append(order, a.Manifest.ID)
		}
		paths[a.Manifest.ID] = append(paths[a.Manifest.ID], a.File.RelPath)
	}

	var errs []error
	for _, id := range order {
		if len(paths[id]) > 1 {
			errs = append(errs, &DuplicateIDError{ID: id, Paths: paths[id]})
		}
	}
	return errs
}
