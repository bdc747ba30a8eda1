package contract

import (
	"fmt"
	"strings"
)

// IdentityMismatchError reports a manifest id that differs from its directory name.
type IdentityMismatchError struct {
	Path string
	ID   string
	Dir  string
}

func (e *IdentityMismatchError) Error() string {
	return fmt.Sprintf("manifest id mismatch: %s\n  manifest.id=%q but folder=%q", e.Path, e.ID, e.Dir)
}

// MissingEntryError reports an entry file that does not exist.
type MissingEntryError struct {
	Path     string
	Entry    string
	Expected string
}

func (e *MissingEntryError) Error() string {
	return fmt.Sprintf("entry not found: %s\n  entry=%q\n  expected at: %s", e.Path, e.Entry, e.Expected)
}

// GatewayContractError reports a hosted app whose gateway is missing or
// deviates from the fixed /health, /ws, /api paths.
type GatewayContractError struct {
	Path       string
	Field      string // "hosted.gateway" for the whole object, otherwise one key
	Got        string // offending value as JSON text
	Want       string
	Missing    bool // Field is absent (or null)
	Unexpected bool // Field is not part of the gateway
}

func (e *GatewayContractError) Error() string {
	const prefix = "hosted gateway contract must be fixed to /health /ws /api"
	switch {
	case e.Missing:
		return fmt.Sprintf("%s: %s\n  %s is missing", prefix, e.Path, e.Field)
	case e.Unexpected:
		return fmt.Sprintf("%s: %s\n  %s=%s is not allowed", prefix, e.Path, e.Field, e.Got)
	case e.Want == "":
		return fmt.Sprintf("%s: %s\n  %s=%s, want an object", prefix, e.Path, e.Field, e.Got)
	}
	return fmt.Sprintf("%s: %s\n  %s=%s, want %q", prefix, e.Path, e.Field, e.Got, e.Want)
}

// VersionError reports a version string that is not a semantic version.
type VersionError struct {
	Path    string
	Version string
	Err     error
}

func (e *VersionError) Error() string {
	return fmt.Sprintf("invalid version: %s\n  version=%q: %v", e.Path, e.Version, e.Err)
}

func (e *VersionError) Unwrap() error { return e.Err }

// DuplicateIDError reports manifests that share an id.
type DuplicateIDError struct {
	ID    string
	Paths []string
}

func (e *DuplicateIDError) Error() string {
	return fmt.Sprintf("duplicate manifest id %q declared by:\n  %s", e.ID, strings.Join(e.Paths, "\n  "))
}
