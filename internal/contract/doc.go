// Package contract implements the semantic checks a manifest must pass after
// structural schema validation: its id matches its directory, its entry file
// exists, a hosted app declares the fixed gateway, its version is semver, and
// no two manifests share an id. Every violation is fatal for the batch.
package contract
