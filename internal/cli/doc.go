// Package cli defines the Cobra command tree for the openapps CLI. Each file
// in this package registers one top-level command (validate, generate, list,
// etc.) with the root command. Commands resolve settings, build a logger and
// delegate to internal/pipeline; they only handle flags and output.
package cli
