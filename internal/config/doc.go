// Package config manages site-level settings stored in .openapps.yaml at the
// site root, overlaid by OPENAPPS_* environment variables. Load returns an
// explicit Settings value; nothing in this package holds mutable global state.
package config
