// Package manifest handles loading and structural validation of app
// manifests (apps/<id>/manifest.json). Manifests are decoded once, checked
// against the JSON Schema embedded from schema/app-manifest.schema.json (or
// an external schema file), and then decoded into the typed Manifest struct.
package manifest
