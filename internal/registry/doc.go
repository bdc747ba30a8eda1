// Package registry discovers the applications of a site: one directory per
// app under the apps directory, each holding a manifest file. Discovery only
// locates files; reading and validating them is left to the pipeline.
package registry
