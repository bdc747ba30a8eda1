// Package urlbuilder derives the URLs published in the app index: pages URLs
// joined against a base, and repository tree/blob/raw URLs built from a
// repository root. Every function is pure; nothing is fetched or verified.
package urlbuilder
