// Package pipeline orchestrates the two batch runs over a site's manifests.
//
// Validate discovers every manifest, checks it against the schema and the
// semantic contracts, and finally checks id uniqueness across the batch.
// Generate runs the same validation, derives one record per manifest, and
// writes the assembled index. Neither run persists anything when a
// violation is found.
package pipeline
