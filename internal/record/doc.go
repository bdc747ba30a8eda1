// Package record derives index records from validated manifests. A record
// carries the manifest's descriptive fields, repository URLs, and at most one
// runtime variant: StaticFields for static apps or HostedFields for hosted
// apps. Records of any other runtime carry no variant.
package record
