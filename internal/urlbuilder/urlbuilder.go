package urlbuilder

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/iammeter/openapps/internal/branding"
)

// MalformedRepoURLError reports a repository root that owner and repository
// names cannot be parsed from. Callers omit the dependent field.
type MalformedRepoURLError struct {
	URL    string
	Reason string
}

func (e *MalformedRepoURLError) Error() string {
	return fmt.Sprintf("malformed repository URL %q: %s", e.URL, e.Reason)
}

// EnsureTrailingSlash appends "/" unless s already ends with one.
func EnsureTrailingSlash(s string) string {
	if strings.HasSuffix(s, "/") {
		return s
	}
	return s + "/"
}

// RemoveTrailingSlash drops every trailing "/".
func RemoveTrailingSlash(s string) string {
	return strings.TrimRight(s, "/")
}

// StripLeadingSlash drops a single leading "/".
func StripLeadingSlash(p string) string {
	return strings.TrimPrefix(p, "/")
}

// JoinURL resolves relPath against base using RFC 3986 reference resolution.
// A leading slash on relPath is ignored so that the result stays below base.
func JoinURL(base, relPath string) (string, error) {
	b, err := url.Parse(EnsureTrailingSlash(base))
	if err != nil {
		return "", fmt.Errorf("parsing base URL %q: %w", base, err)
	}
	r, err := url.Parse(StripLeadingSlash(relPath))
	if err != nil {
		return "", fmt.Errorf("parsing path %q: %w", relPath, err)
	}
	return b.ResolveReference(r).String(), nil
}

// BuildDirURL returns the repository tree URL of an app directory.
func BuildDirURL(repoRoot, appID string) string {
	return fmt.Sprintf("%s/tree/%s/%s/%s",
		RemoveTrailingSlash(repoRoot), branding.DefaultBranch(), branding.AppsDir(), appID)
}

// BuildBlobURL returns the repository blob URL of a repository-relative file.
func BuildBlobURL(repoRoot, filePath string) string {
	return fmt.Sprintf("%s/blob/%s/%s",
		RemoveTrailingSlash(repoRoot), branding.DefaultBranch(), StripLeadingSlash(filePath))
}

// BuildRawURL returns the raw-content URL of a repository-relative file. The
// owner and repository are the first two path segments of repoRoot after the
// repository host prefix.
func BuildRawURL(repoRoot, filePath string) (string, error) {
	owner, repo, err := ParseOwnerRepo(repoRoot)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s%s/%s/%s/%s",
		EnsureTrailingSlash(branding.RawHost()), owner, repo, branding.DefaultBranch(), StripLeadingSlash(filePath)), nil
}

// ParseOwnerRepo extracts the owner and repository names from a repository
// root URL such as "https://github.com/acme/meter-viewer".
func ParseOwnerRepo(repoRoot string) (owner, repo string, err error) {
	root := strings.TrimSpace(repoRoot)
	if root == "" {
		return "", "", &MalformedRepoURLError{URL: repoRoot, Reason: "empty"}
	}

	prefix := EnsureTrailingSlash(branding.RepoHostPrefix())
	if !strings.HasPrefix(root, prefix) {
		return "", "", &MalformedRepoURLError{URL: repoRoot, Reason: "not under " + prefix}
	}

	var segments []string
	for _, seg := range strings.Split(strings.TrimPrefix(root, prefix), "/") {
		if seg != "" {
			segments = append(segments, seg)
		}
	}
	if len(segments) < 2 {
		return "", "", &MalformedRepoURLError{URL: repoRoot, Reason: "expected <owner>/<repo>"}
	}

	owner = segments[0]
	repo = strings.TrimSuffix(segments[1], ".git")
	if repo == "" {
		return "", "", &MalformedRepoURLError{URL: repoRoot, Reason: "empty repository name"}
	}
	return owner, repo, nil
}
