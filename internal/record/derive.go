package record

import (
	"fmt"
	"path"
	"strings"

	"github.com/iammeter/openapps/internal/branding"
	"github.com/iammeter/openapps/internal/manifest"
	"github.com/iammeter/openapps/internal/urlbuilder"
)

// Options configures record derivation.
type Options struct {
	// PagesBaseURL is the base static apps are served from. Empty selects
	// the branding default.
	PagesBaseURL string
	// AppsDir is the site-relative apps directory used to build entry
	// paths. Empty selects the branding default.
	AppsDir string
	// Screenshot is the discovered screenshot file name inside the app
	// directory (e.g., "screenshot.png"), or empty when there is none.
	Screenshot string
}

// Derive builds the index record for a validated manifest. A source link that
// owner/repo cannot be parsed from only omits rawFileUrl.
func Derive(m *manifest.Manifest, opts Options) (*Record, error) {
	base := strings.TrimSpace(opts.PagesBaseURL)
	if base == "" {
		base = branding.PagesBaseURL()
	}
	appsDir := opts.AppsDir
	if appsDir == "" {
		appsDir = branding.AppsDir()
	}
	appPath := path.Join(strings.Trim(appsDir, "/"), m.ID)

	tags := m.Tags
	if tags == nil {
		tags = []string{}
	}

	r := &Record{
		ID:          m.ID,
		Name:        m.Name,
		Description: m.Description,
		Author:      m.Author,
		Version:     m.Version,
		Tags:        tags,
		Runtime:     m.Runtime,
		Entry:       appPath + "/" + m.Entry,
	}

	if source := strings.TrimSpace(m.SourceURL()); source != "" {
		r.RepoURL = urlbuilder.RemoveTrailingSlash(source)
		r.AppDirURL = urlbuilder.BuildDirURL(r.RepoURL, m.ID)
		if docs := strings.TrimSpace(m.DocsPath()); docs != "" {
			r.DocsURL = urlbuilder.BuildBlobURL(r.RepoURL, docs)
		}
		if raw, err := urlbuilder.BuildRawURL(r.RepoURL, r.Entry); err == nil {
			r.RawFileURL = raw
		}
	}

	switch m.Runtime {
	case manifest.RuntimeStatic:
		pages, err := urlbuilder.JoinURL(base, r.Entry)
		if err != nil {
			return nil, fmt.Errorf("deriving pages URL for %s: %w", m.ID, err)
		}
		s := &StaticFields{PagesURL: pages, PreviewURL: pages}
		if opts.Screenshot != "" {
			shot, err := urlbuilder.JoinURL(base, appPath+"/"+opts.Screenshot)
			if err != nil {
				return nil, fmt.Errorf("deriving screenshot URL for %s: %w", m.ID, err)
			}
			s.ScreenshotURL = shot
		}
		r.Variant = s
	case manifest.RuntimeHosted:
		h := &HostedFields{}
		if m.Hosted != nil {
			h.HostedURL = m.Hosted.HostedURL
			h.HostedStatus = m.Hosted.Status
		}
		r.Variant = h
	}

	return r, nil
}
