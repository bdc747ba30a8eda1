package pipeline

import (
	"fmt"
	"path"
	"testing"

	"github.com/spf13/afero"
)

const siteRoot = "/site"

// site builds an in-memory site under siteRoot.
type site struct {
	t  *testing.T
	fs afero.Fs
}

func newSite(t *testing.T) *site {
	t.Helper()
	return &site{t: t, fs: afero.NewMemMapFs()}
}

func (s *site) write(rel, content string) {
	s.t.Helper()
	if err := afero.WriteFile(s.fs, path.Join(siteRoot, rel), []byte(content), 0644); err != nil {
		s.t.Fatalf("writing %s: %v", rel, err)
	}
}

// staticApp writes a valid static app with its entry file.
func (s *site) staticApp(dir, id string) {
	s.t.Helper()
	s.write("apps/"+dir+"/manifest.json", fmt.Sprintf(`{
  "id": %q,
  "name": "App %s",
  "description": "Static test app",
  "author": "acme",
  "version": "1.0.0",
  "tags": ["test"],
  "runtime": "static",
  "entry": "index.html",
  "links": {"source": "https://github.com/acme/%s/"}
}`, id, id, id))
	s.write("apps/"+dir+"/index.html", "<html></html>")
}

// hostedApp writes a hosted app with the given gateway JSON ("" omits it).
func (s *site) hostedApp(dir, id, gateway string) {
	s.t.Helper()
	gw := ""
	if gateway != "" {
		gw = `, "gateway": ` + gateway
	}
	s.write("apps/"+dir+"/manifest.json", fmt.Sprintf(`{
  "id": %q,
  "name": "Hosted %s",
  "description": "Hosted test app",
  "author": "acme",
  "version": "0.2.0",
  "tags": [],
  "runtime": "hosted",
  "entry": "index.html",
  "hosted": {"hostedUrl": "https://%s.example.com/", "status": "live"%s}
}`, id, id, id, gw))
	s.write("apps/"+dir+"/index.html", "<html></html>")
}

func (s *site) validateOptions() ValidateOptions {
	return ValidateOptions{Fs: s.fs, Root: siteRoot}
}

func (s *site) exists(rel string) bool {
	s.t.Helper()
	ok, err := afero.Exists(s.fs, path.Join(siteRoot, rel))
	if err != nil {
		s.t.Fatal(err)
	}
	return ok
}

const fixedGateway = `{"health": "/health", "wsPath": "/ws", "apiBase": "/api"}`
