package scaffold

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"path"
	"path/filepath"
	"regexp"
	"strings"
	"text/template"

	"github.com/iammeter/openapps/internal/branding"
	"github.com/iammeter/openapps/internal/contract"
	"github.com/iammeter/openapps/internal/manifest"
	"github.com/iammeter/openapps/internal/registry"
	"github.com/spf13/afero"
)

//go:embed templates
var templateFS embed.FS

// idPattern mirrors the schema's id pattern; ids double as directory names.
var idPattern = regexp.MustCompile(`^[a-z0-9][a-z0-9-]*$`)

// Data holds all template variables available to app templates.
type Data struct {
	ID          string // e.g., "meter-viewer"; also the directory name
	Name        string
	Description string
	Author      string
	Version     string
	Runtime     string // "static" or "hosted"
	Source      string // repository root URL; empty omits links
	HostedURL   string // hosted only
	Gateway     manifest.Gateway
}

// Result holds the outcome of a scaffold generation.
type Result struct {
	AppDir   string
	Files    []string
	Warnings []string
}

// NewData creates a Data with defaults derived from id.
func NewData(id, runtime string) *Data {
	return &Data{
		ID:          id,
		Name:        titleFromID(id),
		Description: fmt.Sprintf("%s app %s", branding.DisplayName(), id),
		Author:      "unknown",
		Version:     "0.1.0",
		Runtime:     runtime,
		Source:      branding.SiteRepoURL(),
		HostedURL:   fmt.Sprintf("https://%s.example.com/", id),
		Gateway:     manifest.RequiredGateway,
	}
}

// titleFromID turns "meter-viewer" into "Meter Viewer".
func titleFromID(id string) string {
	words := strings.Split(id, "-")
	for i, w := range words {
		if w != "" {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}

// Generate writes a new app directory <root>/<appsDir>/<id> from the
// templates for data.Runtime. The generated manifest is then checked the
// same way the validate pipeline checks it, against the schema at schemaPath
// (empty selects the embedded schema); problems are reported as warnings.
func Generate(afs afero.Fs, root, appsDir, schemaPath string, data *Data) (*Result, error) {
	if !idPattern.MatchString(data.ID) {
		return nil, fmt.Errorf("invalid app id %q: use lowercase letters, digits and dashes", data.ID)
	}
	templatesDir := path.Join("templates", data.Runtime)

	entries, err := fs.ReadDir(templateFS, templatesDir)
	if err != nil {
		return nil, fmt.Errorf("no templates for runtime %q", data.Runtime)
	}

	appDir := filepath.Join(root, appsDir, data.ID)

	// Refuse to overwrite an existing app.
	if existing, err := afero.ReadDir(afs, appDir); err == nil && len(existing) > 0 {
		return nil, fmt.Errorf("app directory %s is not empty; remove existing files first", appDir)
	}
	if err := afs.MkdirAll(appDir, 0755); err != nil {
		return nil, fmt.Errorf("creating app directory: %w", err)
	}

	funcs := template.FuncMap{"json": jsonString}
	result := &Result{AppDir: appDir}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		tmplPath := path.Join(templatesDir, entry.Name())
		tmplBytes, err := fs.ReadFile(templateFS, tmplPath)
		if err != nil {
			return nil, fmt.Errorf("reading template %s: %w", tmplPath, err)
		}

		tmpl, err := template.New(entry.Name()).Funcs(funcs).Parse(string(tmplBytes))
		if err != nil {
			return nil, fmt.Errorf("parsing template %s: %w", entry.Name(), err)
		}

		var buf bytes.Buffer
		if err := tmpl.Execute(&buf, data); err != nil {
			return nil, fmt.Errorf("executing template %s: %w", entry.Name(), err)
		}

		outName := strings.TrimSuffix(entry.Name(), ".tmpl")
		outPath := filepath.Join(appDir, outName)
		if err := afero.WriteFile(afs, outPath, buf.Bytes(), 0644); err != nil {
			return nil, fmt.Errorf("writing %s: %w", outPath, err)
		}
		result.Files = append(result.Files, outName)
	}

	result.Warnings = check(afs, root, appsDir, schemaPath, data.ID)
	return result, nil
}

// check runs schema and contract checks on a generated manifest.
func check(afs afero.Fs, root, appsDir, schemaPath, id string) []string {
	rel := path.Join(filepath.ToSlash(appsDir), id, branding.ManifestFile())
	file := registry.ManifestFile{
		Path:    filepath.Join(root, filepath.FromSlash(rel)),
		RelPath: rel,
		AppDir:  filepath.Join(root, appsDir, id),
		DirName: id,
	}

	doc, err := manifest.Load(afs, file.Path)
	if err != nil {
		return []string{err.Error()}
	}
	validator, err := manifest.NewValidator(afs, schemaPath)
	if err != nil {
		return []string{fmt.Sprintf("Could not validate manifest: %v", err)}
	}
	res, err := validator.Validate(doc)
	if err != nil {
		return []string{fmt.Sprintf("Could not validate manifest: %v", err)}
	}
	if !res.Valid {
		var warnings []string
		for _, issue := range res.Issues {
			msg := issue.Message
			if issue.Path != "" {
				msg = issue.Path + ": " + msg
			}
			warnings = append(warnings, msg)
		}
		return warnings
	}

	m, err := doc.Manifest()
	if err != nil {
		return []string{err.Error()}
	}
	if err := contract.Check(afs, file, m); err != nil {
		return []string{err.Error()}
	}
	return nil
}

// jsonString renders s as a JSON string literal.
func jsonString(s string) (string, error) {
	b, err := json.Marshal(s)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
