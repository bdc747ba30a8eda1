package record

import (
	"bytes"
	"encoding/json"

	"github.com/iammeter/openapps/internal/manifest"
)

// Record is one entry of the app index.
type Record struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Author      string   `json:"author"`
	Version     string   `json:"version"`
	Tags        []string `json:"tags"`
	Runtime     string   `json:"runtime"`
	Entry       string   `json:"entry"`

	RepoURL    string `json:"repoUrl,omitempty"`
	AppDirURL  string `json:"appDirUrl,omitempty"`
	DocsURL    string `json:"docsUrl,omitempty"`
	RawFileURL string `json:"rawFileUrl,omitempty"`

	// Variant holds the runtime-specific fields; it is flattened into the
	// record when marshaled.
	Variant Variant `json:"-"`
}

// Variant is the closed set of runtime-specific field groups.
type Variant interface {
	runtime() string
}

// StaticFields are published for apps served as static files.
type StaticFields struct {
	PagesURL      string `json:"pagesUrl"`
	PreviewURL    string `json:"previewUrl"`
	ScreenshotURL string `json:"screenshotUrl,omitempty"`
}

func (*StaticFields) runtime() string { return manifest.RuntimeStatic }

// HostedFields are published for apps served behind the live gateway. Both
// keys are always present on a hosted record, empty when the manifest leaves
// them out.
type HostedFields struct {
	HostedURL    string `json:"hostedUrl"`
	HostedStatus string `json:"hostedStatus"`
}

func (*HostedFields) runtime() string { return manifest.RuntimeHosted }

// Static returns the static variant, if the record has one.
func (r *Record) Static() (*StaticFields, bool) {
	s, ok := r.Variant.(*StaticFields)
	return s, ok
}

// Hosted returns the hosted variant, if the record has one.
func (r *Record) Hosted() (*HostedFields, bool) {
	h, ok := r.Variant.(*HostedFields)
	return h, ok
}

// plain has Record's fields without its methods.
type plain Record

func (r Record) MarshalJSON() ([]byte, error) {
	out := struct {
		plain
		*StaticFields
		*HostedFields
	}{plain: plain(r)}

	switch v := r.Variant.(type) {
	case *StaticFields:
		out.StaticFields = v
	case *HostedFields:
		out.HostedFields = v
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(out); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

func (r *Record) UnmarshalJSON(data []byte) error {
	var in struct {
		plain
		StaticFields
		HostedFields
	}
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}

	*r = Record(in.plain)
	switch r.Runtime {
	case manifest.RuntimeStatic:
		s := in.StaticFields
		r.Variant = &s
	case manifest.RuntimeHosted:
		h := in.HostedFields
		r.Variant = &h
	default:
		r.Variant = nil
	}
	return nil
}
