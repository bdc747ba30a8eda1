package manifest

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"github.com/spf13/afero"
)

// Document is a manifest file that has been read and decoded as JSON but not
// yet validated.
type Document struct {
	Path     string
	Raw      []byte
	Instance any // generic JSON value as seen by the schema validator
}

// Load reads and decodes the manifest at path.
func Load(fs afero.Fs, path string) (*Document, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("reading file %s: %w", path, err)
	}
	return Decode(path, data)
}

// Decode decodes raw manifest bytes. Syntax errors are reported as
// *MalformedJSONError.
func Decode(path string, data []byte) (*Document, error) {
	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return nil, &MalformedJSONError{Path: path, Err: err}
	}
	return &Document{Path: path, Raw: data, Instance: inst}, nil
}

// Manifest decodes the document into the typed Manifest struct. Call it only
// after the document passed schema validation.
func (d *Document) Manifest() (*Manifest, error) {
	var m Manifest
	if err := json.Unmarshal(d.Raw, &m); err != nil {
		return nil, &MalformedJSONError{Path: d.Path, Err: err}
	}
	return &m, nil
}

// Parse decodes raw bytes straight into a Manifest without schema validation.
func Parse(path string, data []byte) (*Manifest, error) {
	doc, err := Decode(path, data)
	if err != nil {
		return nil, err
	}
	return doc.Manifest()
}
