package manifest

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"github.com/spf13/afero"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

//go:embed schema/app-manifest.schema.json
var schemaBytes []byte

const embeddedSchemaName = "app-manifest.schema.json"

var (
	compiledSchema *jsonschema.Schema
	compileOnce    sync.Once
	compileErr     error
	printer        = message.NewPrinter(language.English)
)

// ValidationResult contains the outcome of a schema validation.
type ValidationResult struct {
	Valid  bool
	Issues []ValidationIssue
}

// ValidationIssue represents a single validation error from the schema.
type ValidationIssue struct {
	Path    string // Instance location (e.g., "/id", "/hosted/gateway/wsPath")
	Message string // Human-readable error message
	Keyword string // Schema keyword that failed
}

// Err converts an invalid result into a *SchemaViolationError for path.
func (r *ValidationResult) Err(path string) error {
	if r == nil || r.Valid {
		return nil
	}
	return &SchemaViolationError{Path: path, Issues: r.Issues}
}

// Validator checks manifest documents against a compiled schema.
type Validator struct {
	schema *jsonschema.Schema
}

// NewValidator returns a validator for the schema at schemaPath, read from
// fs. An empty schemaPath selects the embedded schema.
func NewValidator(fs afero.Fs, schemaPath string) (*Validator, error) {
	if schemaPath == "" {
		s, err := getSchema()
		if err != nil {
			return nil, fmt.Errorf("loading schema: %w", err)
		}
		return &Validator{schema: s}, nil
	}

	data, err := afero.ReadFile(fs, schemaPath)
	if err != nil {
		return nil, fmt.Errorf("reading schema %s: %w", schemaPath, err)
	}
	s, err := compileSchema(filepath.Base(schemaPath), data)
	if err != nil {
		return nil, fmt.Errorf("loading schema %s: %w", schemaPath, err)
	}
	return &Validator{schema: s}, nil
}

// getSchema compiles the embedded JSON schema once and returns it.
func getSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		compiledSchema, compileErr = compileSchema(embeddedSchemaName, schemaBytes)
	})
	return compiledSchema, compileErr
}

func compileSchema(name string, data []byte) (*jsonschema.Schema, error) {
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("unmarshaling schema JSON: %w", err)
	}

	c := jsonschema.NewCompiler()
	c.AssertFormat()
	if err := c.AddResource(name, doc); err != nil {
		return nil, fmt.Errorf("adding schema resource: %w", err)
	}
	s, err := c.Compile(name)
	if err != nil {
		return nil, fmt.Errorf("compiling schema: %w", err)
	}
	return s, nil
}

// Validate checks a decoded document against the schema. The error return
// is reserved for validator failures; schema issues land in the result.
func (v *Validator) Validate(doc *Document) (*ValidationResult, error) {
	err := v.schema.Validate(doc.Instance)
	if err == nil {
		return &ValidationResult{Valid: true}, nil
	}

	var validationErr *jsonschema.ValidationError
	if !errors.As(err, &validationErr) {
		return nil, fmt.Errorf("unexpected validation error type: %w", err)
	}

	return &ValidationResult{
		Valid:  false,
		Issues: extractIssues(validationErr),
	}, nil
}

// Validate validates raw manifest bytes against the embedded schema.
// Malformed JSON is returned as an error, not as an issue.
func Validate(data []byte) (*ValidationResult, error) {
	v, err := NewValidator(nil, "")
	if err != nil {
		return nil, err
	}
	doc, err := Decode("", data)
	if err != nil {
		return nil, err
	}
	return v.Validate(doc)
}

// ValidateFile reads a file and validates it against the embedded schema.
func ValidateFile(path string) (*ValidationResult, error) {
	fs := afero.NewOsFs()
	v, err := NewValidator(fs, "")
	if err != nil {
		return nil, err
	}
	doc, err := Load(fs, path)
	if err != nil {
		return nil, err
	}
	return v.Validate(doc)
}

// extractIssues walks the ValidationError tree and returns leaf-level issues.
func extractIssues(ve *jsonschema.ValidationError) []ValidationIssue {
	var issues []ValidationIssue
	collectValidationIssues(ve, &issues)

	if len(issues) == 0 {
		return []ValidationIssue{{
			Message: ve.Error(),
		}}
	}
	return deduplicateIssues(issues)
}

// collectValidationIssues recursively walks the error tree to find leaf errors
// with specific property information.
func collectValidationIssues(ve *jsonschema.ValidationError, issues *[]ValidationIssue) {
	if len(ve.Causes) == 0 {
		path := "/" + strings.Join(ve.InstanceLocation, "/")
		if len(ve.InstanceLocation) == 0 {
			path = ""
		}

		keyword := ""
		msg := ""
		if ve.ErrorKind != nil {
			if kwPath := ve.ErrorKind.KeywordPath(); len(kwPath) > 0 {
				keyword = kwPath[len(kwPath)-1]
			}
			msg = ve.ErrorKind.LocalizedString(printer)
		}

		// Container keywords only aggregate their causes.
		if keyword == "oneOf" || keyword == "allOf" || keyword == "$ref" || keyword == "" {
			return
		}

		*issues = append(*issues, ValidationIssue{
			Path:    path,
			Message: msg,
			Keyword: keyword,
		})
		return
	}

	for _, cause := range ve.Causes {
		collectValidationIssues(cause, issues)
	}
}

// deduplicateIssues removes duplicate issues (same path + keyword + message).
func deduplicateIssues(issues []ValidationIssue) []ValidationIssue {
	seen := make(map[string]bool)
	var result []ValidationIssue
	for _, issue := range issues {
		key := issue.Path + "|" + issue.Keyword + "|" + issue.Message
		if !seen[key] {
			seen[key] = true
			result = append(result, issue)
		}
	}
	return result
}
