package manifest

import (
	"fmt"
	"strings"
)

// MalformedJSONError reports a manifest file that is not valid JSON.
type MalformedJSONError struct {
	Path string
	Err  error
}

func (e *MalformedJSONError) Error() string {
	return fmt.Sprintf("invalid JSON: %s: %v", e.Path, e.Err)
}

func (e *MalformedJSONError) Unwrap() error { return e.Err }

// SchemaViolationError reports a manifest that fails structural validation.
type SchemaViolationError struct {
	Path   string
	Issues []ValidationIssue
}

func (e *SchemaViolationError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "schema errors in %s", e.Path)
	for _, issue := range e.Issues {
		path := issue.Path
		if path == "" {
			path = "(root)"
		}
		fmt.Fprintf(&b, "\n  - %s %s", path, issue.Message)
	}
	return b.String()
}
