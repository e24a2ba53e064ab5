package report

import (
	_ "embed"
	"errors"
	"fmt"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed schema/segments.schema.json
var segmentsSchema []byte

// ErrSchemaViolation indicates a document does not match the segment schema.
var ErrSchemaViolation = errors.New("document does not match segment schema")

// SchemaIssue is a single schema violation.
type SchemaIssue struct {
	Field       string
	Description string
}

// String formats the issue as "field: description".
func (i SchemaIssue) String() string {
	return i.Field + ": " + i.Description
}

// SegmentsSchema returns the embedded JSON schema for serialized segments.
func SegmentsSchema() []byte {
	return segmentsSchema
}

// ValidateSegmentsJSON checks data against the embedded schema. A malformed
// document is returned as an error; schema violations are returned as issues.
func ValidateSegmentsJSON(data []byte) ([]SchemaIssue, error) {
	schemaLoader := gojsonschema.NewBytesLoader(segmentsSchema)
	docLoader := gojsonschema.NewBytesLoader(data)

	result, err := gojsonschema.Validate(schemaLoader, docLoader)
	if err != nil {
		return nil, fmt.Errorf("schema validation: %w", err)
	}

	if result.Valid() {
		return nil, nil
	}

	issues := make([]SchemaIssue, 0, len(result.Errors()))
	for _, verr := range result.Errors() {
		issues = append(issues, SchemaIssue{Field: verr.Field(), Description: verr.Description()})
	}

	return issues, nil
}
