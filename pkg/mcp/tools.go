package mcp

import (
	"encoding/json"
	"errors"
	"fmt"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/Sumatoshi-tech/lyagushka/pkg/density"
)

// Tool name constants.
const (
	ToolNameAnalyze  = "lyagushka_analyze"
	ToolNameValidate = "lyagushka_validate"
)

// Input size limits.
const (
	// MaxValues is the maximum number of observations accepted per call.
	MaxValues = 1 << 20
	// MaxDocumentBytes is the maximum size of a document passed to the validate tool (8 MB).
	MaxDocumentBytes = 8 << 20
)

// Sentinel errors for tool input validation.
var (
	// ErrTooManyValues indicates the values input exceeds MaxValues.
	ErrTooManyValues = errors.New("too many values")
	// ErrEmptyDocument indicates the segments parameter is empty.
	ErrEmptyDocument = errors.New("segments parameter is required and must not be empty")
	// ErrDocumentTooLarge indicates the segments document exceeds MaxDocumentBytes.
	ErrDocumentTooLarge = errors.New("segments document exceeds maximum size")
)

// Input types (auto-generate JSON schemas via struct tags).

// AnalyzeInput is the input schema for the lyagushka_analyze tool.
type AnalyzeInput struct {
	Values         []int64 `json:"values"               jsonschema:"integer observations in any order; duplicates allowed"`
	Factor         float64 `json:"factor"               jsonschema:"positive density factor; cluster threshold is mean distance divided by factor"`
	MinClusterSize int     `json:"min_cluster_size"     jsonschema:"minimum number of observations in a reported cluster"`
	GapScale       float64 `json:"gap_scale,omitempty"  jsonschema:"gap threshold multiplier (default: 2)"`
	Strategy       string  `json:"strategy,omitempty"   jsonschema:"segmentation strategy: scan or neighborhood (default: scan)"`
	LabelZ         float64 `json:"label_z,omitempty"    jsonschema:"z-score magnitude for attractor and repeller labels (default: 2)"`
}

// ValidateInput is the input schema for the lyagushka_validate tool.
type ValidateInput struct {
	Segments string `json:"segments" jsonschema:"JSON array of segment records as returned by lyagushka_analyze"`
}

// Output types (used as structured output for generic AddTool).

// AnalyzeOutput is the structured result of the lyagushka_analyze tool.
type AnalyzeOutput struct {
	Segments []density.SegmentRecord `json:"segments"`
	Labels   []density.PointLabel    `json:"labels"`
	Summary  density.Summary         `json:"summary"`
}

// ValidateOutput is the structured result of the lyagushka_validate tool.
type ValidateOutput struct {
	Valid  bool     `json:"valid"`
	Issues []string `json:"issues"`
}

// Result helpers.

// errorResult builds a CallToolResult with isError set.
func errorResult[Out any](err error) (*mcpsdk.CallToolResult, Out, error) {
	var zero Out

	return &mcpsdk.CallToolResult{
		Content: []mcpsdk.Content{
			&mcpsdk.TextContent{Text: err.Error()},
		},
		IsError: true,
	}, zero, nil
}

// jsonResult builds a CallToolResult with JSON-encoded content.
func jsonResult[Out any](value Out) (*mcpsdk.CallToolResult, Out, error) {
	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return errorResult[Out](fmt.Errorf("encode result: %w", err))
	}

	return textResult(string(data)), value, nil
}

func textResult(text string) *mcpsdk.CallToolResult {
	return &mcpsdk.CallToolResult{
		Content: []mcpsdk.Content{
			&mcpsdk.TextContent{Text: text},
		},
	}
}
