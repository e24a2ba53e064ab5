package mcp

import (
	"context"
	"fmt"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/Sumatoshi-tech/lyagushka/pkg/report"
)

// handleValidate processes lyagushka_validate tool calls. Schema violations
// are a successful result with Valid unset; only malformed input is a tool error.
func handleValidate(
	_ context.Context,
	_ *mcpsdk.CallToolRequest,
	input ValidateInput,
) (*mcpsdk.CallToolResult, ValidateOutput, error) {
	if input.Segments == "" {
		return errorResult[ValidateOutput](ErrEmptyDocument)
	}

	if len(input.Segments) > MaxDocumentBytes {
		return errorResult[ValidateOutput](
			fmt.Errorf("%w: %d bytes (max %d)", ErrDocumentTooLarge, len(input.Segments), MaxDocumentBytes))
	}

	issues, err := report.ValidateSegmentsJSON([]byte(input.Segments))
	if err != nil {
		return errorResult[ValidateOutput](err)
	}

	out := ValidateOutput{Valid: len(issues) == 0, Issues: make([]string, 0, len(issues))}
	for _, issue := range issues {
		out.Issues = append(out.Issues, issue.String())
	}

	return jsonResult(out)
}
