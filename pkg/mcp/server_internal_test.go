package mcp

import (
	"context"
	"testing"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/lyagushka/pkg/observability"
)

func TestWithRunID_FreshIDPerCall(t *testing.T) {
	t.Parallel()

	var seen []string

	handler := withRunID(func(ctx context.Context, _ *mcpsdk.CallToolRequest, _ ValidateInput) (*mcpsdk.CallToolResult, ValidateOutput, error) {
		runID, ok := observability.RunIDFromContext(ctx)
		require.True(t, ok)

		seen = append(seen, runID)

		return &mcpsdk.CallToolResult{}, ValidateOutput{}, nil
	})

	for range 2 {
		_, _, err := handler(context.Background(), nil, ValidateInput{})
		require.NoError(t, err)
	}

	require.Len(t, seen, 2)
	assert.NotEqual(t, seen[0], seen[1])
}
