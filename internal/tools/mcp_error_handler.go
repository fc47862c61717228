package tools

import (
	"context"
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"nuggetube-backend/pkg/logger"
)

// ErrorResult is the body of a failed tool call.
type ErrorResult struct {
	Success      bool   `json:"success"`
	Error        bool   `json:"error"`
	ErrorMessage string `json:"error_message"`
	ToolName     string `json:"tool_name"`
}

// withErrorResult turns a handler error into an IsError result carrying an ErrorResult, so the
// client sees a tool failure rather than a protocol failure.
func withErrorResult(name string, handler server.ToolHandlerFunc) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		result, err := handler(ctx, request)
		if err == nil {
			return result, nil
		}

		logger.WithFields(logger.Fields{"tool": name, "error": err}).Warn("MCP tool failed")

		body, marshalErr := json.Marshal(ErrorResult{
			Success:      false,
			Error:        true,
			ErrorMessage: err.Error(),
			ToolName:     name,
		})
		if marshalErr != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return mcp.NewToolResultError(string(body)), nil
	}
}
