// Package tools exposes the chicken expert, the drawing classifier and the place listing as
// MCP tools.
package tools

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"nuggetube-backend/internal/classifier"
	"nuggetube-backend/internal/config"
	"nuggetube-backend/internal/service"
)

const (
	ServerName    = "nuggetube"
	ServerVersion = "1.0.0"

	ToolAskChickenExpert  = "ask_chicken_expert"
	ToolClassifyDrawing   = "classify_drawing"
	ToolListChickenPlaces = "list_chicken_places"
)

type Services struct {
	Chat    *service.ChatService
	Drawing *service.DrawingService
	Map     *service.MapService
}

type toolSet struct {
	services Services
	drawing  config.DrawingConfig
}

// NewServer registers every tool on a fresh MCP server.
func NewServer(services Services, drawing config.DrawingConfig) *server.MCPServer {
	s := server.NewMCPServer(ServerName, ServerVersion, server.WithToolCapabilities(false))
	ts := &toolSet{services: services, drawing: drawing}

	s.AddTool(mcp.NewTool(ToolAskChickenExpert,
		mcp.WithDescription("Ask the chicken expert for a breed to buy, a restaurant for a dish, or a rescue chicken to adopt. Returns the answer and, when there is one, the place it points to."),
		mcp.WithString("query", mcp.Required(), mcp.Description("What the user is looking for, in plain words")),
	), withErrorResult(ToolAskChickenExpert, ts.ask))

	s.AddTool(mcp.NewTool(ToolClassifyDrawing,
		mcp.WithDescription("Guess whether a drawing shows a live chicken or a chicken dish, and recommend a breed or restaurant."),
		mcp.WithString("image_base64", mcp.Required(), mcp.Description("PNG or JPEG image, base64 encoded")),
	), withErrorResult(ToolClassifyDrawing, ts.classify))

	s.AddTool(mcp.NewTool(ToolListChickenPlaces,
		mcp.WithDescription("List the chicken breeds, restaurants and adoption centers shown on the map."),
		mcp.WithString("kind", mcp.Description("Only list one kind of place"), mcp.Enum("breed", "restaurant", "shelter")),
	), withErrorResult(ToolListChickenPlaces, ts.places))

	return s
}

// NewHTTPHandler serves the MCP server over SSE under basePath.
func NewHTTPHandler(s *server.MCPServer, basePath string) http.Handler {
	return server.NewSSEServer(s, server.WithStaticBasePath(basePath))
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to encode result: %w", err)
	}
	return mcp.NewToolResultText(string(data)), nil
}

func (ts *toolSet) ask(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	resp, err := ts.services.Chat.Ask(request.GetString("query", ""))
	if err != nil {
		return nil, err
	}
	return jsonResult(resp)
}

func (ts *toolSet) classify(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	encoded := strings.TrimSpace(request.GetString("image_base64", ""))
	// Accept data URLs as produced by canvas.toDataURL.
	if i := strings.Index(encoded, ","); strings.HasPrefix(encoded, "data:") && i >= 0 {
		encoded = encoded[i+1:]
	}

	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("%w: image is not valid base64", classifier.ErrInvalidRaster)
	}

	raster, err := classifier.Decode(bytes.NewReader(data), ts.drawing.MaxWidth, ts.drawing.MaxHeight)
	if err != nil {
		return nil, err
	}

	resp, err := ts.services.Drawing.Analyze(ctx, raster)
	if err != nil {
		return nil, err
	}
	return jsonResult(resp)
}

func (ts *toolSet) places(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	markers, err := ts.services.Map.Markers(request.GetString("kind", ""))
	if err != nil {
		return nil, err
	}
	return jsonResult(markers)
}
