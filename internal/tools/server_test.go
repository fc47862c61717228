package tools

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nuggetube-backend/internal/classifier"
	"nuggetube-backend/internal/config"
	"nuggetube-backend/internal/model"
	"nuggetube-backend/internal/responder"
	"nuggetube-backend/internal/service"
	"nuggetube-backend/internal/storage"
)

type firstPicker struct{}

func (firstPicker) IntN(int) int { return 0 }

func newToolSet() *toolSet {
	drawingCfg := config.DrawingConfig{MaxWidth: 600, MaxHeight: 400}
	return &toolSet{
		services: Services{
			Chat: service.NewChatService(storage.NewMemoryStorage(), responder.New(nil, firstPicker{}),
				nil, config.ChatConfig{}, config.SessionConfig{}),
			Drawing: service.NewDrawingService(classifier.New(firstPicker{}), nil, nil, drawingCfg),
			Map:     service.NewMapService(nil),
		},
		drawing: drawingCfg,
	}
}

func call(t *testing.T, name string, handler func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error), args map[string]any) *mcp.CallToolResult {
	t.Helper()
	var request mcp.CallToolRequest
	request.Params.Name = name
	request.Params.Arguments = args

	result, err := withErrorResult(name, handler)(context.Background(), request)
	require.NoError(t, err)
	require.NotNil(t, result)
	return result
}

func TestAskChickenExpert(t *testing.T) {
	ts := newToolSet()
	result := call(t, ToolAskChickenExpert, ts.ask, map[string]any{"query": "korean fried chicken"})
	assert.False(t, result.IsError)

	var resp model.ChatResponse
	require.NoError(t, json.Unmarshal([]byte(resultText(result)), &resp))
	require.NotNil(t, resp.Location)
	assert.Equal(t, "KFC HQ", resp.Location.Name)
}

func TestAskChickenExpertRejectsEmptyQuery(t *testing.T) {
	ts := newToolSet()
	result := call(t, ToolAskChickenExpert, ts.ask, map[string]any{})
	assert.True(t, result.IsError)

	isErr, body := parseErrorResult(resultText(result))
	require.True(t, isErr)
	assert.Equal(t, ToolAskChickenExpert, body.ToolName)
	assert.Equal(t, service.ErrEmptyMessage.Error(), body.ErrorMessage)
}

func TestClassifyDrawing(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 40, 40))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: color.RGBA{255, 215, 0, 255}}, image.Point{}, draw.Src)
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	encoded := base64.StdEncoding.EncodeToString(buf.Bytes())

	ts := newToolSet()
	for _, arg := range []string{encoded, "data:image/png;base64," + encoded} {
		result := call(t, ToolClassifyDrawing, ts.classify, map[string]any{"image_base64": arg})
		require.False(t, result.IsError, resultText(result))

		var resp model.DrawingResponse
		require.NoError(t, json.Unmarshal([]byte(resultText(result)), &resp))
		assert.True(t, resp.IsFood)
		assert.Equal(t, "KFC HQ", resp.Recommendation.Name)
	}

	result := call(t, ToolClassifyDrawing, ts.classify, map[string]any{"image_base64": "%%%"})
	assert.True(t, result.IsError)
}

func TestListChickenPlaces(t *testing.T) {
	ts := newToolSet()

	result := call(t, ToolListChickenPlaces, ts.places, map[string]any{"kind": "shelter"})
	var markers []model.Marker
	require.NoError(t, json.Unmarshal([]byte(resultText(result)), &markers))
	assert.Len(t, markers, 8)

	result = call(t, ToolListChickenPlaces, ts.places, nil)
	require.NoError(t, json.Unmarshal([]byte(resultText(result)), &markers))
	assert.Len(t, markers, 33)

	result = call(t, ToolListChickenPlaces, ts.places, map[string]any{"kind": "volcano"})
	assert.True(t, result.IsError)
}

func TestWithErrorResultPassesSuccessThrough(t *testing.T) {
	ok := mcp.NewToolresultText("fine")
	handler := withErrorResult("noop", func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return ok, nil
	})

	result, err := handler(context.Background(), mcp.CallToolRequest{})
	require.NoError(t, err)
	assert.Same(t, ok, result)

	failing := withErrorResult("boom", func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return nil, errors.New("kaput")
	})
	result, err = failing(context.Background(), mcp.CallToolRequest{})
	require.NoError(t, err)
	assert.True(t, result.IsError)
	isErr, body := parseErrorResult(resultText(result))
	require.True(t, isErr)
	assert.Equal(t, "kaput", body.ErrorMessage)
}

func TestNewServerBuilds(t *testing.T) {
	ts := newToolSet()
	s := NewServer(ts.services, ts.drawing)
	require.NotNil(t, s)
	assert.NotNil(t, NewHTTPHandler(s, "/mcp"))
}

// resultText returns the first text content of a tool result.
func resultText(result *mcp.CallToolResult) string {
	if result == nil {
		return ""
	}
	for _, content := range result.Content {
		switch text := content.(type) {
		case mcp.TextContent:
			return text.Text
		case *mcp.TextContent:
			return text.Text
		}
	}
	return ""
}

// parseErrorResult reports whether text is an ErrorResult body.
func parseErrorResult(text string) (bool, *ErrorResult) {
	var body ErrorResult
	if err := json.Unmarshal([]byte(text), &body); err != nil {
		return false, nil
	}
	if body.Error && !body.Success {
		return true, &body
	}
	return false, nil
}
