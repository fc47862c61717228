package cli

import (
	"bytes"
	"encoding/json"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nuggetube-backend/internal/config"
	"nuggetube-backend/internal/model"
	"nuggetube-backend/internal/responder"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	RootCmd.SetOut(&out)
	RootCmd.SetErr(&out)
	RootCmd.SetArgs(append([]string{"--config", filepath.Join(t.TempDir(), "missing.yaml")}, args...))
	err := RootCmd.Execute()
	return out.String(), err
}

func TestAskLocal(t *testing.T) {
	out, err := execute(t, "ask", "--server", "", "-f", "json", "where", "can", "I", "eat")
	require.NoError(t, err)

	var resp model.ChatResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, responder.IntentFood, resp.Intent)
	assert.NotNil(t, resp.Location)
	assert.NotEmpty(t, resp.Content)
}

func TestAskLocalText(t *testing.T) {
	out, err := execute(t, "ask", "--server", "", "-f", "text", "hello")
	require.NoError(t, err)
	assert.Contains(t, out, responder.Fallback)
}

func TestAskRemote(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cfg, err := config.Load("")
	require.NoError(t, err)
	a, err := newApp(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Close() })

	srv := httptest.NewServer(a.router())
	t.Cleanup(srv.Close)

	out, err := execute(t, "ask", "--server", srv.URL+"/", "-f", "json", "which", "breed", "lays", "eggs")
	require.NoError(t, err)

	var resp model.ChatResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, responder.IntentBreed, resp.Intent)
	assert.NotNil(t, resp.Location)
}

func TestAskRequiresQuery(t *testing.T) {
	_, err := execute(t, "ask")
	assert.Error(t, err)
}

func TestClassify(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 300, 200))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: color.RGBA{255, 215, 0, 255}}, image.Point{}, draw.Src)

	path := filepath.Join(t.TempDir(), "nugget.png")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, img))
	require.NoError(t, f.Close())

	out, err := execute(t, "classify", "-f", "json", path)
	require.NoError(t, err)

	var resp model.DrawingResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.True(t, resp.IsFood)
	assert.Equal(t, "restaurant", resp.Recommendation.Kind)
	assert.Contains(t, resp.Recommendation.Message, "Based on your drawing")
}

func TestClassifyRejectsNonImage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("not an image"), 0644))

	_, err := execute(t, "classify", path)
	assert.Error(t, err)

	_, err = execute(t, "classify", filepath.Join(t.TempDir(), "absent.png"))
	assert.Error(t, err)
}
