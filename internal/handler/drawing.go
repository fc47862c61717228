package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"nuggetube-backend/internal/classifier"
	"nuggetube-backend/internal/config"
	"nuggetube-backend/internal/model"
	"nuggetube-backend/internal/service"
)

type DrawingHandler struct {
	drawingService *service.DrawingService
	cfg            config.DrawingConfig
}

func NewDrawingHandler(drawingService *service.DrawingService, cfg config.DrawingConfig) *DrawingHandler {
	return &DrawingHandler{drawingService: drawingService, cfg: cfg}
}

// Analyze takes the canvas the way the browser reads it: width, height and base64 RGBA bytes.
func (h *DrawingHandler) Analyze(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.cfg.MaxUploadBytes)

	var req model.RasterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Width > h.cfg.MaxWidth || req.Height > h.cfg.MaxHeight {
		respondError(c, fmt.Errorf("%w: canvas %dx%d exceeds %dx%d", classifier.ErrInvalidRaster,
			req.Width, req.Height, h.cfg.MaxWidth, h.cfg.MaxHeight))
		return
	}

	raster, err := classifier.NewRaster(req.Width, req.Height, req.Pixels)
	if err != nil {
		respondError(c, err)
		return
	}

	h.analyze(c, raster)
}

// AnalyzeImage takes a PNG or JPEG upload in the "image" form field.
func (h *DrawingHandler) AnalyzeImage(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.cfg.MaxUploadBytes)

	header, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("image upload required: %v", err)})
		return
	}

	file, err := header.Open()
	if err != nil {
		respondError(c, err)
		return
	}
	defer file.Close()

	raster, err := classifier.Decode(file, h.cfg.MaxWidth, h.cfg.MaxHeight)
	if err != nil {
		respondError(c, err)
		return
	}

	h.analyze(c, raster)
}

func (h *DrawingHandler) analyze(c *gin.Context, raster classifier.Raster) {
	resp, err := h.drawingService.Analyze(c.Request.Context(), raster)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
