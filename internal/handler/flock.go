package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"nuggetube-backend/internal/model"
	"nuggetube-backend/internal/service"
)

type FlockHandler struct {
	flockService *service.FlockService
}

func NewFlockHandler(flockService *service.FlockService) *FlockHandler {
	return &FlockHandler{flockService: flockService}
}

func birdID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("bird_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid bird id"})
		return 0, false
	}
	return id, true
}

func (h *FlockHandler) Spawn(c *gin.Context) {
	resp, err := h.flockService.Spawn(c.Request.Context(), CurrentUser(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *FlockHandler) Roster(c *gin.Context) {
	resp, err := h.flockService.Roster(c.Request.Context(), CurrentUser(c).UserID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *FlockHandler) Clear(c *gin.Context) {
	resp, err := h.flockService.Clear(c.Request.Context(), CurrentUser(c).UserID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *FlockHandler) Toggle(c *gin.Context) {
	id, ok := birdID(c)
	if !ok {
		return
	}

	bird, err := h.flockService.Toggle(c.Request.Context(), CurrentUser(c).UserID, id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, bird)
}

func (h *FlockHandler) Care(c *gin.Context) {
	id, ok := birdID(c)
	if !ok {
		return
	}

	var req model.CareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	bird, err := h.flockService.Care(c.Request.Context(), CurrentUser(c).UserID, id, req.Action)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"bird":       bird,
		"mood_emoji": bird.Mood.Emoji(),
		"mood_label": bird.Mood.Label(),
	})
}

// Leaderboard works without login; the viewer's rank is filled in when they are listed.
func (h *FlockHandler) Leaderboard(c *gin.Context) {
	board, err := h.flockService.Leaderboard(c.Request.Context(), CurrentUser(c).UserID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, board)
}
