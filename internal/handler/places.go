package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"nuggetube-backend/internal/model"
	"nuggetube-backend/internal/responder"
	"nuggetube-backend/internal/service"
)

type MapHandler struct {
	mapService *service.MapService
}

func NewMapHandler(mapService *service.MapService) *MapHandler {
	return &MapHandler{mapService: mapService}
}

func (h *MapHandler) Markers(c *gin.Context) {
	markers, err := h.mapService.Markers(c.Query("kind"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"markers": markers})
}

func (h *MapHandler) Viewport(c *gin.Context) {
	c.JSON(http.StatusOK, h.mapService.Viewport())
}

func (h *MapHandler) Focus(c *gin.Context) {
	var req model.FocusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, h.mapService.Focus(responder.Location{Lat: req.Lat, Lng: req.Lng, Name: req.Name}))
}

type AdoptionHandler struct {
	adoptionService *service.AdoptionService
}

func NewAdoptionHandler(adoptionService *service.AdoptionService) *AdoptionHandler {
	return &AdoptionHandler{adoptionService: adoptionService}
}

func chickenID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid chicken id"})
		return 0, false
	}
	return id, true
}

func (h *AdoptionHandler) List(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"chickens": h.adoptionService.List(CurrentUser(c).UserID)})
}

func (h *AdoptionHandler) Rename(c *gin.Context) {
	id, ok := chickenID(c)
	if !ok {
		return
	}

	var req model.RenameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	chicken, err := h.adoptionService.Rename(CurrentUser(c).UserID, id, req.Name)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, chicken)
}

func (h *AdoptionHandler) Adopt(c *gin.Context) {
	id, ok := chickenID(c)
	if !ok {
		return
	}

	loc, err := h.adoptionService.Adopt(id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"location": loc})
}
