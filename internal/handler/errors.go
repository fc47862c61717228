package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"nuggetube-backend/internal/classifier"
	"nuggetube-backend/internal/service"
	"nuggetube-backend/internal/storage"
	"nuggetube-backend/pkg/logger"
)

var badRequestErrors = []error{
	service.ErrEmptyMessage,
	service.ErrSessionRequired,
	service.ErrChickImmutable,
	service.ErrDrumstickCare,
	service.ErrUnknownCareAction,
	service.ErrUnknownKind,
	classifier.ErrInvalidRaster,
	storage.ErrInvalidData,
}

var notFoundErrors = []error{
	storage.ErrSessionNotFound,
	service.ErrBirdNotFound,
	service.ErrChickenNotFound,
}

func statusFor(err error) int {
	for _, target := range badRequestErrors {
		if errors.Is(err, target) {
			return http.StatusBadRequest
		}
	}
	for _, target := range notFoundErrors {
		if errors.Is(err, target) {
			return http.StatusNotFound
		}
	}
	switch {
	case errors.Is(err, service.ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	}
	return http.StatusInternalServerError
}

// respondError writes the error body and logs server-side failures.
func respondError(c *gin.Context, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		logger.WithFields(logger.Fields{"path": c.FullPath(), "error": err}).Error("request failed")
	}
	_ = c.Error(err)
	c.JSON(status, gin.H{"error": err.Error()})
}
