package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"nuggetube-backend/internal/model"
	"nuggetube-backend/internal/service"
	"nuggetube-backend/internal/utils"
	"nuggetube-backend/pkg/logger"
)

const (
	streamTimeout     = 2 * time.Minute
	heartbeatInterval = 15 * time.Second
)

type ChatHandler struct {
	chatService *service.ChatService
}

func NewChatHandler(chatService *service.ChatService) *ChatHandler {
	return &ChatHandler{
		chatService: chatService,
	}
}

func statusEvent(kind, message string) gin.H {
	return gin.H{
		"type":      kind,
		"message":   message,
		"timestamp": time.Now().Unix(),
	}
}

// StreamChat answers over server-sent events: a start status, the stored user message, the
// assistant message, then a complete status and [DONE].
func (h *ChatHandler) StreamChat(c *gin.Context) {
	var req model.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sseWriter := utils.NewSSEWriter(c.Writer)

	ctx, cancel := context.WithTimeout(c.Request.Context(), streamTimeout)
	defer cancel()

	heartbeatTicker := time.NewTicker(heartbeatInterval)
	defer heartbeatTicker.Stop()

	respChan, errChan := h.chatService.StreamChat(ctx, req.SessionID, req.Message)

	sseWriter.WriteJSON("status", statusEvent("processing_start", "Thinking..."))

	for {
		select {
		case resp, ok := <-respChan:
			if !ok {
				if err := <-errChan; err != nil {
					h.writeStreamError(sseWriter, err)
					return
				}
				sseWriter.WriteJSON("status", statusEvent("processing_complete", "Done"))
				sseWriter.Close()
				return
			}

			if err := sseWriter.WriteJSON("message", resp); err != nil {
				logger.Errorf("Failed to write SSE: %v", err)
				return
			}

		case <-heartbeatTicker.C:
			if err := sseWriter.WriteJSON("heartbeat", statusEvent("heartbeat", "alive")); err != nil {
				logger.Warnf("Heartbeat failed: %v", err)
				return
			}

		case <-ctx.Done():
			if ctx.Err() == context.DeadlineExceeded {
				h.writeStreamError(sseWriter, ctx.Err())
				return
			}
			sseWriter.Close()
			return
		}
	}
}

func (h *ChatHandler) writeStreamError(w *utils.SSEWriter, err error) {
	w.WriteJSON("error", gin.H{
		"error":     err.Error(),
		"status":    statusFor(err),
		"timestamp": time.Now().Unix(),
	})
	w.Close()
}

func (h *ChatHandler) Send(c *gin.Context) {
	var req model.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resp, err := h.chatService.Send(c.Request.Context(), req.SessionID, req.Message)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *ChatHandler) Ask(c *gin.Context) {
	var req model.AskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resp, err := h.chatService.Ask(req.Message)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *ChatHandler) CreateSession(c *gin.Context) {
	var req model.CreateSessionRequest
	// An empty body is allowed and gets a generated title.
	_ = c.ShouldBindJSON(&req)

	session, err := h.chatService.CreateSession(req.Title)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, session)
}

func (h *ChatHandler) GetSession(c *gin.Context) {
	session, err := h.chatService.GetSession(c.Param("session_id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, service.ToSessionResponse(session))
}

func (h *ChatHandler) GetMessages(c *gin.Context) {
	sessionID := c.Param("session_id")

	messages, err := h.chatService.GetSessionMessages(sessionID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"session_id": sessionID,
		"messages":   messages,
	})
}

func (h *ChatHandler) GetSessionList(c *gin.Context) {
	sessions, err := h.chatService.GetAllSessions()
	if err != nil {
		respondError(c, err)
		return
	}

	list := make([]model.SessionResponse, 0, len(sessions))
	for _, session := range sessions {
		list = append(list, service.ToSessionResponse(session))
	}

	c.JSON(http.StatusOK, gin.H{
		"sessions": list,
	})
}

func (h *ChatHandler) DeleteSession(c *gin.Context) {
	if err := h.chatService.DeleteSession(c.Param("session_id")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Session deleted successfully"})
}

func (h *ChatHandler) ClearAllSessions(c *gin.Context) {
	if err := h.chatService.ClearAllSessions(); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "All sessions cleared successfully"})
}

func (h *ChatHandler) UpdateSessionTitle(c *gin.Context) {
	var req model.UpdateTitleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.chatService.UpdateSessionTitle(c.Param("session_id"), req.Title); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Title updated successfully"})
}
