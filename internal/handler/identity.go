package handler

import (
	"strings"

	"github.com/gin-gonic/gin"

	"nuggetube-backend/internal/model"
)

const (
	HeaderUserID    = "X-User-ID"
	HeaderUserName  = "X-User-Name"
	HeaderUserPhoto = "X-User-Photo"

	userKey = "nuggetube.user"
)

// Identity reads the profile forwarded by the auth proxy. Requests without X-User-ID are
// anonymous; handlers that need a user reject them.
func Identity() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(userKey, model.UserProfile{
			UserID:      strings.TrimSpace(c.GetHeader(HeaderUserID)),
			DisplayName: strings.TrimSpace(c.GetHeader(HeaderUserName)),
			PhotoURL:    strings.TrimSpace(c.GetHeader(HeaderUserPhoto)),
		})
		c.Next()
	}
}

func CurrentUser(c *gin.Context) model.UserProfile {
	if v, ok := c.Get(userKey); ok {
		if user, ok := v.(model.UserProfile); ok {
			return user
		}
	}
	return model.UserProfile{}
}
