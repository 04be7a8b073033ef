package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// handleAuthActions returns the full website action audit log, every
// scalar field stringified for the dashboard.
func (s *Server) handleAuthActions(c *gin.Context) {
	actions, err := s.store.ListAuthActions(c.Request.Context())
	if err != nil {
		s.fail(c, err)
		return
	}

	data := make([]gin.H, 0, len(actions))
	for _, action := range actions {
		data = append(data, gin.H{
			"action_id":   strconv.FormatInt(action.ActionID, 10),
			"user_id":     strconv.FormatInt(action.UserID, 10),
			"action_type": action.ActionType,
			"timestamp":   action.Timestamp,
			"details":     action.Details,
			"resolved":    action.Resolved,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    data,
		"count":   len(data),
	})
}

// handleAuthBots returns the client id of every registered OAuth
// application.
func (s *Server) handleAuthBots(c *gin.Context) {
	bots, err := s.store.ListAuthBots(c.Request.Context())
	if err != nil {
		s.fail(c, err)
		return
	}

	data := make([]gin.H, 0, len(bots))
	for _, bot := range bots {
		data = append(data, gin.H{
			"client_id": strconv.FormatInt(bot.ClientID, 10),
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    data,
		"count":   len(data),
	})
}

// handleAuthUsers returns every website session row
func (s *Server) handleAuthUsers(c *gin.Context) {
	sessions, err := s.store.ListAuthSessions(c.Request.Context())
	if err != nil {
		s.fail(c, err)
		return
	}

	data := make([]gin.H, 0, len(sessions))
	for _, session := range sessions {
		data = append(data, gin.H{
			"user_id":    strconv.FormatInt(session.UserID, 10),
			"ip_address": session.IPAddress,
			"bot_id":     strconv.FormatInt(session.BotID, 10),
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    data,
		"count":   len(data),
	})
}
