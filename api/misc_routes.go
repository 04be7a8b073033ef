package api

import (
	"io"
	"math/rand"
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	"github.com/tidwall/gjson"
)

// handleGetEmail returns the configured contact email address
func (s *Server) handleGetEmail(c *gin.Context) {
	email, found, err := s.store.LookupConfig(c.Request.Context(), "email_address")
	if err != nil {
		s.fail(c, err)
		return
	}

	if !found {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Email not found"})
		return
	}
	if email == "" {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Email not set"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "email": email})
}

// handleDomain returns the website domain this deployment runs under
func (s *Server) handleDomain(c *gin.Context) {
	domain, err := s.discord.Domain(c.Request.Context())
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"domain": domain})
}

// handleTranscript serves a stored ticket transcript. Lookup tries the
// bare name first, then the deployment-prefixed variant.
func (s *Server) handleTranscript(c *gin.Context) {
	name := c.Param("name")
	dir := s.cfg.TemplatesDir

	if _, err := os.Stat(dir); os.IsNotExist(err) {
		if err := os.Mkdir(dir, 0o755); err != nil && !os.IsExist(err) {
			log.Warnf("Failed to create templates directory %s: %v", dir, err)
		}
		c.JSON(http.StatusNotFound, gin.H{"response": false})
		return
	}

	path := filepath.Join(dir, name)
	if _, err := os.Stat(path); err != nil {
		path = filepath.Join(dir, s.cfg.BotName+"-"+name)
		if _, err := os.Stat(path); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"response": false})
			return
		}
	}

	transcript, err := os.ReadFile(path)
	if err != nil {
		s.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"response": string(transcript)})
}

// handleWebsiteTicketOpen picks a registered OAuth application at random,
// initializes a one-time website-ticket session against it and returns the
// authorize URL.
func (s *Server) handleWebsiteTicketOpen(c *gin.Context) {
	ctx := c.Request.Context()

	bots, err := s.store.ListAuthBots(ctx)
	if err != nil {
		s.fail(c, err)
		return
	}
	if len(bots) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "No bot data found"})
		return
	}

	chosen := bots[rand.Intn(len(bots))]

	session := s.newTicketAuth(chosen.ClientID)
	if err := session.Init(ctx); err != nil {
		s.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": session.URL()})
}

// handleUsersInfo resolves a batch of user ids against the cache. Unknown
// ids are silently omitted; malformed ids get a per-key error entry.
func (s *Server) handleUsersInfo(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		s.fail(c, err)
		return
	}

	if !gjson.ValidBytes(body) {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Invalid JSON in request body",
		})
		return
	}

	parsed := gjson.ParseBytes(body)
	if !parsed.IsArray() {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Request body must contain a list of user IDs",
		})
		return
	}

	items := parsed.Array()
	if len(items) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Request body must contain a list of user IDs",
		})
		return
	}

	data := gin.H{}

	for _, item := range items {
		key := item.String()

		if _, err := strconv.ParseInt(key, 10, 64); err != nil {
			data[key] = gin.H{"error": "Invalid user ID format"}
			continue
		}

		user := s.discord.User(key)
		if user == nil {
			continue
		}

		var discriminator any
		if user.Discriminator != "" && user.Discriminator != "0" {
			discriminator = user.Discriminator
		}

		var createdAt any
		if t, ok := userCreatedAt(user); ok {
			createdAt = isoTimestamp(t)
		}

		data[key] = gin.H{
			"id":            user.ID,
			"name":          user.Username,
			"display_name":  displayName(user),
			"avatar":        user.AvatarURL(""),
			"discriminator": discriminator,
			"bot":           user.Bot,
			"created_at":    createdAt,
		}
	}

	// Counted over the keyed result so duplicate request ids collapse
	foundCount := 0
	for _, entry := range data {
		if _, bad := entry.(gin.H)["error"]; !bad {
			foundCount++
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"success":         true,
		"data":            data,
		"requested_count": len(items),
		"found_count":     foundCount,
	})
}
