package api

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"listingbot/models"
)

// handleAICredits reports the AI credit pool and when it next resets
func (s *Server) handleAICredits(c *gin.Context) {
	credits, err := s.store.GetAICredits(c.Request.Context())
	if err != nil {
		s.fail(c, err)
		return
	}

	if credits == nil {
		c.JSON(http.StatusOK, gin.H{
			"monthly_limit":  0,
			"remaining_free": 0,
			"remaining_paid": 0,
			"last_reset":     nil,
			"next_reset":     nil,
		})
		return
	}

	c.JSON(http.StatusOK, aiCreditsBody(credits))
}

// aiCreditsBody renders a present credit row, computing the next reset as
// midnight UTC on the first of the month after last_reset.
func aiCreditsBody(credits *models.AICredits) gin.H {
	lastReset := time.Now().UTC()
	if credits.LastReset != "" {
		if t, ok := parseDBTime(credits.LastReset); ok {
			lastReset = t
		}
	}
	// time.Date normalizes month 13, so December rolls the year
	nextReset := time.Date(lastReset.Year(), lastReset.Month()+1, 1, 0, 0, 0, 0, time.UTC)

	var lastResetField any
	if credits.LastReset != "" {
		lastResetField = credits.LastReset
	}

	return gin.H{
		"monthly_limit":   credits.MonthlyLimit,
		"remaining_free":  credits.RemainingFree,
		"remaining_paid":  credits.RemainingPaid,
		"total_remaining": credits.TotalRemaining(),
		"last_reset":      lastResetField,
		"next_reset":      isoTimestamp(nextReset),
	}
}

// handleListings reports the listing inventory counts
func (s *Server) handleListings(c *gin.Context) {
	counts, err := s.store.CountListings(c.Request.Context())
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, listingsBody(counts))
}

func listingsBody(counts *models.ListingCounts) gin.H {
	return gin.H{
		"accounts": counts.Accounts,
		"profiles": counts.Profiles,
		"alts":     counts.Alts,
		"total":    counts.Total(),
	}
}

// handleOwner reports the registered owner, degrading to a placeholder
// record when neither the cache nor the API can resolve them.
func (s *Server) handleOwner(c *gin.Context) {
	c.JSON(http.StatusOK, s.ownerBody(c.Request.Context()))
}

func (s *Server) ownerBody(ctx context.Context) gin.H {
	ownerID := s.discord.OwnerID()

	user := s.discord.User(ownerID)
	if user == nil {
		fetched, err := s.discord.FetchUser(ctx, ownerID)
		if err != nil {
			return gin.H{
				"id":            ownerID,
				"name":          "Unknown",
				"discriminator": "0000",
				"avatar_url":    nil,
				"created_at":    nil,
			}
		}
		user = fetched
	}

	discriminator := user.Discriminator
	if discriminator == "" {
		discriminator = "0"
	}

	var avatarURL any
	if user.Avatar != "" {
		avatarURL = user.AvatarURL("")
	}

	var createdAt any
	if t, ok := userCreatedAt(user); ok {
		createdAt = isoTimestamp(t)
	}

	return gin.H{
		"id":            user.ID,
		"name":          user.Username,
		"display_name":  displayName(user),
		"discriminator": discriminator,
		"avatar_url":    avatarURL,
		"created_at":    createdAt,
	}
}

// handleTickets lists open tickets enriched with cached usernames and
// channel names; unknown lookups render as "Unknown".
func (s *Server) handleTickets(c *gin.Context) {
	tickets, err := s.store.ListTickets(c.Request.Context())
	if err != nil {
		s.fail(c, err)
		return
	}

	out := make([]gin.H, 0, len(tickets))
	for _, ticket := range tickets {
		username := "Unknown"
		if user := s.discord.User(strconv.FormatInt(ticket.OpenedBy, 10)); user != nil {
			username = user.Username
		}

		channelName := "Unknown"
		if channel := s.discord.Channel(strconv.FormatInt(ticket.ChannelID, 10)); channel != nil {
			channelName = channel.Name
		}

		out = append(out, gin.H{
			"opened_by":          ticket.OpenedBy,
			"username":           username,
			"channel_id":         ticket.ChannelID,
			"channel_name":       channelName,
			"initial_message_id": ticket.InitialMessageID,
			"role_id":            ticket.RoleID,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"total":   len(out),
		"tickets": out,
	})
}

// handleAddAICredits tops up the paid AI credit balance, creating the
// credit pool with the default monthly allowance when it does not exist.
func (s *Server) handleAddAICredits(c *gin.Context) {
	ctx := c.Request.Context()

	raw := c.Query("credits")
	if raw == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Missing required parameter: credits"})
		return
	}

	credits, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Credits must be a valid number"})
		return
	}
	if credits <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Credits must be a positive number"})
		return
	}

	current, err := s.store.GetAICredits(ctx)
	if err != nil {
		s.fail(c, err)
		return
	}

	var previousFree, previousPaid int64
	if current == nil {
		if err := s.store.InsertAIConfig(ctx, 2000, 2000, credits); err != nil {
			s.fail(c, err)
			return
		}
		// A fresh pool reports a previous free balance of 150, not the
		// inserted allowance; the dashboard keys off this value.
		previousFree, previousPaid = 150, 0
	} else {
		previousFree, previousPaid = current.RemainingFree, current.RemainingPaid
		if err := s.store.AddPaidCredits(ctx, credits); err != nil {
			s.fail(c, err)
			return
		}
	}

	updatedFree, updatedPaid := previousFree, previousPaid+credits
	if updated, err := s.store.GetAICredits(ctx); err == nil && updated != nil {
		updatedFree, updatedPaid = updated.RemainingFree, updated.RemainingPaid
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": fmt.Sprintf("Successfully added %d premium AI credits", credits),
		"previous_credits": gin.H{
			"free":  previousFree,
			"paid":  previousPaid,
			"total": previousFree + previousPaid,
		},
		"updated_credits": gin.H{
			"free":  updatedFree,
			"paid":  updatedPaid,
			"total": updatedFree + updatedPaid,
		},
		"credits_added": credits,
	})
}

// handleExtendHosting extends the hosting subscription, anchoring at the
// current expiry when still paid and at now when lapsed.
func (s *Server) handleExtendHosting(c *gin.Context) {
	ctx := c.Request.Context()

	rawDays := c.Query("days")
	if rawDays == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Missing required parameter: days"})
		return
	}

	days, err := strconv.ParseInt(rawDays, 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Days must be a valid number"})
		return
	}
	if days <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Days must be a positive number"})
		return
	}

	paymentMethod := c.DefaultQuery("payment_method", "API")

	paymentAmount := float64(days)
	if raw := c.Query("amount"); raw != "" {
		if amount, err := strconv.ParseFloat(raw, 64); err == nil {
			paymentAmount = amount
		}
	}

	var paidBy int64
	if raw := c.Query("user_id"); raw != "" {
		paidBy, _ = strconv.ParseInt(raw, 10, 64)
	}

	now := time.Now().UTC()
	baseDate := now
	wasExpired := true

	hosting, err := s.store.GetHosting(ctx)
	if err != nil {
		s.fail(c, err)
		return
	}
	if hosting != nil && hosting.PaidUntil != "" {
		if paidUntil, ok := parseDBTime(hosting.PaidUntil); ok && paidUntil.After(now) {
			baseDate = paidUntil
			wasExpired = false
		}
	}

	newExpiration := baseDate.Add(time.Duration(days) * 24 * time.Hour)
	if err := s.store.ExtendHosting(ctx, isoTimestamp(newExpiration), paidBy, paymentAmount, paymentMethod); err != nil {
		s.fail(c, err)
		return
	}

	message := fmt.Sprintf("Successfully extended hosting by %d days", days)
	if wasExpired {
		message += " (started from current time due to expired subscription)"
	}

	c.JSON(http.StatusOK, gin.H{
		"success":             true,
		"message":             message,
		"previous_expiration": isoTimestamp(baseDate),
		"new_expiration":      isoTimestamp(newExpiration),
		"days_added":          days,
		"payment_amount":      paymentAmount,
		"payment_method":      paymentMethod,
		"was_expired":         wasExpired,
	})
}
