package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// handleStats aggregates the dashboard overview: bot identity, hosting
// payment status, AI credits, owner, listings, tickets and server members.
// Every section degrades to a zero value instead of failing the request.
func (s *Server) handleStats(c *gin.Context) {
	ctx := c.Request.Context()
	now := time.Now().UTC()

	botSection := gin.H{
		"name":       nil,
		"id":         nil,
		"avatar_url": nil,
		"uptime":     int64(time.Since(s.startedAt).Seconds()),
		"version":    Version,
	}
	if botUser := s.discord.BotUser(); botUser != nil {
		var avatarURL any
		if botUser.Avatar != "" {
			avatarURL = botUser.AvatarURL("")
		}
		botSection["name"] = botUser.Username
		botSection["id"] = botUser.ID
		botSection["avatar_url"] = avatarURL
	}

	listings := gin.H{"accounts": 0, "profiles": 0, "alts": 0, "total": 0}
	if counts, err := s.store.CountListings(ctx); err == nil {
		listings = listingsBody(counts)
	}

	ticketsSection := gin.H{"total": 0, "active": 0}
	if tickets, err := s.store.ListTickets(ctx); err == nil {
		// Every tracked ticket is an open one
		ticketsSection = gin.H{"total": len(tickets), "active": len(tickets)}
	}

	c.JSON(http.StatusOK, gin.H{
		"bot":        botSection,
		"payment":    s.paymentSection(ctx, now),
		"ai_credits": s.aiCreditsSection(ctx),
		"owner":      s.ownerBody(ctx),
		"listings":   listings,
		"tickets":    ticketsSection,
		"server":     s.serverSection(ctx),
		"timestamp":  isoTimestamp(now),
	})
}

// handlePayment reports the hosting subscription payment status
func (s *Server) handlePayment(c *gin.Context) {
	c.JSON(http.StatusOK, s.paymentSection(c.Request.Context(), time.Now().UTC()))
}

func (s *Server) paymentSection(ctx context.Context, now time.Time) gin.H {
	hosting, err := s.store.GetHosting(ctx)
	if err != nil || hosting == nil || hosting.PaidUntil == "" {
		return gin.H{
			"is_paid":             false,
			"expires_at":          nil,
			"days_remaining":      0,
			"paid_by":             nil,
			"last_payment":        nil,
			"last_payment_amount": nil,
			"last_payment_method": nil,
		}
	}

	isPaid := false
	daysRemaining := 0
	if paidUntil, ok := parseDBTime(hosting.PaidUntil); ok && now.Before(paidUntil) {
		isPaid = true
		daysRemaining = int(paidUntil.Sub(now).Hours() / 24)
	}

	var paidBy any
	if hosting.PaidBy != 0 {
		paidBy = hosting.PaidBy
	}

	return gin.H{
		"is_paid":             isPaid,
		"expires_at":          hosting.PaidUntil,
		"days_remaining":      daysRemaining,
		"paid_by":             paidBy,
		"last_payment":        hosting.LastPayment,
		"last_payment_amount": hosting.LastPaymentAmount,
		"last_payment_method": hosting.LastPaymentMethod,
	}
}

func (s *Server) aiCreditsSection(ctx context.Context) gin.H {
	credits, err := s.store.GetAICredits(ctx)
	if err != nil || credits == nil {
		return gin.H{
			"monthly_limit":   0,
			"remaining_free":  0,
			"remaining_paid":  0,
			"total_remaining": 0,
			"last_reset":      nil,
			"next_reset":      nil,
		}
	}
	return aiCreditsBody(credits)
}

func (s *Server) serverSection(ctx context.Context) gin.H {
	guildID, err := s.store.GetConfig(ctx, "main_guild")
	if err == nil {
		if guild := s.discord.Guild(guildID); guild != nil {
			return serverMembersBody(guild)
		}
	}
	return gin.H{
		"member_count": 0,
		"online_count": 0,
		"bot_count":    0,
		"human_count":  0,
	}
}
