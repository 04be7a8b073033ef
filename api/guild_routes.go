package api

import (
	"net/http"
	"slices"
	"sort"

	"github.com/bwmarrin/discordgo"
	"github.com/gin-gonic/gin"
)

// excludedRoleName is a decorative branding role the dashboard never shows
const excludedRoleName = "𝔟𝔬𝔱𝔰.𝔫𝔬𝔢𝔪𝔱.𝔡𝔢𝔳 | 𝔪𝔞𝔡𝔢 𝔟𝔶 𝔫𝔬𝔪"

// handleCustomerCheck reports whether a member holds the customer role
func (s *Server) handleCustomerCheck(c *gin.Context) {
	s.roleCheck(c, "customer_role")
}

// handleSellerCheck reports whether a member holds the seller role
func (s *Server) handleSellerCheck(c *gin.Context) {
	s.roleCheck(c, "seller_role")
}

// roleCheck resolves the main guild, the member and the configured role.
// Any missing link is a 404; a present member without the role is a 403.
func (s *Server) roleCheck(c *gin.Context, roleKey string) {
	ctx := c.Request.Context()
	userID := c.Query("user_id")

	guildID, err := s.store.GetConfig(ctx, "main_guild")
	if err != nil {
		s.fail(c, err)
		return
	}

	guild := s.discord.Guild(guildID)
	if guild == nil {
		c.JSON(http.StatusNotFound, gin.H{"response": false})
		return
	}

	member := s.discord.Member(guild.ID, userID)
	if member == nil {
		c.JSON(http.StatusNotFound, gin.H{"response": false})
		return
	}

	roleID, err := s.store.GetConfig(ctx, roleKey)
	if err != nil {
		s.fail(c, err)
		return
	}

	role := s.discord.Role(guild.ID, roleID)
	if role == nil {
		c.JSON(http.StatusNotFound, gin.H{"response": false})
		return
	}

	if slices.Contains(member.Roles, role.ID) {
		c.JSON(http.StatusOK, gin.H{"response": true})
		return
	}

	c.JSON(http.StatusForbidden, gin.H{"response": false})
}

// handleRoles enumerates the main guild's roles for the dashboard
func (s *Server) handleRoles(c *gin.Context) {
	ctx := c.Request.Context()

	guildID, err := s.store.GetConfig(ctx, "main_guild")
	if err != nil {
		s.fail(c, err)
		return
	}
	if guildID == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Main guild not configured",
		})
		return
	}

	guild := s.discord.Guild(guildID)
	if guild == nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error":   "Guild not found",
		})
		return
	}

	// Member counts per role come from the member cache
	memberCounts := make(map[string]int)
	for _, member := range guild.Members {
		for _, roleID := range member.Roles {
			memberCounts[roleID]++
		}
	}

	roles := make([]gin.H, 0, len(guild.Roles))
	for _, role := range guild.Roles {
		if role.Name == excludedRoleName {
			continue
		}

		roles = append(roles, gin.H{
			"id":           role.ID,
			"name":         role.Name,
			"position":     role.Position,
			"color":        roleColorHex(role.Color),
			"hoist":        role.Hoist,
			"mentionable":  role.Mentionable,
			"managed":      role.Managed,
			"is_default":   role.ID == guild.ID,
			"member_count": memberCounts[role.ID],
			"permissions":  role.Permissions,
		})
	}

	sort.Slice(roles, func(i, j int) bool {
		return roles[i]["position"].(int) > roles[j]["position"].(int)
	})

	c.JSON(http.StatusOK, gin.H{
		"success":       true,
		"guild_id":      guild.ID,
		"guild_name":    guild.Name,
		"roles":         roles,
		"total_roles":   len(roles),
		"excluded_role": excludedRoleName,
	})
}

// handleServerMembers reports member counts for the main guild
func (s *Server) handleServerMembers(c *gin.Context) {
	guildID, err := s.store.GetConfig(c.Request.Context(), "main_guild")
	if err != nil {
		s.fail(c, err)
		return
	}

	guild := s.discord.Guild(guildID)
	if guild == nil {
		c.JSON(http.StatusNotFound, gin.H{
			"member_count": 0,
			"online_count": 0,
			"bot_count":    0,
			"human_count":  0,
		})
		return
	}

	c.JSON(http.StatusOK, serverMembersBody(guild))
}

func serverMembersBody(guild *discordgo.Guild) gin.H {
	statuses := make(map[string]string, len(guild.Presences))
	for _, presence := range guild.Presences {
		if presence.User != nil {
			statuses[presence.User.ID] = string(presence.Status)
		}
	}

	botCount := 0
	onlineCount := 0
	for _, member := range guild.Members {
		if member.User == nil {
			continue
		}
		if member.User.Bot {
			botCount++
			continue
		}
		status, ok := statuses[member.User.ID]
		if !ok {
			status = "offline"
		}
		if status != "offline" {
			onlineCount++
		}
	}

	return gin.H{
		"member_count": guild.MemberCount,
		"online_count": onlineCount,
		"bot_count":    botCount,
		"human_count":  guild.MemberCount - botCount,
	}
}

// handleChannels lists the main guild's channels grouped by category
func (s *Server) handleChannels(c *gin.Context) {
	ctx := c.Request.Context()

	guildID, err := s.store.GetConfig(ctx, "main_guild")
	if err != nil {
		s.fail(c, err)
		return
	}
	if guildID == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Main guild not configured",
		})
		return
	}

	guild := s.discord.Guild(guildID)
	if guild == nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error":   "Guild not found",
		})
		return
	}

	standalone := make([]gin.H, 0)
	categories := make([]gin.H, 0)
	totalChannels := 0

	for _, channel := range guild.Channels {
		if channel.Type == discordgo.ChannelTypeGuildCategory {
			children := make([]gin.H, 0)
			for _, child := range guild.Channels {
				if child.ParentID == channel.ID {
					children = append(children, channelBody(child))
				}
			}
			sort.Slice(children, func(i, j int) bool {
				return children[i]["position"].(int) < children[j]["position"].(int)
			})

			categories = append(categories, gin.H{
				"id":       channel.ID,
				"name":     channel.Name,
				"type":     "category",
				"position": channel.Position,
				"channels": children,
			})
			continue
		}

		totalChannels++
		if channel.ParentID == "" {
			standalone = append(standalone, channelBody(channel))
		}
	}

	sort.Slice(standalone, func(i, j int) bool {
		return standalone[i]["position"].(int) < standalone[j]["position"].(int)
	})
	sort.Slice(categories, func(i, j int) bool {
		return categories[i]["position"].(int) < categories[j]["position"].(int)
	})

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"guild_id":   guild.ID,
		"guild_name": guild.Name,
		"data": gin.H{
			"standalone_channels": standalone,
			"categories":          categories,
		},
		"counts": gin.H{
			"standalone_channels": len(standalone),
			"categories":          len(categories),
			"total_channels":      totalChannels,
		},
	})
}

func channelBody(channel *discordgo.Channel) gin.H {
	channelType := "unknown"
	switch channel.Type {
	case discordgo.ChannelTypeGuildText:
		channelType = "text"
	case discordgo.ChannelTypeGuildVoice:
		channelType = "voice"
	case discordgo.ChannelTypeGuildStageVoice:
		channelType = "stage"
	case discordgo.ChannelTypeGuildForum:
		channelType = "forum"
	}

	return gin.H{
		"id":       channel.ID,
		"name":     channel.Name,
		"type":     channelType,
		"position": channel.Position,
	}
}
