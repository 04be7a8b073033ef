package api

import (
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"
)

// isoOffsetLayout renders UTC as "+00:00" rather than "Z", matching what
// the dashboard already parses.
const isoOffsetLayout = "2006-01-02T15:04:05-07:00"

func isoTimestamp(t time.Time) string {
	return t.UTC().Format(isoOffsetLayout)
}

// parseDBTime parses a timestamp as stored in the database, accepting both
// "2006-01-02 15:04:05" and RFC 3339 style text. Naive timestamps are
// taken as UTC.
func parseDBTime(value string) (time.Time, bool) {
	value = strings.Replace(strings.TrimSpace(value), " ", "T", 1)
	for _, layout := range []string{
		"2006-01-02T15:04:05Z07:00",
		"2006-01-02T15:04:05.999999999Z07:00",
		"2006-01-02T15:04:05",
		"2006-01-02T15:04:05.999999999",
	} {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// roleColorHex renders a 24-bit role color as lowercase "#rrggbb"
func roleColorHex(color int) string {
	return fmt.Sprintf("#%06x", color&0xffffff)
}

// displayName falls back to the username when the user has not set a
// global display name.
func displayName(user *discordgo.User) string {
	if user.GlobalName != "" {
		return user.GlobalName
	}
	return user.Username
}

// userCreatedAt derives the account creation time from the snowflake id
func userCreatedAt(user *discordgo.User) (time.Time, bool) {
	t, err := discordgo.SnowflakeTimestamp(user.ID)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
