package settings

import (
	"database/sql"
	"errors"
	"fmt"
	"regexp"
	"strconv"

	"github.com/Dinkybinky2008/Egg-TrackerV2/internal/storage"
)

var tzRe = regexp.MustCompile(`^(?i)UTC(?:([+-])(\d{1,2}))?$`)

// ParseTimezone parses a timezone token such as "UTC", "UTC+8" or "UTC-05"
// into a whole-hour offset from UTC
func ParseTimezone(token string) (int, bool) {
	m := tzRe.FindStringSubmatch(token)
	if m == nil {
		return 0, false
	}
	if m[1] == "" {
		return 0, true
	}
	hours, err := strconv.Atoi(m[2])
	if err != nil {
		return 0, false
	}
	if m[1] == "-" {
		hours = -hours
	}
	return hours, true
}

// Defaults are the process-wide fallbacks applied field-by-field when a
// guild has no stored value
type Defaults struct {
	ChannelID           string
	TimezoneOffsetHours int
	LossMultiplier      float64
}

// Guild is a fully resolved per-guild configuration: every field carries
// either the stored value or the process-wide default
type Guild struct {
	GuildID               string
	NotificationChannelID string
	TimezoneOffsetHours   int
	LossMultiplier        float64
}

// Resolver answers per-guild configuration lookups against the repository,
// merging stored rows with the configured defaults
type Resolver struct {
	repo     *storage.Repository
	defaults Defaults
}

// NewResolver creates a resolver backed by repo
func NewResolver(repo *storage.Repository, defaults Defaults) *Resolver {
	return &Resolver{repo: repo, defaults: defaults}
}

// Resolve returns the effective settings for a guild. A stored field wins
// when present and non-empty; otherwise the default fills in. A guild with
// no stored row resolves to exactly the defaults.
func (r *Resolver) Resolve(guildID string) (Guild, error) {
	g := Guild{
		GuildID:               guildID,
		NotificationChannelID: r.defaults.ChannelID,
		TimezoneOffsetHours:   r.defaults.TimezoneOffsetHours,
		LossMultiplier:        r.defaults.LossMultiplier,
	}

	stored, err := r.repo.GetGuildSettings(guildID)
	if errors.Is(err, sql.ErrNoRows) {
		return g, nil
	}
	if err != nil {
		return Guild{}, fmt.Errorf("load settings for guild %s: %w", guildID, err)
	}

	if stored.NotificationChannelID != "" {
		g.NotificationChannelID = stored.NotificationChannelID
	}
	if offset, ok := ParseTimezone(stored.Timezone); ok {
		g.TimezoneOffsetHours = offset
	}
	if stored.LossMultiplier > 0 {
		g.LossMultiplier = stored.LossMultiplier
	}
	return g, nil
}

// GuildForChannel maps a delivery channel back to its guild. When no row
// matches the channel, the sole settings row wins if exactly one guild is
// configured; with zero or several rows there is no safe attribution and
// ok is false.
func (r *Resolver) GuildForChannel(channelID string) (string, bool, error) {
	if channelID != "" {
		guildID, err := r.repo.GetGuildIDByChannel(channelID)
		if err == nil {
			return guildID, true, nil
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return "", false, fmt.Errorf("look up channel %s: %w", channelID, err)
		}
	}

	all, err := r.repo.ListGuildSettings()
	if err != nil {
		return "", false, fmt.Errorf("list settings: %w", err)
	}
	if len(all) == 1 {
		return all[0].GuildID, true, nil
	}
	return "", false, nil
}

// Save fully overwrites a guild's settings row
func (r *Resolver) Save(guildID, channelID, tzToken string, lossMultiplier float64) error {
	return r.repo.UpsertGuildSettings(&storage.GuildSettings{
		GuildID:               guildID,
		NotificationChannelID: channelID,
		Timezone:              tzToken,
		LossMultiplier:        lossMultiplier,
	})
}
