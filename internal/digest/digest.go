package digest

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/robfig/cron/v3"

	"github.com/Dinkybinky2008/Egg-TrackerV2/internal/rarity"
	"github.com/Dinkybinky2008/Egg-TrackerV2/internal/report"
	"github.com/Dinkybinky2008/Egg-TrackerV2/internal/settings"
	"github.com/Dinkybinky2008/Egg-TrackerV2/internal/storage"
)

// Digest posts a daily hatch recap to each guild's notification channel
// when that guild's local day rolls over
type Digest struct {
	repo     *storage.Repository
	resolver *settings.Resolver
	agg      *report.Aggregator
	discord  *discordgo.Session
	cron     *cron.Cron
}

// New creates a digest scheduler
func New(repo *storage.Repository, resolver *settings.Resolver, agg *report.Aggregator, discord *discordgo.Session) *Digest {
	return &Digest{
		repo:     repo,
		resolver: resolver,
		agg:      agg,
		discord:  discord,
		cron:     cron.New(),
	}
}

// Start schedules the hourly check. Offsets are whole hours, so checking at
// the top of each hour catches every guild's midnight.
func (d *Digest) Start() error {
	if _, err := d.cron.AddFunc("0 * * * *", func() { d.run(time.Now()) }); err != nil {
		return fmt.Errorf("failed to schedule digest: %w", err)
	}
	d.cron.Start()
	slog.Info("Daily digest scheduled")
	return nil
}

// Stop halts the scheduler
func (d *Digest) Stop() {
	d.cron.Stop()
}

// run posts a recap to every guild whose local clock just struck midnight
func (d *Digest) run(now time.Time) {
	all, err := d.repo.ListGuildSettings()
	if err != nil {
		slog.Error("Failed to list guilds for digest", "error", err)
		return
	}

	for _, row := range all {
		guild, err := d.resolver.Resolve(row.GuildID)
		if err != nil {
			slog.Error("Failed to resolve settings for digest", "guild", row.GuildID, "error", err)
			continue
		}

		local := now.UTC().Add(time.Duration(guild.TimezoneOffsetHours) * time.Hour)
		if local.Hour() != 0 {
			continue
		}
		if guild.NotificationChannelID == "" {
			slog.Debug("No notification channel for digest", "guild", guild.GuildID)
			continue
		}

		d.post(guild, now)
	}
}

// dayWindow returns the UTC bounds [from, to) of the guild-local day that
// ended most recently before now. The end is midnight of now's local
// calendar date expressed in UTC.
func dayWindow(now time.Time, offsetHours int) (time.Time, time.Time) {
	local := now.UTC().Add(time.Duration(offsetHours) * time.Hour)
	to := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, time.UTC).
		Add(-time.Duration(offsetHours) * time.Hour)
	return to.AddDate(0, 0, -1), to
}

// post sends the recap of the guild's just-ended local day
func (d *Digest) post(guild settings.Guild, now time.Time) {
	from, to := dayWindow(now, guild.TimezoneOffsetHours)

	total, err := d.agg.TotalBetween(guild.GuildID, from, to)
	if err != nil {
		slog.Error("Failed to count hatches for digest", "guild", guild.GuildID, "error", err)
		return
	}

	tiers, err := d.agg.PerTierBetween(guild.GuildID, from, to)
	if err != nil {
		slog.Error("Failed to count tiers for digest", "guild", guild.GuildID, "error", err)
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("**Total hatches: %d**\n\n", total))
	for _, tier := range rarity.Tiers {
		sb.WriteString(fmt.Sprintf("%s: %d\n", tier, tiers[tier]))
	}

	embed := &discordgo.MessageEmbed{
		Title:       "Daily hatch recap",
		Description: sb.String(),
		Timestamp:   now.UTC().Format(time.RFC3339),
	}

	if _, err := d.discord.ChannelMessageSendEmbed(guild.NotificationChannelID, embed); err != nil {
		slog.Error("Failed to send digest", "guild", guild.GuildID, "error", err)
	} else {
		slog.Info("Sent daily digest", "guild", guild.GuildID, "total", total)
	}
}
