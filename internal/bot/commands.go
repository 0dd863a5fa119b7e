package bot

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/Dinkybinky2008/Egg-TrackerV2/internal/period"
	"github.com/Dinkybinky2008/Egg-TrackerV2/internal/rarity"
	"github.com/Dinkybinky2008/Egg-TrackerV2/internal/settings"
)

const genericFailure = "Something went wrong. Please try again."

// Slash command definitions
func (b *Bot) getCommandDefinitions() []*discordgo.ApplicationCommand {
	adminOnly := int64(discordgo.PermissionAdministrator)

	return []*discordgo.ApplicationCommand{
		{
			Name:                     "setup",
			Description:              "Configure egg tracking for this server",
			DefaultMemberPermissions: &adminOnly,
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionChannel,
					Name:        "channel",
					Description: "The channel hatch webhooks are posted to",
					Required:    true,
					ChannelTypes: []discordgo.ChannelType{
						discordgo.ChannelTypeGuildText,
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "timezone",
					Description: "Server timezone, e.g. UTC+8",
					Required:    false,
				},
				{
					Type:        discordgo.ApplicationCommandOptionNumber,
					Name:        "loss_multiplier",
					Description: "Loss multiplier used in reports",
					Required:    false,
				},
			},
		},
		{
			Name:        "dailycount",
			Description: "Show today's hatch counts",
		},
		{
			Name:        "egg",
			Description: "Count hatches for one egg, or all of them",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "subject",
					Description: "Egg name, or 'all' for a full breakdown",
					Required:    true,
				},
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "period",
					Description: "Time window: today, 24h, or <n>d (default 24h)",
					Required:    false,
				},
			},
		},
	}
}

// registerCommands registers all slash commands with Discord
func (b *Bot) registerCommands() error {
	slog.Info("Registering slash commands")

	commandDefinitions := b.getCommandDefinitions()
	registeredCommands := make([]*discordgo.ApplicationCommand, 0, len(commandDefinitions))

	for _, cmd := range commandDefinitions {
		registered, err := b.session.ApplicationCommandCreate(
			b.session.State.User.ID,
			"", // Empty string = global command
			cmd,
		)
		if err != nil {
			return fmt.Errorf("failed to register command %s: %w", cmd.Name, err)
		}
		registeredCommands = append(registeredCommands, registered)
		slog.Debug("Registered command", "name", cmd.Name)
	}

	b.commands = registeredCommands
	slog.Info("Slash commands registered", "count", len(registeredCommands))
	return nil
}

// handleSetup handles the /setup command
func (b *Bot) handleSetup(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Member == nil || i.Member.Permissions&discordgo.PermissionAdministrator == 0 {
		respondWithMessage(s, i, "You need administrator permissions to run `/setup`.")
		return
	}

	channelID := ""
	tzToken := b.config.DefaultTimezone
	loss := b.config.DefaultLossMultiplier

	for _, opt := range i.ApplicationCommandData().Options {
		switch opt.Name {
		case "channel":
			channelID = opt.ChannelValue(s).ID
		case "timezone":
			tzToken = opt.StringValue()
		case "loss_multiplier":
			loss = opt.FloatValue()
		}
	}

	if _, ok := settings.ParseTimezone(tzToken); !ok {
		respondWithMessage(s, i, fmt.Sprintf("Unrecognized timezone `%s`. Use the form `UTC+8`.", tzToken))
		return
	}

	if err := b.resolver.Save(i.GuildID, channelID, tzToken, loss); err != nil {
		slog.Error("Failed to save guild settings", "guild", i.GuildID, "error", err)
		respondWithMessage(s, i, genericFailure)
		return
	}

	respondWithMessage(s, i, fmt.Sprintf(
		"Egg tracking configured!\nWebhook channel: <#%s>\nTimezone: `%s`\nLoss multiplier: `%.2f`",
		channelID, tzToken, loss,
	))
}

// handleDailyCount handles the /dailycount command
func (b *Bot) handleDailyCount(s *discordgo.Session, i *discordgo.InteractionCreate) {
	// Respond immediately to avoid timeout
	s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
	})

	guild, err := b.resolver.Resolve(i.GuildID)
	if err != nil {
		slog.Error("Failed to resolve settings", "guild", i.GuildID, "error", err)
		b.editResponse(s, i, genericFailure)
		return
	}

	cutoff := period.Resolve("today", guild.TimezoneOffsetHours, time.Now())

	total, err := b.agg.TotalSince(i.GuildID, cutoff)
	if err != nil {
		slog.Error("Failed to count hatches", "guild", i.GuildID, "error", err)
		b.editResponse(s, i, genericFailure)
		return
	}

	subjects, err := b.agg.PerSubjectSince(i.GuildID, cutoff)
	if err != nil {
		slog.Error("Failed to count per subject", "guild", i.GuildID, "error", err)
		b.editResponse(s, i, genericFailure)
		return
	}

	tiers, err := b.agg.PerTierSince(i.GuildID, cutoff)
	if err != nil {
		slog.Error("Failed to count per tier", "guild", i.GuildID, "error", err)
		b.editResponse(s, i, genericFailure)
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("**Hatches today: %d**\n", total))

	if len(subjects) > 0 {
		sb.WriteString("\n**By egg:**\n")
		for _, sc := range subjects {
			sb.WriteString(fmt.Sprintf("  %s: %d\n", sc.Subject, sc.Count))
		}
	}

	sb.WriteString("\n**By rarity:**\n")
	for _, tier := range rarity.Tiers {
		sb.WriteString(fmt.Sprintf("  %s: %d\n", tier, tiers[tier]))
	}

	b.editResponse(s, i, sb.String())
}

// handleEgg handles the /egg command
func (b *Bot) handleEgg(s *discordgo.Session, i *discordgo.InteractionCreate) {
	subject := ""
	periodToken := "24h"

	for _, opt := range i.ApplicationCommandData().Options {
		switch opt.Name {
		case "subject":
			subject = opt.StringValue()
		case "period":
			periodToken = opt.StringValue()
		}
	}

	// Respond immediately to avoid timeout
	s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
	})

	guild, err := b.resolver.Resolve(i.GuildID)
	if err != nil {
		slog.Error("Failed to resolve settings", "guild", i.GuildID, "error", err)
		b.editResponse(s, i, genericFailure)
		return
	}

	cutoff := period.Resolve(periodToken, guild.TimezoneOffsetHours, time.Now())

	if strings.EqualFold(subject, "all") {
		subjects, err := b.agg.PerSubjectSince(i.GuildID, cutoff)
		if err != nil {
			slog.Error("Failed to count per subject", "guild", i.GuildID, "error", err)
			b.editResponse(s, i, genericFailure)
			return
		}

		if len(subjects) == 0 {
			b.editResponse(s, i, fmt.Sprintf("No hatches recorded in `%s`.", periodToken))
			return
		}

		var sb strings.Builder
		sb.WriteString(fmt.Sprintf("**Hatches in `%s`:**\n", periodToken))
		for _, sc := range subjects {
			sb.WriteString(fmt.Sprintf("  %s: %d\n", sc.Subject, sc.Count))
		}
		b.editResponse(s, i, sb.String())
		return
	}

	count, err := b.agg.SubjectSince(i.GuildID, subject, cutoff)
	if err != nil {
		slog.Error("Failed to count subject", "guild", i.GuildID, "subject", subject, "error", err)
		b.editResponse(s, i, genericFailure)
		return
	}

	b.editResponse(s, i, fmt.Sprintf("`%s` hatched %d times in `%s`.", subject, count, periodToken))
}

// Helper functions

func respondWithMessage(s *discordgo.Session, i *discordgo.InteractionCreate, content string) {
	s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: content,
		},
	})
}

func (b *Bot) editResponse(s *discordgo.Session, i *discordgo.InteractionCreate, content string) {
	s.InteractionResponseEdit(i.Interaction, &discordgo.WebhookEdit{
		Content: &content,
	})
}
