package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// Repository handles all database operations
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new repository with SQLite
func NewRepository(dbPath string) (*Repository, error) {
	// Ensure directory exists
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Test connection
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	repo := &Repository{db: db}

	// Run migrations
	if err := repo.migrate(); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return repo, nil
}

// Close closes the database connection
func (r *Repository) Close() error {
	return r.db.Close()
}

// migrate creates the database schema
func (r *Repository) migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS settings (
			guild_id VARCHAR(20) PRIMARY KEY,
			notification_channel_id VARCHAR(20) NOT NULL DEFAULT '',
			timezone VARCHAR(10) NOT NULL DEFAULT '',
			loss_multiplier REAL NOT NULL DEFAULT 0,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS hatch_logs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			guild_id VARCHAR(20) NOT NULL,
			subject_name TEXT NOT NULL,
			weight_kg REAL NOT NULL DEFAULT 0,
			rarity_tier VARCHAR(20) NOT NULL DEFAULT '',
			occurred_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE INDEX IF NOT EXISTS idx_hatch_logs_guild_time ON hatch_logs(guild_id, occurred_at)`,
		`CREATE INDEX IF NOT EXISTS idx_settings_channel ON settings(notification_channel_id)`,
	}

	for _, migration := range migrations {
		if _, err := r.db.Exec(migration); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}

	return nil
}

// Guild settings operations

// UpsertGuildSettings creates or fully overwrites guild settings
func (r *Repository) UpsertGuildSettings(settings *GuildSettings) error {
	_, err := r.db.Exec(
		`INSERT INTO settings (guild_id, notification_channel_id, timezone, loss_multiplier) VALUES (?, ?, ?, ?)
		 ON CONFLICT(guild_id) DO UPDATE SET
			notification_channel_id = excluded.notification_channel_id,
			timezone = excluded.timezone,
			loss_multiplier = excluded.loss_multiplier`,
		settings.GuildID, settings.NotificationChannelID, settings.Timezone, settings.LossMultiplier,
	)
	return err
}

// GetGuildSettings retrieves guild settings
func (r *Repository) GetGuildSettings(guildID string) (*GuildSettings, error) {
	settings := &GuildSettings{}
	err := r.db.QueryRow(
		`SELECT guild_id, notification_channel_id, timezone, loss_multiplier, created_at FROM settings WHERE guild_id = ?`,
		guildID,
	).Scan(&settings.GuildID, &settings.NotificationChannelID, &settings.Timezone, &settings.LossMultiplier, &settings.CreatedAt)
	if err != nil {
		return nil, err
	}
	return settings, nil
}

// GetGuildIDByChannel finds the guild whose notification channel matches
func (r *Repository) GetGuildIDByChannel(channelID string) (string, error) {
	var guildID string
	err := r.db.QueryRow(
		`SELECT guild_id FROM settings WHERE notification_channel_id = ?`,
		channelID,
	).Scan(&guildID)
	if err != nil {
		return "", err
	}
	return guildID, nil
}

// ListGuildSettings returns the settings rows for every configured guild
func (r *Repository) ListGuildSettings() ([]*GuildSettings, error) {
	rows, err := r.db.Query(
		`SELECT guild_id, notification_channel_id, timezone, loss_multiplier, created_at FROM settings`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var all []*GuildSettings
	for rows.Next() {
		s := &GuildSettings{}
		if err := rows.Scan(&s.GuildID, &s.NotificationChannelID, &s.Timezone, &s.LossMultiplier, &s.CreatedAt); err != nil {
			return nil, err
		}
		all = append(all, s)
	}

	return all, rows.Err()
}

// Hatch log operations

// InsertHatchEvent appends a hatch event
func (r *Repository) InsertHatchEvent(e *HatchEvent) error {
	if e.OccurredAt.IsZero() {
		e.OccurredAt = time.Now().UTC()
	}
	result, err := r.db.Exec(
		`INSERT INTO hatch_logs (guild_id, subject_name, weight_kg, rarity_tier, occurred_at) VALUES (?, ?, ?, ?, ?)`,
		e.GuildID, e.SubjectName, e.WeightKg, e.RarityTier, e.OccurredAt,
	)
	if err != nil {
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	e.ID = id
	return nil
}

// CountEventsSince counts a guild's hatch events at or after cutoff
func (r *Repository) CountEventsSince(guildID string, cutoff time.Time) (int, error) {
	var count int
	err := r.db.QueryRow(
		`SELECT COUNT(*) FROM hatch_logs WHERE guild_id = ? AND occurred_at >= ?`,
		guildID, cutoff,
	).Scan(&count)
	return count, err
}

// CountBySubjectSince groups a guild's events by subject, most hatched first
func (r *Repository) CountBySubjectSince(guildID string, cutoff time.Time) ([]SubjectCount, error) {
	rows, err := r.db.Query(
		`SELECT subject_name, COUNT(*) AS cnt FROM hatch_logs
		 WHERE guild_id = ? AND occurred_at >= ?
		 GROUP BY subject_name
		 ORDER BY cnt DESC, subject_name ASC`,
		guildID, cutoff,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var counts []SubjectCount
	for rows.Next() {
		var sc SubjectCount
		if err := rows.Scan(&sc.Subject, &sc.Count); err != nil {
			return nil, err
		}
		counts = append(counts, sc)
	}

	return counts, rows.Err()
}

// CountByTierSince groups a guild's events by rarity tier. Events with no
// tier are left out entirely.
func (r *Repository) CountByTierSince(guildID string, cutoff time.Time) (map[string]int, error) {
	rows, err := r.db.Query(
		`SELECT rarity_tier, COUNT(*) FROM hatch_logs
		 WHERE guild_id = ? AND occurred_at >= ? AND rarity_tier != ''
		 GROUP BY rarity_tier`,
		guildID, cutoff,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var tier string
		var count int
		if err := rows.Scan(&tier, &count); err != nil {
			return nil, err
		}
		counts[tier] = count
	}

	return counts, rows.Err()
}

// CountEventsBetween counts a guild's events with from <= occurred_at < to
func (r *Repository) CountEventsBetween(guildID string, from, to time.Time) (int, error) {
	var count int
	err := r.db.QueryRow(
		`SELECT COUNT(*) FROM hatch_logs WHERE guild_id = ? AND occurred_at >= ? AND occurred_at < ?`,
		guildID, from, to,
	).Scan(&count)
	return count, err
}

// CountByTierBetween groups a guild's events in [from, to) by rarity tier,
// leaving untiered events out
func (r *Repository) CountByTierBetween(guildID string, from, to time.Time) (map[string]int, error) {
	rows, err := r.db.Query(
		`SELECT rarity_tier, COUNT(*) FROM hatch_logs
		 WHERE guild_id = ? AND occurred_at >= ? AND occurred_at < ? AND rarity_tier != ''
		 GROUP BY rarity_tier`,
		guildID, from, to,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var tier string
		var count int
		if err := rows.Scan(&tier, &count); err != nil {
			return nil, err
		}
		counts[tier] = count
	}

	return counts, rows.Err()
}

// CountSubjectSince counts a guild's events for one exact subject name
func (r *Repository) CountSubjectSince(guildID, subject string, cutoff time.Time) (int, error) {
	var count int
	err := r.db.QueryRow(
		`SELECT COUNT(*) FROM hatch_logs WHERE guild_id = ? AND subject_name = ? AND occurred_at >= ?`,
		guildID, subject, cutoff,
	).Scan(&count)
	return count, err
}
