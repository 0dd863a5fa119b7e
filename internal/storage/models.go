package storage

import "time"

// UnknownGuildID tags hatch events whose delivery channel matched no
// configured guild. Such events are recorded, not dropped.
const UnknownGuildID = "unknown"

// GuildSettings stores per-server configuration. Timezone holds the raw
// token ("UTC+8"); an empty token or a non-positive multiplier means the
// guild never set that field and the process-wide default applies.
type GuildSettings struct {
	GuildID               string
	NotificationChannelID string
	Timezone              string
	LossMultiplier        float64
	CreatedAt             time.Time
}

// HatchEvent is one recorded egg hatch. Rows are append-only; the core never
// updates or deletes them.
type HatchEvent struct {
	ID          int64
	GuildID     string
	SubjectName string
	WeightKg    float64
	RarityTier  string // empty when the weight fell outside all tier bands
	OccurredAt  time.Time
}

// SubjectCount is one row of a per-subject breakdown
type SubjectCount struct {
	Subject string
	Count   int
}
