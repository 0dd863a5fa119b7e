package report

import (
	"time"

	"github.com/Dinkybinky2008/Egg-TrackerV2/internal/rarity"
	"github.com/Dinkybinky2008/Egg-TrackerV2/internal/storage"
)

// Aggregator answers count queries over the hatch log. It returns structured
// data; rendering into messages is the caller's concern.
type Aggregator struct {
	repo *storage.Repository
}

// NewAggregator creates an aggregator backed by repo
func NewAggregator(repo *storage.Repository) *Aggregator {
	return &Aggregator{repo: repo}
}

// TotalSince counts a guild's hatches at or after cutoff
func (a *Aggregator) TotalSince(guildID string, cutoff time.Time) (int, error) {
	return a.repo.CountEventsSince(guildID, cutoff)
}

// PerSubjectSince breaks a guild's hatches down by subject, most hatched
// first, names ascending on ties
func (a *Aggregator) PerSubjectSince(guildID string, cutoff time.Time) ([]storage.SubjectCount, error) {
	return a.repo.CountBySubjectSince(guildID, cutoff)
}

// SubjectSince counts hatches of one exact subject name
func (a *Aggregator) SubjectSince(guildID, subject string, cutoff time.Time) (int, error) {
	return a.repo.CountSubjectSince(guildID, subject, cutoff)
}

// TotalBetween counts a guild's hatches with from <= occurred_at < to
func (a *Aggregator) TotalBetween(guildID string, from, to time.Time) (int, error) {
	return a.repo.CountEventsBetween(guildID, from, to)
}

// PerTierBetween counts a guild's hatches per rarity tier over [from, to),
// zero-filling every known tier and skipping untiered hatches
func (a *Aggregator) PerTierBetween(guildID string, from, to time.Time) (map[rarity.Tier]int, error) {
	raw, err := a.repo.CountByTierBetween(guildID, from, to)
	if err != nil {
		return nil, err
	}

	counts := make(map[rarity.Tier]int, len(rarity.Tiers))
	for _, tier := range rarity.Tiers {
		counts[tier] = raw[string(tier)]
	}
	return counts, nil
}

// PerTierSince counts a guild's hatches per rarity tier. Every known tier is
// present in the result, zero when nothing hatched in its band; untiered
// hatches are not counted at all.
func (a *Aggregator) PerTierSince(guildID string, cutoff time.Time) (map[rarity.Tier]int, error) {
	raw, err := a.repo.CountByTierSince(guildID, cutoff)
	if err != nil {
		return nil, err
	}

	counts := make(map[rarity.Tier]int, len(rarity.Tiers))
	for _, tier := range rarity.Tiers {
		counts[tier] = raw[string(tier)]
	}
	return counts, nil
}
