package report

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Dinkybinky2008/Egg-TrackerV2/internal/rarity"
	"github.com/Dinkybinky2008/Egg-TrackerV2/internal/storage"
)

func newTestAggregator(t *testing.T) (*Aggregator, *storage.Repository) {
	t.Helper()
	repo, err := storage.NewRepository(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })
	return NewAggregator(repo), repo
}

func TestPerTierSinceZeroFillsAllTiers(t *testing.T) {
	agg, repo := newTestAggregator(t)
	now := time.Now().UTC()

	require.NoError(t, repo.InsertHatchEvent(&storage.HatchEvent{
		GuildID: "g1", SubjectName: "Dragon", WeightKg: 9.5, RarityTier: "godly", OccurredAt: now,
	}))
	require.NoError(t, repo.InsertHatchEvent(&storage.HatchEvent{
		GuildID: "g1", SubjectName: "Kitty", WeightKg: 1, RarityTier: "", OccurredAt: now,
	}))

	tiers, err := agg.PerTierSince("g1", now.Add(-time.Hour))
	require.NoError(t, err)
	require.Len(t, tiers, len(rarity.Tiers))
	require.Equal(t, map[rarity.Tier]int{
		rarity.TierSemiHuge:  0,
		rarity.TierHuge:      0,
		rarity.TierSemiTitan: 0,
		rarity.TierTitan:     0,
		rarity.TierGodly:     1,
	}, tiers)
}

func TestTotalAndSubjectCounts(t *testing.T) {
	agg, repo := newTestAggregator(t)
	now := time.Now().UTC()

	for _, subject := range []string{"Dragon", "Dragon", "Kitty"} {
		require.NoError(t, repo.InsertHatchEvent(&storage.HatchEvent{
			GuildID: "g1", SubjectName: subject, OccurredAt: now,
		}))
	}

	cutoff := now.Add(-time.Hour)

	total, err := agg.TotalSince("g1", cutoff)
	require.NoError(t, err)
	require.Equal(t, 3, total)

	subjects, err := agg.PerSubjectSince("g1", cutoff)
	require.NoError(t, err)
	require.Equal(t, []storage.SubjectCount{
		{Subject: "Dragon", Count: 2},
		{Subject: "Kitty", Count: 1},
	}, subjects)

	n, err := agg.SubjectSince("g1", "Kitty", cutoff)
	require.NoError(t, err)
	require.Equal(t, 1, n)
}
