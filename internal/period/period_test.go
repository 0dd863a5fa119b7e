package period

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestResolveToday(t *testing.T) {
	now := time.Date(2024, 1, 15, 3, 0, 0, 0, time.UTC)

	require.Equal(t, time.Date(2024, 1, 14, 16, 0, 0, 0, time.UTC), Resolve("today", 8, now))
	require.Equal(t, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), Resolve("today", 0, now))
	require.Equal(t, time.Date(2024, 1, 15, 5, 0, 0, 0, time.UTC), Resolve("today", -5, now))
}

func TestResolve24h(t *testing.T) {
	now := time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)

	require.Equal(t, time.Date(2024, 1, 14, 12, 0, 0, 0, time.UTC), Resolve("24h", 8, now))
}

func TestResolveDays(t *testing.T) {
	now := time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)
	require.Equal(t, time.Date(2024, 1, 12, 12, 0, 0, 0, time.UTC), Resolve("3d", 0, now))

	// Calendar-day subtraction crosses the month boundary
	now = time.Date(2024, 3, 1, 6, 0, 0, 0, time.UTC)
	require.Equal(t, time.Date(2024, 2, 28, 6, 0, 0, 0, time.UTC), Resolve("2d", 0, now))
}

func TestResolveUnknownTokenActsLike24h(t *testing.T) {
	now := time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)
	want := Resolve("24h", 8, now)

	tokens := []string{
		"garbage",
		"",
		"-3d",
		"3dd",
		"yesterday",
		// day count beyond int range
		"99999999999999999999d",
	}
	for _, token := range tokens {
		require.Equal(t, want, Resolve(token, 8, now), "token %q", token)
	}
}
