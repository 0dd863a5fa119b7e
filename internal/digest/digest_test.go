package digest

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDayWindow(t *testing.T) {
	cases := []struct {
		name   string
		now    time.Time
		offset int
		from   time.Time
		to     time.Time
	}{
		{
			// UTC+8 just after local midnight: the recap covers local
			// Jan 15 only, not two days
			name:   "utc+8 local midnight",
			now:    time.Date(2024, 1, 15, 16, 30, 0, 0, time.UTC),
			offset: 8,
			from:   time.Date(2024, 1, 14, 16, 0, 0, 0, time.UTC),
			to:     time.Date(2024, 1, 15, 16, 0, 0, 0, time.UTC),
		},
		{
			name:   "utc midnight",
			now:    time.Date(2024, 1, 16, 0, 30, 0, 0, time.UTC),
			offset: 0,
			from:   time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
			to:     time.Date(2024, 1, 16, 0, 0, 0, 0, time.UTC),
		},
		{
			name:   "utc-5 local midnight",
			now:    time.Date(2024, 1, 16, 5, 30, 0, 0, time.UTC),
			offset: -5,
			from:   time.Date(2024, 1, 15, 5, 0, 0, 0, time.UTC),
			to:     time.Date(2024, 1, 16, 5, 0, 0, 0, time.UTC),
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			from, to := dayWindow(tc.now, tc.offset)
			require.Equal(t, tc.from, from)
			require.Equal(t, tc.to, to)
			require.Equal(t, 24*time.Hour, to.Sub(from))
		})
	}
}
