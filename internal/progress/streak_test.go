package progress

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func day(now time.Time, daysAgo int) time.Time {
	return now.AddDate(0, 0, -daysAgo)
}

func TestStreak(t *testing.T) {
	now := time.Date(2025, 6, 15, 18, 30, 0, 0, time.UTC)

	tests := []struct {
		name string
		days []time.Time
		want int
	}{
		{
			name: "no completions",
			days: nil,
			want: 0,
		},
		{
			name: "only today",
			days: []time.Time{day(now, 0)},
			want: 1,
		},
		{
			name: "three consecutive days ending today",
			days: []time.Time{day(now, 0), day(now, 1), day(now, 2)},
			want: 3,
		},
		{
			name: "streak alive from yesterday",
			days: []time.Time{day(now, 1), day(now, 2)},
			want: 2,
		},
		{
			name: "broken two days ago",
			days: []time.Time{day(now, 2), day(now, 3)},
			want: 0,
		},
		{
			name: "gap stops the walk",
			days: []time.Time{day(now, 0), day(now, 1), day(now, 3), day(now, 4)},
			want: 2,
		},
		{
			name: "duplicate days count once",
			days: []time.Time{day(now, 0), day(now, 0).Add(-2 * time.Hour), day(now, 1)},
			want: 2,
		},
		{
			name: "unordered input",
			days: []time.Time{day(now, 2), day(now, 0), day(now, 1)},
			want: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Streak(tt.days, now))
		})
	}
}

func TestStreakCountsDaysInUTC(t *testing.T) {
	// Stored days are UTC midnights; a local clock just past midnight
	// is still "today" once converted to UTC.
	zone := time.FixedZone("UTC+3", 3*60*60)
	now := time.Date(2025, 6, 16, 1, 30, 0, 0, zone) // 2025-06-15 22:30 UTC
	days := []time.Time{
		time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 6, 14, 0, 0, 0, 0, time.UTC),
	}
	assert.Equal(t, 2, Streak(days, now))
}

func TestStreakAliveInUTCThroughLocalMidnight(t *testing.T) {
	// Behind UTC: the local evening of the 15th is already the 16th in
	// UTC, so the 15th's completion counts as yesterday, not broken.
	zone := time.FixedZone("UTC-5", -5*60*60)
	now := time.Date(2025, 6, 15, 20, 0, 0, 0, zone) // 2025-06-16 01:00 UTC
	days := []time.Time{
		time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 6, 14, 0, 0, 0, 0, time.UTC),
	}
	assert.Equal(t, 2, Streak(days, now))
}

func TestStreakAcrossMonthBoundary(t *testing.T) {
	now := time.Date(2025, 7, 1, 9, 0, 0, 0, time.UTC)
	days := []time.Time{
		time.Date(2025, 7, 1, 8, 0, 0, 0, time.UTC),
		time.Date(2025, 6, 30, 20, 0, 0, 0, time.UTC),
		time.Date(2025, 6, 29, 7, 0, 0, 0, time.UTC),
	}
	assert.Equal(t, 3, Streak(days, now))
}
