package progress

import "time"

// Streak counts consecutive calendar days with at least one completion,
// walking backwards from today. A streak that ended yesterday still
// counts: the user has until midnight to extend it. days may contain
// duplicates and arrive in any order. Calendar days are taken in UTC,
// matching how completion timestamps are truncated in the database,
// so the count does not shift with the server's local zone.
func Streak(days []time.Time, now time.Time) int {
	if len(days) == 0 {
		return 0
	}

	seen := make(map[string]bool, len(days))
	for _, d := range days {
		seen[dayKey(d)] = true
	}

	cursor := now.UTC()
	if !seen[dayKey(cursor)] {
		// No completion today yet; the streak may still be alive from
		// yesterday.
		cursor = cursor.AddDate(0, 0, -1)
		if !seen[dayKey(cursor)] {
			return 0
		}
	}

	streak := 0
	for seen[dayKey(cursor)] {
		streak++
		cursor = cursor.AddDate(0, 0, -1)
	}
	return streak
}

func dayKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}
