package reminder

import (
	"strconv"
	"strings"
	"time"
)

const defaultLead = time.Hour

// ResolveDue turns a spoken time phrase into a due time. Phrases the parser
// does not understand fall back to one hour from now; the reminder text keeps
// the user's wording either way.
func ResolveDue(when string, now time.Time) time.Time {
	w := strings.ToLower(strings.TrimSpace(when))
	switch {
	case w == "":
		return now.Add(defaultLead)
	case strings.Contains(w, "tomorrow"):
		return atHour(now.AddDate(0, 0, 1), 9)
	case strings.Contains(w, "tonight"), strings.Contains(w, "this evening"):
		due := atHour(now, 20)
		if !due.After(now) {
			due = now.Add(defaultLead)
		}
		return due
	case strings.Contains(w, "next week"):
		return atHour(now.AddDate(0, 0, 7), 9)
	case strings.HasPrefix(w, "in "):
		if d, ok := parseRelative(strings.TrimPrefix(w, "in ")); ok {
			return now.Add(d)
		}
		return now.Add(defaultLead)
	default:
		return now.Add(defaultLead)
	}
}

func atHour(t time.Time, hour int) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), hour, 0, 0, 0, t.Location())
}

func parseRelative(s string) (time.Duration, bool) {
	fields := strings.Fields(s)
	if len(fields) < 2 {
		return 0, false
	}
	n, err := strconv.Atoi(fields[0])
	if err != nil || n <= 0 {
		return 0, false
	}
	unit := strings.TrimSuffix(fields[1], "s")
	switch unit {
	case "second":
		return time.Duration(n) * time.Second, true
	case "minute":
		return time.Duration(n) * time.Minute, true
	case "hour":
		return time.Duration(n) * time.Hour, true
	case "day":
		return time.Duration(n) * 24 * time.Hour, true
	default:
		return 0, false
	}
}
