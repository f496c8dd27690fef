package utils

import "time"

// DeriveNextFriday returns the next Friday strictly after now's date,
// unless now is already a Friday, in which case now's date is kept.
// Weekly equity options expire on Fridays.
func DeriveNextFriday(now time.Time) time.Time {
	date := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	daysUntil := (int(time.Friday) - int(date.Weekday()) + 7) % 7

	return date.AddDate(0, 0, daysUntil)
}

func GetMinTime(a, b time.Time) time.Time {
	if a.Before(b) {
		return a
	}

	return b
}

func GetMaxTime(a, b time.Time) time.Time {
	if a.After(b) {
		return a
	}

	return b
}
