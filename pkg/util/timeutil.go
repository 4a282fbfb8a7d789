package util

import "time"

// NowUTC exposes time.Now for deterministic testing.
var NowUTC = func() time.Time {
	return time.Now().UTC()
}

// DaysAgo returns the UTC instant n days before now.
func DaysAgo(n int) time.Time {
	return NowUTC().AddDate(0, 0, -n)
}
