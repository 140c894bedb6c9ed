package domain

import "time"

// Location is the fixed UTC-03:00 offset every persisted timestamp is stored
// and rendered in.
var Location = time.FixedZone("UTC-03:00", -3*60*60)

// Now returns the current time in Location.
func Now() time.Time {
	return time.Now().In(Location)
}

// InLocation converts t to Location.
func InLocation(t time.Time) time.Time {
	return t.In(Location)
}

// DayKey formats t as the YYYY-MM-DD day in Location.
func DayKey(t time.Time) string {
	return t.In(Location).Format("2006-01-02")
}
