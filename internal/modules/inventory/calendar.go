package inventory

import "time"

// DateOnly truncates t to midnight UTC. All calendar arithmetic works on
// whole days; bookings cover every day of [start, end] inclusive.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// RentalDays returns the inclusive day count of [start, end].
func RentalDays(start, end time.Time) int {
	return int(DateOnly(end).Sub(DateOnly(start)).Hours()/24) + 1
}

// eachDay calls fn for every day of [start, end] inclusive.
func eachDay(start, end time.Time, fn func(day time.Time)) {
	for d := DateOnly(start); !d.After(DateOnly(end)); d = d.AddDate(0, 0, 1) {
		fn(d)
	}
}
