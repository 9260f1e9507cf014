package forecast

import "time"

// LabelDay resolves a calendar date from a daily series to "Today",
// "Tomorrow", or the long-form weekday name. There is no "Yesterday" case;
// past dates render as their weekday.
//
// The comparison is by whole calendar day, never by elapsed time, so the
// label does not drift near midnight. The basis for "today" is whatever
// instant the caller passes: hand in device time for the original behavior,
// or a remote-timezone clock to label against the forecast location's
// calendar. The choice is deliberately the caller's, since the two disagree
// whenever the device and the forecast location straddle a day boundary.
func LabelDay(date string, today time.Time) string {
	d, err := time.Parse(DateLayout, date)
	if err != nil {
		return date
	}

	if sameDate(d, today) {
		return "Today"
	}
	if sameDate(d, today.AddDate(0, 0, 1)) {
		return "Tomorrow"
	}
	return d.Weekday().String()
}

func sameDate(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}
