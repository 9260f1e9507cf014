package forecast

import "time"

// DaylightKind says which solar event a report should surface.
type DaylightKind string

const (
	DaylightSunrise DaylightKind = "sunrise"
	DaylightSunset  DaylightKind = "sunset"
	DaylightNone    DaylightKind = "none"
)

// DaylightIndicator is the sunrise-or-sunset stat shown next to the current
// conditions.
type DaylightIndicator struct {
	Kind DaylightKind `json:"kind"`
	Time string       `json:"time,omitempty"`
}

// SelectDaylight picks sunrise or sunset for the current day based on the
// hour component of currentTime, which should be the forecast's own
// current.time so the hour is read in the forecast location's timezone.
//
// Mornings (hour < 12) show the sunrise, afternoons show the sunset. The
// noon cutoff is a deliberate approximation of "has the sun already risen",
// kept as-is; it does not compare against the actual event times.
func SelectDaylight(sunrise, sunset, currentTime string) DaylightIndicator {
	if sunrise == "" || sunset == "" {
		return DaylightIndicator{Kind: DaylightNone}
	}

	t, err := time.Parse(TimeLayout, currentTime)
	if err != nil {
		if t, err = time.Parse(time.RFC3339, currentTime); err != nil {
			// No usable remote clock; fall back to device time.
			t = time.Now()
		}
	}

	if t.Hour() >= 12 {
		return DaylightIndicator{Kind: DaylightSunset, Time: sunset}
	}
	return DaylightIndicator{Kind: DaylightSunrise, Time: sunrise}
}
