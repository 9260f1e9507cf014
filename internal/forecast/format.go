package forecast

import (
	"fmt"
	"math"
	"time"
)

// Sentinels for absent input. Formatters never return an error or panic;
// missing data renders as a placeholder.
const (
	NoData      = "--"
	NoDataLabel = "No data"
	noDataColor = "#9ca3af"
)

// Band is a qualitative label with a display color.
type Band struct {
	Label string `json:"label"`
	Color string `json:"color"`
}

// FormatTemperature rounds to the nearest whole degree. The caller appends
// the unit.
func FormatTemperature(v float64) int {
	return int(math.Round(v))
}

// FormatWindSpeed rounds to the nearest whole km/h.
func FormatWindSpeed(v float64) int {
	return int(math.Round(v))
}

// FormatTime renders a wall-clock timestamp as a 12-hour clock with AM/PM,
// e.g. "8:52 AM". Unparseable input yields the sentinel.
func FormatTime(value string) string {
	t, err := time.Parse(TimeLayout, value)
	if err != nil {
		if t, err = time.Parse(time.RFC3339, value); err != nil {
			return NoData
		}
	}
	return t.Format("3:04 PM")
}

// FormatVisibility converts meters to whole kilometers, e.g. "12 km".
func FormatVisibility(meters *float64) string {
	if meters == nil {
		return NoData
	}
	return fmt.Sprintf("%d km", int(math.Round(*meters/1000)))
}

// DescribeVisibility bands visibility by distance. The thresholds partition
// the whole non-negative range; there are no gaps.
func DescribeVisibility(meters *float64) string {
	if meters == nil {
		return NoDataLabel
	}
	km := *meters / 1000
	switch {
	case km >= 20:
		return "Excellent"
	case km >= 10:
		return "Very good"
	case km >= 4:
		return "Good"
	case km >= 2:
		return "Moderate"
	case km >= 1:
		return "Poor"
	default:
		return "Very poor"
	}
}

// FormatPressure renders whole hPa, e.g. "1013 hPa".
func FormatPressure(hpa *float64) string {
	if hpa == nil {
		return NoData
	}
	return fmt.Sprintf("%d hPa", int(math.Round(*hpa)))
}

// ClassifyUVIndex bands the UV index. Negative input counts as missing.
func ClassifyUVIndex(v *float64) Band {
	if v == nil || *v < 0 {
		return Band{Label: NoDataLabel, Color: noDataColor}
	}
	switch {
	case *v < 3:
		return Band{Label: "Low", Color: "#4ade80"}
	case *v < 6:
		return Band{Label: "Moderate", Color: "#facc15"}
	case *v < 8:
		return Band{Label: "High", Color: "#fb923c"}
	case *v < 11:
		return Band{Label: "Very High", Color: "#f87171"}
	default:
		return Band{Label: "Extreme", Color: "#c084fc"}
	}
}

// ClassifyPM25 bands a PM2.5 concentration in ug/m3. Zero is a valid,
// meaningful reading; only nil means missing.
func ClassifyPM25(v *float64) Band {
	if v == nil {
		return Band{Label: NoDataLabel, Color: noDataColor}
	}
	switch {
	case *v <= 12:
		return Band{Label: "Good", Color: "#4ade80"}
	case *v <= 35:
		return Band{Label: "Moderate", Color: "#facc15"}
	case *v <= 55:
		return Band{Label: "Unhealthy for Sensitive Groups", Color: "#fb923c"}
	case *v <= 150:
		return Band{Label: "Unhealthy", Color: "#f87171"}
	case *v <= 250:
		return Band{Label: "Very Unhealthy", Color: "#c084fc"}
	default:
		return Band{Label: "Hazardous", Color: "#9f1239"}
	}
}

// ClassifyDust bands a dust concentration in ug/m3. Same zero-vs-missing
// distinction as PM2.5.
func ClassifyDust(v *float64) string {
	if v == nil {
		return NoDataLabel
	}
	switch {
	case *v <= 50:
		return "Low"
	case *v <= 100:
		return "Moderate"
	case *v <= 200:
		return "High"
	default:
		return "Very high"
	}
}
