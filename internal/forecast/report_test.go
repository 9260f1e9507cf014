package forecast

import (
	"testing"
	"time"
)

func sampleBundle() *Bundle {
	hourly := hourlySeries(48)
	hourly.ApparentTemperature = hourly.Temperature2m
	hourly.PrecipitationProbability = []float64{10, 20, 30, 40, 50, 60, 70, 80, 90, 100,
		10, 20, 30, 40, 50, 60, 70, 80, 90, 100, 10, 20, 30, 40}
	hourly.WindSpeed10m = hourly.Temperature2m

	return &Bundle{
		Timezone: "America/Montreal",
		Current: CurrentSample{
			Time:                "2024-03-15T10:00",
			Temperature2m:       fp(25.4),
			ApparentTemperature: fp(27.2),
			RelativeHumidity2m:  fp(23),
			WeatherCode:         ip(2),
			WindSpeed10m:        fp(10.3),
			UVIndex:             fp(4.5),
			Visibility:          fp(23400),
			PressureMSL:         fp(1013.4),
		},
		Hourly: hourly,
		Daily: SeriesBlock{
			Time:             []string{"2024-03-15", "2024-03-16", "2024-03-17"},
			WeatherCode:      []int{2, 61, 95},
			Temperature2mMax: []float64{20.6, 18.2, 15.0},
			Temperature2mMin: []float64{12.1, 10.9, 8.4},
			Sunrise:          []string{"2024-03-15T08:52", "2024-03-16T08:50", "2024-03-17T08:48"},
			Sunset:           []string{"2024-03-15T18:12", "2024-03-16T18:14", "2024-03-17T18:16"},
		},
		AirQuality: &AirQualitySample{PM25: fp(8.2), Dust: fp(120)},
	}
}

func ip(v int) *int { return &v }

func TestBuildReport(t *testing.T) {
	loc := LocationSelection{Name: "Montreal", Country: "Canada", Latitude: 45.5, Longitude: -73.6}
	today := time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)

	r := BuildReport(loc, sampleBundle(), today)

	if r.Current.Temperature != "25°C" {
		t.Errorf("current temperature = %q, want 25°C", r.Current.Temperature)
	}
	if r.Current.FeelsLike != "27°C" {
		t.Errorf("feels like = %q, want 27°C", r.Current.FeelsLike)
	}
	if r.Current.Condition != "Partly Cloudy" || r.Current.Icon != "partlycloudy" {
		t.Errorf("condition = %q/%q, want Partly Cloudy/partlycloudy", r.Current.Condition, r.Current.Icon)
	}
	if r.Current.UVIndex.Label != "Moderate" {
		t.Errorf("uv band = %q, want Moderate", r.Current.UVIndex.Label)
	}
	if r.Current.Visibility != "23 km" || r.Current.VisibilityDescription != "Excellent" {
		t.Errorf("visibility = %q/%q", r.Current.Visibility, r.Current.VisibilityDescription)
	}
	if r.Current.Pressure != "1013 hPa" {
		t.Errorf("pressure = %q", r.Current.Pressure)
	}

	// 10:00 local is before noon, so the sunrise is surfaced.
	if r.Daylight.Kind != DaylightSunrise || r.Daylight.Time != "2024-03-15T08:52" {
		t.Errorf("daylight = %+v, want sunrise at 08:52", r.Daylight)
	}

	if len(r.Daily) != 3 {
		t.Fatalf("daily cards = %d, want 3", len(r.Daily))
	}
	if r.Daily[0].Label != "Today" || r.Daily[1].Label != "Tomorrow" || r.Daily[2].Label != "Sunday" {
		t.Errorf("day labels = %q, %q, %q", r.Daily[0].Label, r.Daily[1].Label, r.Daily[2].Label)
	}
	if r.Daily[0].TempMax != "21°C" || r.Daily[0].TempMin != "12°C" {
		t.Errorf("day 0 temps = %q/%q", r.Daily[0].TempMax, r.Daily[0].TempMin)
	}
	if r.Daily[2].Condition != "Thunderstorm" {
		t.Errorf("day 2 condition = %q", r.Daily[2].Condition)
	}

	if len(r.HourlyInline) != WindowInline {
		t.Errorf("inline window = %d cards, want %d", len(r.HourlyInline), WindowInline)
	}
	if len(r.HourlyFullDay) != WindowFullDay {
		t.Errorf("full-day window = %d cards, want %d", len(r.HourlyFullDay), WindowFullDay)
	}
	if r.HourlyInline[0].Time != r.HourlyFullDay[0].Time {
		t.Errorf("windows disagree on first hour: %q vs %q",
			r.HourlyInline[0].Time, r.HourlyFullDay[0].Time)
	}
	if r.HourlyInline[0].Time != "2024-03-15T10:00" {
		t.Errorf("first hour = %q, want the current hour", r.HourlyInline[0].Time)
	}
	if r.HourlyInline[0].Label != "10:00 AM" {
		t.Errorf("first hour label = %q, want 10:00 AM", r.HourlyInline[0].Label)
	}

	if r.AirQuality.PM25.Label != "Good" {
		t.Errorf("pm2.5 band = %q, want Good", r.AirQuality.PM25.Label)
	}
	if r.AirQuality.Dust != "High" {
		t.Errorf("dust band = %q, want High", r.AirQuality.Dust)
	}
}

// TestBuildReport_MissingPieces: partial upstream data degrades to sentinels
// and empty lists, never a panic.
func TestBuildReport_MissingPieces(t *testing.T) {
	loc := LocationSelection{Name: "Nowhere"}
	today := time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)

	b := &Bundle{Current: CurrentSample{Time: "2024-03-15T10:00"}}
	r := BuildReport(loc, b, today)

	if r.Current.Temperature != NoData || r.Current.WindSpeed != NoData {
		t.Errorf("missing metrics should be sentinels, got %q/%q",
			r.Current.Temperature, r.Current.WindSpeed)
	}
	if r.Current.Condition != "Unknown" {
		t.Errorf("missing weather code condition = %q, want Unknown", r.Current.Condition)
	}
	if r.Daylight.Kind != DaylightNone {
		t.Errorf("daylight without sun times = %q, want none", r.Daylight.Kind)
	}
	if len(r.HourlyInline) != 0 || len(r.HourlyFullDay) != 0 {
		t.Errorf("hourly windows should be empty, got %d/%d",
			len(r.HourlyInline), len(r.HourlyFullDay))
	}
	if r.AirQuality.PM25.Label != NoDataLabel {
		t.Errorf("missing air quality = %q, want %q", r.AirQuality.PM25.Label, NoDataLabel)
	}
	if r.AirQuality.PM25Value != NoData {
		t.Errorf("missing pm2.5 value = %q, want %q", r.AirQuality.PM25Value, NoData)
	}
}

func TestBuildReport_NilBundle(t *testing.T) {
	r := BuildReport(LocationSelection{}, nil, time.Now())
	if r == nil {
		t.Fatal("BuildReport(nil) returned nil")
	}
	if r.Daylight.Kind != DaylightNone {
		t.Errorf("daylight = %q, want none", r.Daylight.Kind)
	}
	if r.AirQuality.PM25.Label != NoDataLabel {
		t.Errorf("pm2.5 = %q, want %q", r.AirQuality.PM25.Label, NoDataLabel)
	}
}

// Zero concentration is valid data even when it arrives through a bundle.
func TestBuildReport_ZeroAirQuality(t *testing.T) {
	b := sampleBundle()
	b.AirQuality = &AirQualitySample{PM25: fp(0)}

	r := BuildReport(LocationSelection{}, b, time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC))
	if r.AirQuality.PM25.Label != "Good" {
		t.Errorf("pm2.5 zero = %q, want Good", r.AirQuality.PM25.Label)
	}
	if r.AirQuality.Dust != NoDataLabel {
		t.Errorf("absent dust = %q, want %q", r.AirQuality.Dust, NoDataLabel)
	}
}
