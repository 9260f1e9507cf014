package forecast

import (
	"fmt"
	"time"
)

// Report is the display-ready view of one Bundle. It is rebuilt from
// scratch on every fetch; nothing in it is owned by the presentation layer.
type Report struct {
	Location      LocationSelection `json:"location"`
	GeneratedAt   time.Time         `json:"generated_at"`
	Current       CurrentConditions `json:"current"`
	Daylight      DaylightIndicator `json:"daylight"`
	Daily         []DayCard         `json:"daily"`
	HourlyInline  []HourCard        `json:"hourly_inline"`
	HourlyFullDay []HourCard        `json:"hourly_full_day"`
	AirQuality    AirQualityView    `json:"air_quality"`
}

// CurrentConditions is the headline card.
type CurrentConditions struct {
	Time                  string `json:"time"`
	Temperature           string `json:"temperature"`
	FeelsLike             string `json:"feels_like"`
	Humidity              string `json:"humidity"`
	WindSpeed             string `json:"wind_speed"`
	Condition             string `json:"condition"`
	Icon                  string `json:"icon"`
	UVIndex               Band   `json:"uv_index"`
	Visibility            string `json:"visibility"`
	VisibilityDescription string `json:"visibility_description"`
	Pressure              string `json:"pressure"`
}

// DayCard is one entry of the daily strip.
type DayCard struct {
	Date      string `json:"date"`
	Label     string `json:"label"`
	Condition string `json:"condition"`
	Icon      string `json:"icon"`
	TempMax   string `json:"temp_max"`
	TempMin   string `json:"temp_min"`
}

// HourCard is one row of an hourly list.
type HourCard struct {
	Time        string `json:"time"`
	Label       string `json:"label"`
	Temperature string `json:"temperature"`
	FeelsLike   string `json:"feels_like"`
	Condition   string `json:"condition"`
	Icon        string `json:"icon"`
	RainChance  string `json:"rain_chance"`
	WindSpeed   string `json:"wind_speed"`
}

// AirQualityView carries the banded air-quality readout.
type AirQualityView struct {
	PM25      Band   `json:"pm2_5"`
	PM25Value string `json:"pm2_5_value"`
	Dust      string `json:"dust"`
	DustValue string `json:"dust_value"`
}

// BuildReport derives the full view model for a bundle. today is the basis
// for day labels; pass device time for device-calendar labels or a clock in
// the forecast location's timezone to label against the remote calendar.
//
// Missing fields degrade to sentinels, an absent hourly series to empty
// lists, and an absent air-quality sample to "No data" bands. BuildReport
// never fails.
func BuildReport(loc LocationSelection, b *Bundle, today time.Time) *Report {
	r := &Report{
		Location:    loc,
		GeneratedAt: time.Now(),
	}
	if b == nil {
		r.Daylight = DaylightIndicator{Kind: DaylightNone}
		r.AirQuality = buildAirQuality(nil)
		return r
	}

	r.Current = buildCurrent(&b.Current)
	r.Daylight = SelectDaylight(firstString(b.Daily.Sunrise), firstString(b.Daily.Sunset), b.Current.Time)
	r.Daily = buildDaily(&b.Daily, today)
	r.HourlyInline = buildHourly(&b.Hourly, b.Current.Time, WindowInline)
	r.HourlyFullDay = buildHourly(&b.Hourly, b.Current.Time, WindowFullDay)
	r.AirQuality = buildAirQuality(b.AirQuality)
	return r
}

func buildCurrent(c *CurrentSample) CurrentConditions {
	cc := CurrentConditions{
		Time:        c.Time,
		Temperature: NoData,
		FeelsLike:   NoData,
		Humidity:    NoData,
		WindSpeed:   NoData,
	}

	if c.Temperature2m != nil {
		cc.Temperature = fmt.Sprintf("%d°C", FormatTemperature(*c.Temperature2m))
	}
	if c.ApparentTemperature != nil {
		cc.FeelsLike = fmt.Sprintf("%d°C", FormatTemperature(*c.ApparentTemperature))
	}
	if c.RelativeHumidity2m != nil {
		cc.Humidity = fmt.Sprintf("%d%%", int(*c.RelativeHumidity2m))
	}
	if c.WindSpeed10m != nil {
		cc.WindSpeed = fmt.Sprintf("%d km/h", FormatWindSpeed(*c.WindSpeed10m))
	}

	cls := defaultClassification
	if c.WeatherCode != nil {
		cls = Classify(*c.WeatherCode)
	}
	cc.Condition = cls.Condition
	cc.Icon = cls.Icon

	cc.UVIndex = ClassifyUVIndex(c.UVIndex)
	cc.Visibility = FormatVisibility(c.Visibility)
	cc.VisibilityDescription = DescribeVisibility(c.Visibility)
	cc.Pressure = FormatPressure(c.PressureMSL)
	return cc
}

func buildDaily(daily *SeriesBlock, today time.Time) []DayCard {
	cards := make([]DayCard, 0, daily.Len())
	for i, date := range daily.Time {
		card := DayCard{
			Date:    date,
			Label:   LabelDay(date, today),
			TempMax: NoData,
			TempMin: NoData,
		}

		cls := defaultClassification
		if i < len(daily.WeatherCode) {
			cls = Classify(daily.WeatherCode[i])
		}
		card.Condition = cls.Condition
		card.Icon = cls.Icon

		if i < len(daily.Temperature2mMax) {
			card.TempMax = fmt.Sprintf("%d°C", FormatTemperature(daily.Temperature2mMax[i]))
		}
		if i < len(daily.Temperature2mMin) {
			card.TempMin = fmt.Sprintf("%d°C", FormatTemperature(daily.Temperature2mMin[i]))
		}
		cards = append(cards, card)
	}
	return cards
}

func buildHourly(hourly *SeriesBlock, currentTime string, size int) []HourCard {
	window := hourly.Window(currentTime, size)
	cards := make([]HourCard, 0, window.Len())
	for i, ts := range window.Time {
		card := HourCard{
			Time:        ts,
			Label:       FormatTime(ts),
			Temperature: NoData,
			FeelsLike:   NoData,
			RainChance:  NoData,
			WindSpeed:   NoData,
		}

		cls := defaultClassification
		if i < len(window.WeatherCode) {
			cls = Classify(window.WeatherCode[i])
		}
		card.Condition = cls.Condition
		card.Icon = cls.Icon

		if i < len(window.Temperature2m) {
			card.Temperature = fmt.Sprintf("%d°C", FormatTemperature(window.Temperature2m[i]))
		}
		if i < len(window.ApparentTemperature) {
			card.FeelsLike = fmt.Sprintf("Feels %d°C", FormatTemperature(window.ApparentTemperature[i]))
		}
		if i < len(window.PrecipitationProbability) {
			card.RainChance = fmt.Sprintf("%d%%", int(window.PrecipitationProbability[i]))
		}
		if i < len(window.WindSpeed10m) {
			card.WindSpeed = fmt.Sprintf("%d km/h", FormatWindSpeed(window.WindSpeed10m[i]))
		}
		cards = append(cards, card)
	}
	return cards
}

func buildAirQuality(aq *AirQualitySample) AirQualityView {
	view := AirQualityView{
		PM25Value: NoData,
		DustValue: NoData,
	}
	if aq == nil {
		view.PM25 = ClassifyPM25(nil)
		view.Dust = ClassifyDust(nil)
		return view
	}

	view.PM25 = ClassifyPM25(aq.PM25)
	view.Dust = ClassifyDust(aq.Dust)
	if aq.PM25 != nil {
		view.PM25Value = fmt.Sprintf("%.1f", *aq.PM25)
	}
	if aq.Dust != nil {
		view.DustValue = fmt.Sprintf("%.1f", *aq.Dust)
	}
	return view
}

func firstString(s []string) string {
	if len(s) == 0 {
		return ""
	}
	return s[0]
}
