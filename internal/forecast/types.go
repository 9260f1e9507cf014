package forecast

// TimeLayout is the wall-clock layout Open-Meteo uses when timezone=auto is
// requested: an ISO-8601 timestamp without a UTC offset, expressed in the
// forecast location's own timezone.
const TimeLayout = "2006-01-02T15:04"

// DateLayout is the calendar-date layout used by daily series.
const DateLayout = "2006-01-02"

// CurrentSample is the "current" block of a forecast response. Every metric
// is optional; only Time is guaranteed.
type CurrentSample struct {
	Time                     string   `json:"time"`
	Temperature2m            *float64 `json:"temperature_2m,omitempty"`
	ApparentTemperature      *float64 `json:"apparent_temperature,omitempty"`
	RelativeHumidity2m       *float64 `json:"relativehumidity_2m,omitempty"`
	WeatherCode              *int     `json:"weathercode,omitempty"`
	WindSpeed10m             *float64 `json:"windspeed_10m,omitempty"`
	PrecipitationProbability *float64 `json:"precipitation_probability,omitempty"`
	UVIndex                  *float64 `json:"uv_index,omitempty"`
	Visibility               *float64 `json:"visibility,omitempty"`
	PressureMSL              *float64 `json:"pressure_msl,omitempty"`
}

// SeriesBlock is a parallel-array time series: index i across all populated
// arrays describes the same instant (hourly) or day (daily). Every populated
// array has the same length as Time.
type SeriesBlock struct {
	Time                     []string  `json:"time,omitempty"`
	Temperature2m            []float64 `json:"temperature_2m,omitempty"`
	ApparentTemperature      []float64 `json:"apparent_temperature,omitempty"`
	RelativeHumidity2m       []float64 `json:"relativehumidity_2m,omitempty"`
	WeatherCode              []int     `json:"weathercode,omitempty"`
	WindSpeed10m             []float64 `json:"windspeed_10m,omitempty"`
	PrecipitationProbability []float64 `json:"precipitation_probability,omitempty"`
	Temperature2mMax         []float64 `json:"temperature_2m_max,omitempty"`
	Temperature2mMin         []float64 `json:"temperature_2m_min,omitempty"`
	Sunrise                  []string  `json:"sunrise,omitempty"`
	Sunset                   []string  `json:"sunset,omitempty"`
}

// Len reports the number of samples in the block.
func (s *SeriesBlock) Len() int {
	if s == nil {
		return 0
	}
	return len(s.Time)
}

// AirQualitySample carries the current air-quality metrics. Zero is a valid
// concentration; nil means the metric was not reported.
type AirQualitySample struct {
	PM25 *float64 `json:"pm2_5,omitempty"`
	Dust *float64 `json:"dust,omitempty"`
}

// Bundle is one complete fetch result: forecast blocks plus optional air
// quality, all timestamps in the forecast location's timezone. It is
// immutable after creation; callers replace it wholesale on the next fetch.
type Bundle struct {
	Timezone   string            `json:"timezone,omitempty"`
	Current    CurrentSample     `json:"current"`
	Hourly     SeriesBlock       `json:"hourly"`
	Daily      SeriesBlock       `json:"daily"`
	AirQuality *AirQualitySample `json:"air_quality,omitempty"`
}

// LocationSelection identifies the place a Bundle was fetched for.
type LocationSelection struct {
	Name      string  `json:"name"`
	Country   string  `json:"country"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}
