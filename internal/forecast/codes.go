package forecast

// Classification maps an upstream weather code to a condition label and a
// symbolic icon key the presentation layer resolves to an image.
type Classification struct {
	Condition string `json:"condition"`
	Icon      string `json:"icon"`
}

// weatherCodes follows the WMO coding scheme as Open-Meteo emits it. The
// labels and icon keys are an external contract and must not be reworded.
var weatherCodes = map[int]Classification{
	0:  {Condition: "Clear Sky", Icon: "sun"},
	1:  {Condition: "Mainly Clear", Icon: "sun"},
	2:  {Condition: "Partly Cloudy", Icon: "partlycloudy"},
	3:  {Condition: "Overcast", Icon: "cloud"},
	45: {Condition: "Foggy", Icon: "mist"},
	48: {Condition: "Rime Fog", Icon: "mist"},
	51: {Condition: "Light Drizzle", Icon: "drizzle"},
	53: {Condition: "Moderate Drizzle", Icon: "drizzle"},
	55: {Condition: "Dense Drizzle", Icon: "rain"},
	61: {Condition: "Light Rain", Icon: "moderaterain"},
	63: {Condition: "Moderate Rain", Icon: "rain"},
	65: {Condition: "Heavy Rain", Icon: "heavyrain"},
	71: {Condition: "Light Snow", Icon: "snow"},
	73: {Condition: "Moderate Snow", Icon: "snow"},
	75: {Condition: "Heavy Snow", Icon: "snow"},
	80: {Condition: "Light Showers", Icon: "moderaterain"},
	81: {Condition: "Moderate Showers", Icon: "rain"},
	82: {Condition: "Violent Showers", Icon: "heavyrain"},
	95: {Condition: "Thunderstorm", Icon: "thunder"},
	96: {Condition: "Thunderstorm with Hail", Icon: "thunder"},
	99: {Condition: "Severe Thunderstorm", Icon: "thunder"},
}

// defaultClassification is returned for any code outside the table.
var defaultClassification = Classification{Condition: "Unknown", Icon: "sun"}

// Classify is total: unknown codes map to the default, never an error.
func Classify(code int) Classification {
	if c, ok := weatherCodes[code]; ok {
		return c
	}
	return defaultClassification
}
