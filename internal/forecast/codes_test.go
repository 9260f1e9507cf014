package forecast

import "testing"

// TestClassify_KnownCodes verifies every documented code returns its exact
// condition/icon pair.
func TestClassify_KnownCodes(t *testing.T) {
	tests := []struct {
		code      int
		condition string
		icon      string
	}{
		{0, "Clear Sky", "sun"},
		{1, "Mainly Clear", "sun"},
		{2, "Partly Cloudy", "partlycloudy"},
		{3, "Overcast", "cloud"},
		{45, "Foggy", "mist"},
		{48, "Rime Fog", "mist"},
		{51, "Light Drizzle", "drizzle"},
		{53, "Moderate Drizzle", "drizzle"},
		{55, "Dense Drizzle", "rain"},
		{61, "Light Rain", "moderaterain"},
		{63, "Moderate Rain", "rain"},
		{65, "Heavy Rain", "heavyrain"},
		{71, "Light Snow", "snow"},
		{73, "Moderate Snow", "snow"},
		{75, "Heavy Snow", "snow"},
		{80, "Light Showers", "moderaterain"},
		{81, "Moderate Showers", "rain"},
		{82, "Violent Showers", "heavyrain"},
		{95, "Thunderstorm", "thunder"},
		{96, "Thunderstorm with Hail", "thunder"},
		{99, "Severe Thunderstorm", "thunder"},
	}

	for _, tt := range tests {
		got := Classify(tt.code)
		if got.Condition != tt.condition || got.Icon != tt.icon {
			t.Errorf("Classify(%d) = {%q, %q}, want {%q, %q}",
				tt.code, got.Condition, got.Icon, tt.condition, tt.icon)
		}
	}
}

// TestClassify_Total sweeps a wide integer range: every code outside the
// table maps to the Unknown/sun default, never an error.
func TestClassify_Total(t *testing.T) {
	for code := -1000; code <= 1000; code++ {
		if _, ok := weatherCodes[code]; ok {
			continue
		}
		got := Classify(code)
		if got.Condition != "Unknown" || got.Icon != "sun" {
			t.Fatalf("Classify(%d) = {%q, %q}, want {Unknown, sun}", code, got.Condition, got.Icon)
		}
	}
}
