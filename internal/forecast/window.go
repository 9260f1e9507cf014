package forecast

import "time"

// Display window sizes derived from every bundle. Both windows share one
// start index so their first elements agree.
const (
	WindowInline  = 13
	WindowFullDay = 24
)

// StartIndex finds the first hourly sample at or after currentTime. Both
// timestamps come from the same response, so they share a timezone
// representation and compare as instants.
//
// When currentTime is past every sample the returned index is one past the
// end, which slices to an empty window. When currentTime is absent or
// unparseable the window starts at index 0.
func (s *SeriesBlock) StartIndex(currentTime string) int {
	if s.Len() == 0 {
		return 0
	}

	now, err := time.Parse(TimeLayout, currentTime)
	if err != nil {
		if now, err = time.Parse(time.RFC3339, currentTime); err != nil {
			return 0
		}
	}

	for i, raw := range s.Time {
		t, err := time.Parse(TimeLayout, raw)
		if err != nil {
			if t, err = time.Parse(time.RFC3339, raw); err != nil {
				continue
			}
		}
		if !t.Before(now) {
			return i
		}
	}
	return s.Len()
}

// Window materializes the slice [start, start+size) of every populated
// array. Arrays shorter than the range are truncated, never padded; callers
// treat missing trailing samples as "no data". An absent or empty series
// yields an empty window, which is a valid "no data yet" state.
func (s *SeriesBlock) Window(currentTime string, size int) SeriesBlock {
	if s == nil || size <= 0 {
		return SeriesBlock{}
	}
	return s.Slice(s.StartIndex(currentTime), size)
}

// Slice cuts [start, start+size) out of every populated array with bounds
// clamped to each array's own length.
func (s *SeriesBlock) Slice(start, size int) SeriesBlock {
	if s == nil || start < 0 || size <= 0 {
		return SeriesBlock{}
	}
	return SeriesBlock{
		Time:                     cutStrings(s.Time, start, size),
		Temperature2m:            cutFloats(s.Temperature2m, start, size),
		ApparentTemperature:      cutFloats(s.ApparentTemperature, start, size),
		RelativeHumidity2m:       cutFloats(s.RelativeHumidity2m, start, size),
		WeatherCode:              cutInts(s.WeatherCode, start, size),
		WindSpeed10m:             cutFloats(s.WindSpeed10m, start, size),
		PrecipitationProbability: cutFloats(s.PrecipitationProbability, start, size),
		Temperature2mMax:         cutFloats(s.Temperature2mMax, start, size),
		Temperature2mMin:         cutFloats(s.Temperature2mMin, start, size),
		Sunrise:                  cutStrings(s.Sunrise, start, size),
		Sunset:                   cutStrings(s.Sunset, start, size),
	}
}

func cutStrings(in []string, start, size int) []string {
	lo, hi := clampRange(len(in), start, size)
	if lo == hi {
		return nil
	}
	out := make([]string, hi-lo)
	copy(out, in[lo:hi])
	return out
}

func cutFloats(in []float64, start, size int) []float64 {
	lo, hi := clampRange(len(in), start, size)
	if lo == hi {
		return nil
	}
	out := make([]float64, hi-lo)
	copy(out, in[lo:hi])
	return out
}

func cutInts(in []int, start, size int) []int {
	lo, hi := clampRange(len(in), start, size)
	if lo == hi {
		return nil
	}
	out := make([]int, hi-lo)
	copy(out, in[lo:hi])
	return out
}

func clampRange(length, start, size int) (int, int) {
	if start > length {
		start = length
	}
	end := start + size
	if end > length {
		end = length
	}
	return start, end
}
