package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// Metric names a single reading inside a WeatherSnapshot.
type Metric string

const (
	TemperatureMax              Metric = "temperature_max"
	TemperatureMin              Metric = "temperature_min"
	UVIndexMax                  Metric = "uv_index_max"
	PrecipitationSum            Metric = "precipitation_sum"
	PrecipitationProbabilityMax Metric = "precipitation_probability_max"
	WindSpeed                   Metric = "wind_speed"
	RelativeHumidity            Metric = "relative_humidity"
	Sunrise                     Metric = "sunrise"
	Sunset                      Metric = "sunset"
)

// KnownMetrics lists every metric the weather endpoint produces.
var KnownMetrics = []Metric{
	TemperatureMax,
	TemperatureMin,
	UVIndexMax,
	PrecipitationSum,
	PrecipitationProbabilityMax,
	WindSpeed,
	RelativeHumidity,
	Sunrise,
	Sunset,
}

// Value is a metric reading. Sunrise and sunset are text, everything else is
// numeric. IsNull marks a reading the provider sent as null.
type Value struct {
	Number float64
	Text   string
	IsText bool
	IsNull bool
}

func NumberValue(f float64) Value {
	return Value{Number: f}
}

func TextValue(s string) Value {
	return Value{Text: s, IsText: true}
}

func NullValue() Value {
	return Value{IsNull: true}
}

// String renders the reading; null renders empty.
func (v Value) String() string {
	if v.IsNull {
		return ""
	}
	if v.IsText {
		return v.Text
	}
	return strconv.FormatFloat(v.Number, 'f', -1, 64)
}

func (v Value) MarshalJSON() ([]byte, error) {
	if v.IsNull {
		return []byte("null"), nil
	}
	if v.IsText {
		return json.Marshal(v.Text)
	}
	return json.Marshal(v.Number)
}

func (v *Value) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*v = NullValue()
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = TextValue(s)
		return nil
	}

	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("metric value must be a number or a string: %w", err)
	}
	*v = NumberValue(f)

	return nil
}

// WeatherSnapshot is one day of weather for one place, keyed by metric name.
// Metrics outside KnownMetrics are carried through untouched.
type WeatherSnapshot map[Metric]Value

func (s WeatherSnapshot) Get(m Metric) (Value, bool) {
	v, ok := s[m]
	return v, ok
}

// Number returns the numeric reading for m, or 0 when absent, null or textual.
func (s WeatherSnapshot) Number(m Metric) float64 {
	v, ok := s[m]
	if !ok || v.IsText || v.IsNull {
		return 0
	}
	return v.Number
}

// Display renders the reading for m, or an empty string when absent.
func (s WeatherSnapshot) Display(m Metric) string {
	v, ok := s[m]
	if !ok {
		return ""
	}
	return v.String()
}

// Missing returns the known metrics that are not present in the snapshot.
func (s WeatherSnapshot) Missing() []Metric {
	var missing []Metric
	for _, m := range KnownMetrics {
		if _, ok := s[m]; !ok {
			missing = append(missing, m)
		}
	}
	return missing
}
