package itinerary

import (
	"math"
	"strings"

	"github.com/spf13/cast"
)

var numberNoise = strings.NewReplacer(",", "", "_", "", " ", "", " ", "", "₹", "", "$", "", "€", "", "£", "")

// ToFloat converts v to a float64 on a best-effort basis. Strings may carry
// thousands separators, whitespace, a currency symbol or an INR prefix.
// Anything that cannot be read as a finite number yields 0.
func ToFloat(v any) float64 {
	if s, ok := v.(string); ok {
		s = strings.TrimSpace(s)
		if len(s) >= 3 && strings.EqualFold(s[:3], "inr") {
			s = s[3:]
		}
		v = numberNoise.Replace(s)
	}
	if _, ok := v.(bool); ok {
		return 0
	}
	f, err := cast.ToFloat64E(v)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

// Round2 rounds half away from zero to two decimal places.
func Round2(f float64) float64 {
	return math.Round(f*100) / 100
}
