package itinerary

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToFloat(t *testing.T) {
	cases := []struct {
		in   any
		want float64
	}{
		{nil, 0},
		{12.5, 12.5},
		{int64(7), 7},
		{3, 3},
		{json.Number("1500"), 1500},
		{"25000", 25000},
		{"25,000", 25000},
		{" 1,23,456.75 ", 123456.75},
		{"₹18,000", 18000},
		{"INR 9,999", 9999},
		{"abc", 0},
		{"", 0},
		{"NaN", 0},
		{math.Inf(1), 0},
		{true, 0},
		{[]any{1.0}, 0},
		{map[string]any{"x": 1.0}, 0},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, ToFloat(c.in), "input %#v", c.in)
	}
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 1.01, Round2(1.005000001))
	assert.Equal(t, 35200.0, Round2(35200))
	assert.Equal(t, 21345.68, Round2(21345.678))
}
