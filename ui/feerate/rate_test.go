package feerate

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func presets(rates ...float64) []Option {
	titles := []string{"Slow", "Normal", "Fast"}
	ret := make([]Option, 0, len(rates))
	for i, r := range rates {
		ret = append(ret, Option{Title: titles[i%len(titles)], FeeRate: r})
	}
	return ret
}

func TestParseRate(t *testing.T) {
	tests := []struct {
		text string
		want float64
		ok   bool
	}{
		{"7.5", 7.5, true},
		{" 12abc", 12, true},
		{".5", 0.5, true},
		{"-3", -3, true},
		{"1e3", 1000, true},
		{"1e400", math.Inf(1), true},
		{"Infinity", math.Inf(1), true},
		{"-Infinityx", math.Inf(-1), true},
		{"", 0, false},
		{"abc", 0, false},
		{"-", 0, false},
	}
	for _, tt := range tests {
		v, ok := ParseRate(tt.text)
		assert.Equal(t, tt.ok, ok, tt.text)
		assert.Equal(t, tt.want, v, tt.text)
	}
}

func TestAdjustCustomInput(t *testing.T) {
	opts := append(presets(5, 10, 20), CustomOption())

	assert.Equal(t, "", AdjustCustomInput("", opts))
	assert.Equal(t, "", AdjustCustomInput("abc", opts))
	assert.Equal(t, "", AdjustCustomInput("0", opts))
	assert.Equal(t, "", AdjustCustomInput("0.00", opts))

	assert.Equal(t, "10", AdjustCustomInput("-1", opts))
	assert.Equal(t, "1", AdjustCustomInput("-1", nil))
	assert.Equal(t, "1", AdjustCustomInput("-1", []Option{CustomOption()}))

	assert.Equal(t, "10000", AdjustCustomInput("20000", opts))
	assert.Equal(t, "10000", AdjustCustomInput("10000.01", opts))
	assert.Equal(t, "10000", AdjustCustomInput("1e400", opts))
	assert.Equal(t, "10000", AdjustCustomInput("Infinity", opts))
	assert.Equal(t, "10", AdjustCustomInput("-1e400", opts))
	assert.Equal(t, "10", AdjustCustomInput("-Infinity", opts))

	assert.Equal(t, "10000", AdjustCustomInput("10000", opts))
	assert.Equal(t, "7.50", AdjustCustomInput("7.50", opts))
	assert.Equal(t, "3.", AdjustCustomInput("3.", opts))
}

func TestComputeEffectiveRate(t *testing.T) {
	opts := append(presets(5, 10, 20), CustomOption())

	assert.Equal(t, float64(10), ComputeEffectiveRate(opts, AVERAGE_INDEX, ""))
	for i, want := range []float64{5, 10, 20} {
		assert.Equal(t, want, ComputeEffectiveRate(opts, i, "123"))
	}
	assert.Equal(t, 7.5, ComputeEffectiveRate(opts, 3, "7.5"))
	assert.Equal(t, float64(0), ComputeEffectiveRate(opts, 3, ""))
	assert.Equal(t, float64(10000), ComputeEffectiveRate(opts, 3, "1e400"))

	// no presets at all
	assert.Equal(t, float64(1), ComputeEffectiveRate(nil, AVERAGE_INDEX, ""))
	assert.Equal(t, float64(1), ComputeEffectiveRate(presets(5), AVERAGE_INDEX, ""))

	custom := []Option{CustomOption()}
	assert.Equal(t, 7.5, ComputeEffectiveRate(custom, 0, "7.5"))
	assert.Equal(t, float64(0), ComputeEffectiveRate(custom, 0, ""))
}
