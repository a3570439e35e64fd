package feerate

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/sat20-labs/walletkit/common"
)

const AVERAGE_INDEX = 1

// Option is one tile of the selector. The custom slot carries no rate.
type Option struct {
	Title   string
	Desc    string
	FeeRate float64
	Custom  bool
}

func CustomOption() Option {
	return Option{Title: common.CUSTOM_FEE_TITLE, Custom: true}
}

var leadingFloat = regexp.MustCompile(`^[+-]?(Infinity|(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?)`)

// ParseRate reads the longest numeric prefix of text, so "12abc" is 12.
// Values past the float64 range come back as ±Inf.
func ParseRate(text string) (float64, bool) {
	m := leadingFloat.FindString(strings.TrimSpace(text))
	if m == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(m, 64)
	if err != nil && !(errors.Is(err, strconv.ErrRange) && math.IsInf(v, 0)) {
		return 0, false
	}
	if math.IsNaN(v) {
		return 0, false
	}
	return v, true
}

func FormatRate(rate float64) string {
	return strconv.FormatFloat(rate, 'f', -1, 64)
}

// AverageRate is the rate of the preset at AVERAGE_INDEX, or the default
// rate when there is no such preset.
func AverageRate(options []Option) float64 {
	if len(options) > AVERAGE_INDEX && !options[AVERAGE_INDEX].Custom {
		return options[AVERAGE_INDEX].FeeRate
	}
	return common.DEFAULT_FEE_RATE
}

// ComputeEffectiveRate is the rate reported to the host for the given state.
// The custom slot yields the parsed custom text, 0 when it does not parse.
// An index outside the list falls back to the average rate.
func ComputeEffectiveRate(options []Option, selectedIndex int, customText string) float64 {
	if selectedIndex < 0 || selectedIndex >= len(options) {
		return AverageRate(options)
	}
	if options[selectedIndex].Custom {
		v, ok := ParseRate(customText)
		if !ok {
			return 0
		}
		return math.Min(v, common.MAX_FEE_RATE)
	}
	return options[selectedIndex].FeeRate
}

// AdjustCustomInput corrects a custom rate edit silently. Zero or non
// numeric text clears the field, out of range values are replaced.
func AdjustCustomInput(text string, options []Option) string {
	v, ok := ParseRate(text)
	if !ok || v == 0 {
		return ""
	}
	if v < 0 {
		return FormatRate(AverageRate(options))
	}
	if v > common.MAX_FEE_RATE {
		return FormatRate(common.MAX_FEE_RATE)
	}
	return text
}
