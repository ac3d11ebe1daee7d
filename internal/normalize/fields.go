package normalize

import (
	"encoding/json"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/yungbote/kingbayo/internal/normalization"
)

var (
	one     = decimal.NewFromInt(1)
	hundred = decimal.NewFromInt(100)

	leadingNumber = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?`)
)

// parseDecimal reads a JSON number, a Go number, or a string that starts with
// a number ("1.85", "1.85x", "82%"). pct reports a trailing percent sign.
func parseDecimal(v any) (d decimal.Decimal, pct bool, ok bool) {
	switch x := v.(type) {
	case json.Number:
		d, err := decimal.NewFromString(x.String())
		return d, false, err == nil
	case float64:
		if math.IsInf(x, 0) || math.IsNaN(x) {
			return decimal.Zero, false, false
		}
		return decimal.NewFromFloat(x), false, true
	case float32:
		if math.IsInf(float64(x), 0) || math.IsNaN(float64(x)) {
			return decimal.Zero, false, false
		}
		return decimal.NewFromFloat32(x), false, true
	case int:
		return decimal.NewFromInt(int64(x)), false, true
	case int64:
		return decimal.NewFromInt(x), false, true
	case string:
		s := strings.TrimSpace(x)
		m := leadingNumber.FindString(s)
		if m == "" {
			return decimal.Zero, false, false
		}
		d, err := decimal.NewFromString(m)
		if err != nil {
			return decimal.Zero, false, false
		}
		return d, strings.HasPrefix(strings.TrimSpace(s[len(m):]), "%"), true
	default:
		return decimal.Zero, false, false
	}
}

// odds accepts decimal odds at or above evens; anything else is unusable.
func odds(v any, def float64) float64 {
	d, _, ok := parseDecimal(v)
	if !ok || d.LessThan(one) {
		return def
	}
	return finiteOr(d, def)
}

// totalOdds accepts any positive combined price as-is. Only missing,
// unparseable, non-positive or out-of-range values take the default.
func totalOdds(v any, def float64) float64 {
	d, _, ok := parseDecimal(v)
	if !ok || !d.IsPositive() {
		return def
	}
	return finiteOr(d, def)
}

// probability accepts values in [0,1]. Percentages ("82%", or bare numbers in
// (1,100]) are scaled down first.
func probability(v any, def float64) float64 {
	d, pct, ok := parseDecimal(v)
	if !ok {
		return def
	}
	if pct || (d.GreaterThan(one) && d.LessThanOrEqual(hundred)) {
		d = d.Div(hundred)
	}
	if d.IsNegative() || d.GreaterThan(one) {
		return def
	}
	return finiteOr(d, def)
}

// finiteOr converts d, falling back to def when it overflows float64.
func finiteOr(d decimal.Decimal, def float64) float64 {
	f, _ := d.Float64()
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return def
	}
	return f
}

func text(v any, def string) string {
	switch x := v.(type) {
	case string:
		if s := normalization.Label(x); s != "" {
			return s
		}
	case json.Number:
		return x.String()
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	}
	return def
}

// firstPresent returns the first key of obj holding a non-nil value.
func firstPresent(obj map[string]any, keys ...string) any {
	for _, k := range keys {
		if v, ok := obj[k]; ok && v != nil {
			return v
		}
	}
	return nil
}
