package usecase

import (
	"math"
	"strconv"
	"strings"
)

// DefaultNumber is what every numeric cell degrades to when it cannot be
// parsed. Qty, Price and sales quantities all share this policy: bad cells
// never fail a run, they count as zero.
const DefaultNumber = 0

var currencyReplacer = strings.NewReplacer(
	",", "",
	" ", "",
	"\u00a0", "",
	"$", "",
	"€", "",
	"£", "",
	"¥", "",
	"mxn", "",
	"usd", "",
	"eur", "",
)

// ParseFloatOrDefault best-effort decimal parse with DefaultNumber fallback
func ParseFloatOrDefault(raw string) float64 {
	s := strings.ToLower(strings.TrimSpace(raw))
	if s == "" {
		return DefaultNumber
	}
	s = currencyReplacer.Replace(s)

	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return DefaultNumber
	}
	return v
}

// ParseIntOrDefault integers also accept decimals, truncated toward zero ("7.9" -> 7)
func ParseIntOrDefault(raw string) int {
	s := strings.TrimSpace(raw)
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}

	v := ParseFloatOrDefault(s)
	if v > math.MaxInt32 || v < math.MinInt32 {
		return DefaultNumber
	}
	return int(v)
}

// ParsePriceOrDefault prices are non-negative
func ParsePriceOrDefault(raw string) float64 {
	v := ParseFloatOrDefault(raw)
	if v < 0 {
		return DefaultNumber
	}
	return v
}
