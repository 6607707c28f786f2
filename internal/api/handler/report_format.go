package handler

import (
	"strconv"
	"strings"
)

// FormatMetric renders a raw metric value for display. The unit is inferred
// from the metric name by convention:
//
//   - names ending in Rate, Margin, Efficiency or Uptime are percentages
//   - names ending in Time are day counts
//   - everything else is a plain number
//
// Values above 1000 get thousands separators. The aggregator itself never
// formats; this is strictly a presentation concern.
func FormatMetric(name string, value float64) string {
	switch {
	case hasAnySuffix(name, "Rate", "Margin", "Efficiency", "Uptime"):
		return formatNumber(value) + "%"
	case strings.HasSuffix(name, "Time"):
		return formatNumber(value) + " days"
	default:
		return formatNumber(value)
	}
}

func hasAnySuffix(s string, suffixes ...string) bool {
	for _, suffix := range suffixes {
		if strings.HasSuffix(s, suffix) {
			return true
		}
	}
	return false
}

// formatNumber renders value without scientific notation, trimming
// insignificant fraction digits and inserting thousands separators above 1000.
func formatNumber(v float64) string {
	s := strconv.FormatFloat(v, 'f', 2, 64)
	s = strings.TrimRight(s, "0")
	s = strings.TrimRight(s, ".")
	if s == "" || s == "-" {
		s = "0"
	}
	if v > 1000 || v < -1000 {
		s = groupThousands(s)
	}
	return s
}

// groupThousands inserts commas into the integer part of a decimal string.
func groupThousands(s string) string {
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	intPart, fracPart, hasFrac := strings.Cut(s, ".")

	var b strings.Builder
	lead := len(intPart) % 3
	if lead > 0 {
		b.WriteString(intPart[:lead])
	}
	for i := lead; i < len(intPart); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(intPart[i : i+3])
	}

	out := b.String()
	if hasFrac {
		out += "." + fracPart
	}
	if neg {
		out = "-" + out
	}
	return out
}
