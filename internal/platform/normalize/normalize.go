// Package normalize coerces scraped values into the types persisted by the store.
package normalize

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/riskibarqy/matchday-feed/internal/platform/logging"
)

const (
	Unknown     = "Unknown"
	Undisclosed = "Undisclosed"
)

// Normalizer logs every default substitution at debug level.
type Normalizer struct {
	logger *logging.Logger
}

func New(logger *logging.Logger) *Normalizer {
	if logger == nil {
		logger = logging.Default()
	}
	return &Normalizer{logger: logger.Named("normalize")}
}

// Int converts v to an int, falling back to 0.
func (n *Normalizer) Int(v any) int {
	return n.IntOr(v, 0)
}

func (n *Normalizer) IntOr(v any, fallback int) int {
	out, ok := ToIntOK(v)
	if ok {
		return out
	}
	n.logger.Debug("int default substituted", "input", fmt.Sprintf("%v", v), "default", fallback)
	return fallback
}

// StringOr trims v and substitutes fallback when nothing remains.
func (n *Normalizer) StringOr(v any, fallback string) string {
	out := ToCleanString(v)
	if out != "" {
		return out
	}
	if fallback != "" {
		n.logger.Debug("string default substituted", "default", fallback)
	}
	return fallback
}

// ToInt never fails: unparseable input yields 0.
func ToInt(v any) int {
	out, _ := ToIntOK(v)
	return out
}

// ToIntOK reports whether v held a usable integer.
// Strings are stripped of every character other than digits and '-' before parsing,
// so "€23M" yields 23. Floats are floored; NaN and infinities are rejected.
func ToIntOK(v any) (int, bool) {
	switch value := v.(type) {
	case nil:
		return 0, false
	case int:
		return value, true
	case int8:
		return int(value), true
	case int16:
		return int(value), true
	case int32:
		return int(value), true
	case int64:
		return int(value), true
	case uint:
		return int(value), true
	case uint8:
		return int(value), true
	case uint16:
		return int(value), true
	case uint32:
		return int(value), true
	case uint64:
		return int(value), true
	case float32:
		return floatToInt(float64(value))
	case float64:
		return floatToInt(value)
	case bool:
		if value {
			return 1, true
		}
		return 0, true
	case string:
		return parseDigits(value)
	case []byte:
		return parseDigits(string(value))
	case fmt.Stringer:
		return parseDigits(value.String())
	default:
		return parseDigits(fmt.Sprintf("%v", value))
	}
}

// ToCleanString trims strings and renders anything else in display form; nil is "".
func ToCleanString(v any) string {
	switch value := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(value)
	case []byte:
		return strings.TrimSpace(string(value))
	case fmt.Stringer:
		return strings.TrimSpace(value.String())
	default:
		return strings.TrimSpace(fmt.Sprintf("%v", value))
	}
}

// FirstLine returns the first non-empty trimmed line of s.
func FirstLine(s string) string {
	for _, line := range strings.Split(s, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			return trimmed
		}
	}
	return ""
}

// CollapseSpaces squeezes internal whitespace runs to single spaces.
func CollapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func floatToInt(f float64) (int, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return int(math.Floor(f)), true
}

// parseDigits mirrors a lenient integer parse: keep digits and '-', then read an
// optional leading sign followed by the longest digit run.
func parseDigits(raw string) (int, bool) {
	var kept strings.Builder
	for _, r := range strings.TrimSpace(raw) {
		if (r >= '0' && r <= '9') || r == '-' {
			kept.WriteRune(r)
		}
	}
	cleaned := kept.String()
	if cleaned == "" {
		return 0, false
	}

	negative := false
	if cleaned[0] == '-' {
		negative = true
		cleaned = cleaned[1:]
	}
	end := 0
	for end < len(cleaned) && cleaned[end] >= '0' && cleaned[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0, false
	}

	out, err := strconv.Atoi(cleaned[:end])
	if err != nil {
		return 0, false
	}
	if negative {
		out = -out
	}
	return out, true
}
