package validation

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// coerce converts a present raw leaf into its normalized Go value and
// reports a type violation when it cannot.
func (w *walk) coerce(n *Node, path string, raw any) (any, bool) {
	typeErr := func() (any, bool) {
		w.report(path, KindType, fmt.Sprintf("%s must be %s.", n.Label, n.Type))
		return nil, false
	}

	switch n.Type {
	case TypeString:
		s, ok := raw.(string)
		if !ok {
			return typeErr()
		}
		s = strings.TrimSpace(s)
		return w.canonical(n, path, s)

	case TypeInteger:
		f, ok := toNumber(raw)
		if !ok || f != math.Trunc(f) || math.IsInf(f, 0) {
			return typeErr()
		}
		// int(f) is platform-defined outside the int32 range, so such values
		// are judged by the node's range constraints while still a float.
		if f > math.MaxInt32 || f < math.MinInt32 {
			if !w.check(n, path, f) {
				return nil, false
			}
			return typeErr()
		}
		return int(f), true

	case TypeFloat:
		f, ok := toNumber(raw)
		if !ok || math.IsInf(f, 0) {
			return typeErr()
		}
		return f, true

	case TypeBoolean:
		b, ok := raw.(bool)
		if !ok {
			return typeErr()
		}
		return b, true

	case TypeDate:
		s, ok := raw.(string)
		if !ok {
			return typeErr()
		}
		d, ok := parseDate(strings.TrimSpace(s))
		if !ok {
			return typeErr()
		}
		return d, true
	}

	return typeErr()
}

// canonical maps an enum value to its declared spelling. Strings without an
// enum constraint pass through unchanged.
func (w *walk) canonical(n *Node, path, s string) (any, bool) {
	for _, c := range n.Constraints {
		if c.Kind != ConstraintEnum {
			continue
		}
		for _, v := range c.Values {
			if strings.EqualFold(v, s) {
				return v, true
			}
		}

		quoted := make([]string, len(c.Values))
		for i, v := range c.Values {
			quoted[i] = "'" + v + "'"
		}
		w.report(path, KindEnum, pick(c.Message,
			fmt.Sprintf("%s must be one of %s", n.Label, strings.Join(quoted, ", "))))
		return nil, false
	}
	return s, true
}

// toNumber accepts JSON numbers in any of the forms a decoder may produce,
// plus numeric strings sent by HTML forms.
func toNumber(raw any) (float64, bool) {
	switch x := raw.(type) {
	case float64:
		return x, !math.IsNaN(x)
	case float32:
		return float64(x), true
	case int:
		return float64(x), true
	case int64:
		return float64(x), true
	case int32:
		return float64(x), true
	case json.Number:
		f, err := x.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		return f, err == nil && !math.IsNaN(f)
	default:
		return 0, false
	}
}

func toFloat(val any) float64 {
	switch x := val.(type) {
	case int:
		return float64(x)
	case float64:
		return x
	default:
		return math.NaN()
	}
}

// parseDate accepts a calendar date or an RFC 3339 timestamp and returns the
// calendar date as UTC midnight. time.Parse rejects impossible dates such as
// 2023-02-30.
func parseDate(s string) (time.Time, bool) {
	if d, err := time.Parse(dateLayout, s); err == nil {
		return d, true
	}
	if ts, err := time.Parse(time.RFC3339, s); err == nil {
		y, m, d := ts.Date()
		return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), true
	}
	return time.Time{}, false
}
