package workflow

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var placeholderRe = regexp.MustCompile(`\{\{([^}]+)\}\}`)

// Interpolate replaces every {{dotted.path}} token in template with the
// value at that path in the payload. A missing path leaves the token
// verbatim so misconfigured rules surface in the output instead of failing.
func Interpolate(template string, payload map[string]any) string {
	return placeholderRe.ReplaceAllStringFunc(template, func(token string) string {
		path := strings.TrimSpace(placeholderRe.FindStringSubmatch(token)[1])
		value, ok := lookup(payload, strings.Split(path, "."))
		if !ok {
			return token
		}
		return formatValue(value)
	})
}

func lookup(payload map[string]any, path []string) (any, bool) {
	var current any = payload
	for _, key := range path {
		node, ok := current.(map[string]any)
		if !ok {
			return nil, false
		}
		current, ok = node[key]
		if !ok {
			return nil, false
		}
	}
	return current, true
}

// formatValue renders payload values the way they appeared in the source
// JSON. JSON numbers arrive as float64; whole values must not pick up an
// exponent or decimal point.
func formatValue(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int64:
		return strconv.FormatInt(t, 10)
	case int:
		return strconv.Itoa(t)
	default:
		return fmt.Sprintf("%v", t)
	}
}
