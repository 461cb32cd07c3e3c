package compare

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/pollux-motors/showroom/internal/model"
)

// Fields is a loosely typed entity, such as a decoded JSON object, that
// resolves dotted keys one level deep ("specs.speed").
type Fields map[string]any

// Attribute implements Entity.
func (f Fields) Attribute(key string) (model.Measure, bool) {
	head, tail, nested := strings.Cut(key, ".")
	v, ok := f[head]
	if !ok {
		return model.Measure{}, false
	}
	if nested {
		inner, ok := asMap(v)
		if !ok {
			return model.Measure{}, false
		}
		if v, ok = inner[tail]; !ok {
			return model.Measure{}, false
		}
	}

	s, ok := displayString(v)
	if !ok || s == "" {
		return model.Measure{}, false
	}
	return model.ParseMeasure(s), true
}

func asMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case Fields:
		return m, true
	}
	return nil, false
}

func displayString(v any) (string, bool) {
	switch t := v.(type) {
	case nil:
		return "", false
	case string:
		return t, true
	case json.Number:
		return t.String(), true
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), true
	case int:
		return strconv.Itoa(t), true
	case int64:
		return strconv.FormatInt(t, 10), true
	case bool:
		return strconv.FormatBool(t), true
	case map[string]any, []any:
		return "", false
	}
	return fmt.Sprint(v), true
}
