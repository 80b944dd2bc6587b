package vdom

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"unicode"
)

// normalizeTagProps splits a raw element property bag into classes, styles,
// handlers, data attributes and plain attributes.
func normalizeTagProps(props Props) (TagProps, error) {
	tp := TagProps{
		Style: make(map[string]string),
		On:    make(map[string]EventListener),
		Data:  make(map[string]string),
		Attrs: make(map[string]string),
	}

	// Sorted so "class" is always merged before "className".
	keys := make([]string, 0, len(props))
	for k := range props {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		v := props[k]
		switch {
		case k == "key" || k == "children":
			continue

		case k == "class" || k == "className":
			tp.Classes = appendClasses(tp.Classes, v)

		case k == "style":
			for prop, val := range normalizeStyle(v) {
				tp.Style[prop] = val
			}

		case isEventKey(k):
			l, err := toListener(v)
			if err != nil {
				return TagProps{}, newError(ErrInvalidHandler, "prop %q has type %T", k, v)
			}
			if l != nil {
				tp.On[strings.ToLower(k[2:])] = l
			}

		case isDataKey(k):
			if v == nil {
				continue
			}
			tp.Data[dataName(k)] = propToString(v)

		default:
			if val, ok := attrValue(v); ok {
				tp.Attrs[k] = val
			}
		}
	}

	return tp, nil
}

// isEventKey returns true for handler props like onClick or onclick.
func isEventKey(key string) bool {
	return len(key) > 2 && strings.HasPrefix(key, "on")
}

// isDataKey returns true for dataFoo and data-foo, but not for words that
// merely start with "data" (datetime, database).
func isDataKey(key string) bool {
	if len(key) <= 4 || !strings.HasPrefix(key, "data") {
		return false
	}
	r := rune(key[4])
	return r == '-' || unicode.IsUpper(r)
}

// dataName turns dataUserId or data-user-id into user-id.
func dataName(key string) string {
	return dashCase(strings.TrimLeft(key[4:], "-"))
}

// dashCase converts camelCase to dash-case. CSS custom properties (--x)
// and names that already contain dashes are only lower-cased where needed.
func dashCase(s string) string {
	if strings.HasPrefix(s, "--") {
		return s
	}
	var b strings.Builder
	for i, r := range s {
		if unicode.IsUpper(r) {
			if i > 0 {
				b.WriteByte('-')
			}
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func appendClasses(classes []string, v any) []string {
	switch val := v.(type) {
	case string:
		classes = append(classes, strings.Fields(val)...)
	case []string:
		for _, c := range val {
			classes = append(classes, strings.Fields(c)...)
		}
	case map[string]bool:
		names := make([]string, 0, len(val))
		for name, on := range val {
			if on {
				names = append(names, name)
			}
		}
		sort.Strings(names)
		classes = append(classes, names...)
	}
	return classes
}

// normalizeStyle accepts a map or inline CSS text and returns dash-case keys.
func normalizeStyle(v any) map[string]string {
	out := make(map[string]string)
	switch val := v.(type) {
	case map[string]string:
		for k, s := range val {
			out[dashCase(k)] = s
		}
	case map[string]any:
		for k, s := range val {
			if s == nil {
				continue
			}
			out[dashCase(k)] = propToString(s)
		}
	case string:
		for _, decl := range strings.Split(val, ";") {
			prop, value, ok := strings.Cut(decl, ":")
			if !ok {
				continue
			}
			prop = strings.TrimSpace(prop)
			if prop == "" {
				continue
			}
			out[dashCase(prop)] = strings.TrimSpace(value)
		}
	}
	return out
}

// toListener accepts the handler shapes allowed in props. A nil value is
// not an error; it means "no handler".
func toListener(v any) (EventListener, error) {
	switch h := v.(type) {
	case nil:
		return nil, nil
	case EventListener:
		return h, nil
	case func(*Event):
		if h == nil {
			return nil, nil
		}
		return HandlerFunc(h), nil
	case func():
		if h == nil {
			return nil, nil
		}
		return HandlerFunc(func(*Event) { h() }), nil
	default:
		return nil, ErrInvalidHandler
	}
}

// attrValue maps a prop to an attribute value. nil and false mean the
// attribute is absent; true renders as an empty (boolean) attribute.
func attrValue(v any) (string, bool) {
	switch val := v.(type) {
	case nil:
		return "", false
	case bool:
		return "", val
	default:
		return propToString(v), true
	}
}

// propToString converts a prop value to its attribute string.
func propToString(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case bool:
		return strconv.FormatBool(val)
	case fmt.Stringer:
		return val.String()
	}
	if s, ok := numberString(v); ok {
		return s
	}
	return fmt.Sprintf("%v", v)
}

func numberString(v any) (string, bool) {
	switch n := v.(type) {
	case int:
		return strconv.Itoa(n), true
	case int8:
		return strconv.FormatInt(int64(n), 10), true
	case int16:
		return strconv.FormatInt(int64(n), 10), true
	case int32:
		return strconv.FormatInt(int64(n), 10), true
	case int64:
		return strconv.FormatInt(n, 10), true
	case uint:
		return strconv.FormatUint(uint64(n), 10), true
	case uint8:
		return strconv.FormatUint(uint64(n), 10), true
	case uint16:
		return strconv.FormatUint(uint64(n), 10), true
	case uint32:
		return strconv.FormatUint(uint64(n), 10), true
	case uint64:
		return strconv.FormatUint(n, 10), true
	case float32:
		return strconv.FormatFloat(float64(n), 'f', -1, 32), true
	case float64:
		return strconv.FormatFloat(n, 'f', -1, 64), true
	}
	return "", false
}
