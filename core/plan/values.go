package plan

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// FieldError reports a missing or mistyped attribute by its path within the
// resource values, e.g. "resources[0].cores".
type FieldError struct {
	Path   string
	Reason string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Path, e.Reason)
}

// Values gives typed, defaulted access to a resource's nested attribute map.
// Terraform encodes nested blocks as lists of objects; Block reads the first
// element. Null attributes are treated as absent.
type Values struct {
	path string
	m    map[string]interface{}
}

// NewValues wraps a raw attribute map
func NewValues(m map[string]interface{}) Values {
	return Values{m: m}
}

// Raw returns the underlying map
func (v Values) Raw() map[string]interface{} {
	return v.m
}

// Path returns the path of key below v
func (v Values) Path(key string) string {
	if v.path == "" {
		return key
	}
	return v.path + "." + key
}

// Has reports whether key is present and not null
func (v Values) Has(key string) bool {
	val, ok := v.m[key]
	return ok && val != nil
}

// Block returns the nested block key. Lists yield their first element, maps
// are returned as is. ok is false when the block is absent or empty.
func (v Values) Block(key string) (Values, bool) {
	switch b := v.m[key].(type) {
	case []interface{}:
		if len(b) == 0 {
			return Values{}, false
		}
		m, ok := b[0].(map[string]interface{})
		if !ok {
			return Values{}, false
		}
		return Values{path: v.Path(key) + "[0]", m: m}, true
	case map[string]interface{}:
		return Values{path: v.Path(key), m: b}, true
	}
	return Values{}, false
}

// Dig follows a chain of blocks, stopping at the first missing one
func (v Values) Dig(keys ...string) (Values, bool) {
	cur := v
	for _, k := range keys {
		next, ok := cur.Block(k)
		if !ok {
			return Values{}, false
		}
		cur = next
	}
	return cur, true
}

// Blocks returns every element of a list block, or every value of a map of
// objects ordered by key.
func (v Values) Blocks(key string) []Values {
	var out []Values
	switch b := v.m[key].(type) {
	case []interface{}:
		for i, item := range b {
			if m, ok := item.(map[string]interface{}); ok {
				out = append(out, Values{path: fmt.Sprintf("%s[%d]", v.Path(key), i), m: m})
			}
		}
	case map[string]interface{}:
		names := make([]string, 0, len(b))
		for name := range b {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			if m, ok := b[name].(map[string]interface{}); ok {
				out = append(out, Values{path: v.Path(key) + "." + name, m: m})
			}
		}
	}
	return out
}

// String returns a string attribute or def
func (v Values) String(key, def string) string {
	switch s := v.m[key].(type) {
	case string:
		return s
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(s)
	}
	return def
}

// Float returns a numeric attribute or def. Numeric strings are accepted.
func (v Values) Float(key string, def float64) float64 {
	if f, ok := toFloat(v.m[key]); ok {
		return f
	}
	return def
}

// Int returns a numeric attribute truncated to int, or def
func (v Values) Int(key string, def int) int {
	if f, ok := toFloat(v.m[key]); ok {
		return int(f)
	}
	return def
}

// Bool returns a boolean attribute or def
func (v Values) Bool(key string, def bool) bool {
	switch b := v.m[key].(type) {
	case bool:
		return b
	case string:
		if parsed, err := strconv.ParseBool(b); err == nil {
			return parsed
		}
	}
	return def
}

// RequireFloat returns a numeric attribute or a FieldError when it is absent
// or not a number.
func (v Values) RequireFloat(key string) (float64, error) {
	raw, ok := v.m[key]
	if !ok || raw == nil {
		return 0, &FieldError{Path: v.Path(key), Reason: "required attribute is missing"}
	}
	f, ok := toFloat(raw)
	if !ok {
		return 0, &FieldError{Path: v.Path(key), Reason: fmt.Sprintf("expected a number, got %T", raw)}
	}
	return f, nil
}

// RequireString returns a non-empty string attribute or a FieldError
func (v Values) RequireString(key string) (string, error) {
	s := v.String(key, "")
	if s == "" {
		return "", &FieldError{Path: v.Path(key), Reason: "required attribute is missing"}
	}
	return s, nil
}

// RequireBlock returns a nested block or a FieldError. On error the returned
// Values is empty but keeps the block's path.
func (v Values) RequireBlock(key string) (Values, error) {
	b, ok := v.Block(key)
	if !ok {
		return Values{path: v.Path(key)}, &FieldError{Path: v.Path(key), Reason: "required block is missing"}
	}
	return b, nil
}

// IsEmpty reports whether v holds no attribute map
func (v Values) IsEmpty() bool {
	return v.m == nil
}

func toFloat(raw interface{}) (float64, bool) {
	switch n := raw.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		return f, err == nil
	}
	return 0, false
}
