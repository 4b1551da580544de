package normalizer

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Lookup helpers over the untyped webhook payload. Every intermediate step
// tolerates a missing or nil node and yields the zero value; only a node that
// is present with the wrong type is reported as an error, which fails the
// whole order.

// mapAt walks nested maps along keys. A missing intermediate yields nil; a
// non-map intermediate is an error.
func mapAt(m map[string]any, keys ...string) (map[string]any, error) {
	current := m
	for _, key := range keys {
		if current == nil {
			return nil, nil
		}
		value, ok := current[key]
		if !ok || value == nil {
			return nil, nil
		}
		next, ok := value.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("field %q is not an object", key)
		}
		current = next
	}
	return current, nil
}

// sliceAt reads a list-valued field. Missing yields nil.
func sliceAt(m map[string]any, key string) ([]any, error) {
	if m == nil {
		return nil, nil
	}
	value, ok := m[key]
	if !ok || value == nil {
		return nil, nil
	}
	list, ok := value.([]any)
	if !ok {
		return nil, fmt.Errorf("field %q is not a list", key)
	}
	return list, nil
}

// stringAt reads a string-valued field. Missing yields "".
func stringAt(m map[string]any, key string) (string, error) {
	if m == nil {
		return "", nil
	}
	value, ok := m[key]
	if !ok || value == nil {
		return "", nil
	}
	s, ok := value.(string)
	if !ok {
		return "", fmt.Errorf("field %q is not a string", key)
	}
	return s, nil
}

// intAt reads an integer-valued field, tolerating the representations JSON
// decoding can produce (float64, json.Number, numeric string). Missing yields
// the provided default.
func intAt(m map[string]any, key string, defaultValue int64) (int64, error) {
	if m == nil {
		return defaultValue, nil
	}
	value, ok := m[key]
	if !ok || value == nil {
		return defaultValue, nil
	}

	switch v := value.(type) {
	case float64:
		return int64(v), nil
	case int64:
		return v, nil
	case int:
		return int64(v), nil
	case json.Number:
		n, err := v.Int64()
		if err != nil {
			return 0, fmt.Errorf("field %q is not an integer: %w", key, err)
		}
		return n, nil
	case string:
		n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		if err != nil {
			return 0, fmt.Errorf("field %q is not an integer: %w", key, err)
		}
		return n, nil
	default:
		return 0, fmt.Errorf("field %q is not an integer", key)
	}
}

// floatAt reads a float-valued field with the same tolerance as intAt.
// Missing yields 0.
func floatAt(m map[string]any, key string) (float64, error) {
	if m == nil {
		return 0, nil
	}
	value, ok := m[key]
	if !ok || value == nil {
		return 0, nil
	}

	switch v := value.(type) {
	case float64:
		return v, nil
	case int:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return 0, fmt.Errorf("field %q is not a number: %w", key, err)
		}
		return f, nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, fmt.Errorf("field %q is not a number: %w", key, err)
		}
		return f, nil
	default:
		return 0, fmt.Errorf("field %q is not a number", key)
	}
}

// moneyAt reads the storefront money shape {key: {value: ...}}. A missing
// wrapper or value yields 0.
func moneyAt(m map[string]any, key string) (float64, error) {
	wrapper, err := mapAt(m, key)
	if err != nil {
		return 0, err
	}
	return floatAt(wrapper, "value")
}
