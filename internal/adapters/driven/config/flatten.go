// Package config holds helpers shared by the configuration store adapters.
package config

import (
	"fmt"
	"sort"
	"strings"

	"github.com/mitchellh/mapstructure"
)

// Flatten converts nested maps to dot-notation keys.
// E.g., {"a": {"b": 1}} becomes {"a.b": 1}.
func Flatten(m map[string]any) map[string]any {
	result := make(map[string]any)
	flattenInto(result, m, "")
	return result
}

func flattenInto(result, m map[string]any, prefix string) {
	for key, value := range m {
		fullKey := key
		if prefix != "" {
			fullKey = prefix + "." + key
		}
		if nested, ok := value.(map[string]any); ok {
			flattenInto(result, nested, fullKey)
			continue
		}
		result[fullKey] = value
	}
}

// Unflatten is the inverse of Flatten. A key that is both a value and a
// prefix of another key is an error.
func Unflatten(flat map[string]any) (map[string]any, error) {
	keys := make([]string, 0, len(flat))
	for k := range flat {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	result := make(map[string]any)
	for _, key := range keys {
		parts := strings.Split(key, ".")
		node := result
		for _, part := range parts[:len(parts)-1] {
			child, exists := node[part]
			if !exists {
				next := make(map[string]any)
				node[part] = next
				node = next
				continue
			}
			next, ok := child.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("config key %q conflicts with %q", key, part)
			}
			node = next
		}
		leaf := parts[len(parts)-1]
		if _, ok := node[leaf].(map[string]any); ok {
			return nil, fmt.Errorf("config key %q conflicts with a section", key)
		}
		node[leaf] = flat[key]
	}
	return result, nil
}

// Decode overlays flat dot-notation values onto out, a pointer to a struct
// with mapstructure tags. Strings are converted to numbers and booleans
// where the target field needs it.
func Decode(flat map[string]any, out any) error {
	nested, err := Unflatten(flat)
	if err != nil {
		return err
	}
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           out,
	})
	if err != nil {
		return fmt.Errorf("creating config decoder: %w", err)
	}
	if err := decoder.Decode(nested); err != nil {
		return fmt.Errorf("decoding config: %w", err)
	}
	return nil
}
