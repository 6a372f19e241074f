package models

import (
	"fmt"
	"sort"
)

// Fields is an open JSON object returned by the account endpoints
// (profile, subscription, ban status, checkout). Only the keys the client
// displays are interpreted.
type Fields map[string]any

// String returns the value under key rendered as text, or "" when absent.
func (f Fields) String(key string) string {
	v, ok := f[key]
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

// Bool returns the boolean under key. Missing or non-boolean values are false.
func (f Fields) Bool(key string) bool {
	b, _ := f[key].(bool)
	return b
}

// Keys returns the object keys in lexical order.
func (f Fields) Keys() []string {
	keys := make([]string, 0, len(f))
	for k := range f {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
