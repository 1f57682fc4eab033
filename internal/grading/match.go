package grading

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"
)

// Match reports whether a submitted answer equals the answer key.
//
// Both sides are decoded JSON values compared structurally: arrays are
// order-sensitive, object key order is irrelevant, and no coercion happens
// between types ("1" never equals 1). JSON numbers compare by value, so 1 and
// 1.0 are equal.
func Match(key, submitted json.RawMessage) (bool, error) {
	k, err := decode(key)
	if err != nil {
		return false, fmt.Errorf("grading: answer key: %w", err)
	}
	s, err := decode(submitted)
	if err != nil {
		// malformed submissions are simply wrong
		return false, nil
	}
	return reflect.DeepEqual(k, s), nil
}

func decode(raw json.RawMessage) (any, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return nil, nil
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, err
	}
	return v, nil
}
