package api

import (
	"bytes"
	"encoding/json"
)

// unwrapData returns X for {"data": X} and raw unchanged otherwise.
func unwrapData(raw json.RawMessage) json.RawMessage {
	var env map[string]json.RawMessage
	if err := json.Unmarshal(raw, &env); err != nil {
		return raw
	}
	if d, ok := env["data"]; ok {
		return d
	}
	return raw
}

// decodeObject decodes a bare or data-wrapped object into T.
func decodeObject[T any](raw json.RawMessage) (T, error) {
	var out T
	err := json.Unmarshal(unwrapData(raw), &out)
	return out, err
}

// decodeList accepts a bare array or an object holding the array under one
// of keys. A missing or null list decodes as empty, never nil.
func decodeList[T any](raw json.RawMessage, keys ...string) ([]T, error) {
	trimmed := bytes.TrimSpace(raw)

	if len(trimmed) > 0 && trimmed[0] == '[' {
		return unmarshalList[T](trimmed)
	}

	var env map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &env); err != nil {
		return nil, err
	}
	for _, k := range keys {
		if v, ok := env[k]; ok {
			return unmarshalList[T](v)
		}
	}
	return []T{}, nil
}

func unmarshalList[T any](raw json.RawMessage) ([]T, error) {
	var out []T
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []T{}
	}
	return out, nil
}
