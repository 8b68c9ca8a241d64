package store

import (
	"context"
	"encoding/json"
	"errors"
)

// GetJSON decodes the blob at key into v. A missing key leaves v untouched
// and reports found=false. Undecodable data is a *PersistenceError.
func GetJSON(ctx context.Context, kv KV, key string, v any) (found bool, err error) {
	data, err := kv.Get(ctx, key)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return false, &PersistenceError{Op: "decode", Key: key, Err: err}
	}
	return true, nil
}

// SetJSON serializes v and stores it under key.
func SetJSON(ctx context.Context, kv KV, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return &PersistenceError{Op: "encode", Key: key, Err: err}
	}
	return kv.Set(ctx, key, data)
}
