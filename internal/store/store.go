// Package store holds the key-value backends that persist serialized blobs.
package store

import (
	"context"
	"errors"
	"fmt"
)

// Keys used by the application.
const (
	KeyCurrentUser  = "finance-app-user"
	KeyUsers        = "finance-app-users"
	KeyTransactions = "business-expenses"
)

// ErrNotFound is returned by Get for a key that was never set.
var ErrNotFound = errors.New("key not found")

// KV is a synchronous string-keyed blob store.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// PersistenceError wraps a failed read, write or decode of a stored blob.
type PersistenceError struct {
	Op  string
	Key string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence: %s %q: %v", e.Op, e.Key, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

func wrap(op, key string, err error) error {
	if err == nil || errors.Is(err, ErrNotFound) {
		return err
	}
	return &PersistenceError{Op: op, Key: key, Err: err}
}
