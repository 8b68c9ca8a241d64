package identity

import (
	"context"
	"fmt"

	"github.com/cleared-dev/bizledger/internal/model"
	"github.com/cleared-dev/bizledger/internal/store"
)

// LoadCurrent returns the signed-in user, or nil when nobody is.
func LoadCurrent(ctx context.Context, kv store.KV) (*model.User, error) {
	var u model.User
	found, err := store.GetJSON(ctx, kv, store.KeyCurrentUser, &u)
	if err != nil {
		return nil, fmt.Errorf("loading current user: %w", err)
	}
	if !found {
		return nil, nil
	}
	return &u, nil
}

func SaveCurrent(ctx context.Context, kv store.KV, u model.User) error {
	if err := store.SetJSON(ctx, kv, store.KeyCurrentUser, u); err != nil {
		return fmt.Errorf("saving current user: %w", err)
	}
	return nil
}

func ClearCurrent(ctx context.Context, kv store.KV) error {
	return kv.Delete(ctx, store.KeyCurrentUser)
}
