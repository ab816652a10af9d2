// Package storage persists the current user's session record as JSON under a
// single key of the local store.
package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/giftshop/internal/client/models"
	"github.com/dmitrijs2005/giftshop/internal/client/repositories/localstore"
)

// UserInfoKey is the key the session record is stored under.
const UserInfoKey = "userInfo"

// ErrInvalidRecord is returned by Get when the stored value does not
// decode into a complete UserInfo.
var ErrInvalidRecord = errors.New("invalid user info record")

type Store struct {
	items localstore.Repository
}

func New(items localstore.Repository) *Store {
	return &Store{items: items}
}

// Get returns the stored user, or nil when nothing is stored.
func (s *Store) Get(ctx context.Context) (*models.UserInfo, error) {
	raw, ok, err := s.items.GetItem(ctx, UserInfoKey)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}

	var u models.UserInfo
	if err := json.Unmarshal([]byte(raw), &u); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRecord, err)
	}
	if !u.Valid() {
		return nil, ErrInvalidRecord
	}
	return &u, nil
}

func (s *Store) Set(ctx context.Context, u models.UserInfo) error {
	b, err := json.Marshal(u)
	if err != nil {
		return err
	}
	return s.items.SetItem(ctx, UserInfoKey, string(b))
}

func (s *Store) Remove(ctx context.Context) error {
	return s.items.RemoveItem(ctx, UserInfoKey)
}
