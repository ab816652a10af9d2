// Package session holds the logged-in user for the lifetime of the CLI.
//
// A Store is created once at startup from the persisted record and handed
// to every component that needs the user; there is no package-level state.
// Login and Logout write storage first and memory second while holding the
// store lock, so readers never observe the two disagreeing.
package session

import (
	"context"
	"errors"
	"sync"

	"github.com/dmitrijs2005/giftshop/internal/client/models"
	"github.com/dmitrijs2005/giftshop/internal/client/storage"
	"github.com/dmitrijs2005/giftshop/internal/logging"
)

// Persister is the subset of storage.Store the session needs.
type Persister interface {
	Get(ctx context.Context) (*models.UserInfo, error)
	Set(ctx context.Context, u models.UserInfo) error
	Remove(ctx context.Context) error
}

// ErrInvalidUser is returned by Login for an incomplete record.
var ErrInvalidUser = errors.New("incomplete user info")

type Store struct {
	mu        sync.RWMutex
	user      *models.UserInfo
	persist   Persister
	logger    logging.Logger
	listeners map[int]func(*models.UserInfo)
	nextID    int
}

// New loads the persisted user. An invalid stored record is removed and the
// session starts logged out; read failures are logged and also start logged out.
func New(ctx context.Context, p Persister, logger logging.Logger) *Store {
	s := &Store{persist: p, logger: logger, listeners: make(map[int]func(*models.UserInfo))}

	u, err := p.Get(ctx)
	switch {
	case errors.Is(err, storage.ErrInvalidRecord):
		logger.Warn(ctx, "discarding invalid stored session", "error", err)
		if err := p.Remove(ctx); err != nil {
			logger.Error(ctx, "failed to remove invalid session", "error", err)
		}
	case err != nil:
		logger.Error(ctx, "failed to read stored session", "error", err)
	default:
		s.user = u
	}
	return s
}

// User returns a copy of the current user, or nil when logged out.
func (s *Store) User() *models.UserInfo {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

func (s *Store) IsLoggedIn() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user != nil
}

// Token returns the bearer token, or "" when logged out.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return ""
	}
	return s.user.AuthToken
}

// Login replaces the current user. Memory is left untouched if persisting fails.
func (s *Store) Login(ctx context.Context, u models.UserInfo) error {
	if !u.Valid() {
		return ErrInvalidUser
	}

	s.mu.Lock()
	if err := s.persist.Set(ctx, u); err != nil {
		s.mu.Unlock()
		return err
	}
	s.user = &u
	listeners := s.snapshotListeners()
	s.mu.Unlock()

	s.logger.Info(ctx, "logged in", "email", u.Email)
	notify(listeners, &u)
	return nil
}

// Logout clears the user from storage and memory.
func (s *Store) Logout(ctx context.Context) error {
	s.mu.Lock()
	if err := s.persist.Remove(ctx); err != nil {
		s.mu.Unlock()
		return err
	}
	s.user = nil
	listeners := s.snapshotListeners()
	s.mu.Unlock()

	s.logger.Info(ctx, "logged out")
	notify(listeners, nil)
	return nil
}

// Subscribe registers fn to be called after every login and logout with the
// new user (nil on logout). The returned func unregisters it.
func (s *Store) Subscribe(fn func(*models.UserInfo)) (cancel func()) {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.listeners, id)
			s.mu.Unlock()
		})
	}
}

func (s *Store) snapshotListeners() []func(*models.UserInfo) {
	out := make([]func(*models.UserInfo), 0, len(s.listeners))
	for _, fn := range s.listeners {
		out = append(out, fn)
	}
	return out
}

func notify(listeners []func(*models.UserInfo), u *models.UserInfo) {
	for _, fn := range listeners {
		if u == nil {
			fn(nil)
			continue
		}
		cp := *u
		fn(&cp)
	}
}
