package devserver

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/dmitrijs2005/giftshop/internal/cryptox"
)

// Demo account seeded by NewAccounts.
const (
	DemoEmail    = "test@kakao.com"
	DemoName     = "테스트"
	DemoPassword = "password1"
)

var (
	ErrBadCredentials = errors.New("bad credentials")
	ErrAccountExists  = errors.New("account already exists")
)

type Account struct {
	Email string
	Name  string
	hash  []byte
}

// Accounts keeps bcrypt-hashed shopper accounts in memory.
type Accounts struct {
	mu      sync.RWMutex
	byEmail map[string]Account
}

// NewAccounts returns a store holding the demo account.
func NewAccounts() (*Accounts, error) {
	a := &Accounts{byEmail: make(map[string]Account)}
	if err := a.Register(DemoEmail, DemoName, DemoPassword); err != nil {
		return nil, err
	}
	return a, nil
}

func (a *Accounts) Register(email, name, password string) error {
	key := strings.ToLower(strings.TrimSpace(email))

	hash, err := cryptox.HashPassword([]byte(password))
	if err != nil {
		return fmt.Errorf("failed to register account [%s]: %w", key, err)
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if _, ok := a.byEmail[key]; ok {
		return ErrAccountExists
	}
	a.byEmail[key] = Account{Email: key, Name: name, hash: hash}
	return nil
}

// Authenticate returns the account for email when password matches. Unknown
// addresses and wrong passwords are indistinguishable to the caller.
func (a *Accounts) Authenticate(email, password string) (Account, error) {
	key := strings.ToLower(strings.TrimSpace(email))

	a.mu.RLock()
	acc, ok := a.byEmail[key]
	a.mu.RUnlock()

	if !ok {
		return Account{}, ErrBadCredentials
	}
	if err := cryptox.CheckPassword(acc.hash, []byte(password)); err != nil {
		return Account{}, ErrBadCredentials
	}
	return acc, nil
}
