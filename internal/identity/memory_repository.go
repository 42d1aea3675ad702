package identity

import (
    "context"
    "strings"
    "sync"
)

// memoryRepository keys accounts by lowercased email, matching the unique
// index on lower(email) in Postgres.
type memoryRepository struct {
    mu       sync.RWMutex
    accounts map[string]Account
}

// NewMemoryRepository builds an in-memory account store for tests and local runs.
func NewMemoryRepository() Repository {
    return &memoryRepository{accounts: make(map[string]Account)}
}

func (r *memoryRepository) Create(_ context.Context, account Account) error {
    r.mu.Lock()
    defer r.mu.Unlock()
    key := strings.ToLower(account.Email)
    if _, exists := r.accounts[key]; exists {
        return ErrEmailInUse
    }
    r.accounts[key] = account
    return nil
}

func (r *memoryRepository) FindByEmail(_ context.Context, email string) (Account, error) {
    r.mu.RLock()
    defer r.mu.RUnlock()
    account, ok := r.accounts[strings.ToLower(email)]
    if !ok {
        return Account{}, ErrAccountNotFound
    }
    return account, nil
}
