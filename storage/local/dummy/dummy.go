// Package dummy is an in-memory stand-in for the local store, for tests.
package dummy

import (
	"sync"

	"github.com/chaimtop/studygo/core/session"
)

type Repository struct {
	mu   sync.Mutex
	data map[string]string
}

var _ session.Repository = (*Repository)(nil)

func NewRepository() *Repository {
	return &Repository{data: make(map[string]string)}
}

func (repo *Repository) Get(key string) (string, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	return repo.data[key], nil
}

func (repo *Repository) Set(key, value string) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	repo.data[key] = value
	return nil
}

func (repo *Repository) Delete(key string) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	delete(repo.data, key)
	return nil
}
