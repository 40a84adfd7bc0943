package users

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/userauth/internal/common"
	"github.com/dmitrijs2005/userauth/internal/server/models"
)

// InMemoryRepository keeps users in process memory. The email check and the
// insert happen under one lock, so it gives the same uniqueness guarantee as
// the SQL stores.
type InMemoryRepository struct {
	mu      sync.RWMutex
	byID    map[string]*models.User
	byEmail map[string]string
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		byID:    make(map[string]*models.User),
		byEmail: make(map[string]string),
	}
}

func (r *InMemoryRepository) Create(_ context.Context, user *models.User) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byEmail[user.Email]; ok {
		return nil, common.ErrorAlreadyExists
	}
	if _, ok := r.byID[user.ID]; ok {
		return nil, common.ErrorAlreadyExists
	}

	stored := clone(user)
	r.byID[user.ID] = stored
	r.byEmail[user.Email] = user.ID

	return user, nil
}

func (r *InMemoryRepository) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[email]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return clone(r.byID[id]), nil
}

func (r *InMemoryRepository) GetUserByID(_ context.Context, id string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.byID[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return clone(u), nil
}

// Delete removes a user. Only used to simulate out-of-band removal.
func (r *InMemoryRepository) Delete(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if u, ok := r.byID[id]; ok {
		delete(r.byEmail, u.Email)
		delete(r.byID, id)
	}
}

func clone(u *models.User) *models.User {
	c := *u
	c.PasswordHash = append([]byte(nil), u.PasswordHash...)
	return &c
}
