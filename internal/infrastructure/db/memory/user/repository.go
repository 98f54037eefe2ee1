package user

import (
	"cmp"
	"fmt"
	"slices"
	"sync"

	"user-directory/internal/domain/user"
)

type Repository struct {
	mu    sync.RWMutex
	users map[int64]*User
}

func NewRepository() user.Repository {
	return &Repository{users: make(map[int64]*User)}
}

func (r *Repository) Insert(u *user.User) (string, error) {
	if u == nil {
		return "", ErrInvalidUser
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[int64(u.ID)]; ok {
		return "", fmt.Errorf("user with ID %d: %w", u.ID, ErrAlreadyExists)
	}
	r.users[int64(u.ID)] = toDBModel(u)

	return u.Name, nil
}

func (r *Repository) FindByID(id user.ID) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[int64(id)]
	if !ok {
		return "", false
	}

	return u.Name + " " + u.Surname, true
}

func (r *Repository) Delete(id user.ID) (string, bool) {
	u, ok := r.Remove(id)
	if !ok {
		return "", false
	}

	return u.Name, true
}

func (r *Repository) Remove(id user.ID) (*user.User, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[int64(id)]
	if !ok {
		return nil, false
	}
	delete(r.users, int64(id))

	return fromDBModel(u), true
}

func (r *Repository) Update(id user.ID, name, surname string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[int64(id)]
	if !ok {
		return false
	}
	u.Name = name
	u.Surname = surname

	return true
}

// ListAll returns a snapshot ordered by ID.
func (r *Repository) ListAll() user.Users {
	r.mu.RLock()
	us := make(Users, 0, len(r.users))
	for _, u := range r.users {
		us = append(us, u)
	}
	out := fromDBModels(us)
	r.mu.RUnlock()

	slices.SortFunc(out, func(a, b *user.User) int {
		return cmp.Compare(a.ID, b.ID)
	})

	return out
}
