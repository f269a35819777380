package userservice

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sushihentaime/blogapi/internal/common"
)

// MemoryModel keeps users in a common.Cache. It is used for local runs and handler tests.
type MemoryModel struct {
	c *common.Cache
}

func NewMemoryModel(c *common.Cache) *MemoryModel {
	return &MemoryModel{c: c}
}

func (m *MemoryModel) insertUser(ctx context.Context, u *User) error {
	if !m.c.Add(common.CacheKeyUserByEmail(u.Email), u.ID) {
		return ErrDuplicateEmail
	}

	now := time.Now().UTC()
	u.CreatedAt = now
	u.UpdatedAt = now

	stored := *u
	stored.Password = Password{hash: u.Password.hash}
	m.c.Set(common.CacheKeyUser(u.ID), stored)

	return nil
}

func (m *MemoryModel) getUserByEmail(ctx context.Context, email string) (*User, error) {
	v, ok := m.c.Get(common.CacheKeyUserByEmail(email))
	if !ok {
		return nil, ErrNotFound
	}

	u, err := m.get(v.(uuid.UUID))
	if err != nil {
		return nil, err
	}

	return u, nil
}

func (m *MemoryModel) getUserByID(ctx context.Context, id uuid.UUID) (*User, error) {
	u, err := m.get(id)
	if err != nil {
		return nil, err
	}

	u.Password = Password{}

	return u, nil
}

func (m *MemoryModel) get(id uuid.UUID) (*User, error) {
	v, ok := m.c.Get(common.CacheKeyUser(id))
	if !ok {
		return nil, ErrNotFound
	}

	u := v.(User)
	return &u, nil
}

// LookupUser returns the public fields of a stored user. Other in-memory stores sharing the
// same cache use it to resolve authors.
func LookupUser(c *common.Cache, id uuid.UUID) (*User, bool) {
	v, ok := c.Get(common.CacheKeyUser(id))
	if !ok {
		return nil, false
	}

	u := v.(User)
	u.Password = Password{}
	return &u, true
}
