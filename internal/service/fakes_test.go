package service_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/jesusfb/carmu-api/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func mustParseUUID(t *testing.T, s string) uuid.UUID {
	t.Helper()
	id, err := uuid.Parse(s)
	require.NoError(t, err)
	return id
}

// ── In-memory UserRepository ─────────────────────────────────────────────────

type fakeUserRepo struct {
	users map[uuid.UUID]*model.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]*model.User)}
}

func (r *fakeUserRepo) seed(name, email, role string) *model.User {
	u := &model.User{
		ID:           uuid.New(),
		Name:         name,
		Email:        strings.ToLower(email),
		PasswordHash: "$2a$12$invalid",
		Role:         role,
		Enabled:      true,
		CreatedAt:    time.Now(),
	}
	r.users[u.ID] = u
	return u
}

func (r *fakeUserRepo) Create(_ context.Context, u *model.User) error {
	for _, existing := range r.users {
		if existing.Email == u.Email {
			return gorm.ErrDuplicatedKey
		}
	}
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	u.CreatedAt = time.Now()
	r.users[u.ID] = u
	return nil
}

func (r *fakeUserRepo) FindByID(_ context.Context, id uuid.UUID) (*model.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return u, nil
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range r.users {
		if u.Email == strings.ToLower(email) {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) FindByIDs(_ context.Context, ids []uuid.UUID) ([]model.User, error) {
	var out []model.User
	for _, id := range ids {
		if u, ok := r.users[id]; ok {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (r *fakeUserRepo) List(_ context.Context) ([]model.User, error) {
	var out []model.User
	for _, u := range r.users {
		out = append(out, *u)
	}
	return out, nil
}

func (r *fakeUserRepo) Update(_ context.Context, u *model.User) error {
	for id, existing := range r.users {
		if id != u.ID && existing.Email == u.Email {
			return gorm.ErrDuplicatedKey
		}
	}
	r.users[u.ID] = u
	return nil
}

func (r *fakeUserRepo) Disable(_ context.Context, id uuid.UUID) error {
	u, ok := r.users[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	u.Enabled = false
	return nil
}
