package auth

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/omar-zaman/omam-fms/internal/platform/httpx"
)

type memoryRepo struct {
	users  map[string]*User
	nextID int64
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{users: make(map[string]*User)}
}

func (r *memoryRepo) FindByUsername(ctx context.Context, username string) (*User, error) {
	if u, ok := r.users[username]; ok {
		copied := *u
		return &copied, nil
	}
	return nil, httpx.ErrNotFound
}

func (r *memoryRepo) FindByID(ctx context.Context, id int64) (*User, error) {
	for _, u := range r.users {
		if u.ID == id {
			copied := *u
			return &copied, nil
		}
	}
	return nil, httpx.ErrNotFound
}

func (r *memoryRepo) Create(ctx context.Context, user User) (*User, error) {
	if _, ok := r.users[user.Username]; ok {
		return nil, fmt.Errorf("%w: username already exists", httpx.ErrDuplicate)
	}
	r.nextID++
	user.ID = r.nextID
	r.users[user.Username] = &user
	return &user, nil
}

func TestRegisterAndAuthenticate(t *testing.T) {
	svc := NewService(newMemoryRepo())
	ctx := context.Background()

	created, err := svc.Register(ctx, "admin", "admin123", "")
	require.NoError(t, err)
	require.Equal(t, RoleAdmin, created.Role)
	require.NotEqual(t, "admin123", created.PasswordHash)

	user, err := svc.Authenticate(ctx, "admin", "admin123")
	require.NoError(t, err)
	require.Equal(t, created.ID, user.ID)
}

func TestAuthenticateWrongPassword(t *testing.T) {
	svc := NewService(newMemoryRepo())
	ctx := context.Background()

	_, err := svc.Register(ctx, "admin", "admin123", "")
	require.NoError(t, err)

	_, err = svc.Authenticate(ctx, "admin", "wrong")
	require.ErrorIs(t, err, httpx.ErrUnauthorized)
}

func TestAuthenticateUnknownUser(t *testing.T) {
	svc := NewService(newMemoryRepo())

	_, err := svc.Authenticate(context.Background(), "ghost", "whatever")
	require.ErrorIs(t, err, httpx.ErrUnauthorized)
}

func TestRegisterRejectsEmptyCredentials(t *testing.T) {
	svc := NewService(newMemoryRepo())

	_, err := svc.Register(context.Background(), "  ", "pw", "")
	require.ErrorIs(t, err, httpx.ErrValidation)

	_, err = svc.Register(context.Background(), "user", "", "")
	require.ErrorIs(t, err, httpx.ErrValidation)
}

func TestRegisterDuplicateUsername(t *testing.T) {
	svc := NewService(newMemoryRepo())
	ctx := context.Background()

	_, err := svc.Register(ctx, "admin", "admin123", "")
	require.NoError(t, err)

	_, err = svc.Register(ctx, "admin", "other", "")
	require.ErrorIs(t, err, httpx.ErrDuplicate)
}
