package user

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type memoryRepo struct {
	users map[string]*User
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{users: make(map[string]*User)}
}

func (r *memoryRepo) CreateUser(_ context.Context, u *User) error {
	if _, ok := r.users[u.Email]; ok {
		return errors.New("email already registered")
	}
	r.users[u.Email] = u
	return nil
}

func (r *memoryRepo) GetUserByEmail(_ context.Context, email string) (*User, error) {
	u, ok := r.users[email]
	if !ok {
		return nil, errors.New("user not found")
	}
	return u, nil
}

func (r *memoryRepo) GetUserByID(_ context.Context, id string) (*User, error) {
	for _, u := range r.users {
		if u.ID.String() == id {
			return u, nil
		}
	}
	return nil, errors.New("user not found")
}

func TestRegisterUser(t *testing.T) {
	svc := NewService(newMemoryRepo())

	u, err := svc.RegisterUser(context.Background(), RegisterRequest{
		Email:    "Mutale@Example.com",
		Password: "s3cret-pass",
		Role:     "provider",
	})
	require.NoError(t, err)

	assert.Equal(t, "mutale@example.com", u.Email)
	assert.Equal(t, RoleProvider, u.Role)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("s3cret-pass")))
}

func TestRegisterUserDefaultsToCustomer(t *testing.T) {
	svc := NewService(newMemoryRepo())

	u, err := svc.RegisterUser(context.Background(), RegisterRequest{
		Email:    "chanda@example.com",
		Password: "s3cret-pass",
	})
	require.NoError(t, err)
	assert.Equal(t, RoleCustomer, u.Role)
}

func TestRegisterUserRejectsAdminRole(t *testing.T) {
	svc := NewService(newMemoryRepo())

	_, err := svc.RegisterUser(context.Background(), RegisterRequest{
		Email:    "wouldbe@example.com",
		Password: "s3cret-pass",
		Role:     "ADMIN",
	})
	assert.ErrorContains(t, err, "cannot be self-registered")
}

func TestRegisterUserRejectsBadInput(t *testing.T) {
	svc := NewService(newMemoryRepo())

	cases := []struct {
		name string
		req  RegisterRequest
	}{
		{"missing email", RegisterRequest{Password: "s3cret-pass"}},
		{"short password", RegisterRequest{Email: "a@example.com", Password: "short"}},
		{"unknown role", RegisterRequest{Email: "a@example.com", Password: "s3cret-pass", Role: "SUPERUSER"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.RegisterUser(context.Background(), tc.req)
			assert.Error(t, err)
		})
	}
}
