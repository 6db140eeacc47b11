package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/lusakatech/rentiva-backend/internal/modules/user"
)

type memoryUserRepo struct {
	users map[string]*user.User
}

func (r *memoryUserRepo) CreateUser(_ context.Context, u *user.User) error {
	r.users[u.Email] = u
	return nil
}

func (r *memoryUserRepo) GetUserByEmail(_ context.Context, email string) (*user.User, error) {
	u, ok := r.users[email]
	if !ok {
		return nil, errors.New("user not found")
	}
	return u, nil
}

func (r *memoryUserRepo) GetUserByID(_ context.Context, id string) (*user.User, error) {
	for _, u := range r.users {
		if u.ID.String() == id {
			return u, nil
		}
	}
	return nil, errors.New("user not found")
}

func seedUser(t *testing.T, repo *memoryUserRepo, email, password string, role user.Role) *user.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	u := &user.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
	}
	require.NoError(t, repo.CreateUser(context.Background(), u))
	return u
}

func TestLoginAndParseToken(t *testing.T) {
	repo := &memoryUserRepo{users: make(map[string]*user.User)}
	u := seedUser(t, repo, "mutale@example.com", "s3cret-pass", user.RoleProvider)
	svc := NewService(repo, "test-signing-key")

	token, err := svc.Login(context.Background(), "mutale@example.com", "s3cret-pass")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	p, err := svc.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, u.ID, p.ID)
	assert.Equal(t, user.RoleProvider, p.Role)
}

func TestLoginWrongPassword(t *testing.T) {
	repo := &memoryUserRepo{users: make(map[string]*user.User)}
	seedUser(t, repo, "mutale@example.com", "s3cret-pass", user.RoleCustomer)
	svc := NewService(repo, "test-signing-key")

	_, err := svc.Login(context.Background(), "mutale@example.com", "wrong")
	assert.EqualError(t, err, "invalid credentials")
}

func TestLoginUnknownEmail(t *testing.T) {
	repo := &memoryUserRepo{users: make(map[string]*user.User)}
	svc := NewService(repo, "test-signing-key")

	_, err := svc.Login(context.Background(), "nobody@example.com", "whatever")
	assert.EqualError(t, err, "invalid credentials")
}

func TestParseTokenWrongKey(t *testing.T) {
	repo := &memoryUserRepo{users: make(map[string]*user.User)}
	seedUser(t, repo, "mutale@example.com", "s3cret-pass", user.RoleCustomer)

	issuer := NewService(repo, "key-one")
	verifier := NewService(repo, "key-two")

	token, err := issuer.Login(context.Background(), "mutale@example.com", "s3cret-pass")
	require.NoError(t, err)

	_, err = verifier.ParseToken(token)
	assert.Error(t, err)
}

func TestParseTokenGarbage(t *testing.T) {
	svc := NewService(&memoryUserRepo{users: make(map[string]*user.User)}, "test-signing-key")
	_, err := svc.ParseToken("not-a-jwt")
	assert.Error(t, err)
}
