package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type fakeAdminRepo struct {
	admins     map[string]*Admin // by id
	lastLogins int
}

func newFakeAdminRepo(password string) (*fakeAdminRepo, *Admin) {
	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	a := &Admin{
		ID:           "adm-1",
		Username:     "astro_admin",
		Email:        "admin@example.com",
		Role:         RoleAdmin,
		PasswordHash: string(hash),
	}
	return &fakeAdminRepo{admins: map[string]*Admin{a.ID: a}}, a
}

func (r *fakeAdminRepo) ByUsername(_ context.Context, username string) (*Admin, error) {
	for _, a := range r.admins {
		if a.Username == username {
			cp := *a
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (r *fakeAdminRepo) ByID(_ context.Context, id string) (*Admin, error) {
	a, ok := r.admins[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *a
	return &cp, nil
}

func (r *fakeAdminRepo) UpdateLastLogin(_ context.Context, id string, at time.Time) error {
	r.lastLogins++
	r.admins[id].LastLogin = &at
	return nil
}

func (r *fakeAdminRepo) UpdateProfile(_ context.Context, id, username, email string) (*Admin, error) {
	a, ok := r.admins[id]
	if !ok {
		return nil, ErrNotFound
	}
	a.Username, a.Email = username, email
	cp := *a
	return &cp, nil
}

func (r *fakeAdminRepo) UpdatePasswordHash(_ context.Context, id, hash string) error {
	a, ok := r.admins[id]
	if !ok {
		return ErrNotFound
	}
	a.PasswordHash = hash
	return nil
}

func TestLogin(t *testing.T) {
	repo, _ := newFakeAdminRepo("s3cret-pass")
	svc := NewService(repo, "jwt-secret", time.Hour, nil)

	a, token, err := svc.Login(context.Background(), "astro_admin", "s3cret-pass")
	require.NoError(t, err)
	assert.Equal(t, "adm-1", a.ID)
	assert.Equal(t, 1, repo.lastLogins)

	claims, err := svc.Authenticate(token)
	require.NoError(t, err)
	assert.Equal(t, a.ID, claims.Sub)
	assert.Equal(t, RoleAdmin, claims.Role)
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	repo, _ := newFakeAdminRepo("s3cret-pass")
	svc := NewService(repo, "jwt-secret", time.Hour, nil)

	_, _, err := svc.Login(context.Background(), "astro_admin", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = svc.Login(context.Background(), "nobody", "s3cret-pass")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestDummyLoginHashCarriesRealCost(t *testing.T) {
	// The filler hash must cost the same as a stored hash or the
	// unknown-user branch is still distinguishable.
	cost, err := bcrypt.Cost(dummyLoginHash)
	require.NoError(t, err)
	assert.Equal(t, bcrypt.DefaultCost, cost)
}

func TestUpdateProfile(t *testing.T) {
	repo, _ := newFakeAdminRepo("s3cret-pass")
	svc := NewService(repo, "jwt-secret", time.Hour, nil)

	a, err := svc.UpdateProfile(context.Background(), "adm-1", "new_name", "new@example.com")
	require.NoError(t, err)
	assert.Equal(t, "new_name", a.Username)
	assert.Equal(t, "new@example.com", a.Email)

	_, err = svc.UpdateProfile(context.Background(), "adm-1", "", "new@example.com")
	assert.ErrorIs(t, err, ErrInvalidProfile)
}

func TestChangePassword(t *testing.T) {
	repo, _ := newFakeAdminRepo("s3cret-pass")
	svc := NewService(repo, "jwt-secret", time.Hour, nil)
	ctx := context.Background()

	assert.ErrorIs(t, svc.ChangePassword(ctx, "adm-1", "s3cret-pass", "short"), ErrPasswordTooShort)
	assert.ErrorIs(t, svc.ChangePassword(ctx, "adm-1", "wrong-current", "longenough"), ErrInvalidCredentials)

	require.NoError(t, svc.ChangePassword(ctx, "adm-1", "s3cret-pass", "longenough"))

	_, _, err := svc.Login(ctx, "astro_admin", "s3cret-pass")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, _, err = svc.Login(ctx, "astro_admin", "longenough")
	require.NoError(t, err)
}
