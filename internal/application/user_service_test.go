package application

import (
	"context"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	repo "github.com/ecofinds/ecofinds-api/internal/domain/repository"
)

func newUserFixture(t *testing.T) (*UserService, *mockUserRepo) {
	t.Helper()
	users := newMockUserRepo()
	// no JWT/Redis/queue: these tests cover account semantics only
	return NewUserService(users, nil, nil, nil, nil, false), users
}

func TestRegisterHashesPassword(t *testing.T) {
	svc, _ := newUserFixture(t)
	u, err := svc.Register(context.Background(), "eco_fan", "fan@example.com", "secret123")
	require.NoError(t, err)
	assert.NotEqual(t, "secret123", u.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.Password), []byte("secret123")))
}

func TestRegisterRejectsDuplicates(t *testing.T) {
	svc, _ := newUserFixture(t)
	ctx := context.Background()
	_, err := svc.Register(ctx, "eco_fan", "fan@example.com", "secret123")
	require.NoError(t, err)

	_, err = svc.Register(ctx, "eco_fan", "other@example.com", "secret123")
	assert.ErrorIs(t, err, repo.ErrUsernameTaken)

	_, err = svc.Register(ctx, "other_name", "fan@example.com", "secret123")
	assert.ErrorIs(t, err, repo.ErrEmailTaken)
}

func TestAuthenticate(t *testing.T) {
	svc, _ := newUserFixture(t)
	ctx := context.Background()
	_, err := svc.Register(ctx, "eco_fan", "fan@example.com", "secret123")
	require.NoError(t, err)

	u, err := svc.Authenticate(ctx, "fan@example.com", "secret123")
	require.NoError(t, err)
	assert.Equal(t, "eco_fan", u.Username)

	_, err = svc.Authenticate(ctx, "fan@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	// unknown email reads the same as a bad password
	_, err = svc.Authenticate(ctx, "nobody@example.com", "secret123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestUpdateProfileSubjectOnly(t *testing.T) {
	svc, _ := newUserFixture(t)
	ctx := context.Background()
	u, err := svc.Register(ctx, "eco_fan", "fan@example.com", "secret123")
	require.NoError(t, err)

	_, err = svc.UpdateProfile(ctx, "intruder", u.ID, UpdateProfileInput{Username: "hacked"})
	assert.ErrorIs(t, err, ErrForbidden)

	updated, err := svc.UpdateProfile(ctx, u.ID, u.ID, UpdateProfileInput{Username: "eco_pro"})
	require.NoError(t, err)
	assert.Equal(t, "eco_pro", updated.Username)
	assert.Equal(t, "fan@example.com", updated.Email, "unset fields stay untouched")
}

func TestUpdateProfileUniqueness(t *testing.T) {
	svc, _ := newUserFixture(t)
	ctx := context.Background()
	a, err := svc.Register(ctx, "user_a", "a@example.com", "secret123")
	require.NoError(t, err)
	_, err = svc.Register(ctx, "user_b", "b@example.com", "secret123")
	require.NoError(t, err)

	_, err = svc.UpdateProfile(ctx, a.ID, a.ID, UpdateProfileInput{Username: "user_b"})
	assert.ErrorIs(t, err, repo.ErrUsernameTaken)

	_, err = svc.UpdateProfile(ctx, a.ID, a.ID, UpdateProfileInput{Email: "b@example.com"})
	assert.ErrorIs(t, err, repo.ErrEmailTaken)

	// keeping your own values is not a conflict
	got, err := svc.UpdateProfile(ctx, a.ID, a.ID, UpdateProfileInput{Username: "user_a"})
	require.NoError(t, err)
	assert.Equal(t, "user_a", got.Username)
}

func TestProperty_RegisterNeverStoresPlaintext(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("stored password is a bcrypt hash of the input", prop.ForAll(
		func(password string) bool {
			if len(password) < 6 || len(password) > 64 {
				return true
			}
			svc, _ := newUserFixture(t)
			u, err := svc.Register(context.Background(), "someone", "someone@example.com", password)
			if err != nil {
				return false
			}
			if u.Password == password {
				return false
			}
			return bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)) == nil
		},
		gen.AlphaString(),
	))

	properties.TestingRun(t)
}
