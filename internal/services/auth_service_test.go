package services

import (
	"context"
	"testing"
	"time"

	"github.com/ahmetcoskunkizilkaya/storefront/internal/auth"
	"github.com/ahmetcoskunkizilkaya/storefront/internal/dto"
	"github.com/ahmetcoskunkizilkaya/storefront/internal/owner"
	"github.com/ahmetcoskunkizilkaya/storefront/internal/ratelimit"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type authFixture struct {
	svc    *AuthService
	users  *fakeUsers
	carts  *CartService
	tokens *auth.TokenService
	fp     *fakeProducts
}

func setupAuth(t *testing.T) authFixture {
	t.Helper()
	tokens, err := auth.NewTokenService("test-secret", "storefront-api", "storefront-web", time.Hour)
	require.NoError(t, err)

	users := newFakeUsers()
	fp := newFakeProducts()
	carts := NewCartService(newFakeCarts(fp), fp)
	throttle := ratelimit.NewThrottle(ratelimit.NewMemoryStore(15*time.Minute), 5)

	return authFixture{
		svc:    NewAuthService(users, auth.NewBcryptHasher(bcrypt.MinCost), tokens, throttle, carts),
		users:  users,
		carts:  carts,
		tokens: tokens,
		fp:     fp,
	}
}

func register(t *testing.T, f authFixture, email string) *dto.AuthResponse {
	t.Helper()
	resp, err := f.svc.Register(context.Background(), &dto.RegisterRequest{
		Email:     email,
		Password:  "secret123",
		FirstName: "Ana",
	}, "")
	require.NoError(t, err)
	return resp
}

func TestRegister(t *testing.T) {
	f := setupAuth(t)
	ctx := context.Background()

	resp := register(t, f, "  Ana@Example.COM ")
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "ana@example.com", resp.User.Email)

	stored, err := f.users.FindActiveByEmail(ctx, "ana@example.com")
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, stored.ID)
	assert.NotEqual(t, "secret123", stored.Password)
	assert.True(t, stored.IsActive)

	claims := f.tokens.Verify(resp.Token)
	require.NotNil(t, claims)
	assert.Equal(t, stored.ID.String(), claims.UserID)
}

func TestRegister_Validation(t *testing.T) {
	f := setupAuth(t)
	ctx := context.Background()

	cases := map[string]dto.RegisterRequest{
		"bad email":      {Email: "nope", Password: "secret123", FirstName: "Ana"},
		"short password": {Email: "a@b.co", Password: "12345", FirstName: "Ana"},
		"short name":     {Email: "a@b.co", Password: "secret123", FirstName: " A "},
		"missing name":   {Email: "a@b.co", Password: "secret123"},
		"missing email":  {Password: "secret123", FirstName: "Ana"},
	}
	for name, req := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := f.svc.Register(ctx, &req, "")
			var verr *ValidationError
			assert.ErrorAs(t, err, &verr)
		})
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	f := setupAuth(t)
	register(t, f, "ana@example.com")

	_, err := f.svc.Register(context.Background(), &dto.RegisterRequest{
		Email: "ANA@example.com", Password: "another1", FirstName: "Ana",
	}, "")
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestRegister_MigratesSessionCart(t *testing.T) {
	f := setupAuth(t)
	ctx := context.Background()
	p := newProduct("Phone", 10, 0, 5)
	require.NoError(t, f.fp.Create(ctx, &p))

	_, err := f.carts.AddToCart(ctx, owner.Anonymous("session_9_xyz"), p.ID, 2)
	require.NoError(t, err)

	resp, err := f.svc.Register(ctx, &dto.RegisterRequest{
		Email: "ana@example.com", Password: "secret123", FirstName: "Ana",
	}, "session_9_xyz")
	require.NoError(t, err)

	items, err := f.carts.GetCart(ctx, owner.User(resp.User.ID))
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].Quantity)
}

func TestLogin(t *testing.T) {
	f := setupAuth(t)
	ctx := context.Background()
	register(t, f, "ana@example.com")

	resp, err := f.svc.Login(ctx, &dto.LoginRequest{Email: "ANA@example.com", Password: "secret123"}, "10.0.0.1", "")
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	require.NotNil(t, resp.User.LastLogin)

	_, err = f.svc.Login(ctx, &dto.LoginRequest{Email: "ana@example.com", Password: "wrong"}, "10.0.0.1", "")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = f.svc.Login(ctx, &dto.LoginRequest{Email: "ghost@example.com", Password: "secret123"}, "10.0.0.1", "")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_SixthAttemptThrottled(t *testing.T) {
	f := setupAuth(t)
	ctx := context.Background()
	register(t, f, "ana@example.com")

	for range 5 {
		_, err := f.svc.Login(ctx, &dto.LoginRequest{Email: "ana@example.com", Password: "wrong"}, "10.0.0.2", "")
		require.ErrorIs(t, err, ErrInvalidCredentials)
	}

	_, err := f.svc.Login(ctx, &dto.LoginRequest{Email: "ana@example.com", Password: "secret123"}, "10.0.0.2", "")
	assert.ErrorIs(t, err, ErrTooManyAttempts, "valid credentials are still throttled")

	_, err = f.svc.Login(ctx, &dto.LoginRequest{Email: "ana@example.com", Password: "secret123"}, "10.0.0.3", "")
	assert.NoError(t, err, "other addresses are unaffected")
}

func TestLogin_SuccessResetsCounter(t *testing.T) {
	f := setupAuth(t)
	ctx := context.Background()
	register(t, f, "ana@example.com")

	for range 4 {
		_, err := f.svc.Login(ctx, &dto.LoginRequest{Email: "ana@example.com", Password: "wrong"}, "10.0.0.4", "")
		require.ErrorIs(t, err, ErrInvalidCredentials)
	}
	_, err := f.svc.Login(ctx, &dto.LoginRequest{Email: "ana@example.com", Password: "secret123"}, "10.0.0.4", "")
	require.NoError(t, err)

	for range 5 {
		_, err := f.svc.Login(ctx, &dto.LoginRequest{Email: "ana@example.com", Password: "wrong"}, "10.0.0.4", "")
		require.ErrorIs(t, err, ErrInvalidCredentials)
	}
}

func TestProfileUpdate(t *testing.T) {
	f := setupAuth(t)
	ctx := context.Background()
	id := register(t, f, "ana@example.com").User.ID

	first, phone := "  Anna ", "+90 555"
	profile, err := f.svc.UpdateProfile(ctx, id, &dto.UpdateProfileRequest{FirstName: &first, Phone: &phone})
	require.NoError(t, err)
	assert.Equal(t, "Anna", profile.FirstName)
	assert.Equal(t, "+90 555", profile.Phone)

	_, err = f.svc.UpdateProfile(ctx, id, &dto.UpdateProfileRequest{})
	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)

	short := "A"
	_, err = f.svc.UpdateProfile(ctx, id, &dto.UpdateProfileRequest{FirstName: &short})
	assert.ErrorAs(t, err, &verr)

	_, err = f.svc.Profile(ctx, uuid.New())
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestChangePassword(t *testing.T) {
	f := setupAuth(t)
	ctx := context.Background()
	id := register(t, f, "ana@example.com").User.ID

	err := f.svc.ChangePassword(ctx, id, &dto.ChangePasswordRequest{CurrentPassword: "wrong12", NewPassword: "newpass1"})
	assert.ErrorIs(t, err, ErrIncorrectPassword)

	err = f.svc.ChangePassword(ctx, id, &dto.ChangePasswordRequest{CurrentPassword: "secret123", NewPassword: "secret123"})
	assert.ErrorIs(t, err, ErrSamePassword)

	err = f.svc.ChangePassword(ctx, id, &dto.ChangePasswordRequest{CurrentPassword: "secret123", NewPassword: "12345"})
	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)

	require.NoError(t, f.svc.ChangePassword(ctx, id, &dto.ChangePasswordRequest{CurrentPassword: "secret123", NewPassword: "newpass1"}))

	_, err = f.svc.Login(ctx, &dto.LoginRequest{Email: "ana@example.com", Password: "newpass1"}, "10.0.0.5", "")
	assert.NoError(t, err)
}

func TestDeactivate(t *testing.T) {
	f := setupAuth(t)
	ctx := context.Background()
	id := register(t, f, "ana@example.com").User.ID

	err := f.svc.Deactivate(ctx, id, &dto.DeactivateRequest{Password: "wrong"})
	assert.ErrorIs(t, err, ErrIncorrectPassword)

	require.NoError(t, f.svc.Deactivate(ctx, id, &dto.DeactivateRequest{Password: "secret123"}))

	stored, err := f.users.FindByID(ctx, id)
	require.NoError(t, err, "the row is kept")
	assert.False(t, stored.IsActive)

	_, err = f.svc.Login(ctx, &dto.LoginRequest{Email: "ana@example.com", Password: "secret123"}, "10.0.0.6", "")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = f.svc.Profile(ctx, id)
	assert.ErrorIs(t, err, ErrUserInactive)

	// The email is free again once the old account is inactive.
	register(t, f, "ana@example.com")
}

func TestAuthenticate(t *testing.T) {
	f := setupAuth(t)
	ctx := context.Background()
	resp := register(t, f, "ana@example.com")

	user, err := f.svc.Authenticate(ctx, f.tokens.Verify(resp.Token))
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, user.ID)

	_, err = f.svc.Authenticate(ctx, nil)
	assert.ErrorIs(t, err, ErrUserNotFound)

	_, err = f.svc.Authenticate(ctx, &auth.Claims{UserID: "not-a-uuid"})
	assert.ErrorIs(t, err, ErrUserNotFound)
}
