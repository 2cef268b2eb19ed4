package service_test

import (
	"context"
	"testing"
	"time"

	"dhara-backend/internal/domain"
	"dhara-backend/internal/repository"
	"dhara-backend/internal/security"
	"dhara-backend/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthService_RegisterAndLogin(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	tokens := security.NewTokenManager("test-secret", time.Hour)
	svc := service.NewAuthService(memUsers{store}, tokens)

	user, token, err := svc.Register(ctx, " Ravi@Example.com ", "secret1", "Ravi", "", "Pimpri")
	require.NoError(t, err)
	assert.Equal(t, "ravi@example.com", user.Email)
	assert.Equal(t, domain.RoleFarmer, user.Role)
	assert.NotEqual(t, "secret1", user.PasswordHash)

	claims, err := tokens.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, domain.RoleFarmer, claims.Role)

	t.Run("Duplicate email", func(t *testing.T) {
		_, _, err := svc.Register(ctx, "ravi@example.com", "another1", "", "", "")
		assert.ErrorIs(t, err, repository.ErrConflict)
	})

	t.Run("Operator role", func(t *testing.T) {
		op, _, err := svc.Register(ctx, "op@example.com", "secret1", "", "operator", "")
		require.NoError(t, err)
		assert.Equal(t, domain.RoleOperator, op.Role)
		assert.Equal(t, "op@example.com", op.Name)
	})

	t.Run("Invalid role", func(t *testing.T) {
		_, _, err := svc.Register(ctx, "x@example.com", "secret1", "", "SUPERUSER", "")
		assert.ErrorIs(t, err, service.ErrInvalidInput)
	})

	t.Run("Short password", func(t *testing.T) {
		_, _, err := svc.Register(ctx, "y@example.com", "abc", "", "", "")
		assert.ErrorIs(t, err, service.ErrInvalidInput)
	})

	t.Run("Login", func(t *testing.T) {
		u, token, err := svc.Login(ctx, "ravi@example.com", "secret1")
		require.NoError(t, err)
		assert.Equal(t, user.ID, u.ID)
		assert.NotEmpty(t, token)
	})

	t.Run("Wrong password", func(t *testing.T) {
		_, _, err := svc.Login(ctx, "ravi@example.com", "wrong-pass")
		assert.ErrorIs(t, err, service.ErrInvalidCredentials)
	})

	t.Run("Unknown email", func(t *testing.T) {
		_, _, err := svc.Login(ctx, "nobody@example.com", "secret1")
		assert.ErrorIs(t, err, service.ErrInvalidCredentials)
	})
}
