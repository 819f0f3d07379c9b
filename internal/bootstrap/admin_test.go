package bootstrap

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/dropDatabas3/alquiler/internal/domain/repository"
	"github.com/dropDatabas3/alquiler/internal/security/password"
	"github.com/dropDatabas3/alquiler/internal/store/adapters/memory"
)

func TestEnsureAdmin_CreatesThenIsIdempotent(t *testing.T) {
	password.Cost = bcrypt.MinCost
	users := memory.New().Users()
	ctx := context.Background()
	cfg := AdminConfig{Users: users, Email: "root@example.com", Password: "Admin123!", Out: &bytes.Buffer{}}

	res, err := EnsureAdmin(ctx, cfg)
	require.NoError(t, err)
	assert.True(t, res.Created)

	u, err := users.GetByEmail(ctx, "root@example.com")
	require.NoError(t, err)
	assert.True(t, u.IsAdmin)
	assert.True(t, password.Verify("Admin123!", u.PasswordHash))

	again, err := EnsureAdmin(ctx, cfg)
	require.NoError(t, err)
	assert.False(t, again.Created)
	assert.Equal(t, res.UserID, again.UserID)
}

func TestEnsureAdmin_PromotesExistingUser(t *testing.T) {
	users := memory.New().Users()
	ctx := context.Background()
	u, err := users.Create(ctx, repository.User{FullName: "Ana", Email: "ana@example.com"})
	require.NoError(t, err)

	res, err := EnsureAdmin(ctx, AdminConfig{Users: users, Email: "ana@example.com", Password: "Admin123!", Out: &bytes.Buffer{}})
	require.NoError(t, err)
	assert.True(t, res.Promoted)

	got, err := users.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.True(t, got.IsAdmin)
	assert.True(t, got.IsActive)
}

func TestEnsureAdmin_RejectsWeakPassword(t *testing.T) {
	_, err := EnsureAdmin(context.Background(), AdminConfig{
		Users:    memory.New().Users(),
		Email:    "root@example.com",
		Password: "weak",
		Out:      &bytes.Buffer{},
	})
	assert.ErrorIs(t, err, repository.ErrInvalidInput)
}
