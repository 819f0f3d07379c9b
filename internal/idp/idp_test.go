package idp

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dropDatabas3/alquiler/internal/domain/repository"
	"github.com/dropDatabas3/alquiler/internal/security/password"
	"github.com/dropDatabas3/alquiler/internal/store/adapters/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocal_SignIn(t *testing.T) {
	ctx := context.Background()
	users := memory.New().Users()
	hash, err := password.Hash("Secreta1!")
	require.NoError(t, err)
	u, err := users.Create(ctx, repository.User{FullName: "Ana", Email: "ana@example.com", PasswordHash: hash, IsActive: true})
	require.NoError(t, err)

	p := NewLocal(users)
	id, err := p.SignIn(ctx, "ana@example.com", "Secreta1!")
	require.NoError(t, err)
	assert.Equal(t, u.ID, id.UID)

	_, err = p.SignIn(ctx, "ana@example.com", "otra")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = p.SignIn(ctx, "nadie@example.com", "Secreta1!")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func firebaseStub(t *testing.T) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))
		var req firebaseRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		w.Header().Set("Content-Type", "application/json")

		switch {
		case r.URL.Path == "/v1/accounts:signInWithPassword" && req.Password == "Secreta1!":
			_ = json.NewEncoder(w).Encode(map[string]any{"localId": "fb-uid-1", "email": req.Email})
		case r.URL.Path == "/v1/accounts:signInWithPassword":
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"error":{"code":400,"message":"INVALID_LOGIN_CREDENTIALS"}}`))
		case r.URL.Path == "/v1/accounts:signUp" && req.Email == "dup@example.com":
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"error":{"code":400,"message":"EMAIL_EXISTS"}}`))
		case r.URL.Path == "/v1/accounts:signUp":
			_ = json.NewEncoder(w).Encode(map[string]any{"localId": "fb-uid-2", "email": req.Email})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
}

func TestFirebase(t *testing.T) {
	srv := firebaseStub(t)
	defer srv.Close()
	ctx := context.Background()

	p, err := NewFirebase(srv.URL, "test-key")
	require.NoError(t, err)

	id, err := p.SignIn(ctx, "ana@example.com", "Secreta1!")
	require.NoError(t, err)
	assert.Equal(t, Identity{UID: "fb-uid-1", Email: "ana@example.com"}, id)

	_, err = p.SignIn(ctx, "ana@example.com", "mala")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	id, err = p.SignUp(ctx, "nuevo@example.com", "Secreta1!")
	require.NoError(t, err)
	assert.Equal(t, "fb-uid-2", id.UID)

	_, err = p.SignUp(ctx, "dup@example.com", "Secreta1!")
	assert.ErrorIs(t, err, ErrEmailExists)
}

func TestMapFirebaseError(t *testing.T) {
	assert.ErrorIs(t, mapFirebaseError(400, "WEAK_PASSWORD : Password should be at least 6 characters"), repository.ErrInvalidInput)
	assert.ErrorIs(t, mapFirebaseError(503, "BACKEND_ERROR"), repository.ErrUnavailable)
	assert.ErrorIs(t, mapFirebaseError(400, "USER_DISABLED"), ErrInvalidCredentials)
}

func TestNew(t *testing.T) {
	p, err := New(Config{}, memory.New().Users())
	require.NoError(t, err)
	assert.Equal(t, "local", p.Name())

	_, err = New(Config{Kind: "firebase"}, nil)
	assert.Error(t, err)

	_, err = New(Config{Kind: "ldap"}, nil)
	assert.Error(t, err)
}
