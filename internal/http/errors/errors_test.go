package errors

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dropDatabas3/alquiler/internal/authz"
	"github.com/dropDatabas3/alquiler/internal/domain/repository"
	"github.com/dropDatabas3/alquiler/internal/idp"
	jwtx "github.com/dropDatabas3/alquiler/internal/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromError_Taxonomy(t *testing.T) {
	cases := []struct {
		err    error
		status int
		code   string
	}{
		{jwtx.ErrTokenMissing, http.StatusUnauthorized, "TOKEN_MISSING"},
		{fmt.Errorf("parse: %w", jwtx.ErrTokenInvalid), http.StatusUnauthorized, "TOKEN_INVALID"},
		{jwtx.ErrTokenExpired, http.StatusUnauthorized, "TOKEN_EXPIRED"},
		{idp.ErrInvalidCredentials, http.StatusUnauthorized, "INVALID_CREDENTIALS"},
		{authz.ErrInactiveAccount, http.StatusForbidden, "ACCOUNT_INACTIVE"},
		{repository.ErrForbidden, http.StatusForbidden, "FORBIDDEN"},
		{fmt.Errorf("resolve: %w", repository.ErrNotFound), http.StatusNotFound, "NOT_FOUND"},
		{repository.ErrConflict, http.StatusConflict, "CONFLICT"},
		{idp.ErrEmailExists, http.StatusConflict, "CONFLICT"},
		{repository.Invalid("number", "too long"), http.StatusBadRequest, "VALIDATION_FAILED"},
		{repository.Unavailable("find", fmt.Errorf("timeout")), http.StatusServiceUnavailable, "SERVICE_UNAVAILABLE"},
		{fmt.Errorf("boom"), http.StatusInternalServerError, "INTERNAL_SERVER_ERROR"},
		{ErrRateLimitExceeded, http.StatusTooManyRequests, "RATE_LIMIT_EXCEEDED"},
	}
	for _, tc := range cases {
		got := FromError(tc.err)
		assert.Equal(t, tc.status, got.HTTPStatus, tc.err.Error())
		assert.Equal(t, tc.code, got.Code, tc.err.Error())
	}
}

func TestWriteError_ForbiddenHasNoDetail(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteError(rec, fmt.Errorf("owner mismatch for contract x: %w", repository.ErrForbidden))

	assert.Equal(t, http.StatusForbidden, rec.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "FORBIDDEN", body["code"])
	_, hasDetail := body["detail"]
	assert.False(t, hasDetail)
}

func TestWriteError_ValidationDetail(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteError(rec, repository.Invalid("limit", "must be >= 0"))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "limit")
}
