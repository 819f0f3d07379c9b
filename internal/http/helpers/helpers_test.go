package helpers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/dropDatabas3/alquiler/internal/domain/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPage(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/apartments?skip=5&limit=500", nil)
	p, err := Page(r, 50)
	require.NoError(t, err)
	assert.Equal(t, repository.Page{Skip: 5, Limit: 50}, p)

	r = httptest.NewRequest(http.MethodGet, "/apartments", nil)
	p, err = Page(r, 0)
	require.NoError(t, err)
	assert.Equal(t, repository.DefaultLimit, p.Limit)

	r = httptest.NewRequest(http.MethodGet, "/apartments?limit=-1", nil)
	_, err = Page(r, 0)
	assert.True(t, repository.IsInvalid(err))

	r = httptest.NewRequest(http.MethodGet, "/apartments?skip=abc", nil)
	_, err = Page(r, 0)
	assert.True(t, repository.IsInvalid(err))
}

func TestOptionalBoolAndStatus(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/payments?is_paid=false&active=true", nil)
	b, err := OptionalBool(r, "is_paid")
	require.NoError(t, err)
	require.NotNil(t, b)
	assert.False(t, *b)

	s, err := OptionalStatus(r, "active")
	require.NoError(t, err)
	assert.Equal(t, repository.StatusActive, *s)

	r = httptest.NewRequest(http.MethodGet, "/payments?is_paid=maybe", nil)
	_, err = OptionalBool(r, "is_paid")
	assert.True(t, repository.IsInvalid(err))
}

func TestReadJSON(t *testing.T) {
	var v struct {
		Number string `json:"number"`
	}
	r := httptest.NewRequest(http.MethodPost, "/apartments", strings.NewReader(`{"number":"A1"}`))
	r.Header.Set("Content-Type", "application/json")
	require.NoError(t, ReadJSON(httptest.NewRecorder(), r, &v))
	assert.Equal(t, "A1", v.Number)

	r = httptest.NewRequest(http.MethodPost, "/apartments", strings.NewReader(`{"number":`))
	r.Header.Set("Content-Type", "application/json")
	assert.Error(t, ReadJSON(httptest.NewRecorder(), r, &v))

	r = httptest.NewRequest(http.MethodPost, "/apartments", strings.NewReader(`{}`))
	assert.Error(t, ReadJSON(httptest.NewRecorder(), r, &v))
}
