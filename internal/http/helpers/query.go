package helpers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/dropDatabas3/alquiler/internal/domain/repository"
)

// Page lee ?skip=&limit= y aplica default y tope.
func Page(r *http.Request, maxLimit int) (repository.Page, error) {
	skip, err := intParam(r, "skip")
	if err != nil {
		return repository.Page{}, err
	}
	limit, err := intParam(r, "limit")
	if err != nil {
		return repository.Page{}, err
	}
	return repository.NewPage(skip, limit, maxLimit)
}

// OptionalBool lee un flag booleano; ausente = nil.
func OptionalBool(r *http.Request, name string) (*bool, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return nil, nil
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, repository.Invalid(name, "must be true or false")
	}
	return &b, nil
}

// OptionalStatus lee ?active= como filtro de estado.
func OptionalStatus(r *http.Request, name string) (*repository.Status, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return nil, nil
	}
	s, err := repository.ParseStatus(raw)
	if err != nil {
		return nil, repository.Invalid(name, "must be true or false")
	}
	return &s, nil
}

func intParam(r *http.Request, name string) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, repository.Invalid(name, "must be an integer")
	}
	return n, nil
}
