// Package errors define AppError, el mapeo de la taxonomía de dominio a
// status HTTP y la serialización de errores.
package errors

import (
	"encoding/json"
	stderrors "errors"
	"net/http"

	"github.com/dropDatabas3/alquiler/internal/authz"
	"github.com/dropDatabas3/alquiler/internal/domain/repository"
	"github.com/dropDatabas3/alquiler/internal/idp"
	jwtx "github.com/dropDatabas3/alquiler/internal/jwt"
)

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Detail  string `json:"detail,omitempty"`
}

// FromError traduce cualquier error a AppError. Forbidden nunca lleva detalle.
func FromError(err error) *AppError {
	if err == nil {
		return nil
	}
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr
	}

	var verr *repository.ValidationError
	switch {
	case stderrors.Is(err, jwtx.ErrTokenMissing):
		return ErrTokenMissing.WithCause(err)
	case stderrors.Is(err, jwtx.ErrTokenExpired):
		return ErrTokenExpired.WithCause(err)
	case stderrors.Is(err, jwtx.ErrTokenInvalid):
		return ErrTokenInvalid.WithCause(err)
	case stderrors.Is(err, idp.ErrInvalidCredentials):
		return ErrInvalidCredentials.WithCause(err)
	case stderrors.Is(err, authz.ErrInactiveAccount):
		return ErrAccountInactive.WithCause(err)
	case stderrors.Is(err, repository.ErrForbidden):
		return ErrForbidden.WithCause(err)
	case stderrors.Is(err, repository.ErrNotFound):
		return ErrNotFound.WithCause(err)
	case stderrors.Is(err, repository.ErrConflict), stderrors.Is(err, idp.ErrEmailExists):
		return ErrConflict.WithCause(err)
	case stderrors.As(err, &verr):
		return ErrValidation.WithDetail(verr.Error()).WithCause(err)
	case stderrors.Is(err, repository.ErrInvalidInput):
		return ErrValidation.WithCause(err)
	case stderrors.Is(err, repository.ErrUnavailable):
		return ErrServiceUnavailable.WithCause(err)
	}
	return ErrInternalServerError.WithCause(err)
}

// WriteError escribe la respuesta JSON del error.
func WriteError(w http.ResponseWriter, err error) {
	appErr := FromError(err)
	if appErr == nil {
		appErr = ErrInternalServerError
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(appErr.HTTPStatus)
	_ = json.NewEncoder(w).Encode(errorResponse{
		Code:    appErr.Code,
		Message: appErr.Message,
		Detail:  appErr.Detail,
	})
}
