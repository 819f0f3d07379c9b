package middlewares

import (
	"net/http"

	"github.com/dropDatabas3/alquiler/internal/authz"
	httperrors "github.com/dropDatabas3/alquiler/internal/http/errors"
	"github.com/dropDatabas3/alquiler/internal/observability/logger"
)

// PrincipalResolver traduce el header Authorization en un principal.
type PrincipalResolver interface {
	Resolve(authorization string) (*authz.Principal, error)
}

// RequireAuth valida el bearer token y deja el principal en el contexto.
// Token ausente, inválido o expirado corta con 401.
func RequireAuth(resolver PrincipalResolver) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			p, err := resolver.Resolve(r.Header.Get("Authorization"))
			if err != nil {
				logger.From(r.Context()).Debug("token rejected", logger.Err(err))
				httperrors.WriteError(w, err)
				return
			}
			ctx := WithPrincipal(r.Context(), p)
			ctx = logger.ToContext(ctx, logger.From(ctx).With(logger.UserID(p.SubjectID)))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireActive corta con 403 si la cuenta del token está desactivada.
func RequireActive() Middleware {
	return guard(authz.RequireActive)
}

// RequireAdmin corta con 403 si el principal no es admin.
func RequireAdmin() Middleware {
	return guard(authz.RequireAdmin)
}

func guard(check func(*authz.Principal) error) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if err := check(GetPrincipal(r.Context())); err != nil {
				httperrors.WriteError(w, err)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
