package middlewares

import (
	"context"

	"github.com/dropDatabas3/alquiler/internal/authz"
)

type ctxKey string

const (
	ctxPrincipalKey ctxKey = "principal"
	ctxRequestIDKey ctxKey = "request_id"
)

// WithPrincipal inyecta el principal autenticado en el contexto.
func WithPrincipal(ctx context.Context, p *authz.Principal) context.Context {
	return context.WithValue(ctx, ctxPrincipalKey, p)
}

func setRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, ctxRequestIDKey, requestID)
}

// GetPrincipal obtiene el principal del contexto.
// Retorna nil si la ruta no pasó por RequireAuth.
func GetPrincipal(ctx context.Context) *authz.Principal {
	if v := ctx.Value(ctxPrincipalKey); v != nil {
		if p, ok := v.(*authz.Principal); ok {
			return p
		}
	}
	return nil
}

// GetRequestID obtiene el request ID del contexto.
func GetRequestID(ctx context.Context) string {
	if v := ctx.Value(ctxRequestIDKey); v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}
