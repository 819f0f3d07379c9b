// Package util contiene helpers chicos sin dependencias de dominio.
package util

import (
	"net/url"
	"strings"
)

// MaskEmail deja la primera letra del usuario y del dominio: "a…@e….com".
// Se usa para loguear emails sin exponerlos completos.
func MaskEmail(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	i := strings.IndexByte(s, '@')
	if i <= 0 {
		if s == "" {
			return ""
		}
		return "***"
	}
	user, dom := s[:i], s[i+1:]
	if len(user) > 1 {
		user = user[:1] + "…"
	}
	if dot := strings.IndexByte(dom, '.'); dot > 1 {
		dom = dom[:1] + "…" + dom[dot:]
	}
	return user + "@" + dom
}

// MaskDSN oculta la password de un DSN tipo URL (postgres://, mongodb://).
// Si no se puede parsear devuelve "***".
func MaskDSN(dsn string) string {
	u, err := url.Parse(dsn)
	if err != nil || u.Scheme == "" {
		return "***"
	}
	return u.Redacted()
}
