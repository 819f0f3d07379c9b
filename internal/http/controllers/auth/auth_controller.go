// Package auth contiene los controllers de login y perfil del token.
package auth

import (
	"net/http"

	dto "github.com/dropDatabas3/alquiler/internal/http/dto/auth"
	"github.com/dropDatabas3/alquiler/internal/http/helpers"
	mw "github.com/dropDatabas3/alquiler/internal/http/middlewares"
	svc "github.com/dropDatabas3/alquiler/internal/http/services/auth"
	"github.com/dropDatabas3/alquiler/internal/observability/logger"
)

// AuthController maneja /login, /me y /admin.
type AuthController struct {
	service svc.LoginService
}

func NewAuthController(s svc.LoginService) *AuthController {
	return &AuthController{service: s}
}

// Login maneja POST /login
func (c *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.From(ctx).With(logger.Layer("controller"), logger.Op("AuthController.Login"))

	var req dto.LoginRequest
	if err := helpers.ReadJSON(w, r, &req); err != nil {
		helpers.Fail(w, log, err)
		return
	}
	res, err := c.service.Login(ctx, req)
	if err != nil {
		helpers.Fail(w, log, err)
		return
	}
	w.Header().Set("Cache-Control", "no-store")
	helpers.WriteJSON(w, http.StatusOK, res)
}

// Me maneja GET /me
func (c *AuthController) Me(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.From(ctx).With(logger.Layer("controller"), logger.Op("AuthController.Me"))

	res, err := c.service.Me(ctx, mw.GetPrincipal(ctx))
	if err != nil {
		helpers.Fail(w, log, err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, res)
}

// Admin maneja GET /admin. El gate de rol lo aplica el router.
func (c *AuthController) Admin(w http.ResponseWriter, r *http.Request) {
	p := mw.GetPrincipal(r.Context())
	helpers.WriteJSON(w, http.StatusOK, map[string]any{
		"message": "admin access granted",
		"id":      p.SubjectID,
	})
}
