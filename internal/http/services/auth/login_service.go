// Package auth contiene el login contra el identity provider y el perfil del token.
package auth

import (
	"context"
	stderrors "errors"
	"fmt"
	"strings"
	"time"

	"github.com/dropDatabas3/alquiler/internal/audit"
	"github.com/dropDatabas3/alquiler/internal/authz"
	"github.com/dropDatabas3/alquiler/internal/domain/repository"
	dto "github.com/dropDatabas3/alquiler/internal/http/dto/auth"
	"github.com/dropDatabas3/alquiler/internal/idp"
	jwtx "github.com/dropDatabas3/alquiler/internal/jwt"
	"github.com/dropDatabas3/alquiler/internal/observability/logger"
	"github.com/dropDatabas3/alquiler/internal/util"
	"github.com/dropDatabas3/alquiler/internal/validation"
)

// LoginService autentica credenciales y emite access tokens.
type LoginService interface {
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)
	Me(ctx context.Context, p *authz.Principal) (*dto.MeResponse, error)
}

// Deps contiene las dependencias del service auth.
type Deps struct {
	Users    repository.UserRepository
	Provider idp.Provider
	Issuer   *jwtx.Issuer
	Audit    *audit.Trail
}

type loginService struct {
	deps Deps
}

// NewLoginService crea el service de login.
func NewLoginService(d Deps) LoginService {
	return &loginService{deps: d}
}

func (s *loginService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	log := logger.From(ctx).With(
		logger.Layer("service"),
		logger.Component("auth"),
		logger.Op("Login"),
	)

	email, err := validation.Email(req.Email)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(req.Password) == "" {
		return nil, repository.Invalid("password", "required")
	}

	if _, err := s.deps.Provider.SignIn(ctx, email, req.Password); err != nil {
		if stderrors.Is(err, idp.ErrInvalidCredentials) {
			log.Debug("identity provider rejected credentials")
			return nil, idp.ErrInvalidCredentials
		}
		return nil, repository.Unavailable("idp.signin", err)
	}

	u, err := s.deps.Users.GetByEmail(ctx, email)
	if err != nil {
		if repository.IsNotFound(err) {
			log.Warn("identity without local user", logger.String("email", util.MaskEmail(email)))
			return nil, idp.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("load user: %w", err)
	}
	if !u.IsActive {
		return nil, authz.ErrInactiveAccount
	}

	tok, exp, err := s.deps.Issuer.IssueAccess(jwtx.Subject{
		ID:       u.ID,
		FullName: u.FullName,
		Email:    u.Email,
		Active:   u.IsActive,
		Admin:    u.IsAdmin,
	})
	if err != nil {
		return nil, fmt.Errorf("issue access token: %w", err)
	}

	s.deps.Audit.Record(ctx, audit.NewEvent(audit.KindLogin, u.ID, "user", u.ID, map[string]any{
		"provider": s.deps.Provider.Name(),
	}))
	log.Info("login ok", logger.UserID(u.ID))

	return &dto.LoginResponse{
		AccessToken: tok,
		TokenType:   "Bearer",
		ExpiresIn:   int64(time.Until(exp).Seconds()),
		ExpiresAt:   exp,
	}, nil
}

func (s *loginService) Me(_ context.Context, p *authz.Principal) (*dto.MeResponse, error) {
	if err := authz.RequireActive(p); err != nil {
		return nil, err
	}
	return &dto.MeResponse{
		ID:        p.SubjectID,
		FullName:  p.FullName,
		Email:     p.Email,
		IsAdmin:   p.IsAdmin,
		IsActive:  p.IsActive,
		ExpiresAt: p.ExpiresAt,
	}, nil
}
