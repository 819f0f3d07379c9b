// Package users contiene el alta, perfil y desactivación de usuarios.
package users

import (
	"context"
	stderrors "errors"
	"fmt"
	"strings"

	"github.com/dropDatabas3/alquiler/internal/audit"
	"github.com/dropDatabas3/alquiler/internal/authz"
	"github.com/dropDatabas3/alquiler/internal/domain/repository"
	dto "github.com/dropDatabas3/alquiler/internal/http/dto/users"
	"github.com/dropDatabas3/alquiler/internal/idp"
	"github.com/dropDatabas3/alquiler/internal/observability/logger"
	"github.com/dropDatabas3/alquiler/internal/security/password"
	"github.com/dropDatabas3/alquiler/internal/validation"
)

const entity = "user"

// UserService define las operaciones sobre usuarios.
type UserService interface {
	Create(ctx context.Context, p *authz.Principal, req dto.CreateUserRequest) (*dto.UserResponse, error)
	Get(ctx context.Context, p *authz.Principal, id string) (*dto.UserResponse, error)
	UpdateProfile(ctx context.Context, p *authz.Principal, req dto.UpdateProfileRequest) (*dto.UserResponse, error)
	Deactivate(ctx context.Context, p *authz.Principal, id string) (*dto.UserResponse, error)
}

// Deps contiene las dependencias del service.
type Deps struct {
	Users    repository.UserRepository
	Provider idp.Provider
	Audit    *audit.Trail
}

type userService struct {
	deps Deps
}

func NewUserService(d Deps) UserService {
	return &userService{deps: d}
}

func checkPassword(plain string) error {
	if ok, reasons := password.DefaultPolicy.Validate(plain); !ok {
		return repository.Invalid("password", strings.Join(reasons, "; "))
	}
	return nil
}

func (s *userService) emailTaken(ctx context.Context, email, exceptID string) error {
	u, err := s.deps.Users.GetByEmail(ctx, email)
	switch {
	case repository.IsNotFound(err):
		return nil
	case err != nil:
		return err
	case u.ID != exceptID:
		return fmt.Errorf("email %s: %w", email, repository.ErrConflict)
	}
	return nil
}

func (s *userService) Create(ctx context.Context, p *authz.Principal, req dto.CreateUserRequest) (*dto.UserResponse, error) {
	log := logger.From(ctx).With(logger.Layer("service"), logger.Component("users"), logger.Op("Create"))

	if err := authz.RequireAdmin(p); err != nil {
		return nil, err
	}
	name, err := validation.FullName(req.FullName)
	if err != nil {
		return nil, err
	}
	email, err := validation.Email(req.Email)
	if err != nil {
		return nil, err
	}
	if err := checkPassword(req.Password); err != nil {
		return nil, err
	}
	if err := s.emailTaken(ctx, email, ""); err != nil {
		return nil, err
	}

	ident, err := s.deps.Provider.SignUp(ctx, email, req.Password)
	if err != nil {
		if stderrors.Is(err, idp.ErrEmailExists) {
			return nil, err
		}
		return nil, repository.Unavailable("idp.signup", err)
	}
	hash, err := password.Hash(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	u, err := s.deps.Users.Create(ctx, repository.User{
		FullName:     name,
		Email:        email,
		IsActive:     true,
		IsAdmin:      req.IsAdmin,
		PasswordHash: hash,
		ProviderUID:  ident.UID,
	})
	if err != nil {
		return nil, err
	}

	s.deps.Audit.Record(ctx, audit.NewEvent(audit.KindCreated, p.SubjectID, entity, u.ID, map[string]any{"admin": u.IsAdmin}))
	log.Info("user created", logger.EntityID(u.ID))
	out := dto.FromUser(u)
	return &out, nil
}

func (s *userService) Get(ctx context.Context, p *authz.Principal, id string) (*dto.UserResponse, error) {
	if err := authz.RequireAdmin(p); err != nil {
		return nil, err
	}
	id, err := validation.ID("id", id)
	if err != nil {
		return nil, err
	}
	u, err := s.deps.Users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	out := dto.FromUser(u)
	return &out, nil
}

// UpdateProfile modifica el registro del propio caller. Rol, estado e ID no se tocan.
func (s *userService) UpdateProfile(ctx context.Context, p *authz.Principal, req dto.UpdateProfileRequest) (*dto.UserResponse, error) {
	if err := authz.RequireActive(p); err != nil {
		return nil, err
	}
	u, err := s.deps.Users.GetByID(ctx, p.SubjectID)
	if err != nil {
		return nil, err
	}

	changed := []string{}
	if req.FullName != nil {
		name, err := validation.FullName(*req.FullName)
		if err != nil {
			return nil, err
		}
		u.FullName = name
		changed = append(changed, "full_name")
	}
	if req.Email != nil {
		email, err := validation.Email(*req.Email)
		if err != nil {
			return nil, err
		}
		if email != u.Email {
			if err := s.emailTaken(ctx, email, u.ID); err != nil {
				return nil, err
			}
			u.Email = email
			changed = append(changed, "email")
		}
	}
	if req.Password != nil {
		if err := checkPassword(*req.Password); err != nil {
			return nil, err
		}
		hash, err := password.Hash(*req.Password)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		u.PasswordHash = hash
		changed = append(changed, "password")
	}

	u, err = s.deps.Users.Update(ctx, *u)
	if err != nil {
		return nil, err
	}
	s.deps.Audit.Record(ctx, audit.NewEvent(audit.KindUpdated, p.SubjectID, entity, u.ID, map[string]any{"fields": changed}))
	out := dto.FromUser(u)
	return &out, nil
}

func (s *userService) Deactivate(ctx context.Context, p *authz.Principal, id string) (*dto.UserResponse, error) {
	if err := authz.RequireAdmin(p); err != nil {
		return nil, err
	}
	id, err := validation.ID("id", id)
	if err != nil {
		return nil, err
	}
	u, err := s.deps.Users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	u.IsActive = false
	u, err = s.deps.Users.Update(ctx, *u)
	if err != nil {
		return nil, err
	}
	s.deps.Audit.Record(ctx, audit.NewEvent(audit.KindDeactivated, p.SubjectID, entity, u.ID, nil))
	out := dto.FromUser(u)
	return &out, nil
}
