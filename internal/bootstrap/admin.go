// Package bootstrap crea el primer administrador del sistema.
package bootstrap

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/dropDatabas3/alquiler/internal/domain/repository"
	"github.com/dropDatabas3/alquiler/internal/security/password"
	"github.com/dropDatabas3/alquiler/internal/validation"
)

// AdminConfig son los datos del admin a sembrar. Si Password está vacío y
// stdin es una terminal se piden las credenciales de forma interactiva.
type AdminConfig struct {
	Users    repository.UserRepository
	Email    string
	Password string
	FullName string

	// Out recibe los mensajes al operador; nil = os.Stdout.
	Out io.Writer
}

// Result indica qué hizo EnsureAdmin.
type Result struct {
	UserID   string
	Created  bool
	Promoted bool
}

// EnsureAdmin crea el usuario admin o, si el email ya existe, lo deja activo
// y con is_admin=true. Es idempotente.
func EnsureAdmin(ctx context.Context, cfg AdminConfig) (Result, error) {
	out := cfg.Out
	if out == nil {
		out = os.Stdout
	}
	if cfg.FullName == "" {
		cfg.FullName = "Administrador"
	}

	if cfg.Password == "" {
		if !term.IsTerminal(int(os.Stdin.Fd())) {
			return Result{}, errors.New("password requerido (flag --password o env ADMIN_PASSWORD)")
		}
		email, pwd, err := promptCredentials(out, cfg.Email)
		if err != nil {
			return Result{}, fmt.Errorf("prompt credentials: %w", err)
		}
		cfg.Email, cfg.Password = email, pwd
	}

	email, err := validation.Email(cfg.Email)
	if err != nil {
		return Result{}, err
	}
	name, err := validation.FullName(cfg.FullName)
	if err != nil {
		return Result{}, err
	}

	existing, err := cfg.Users.GetByEmail(ctx, email)
	switch {
	case err == nil:
		return promote(ctx, cfg.Users, existing, out)
	case !repository.IsNotFound(err):
		return Result{}, fmt.Errorf("check existing user: %w", err)
	}

	if ok, reasons := password.DefaultPolicy.Validate(cfg.Password); !ok {
		return Result{}, repository.Invalid("password", strings.Join(reasons, ","))
	}
	hash, err := password.Hash(cfg.Password)
	if err != nil {
		return Result{}, fmt.Errorf("hash password: %w", err)
	}
	u, err := cfg.Users.Create(ctx, repository.User{
		FullName:     name,
		Email:        email,
		IsActive:     true,
		IsAdmin:      true,
		PasswordHash: hash,
	})
	if err != nil {
		return Result{}, fmt.Errorf("create admin: %w", err)
	}
	fmt.Fprintf(out, "admin creado: id=%s email=%s\n", u.ID, u.Email)
	return Result{UserID: u.ID, Created: true}, nil
}

func promote(ctx context.Context, users repository.UserRepository, u *repository.User, out io.Writer) (Result, error) {
	if u.IsAdmin && u.IsActive {
		fmt.Fprintf(out, "admin existente: id=%s\n", u.ID)
		return Result{UserID: u.ID}, nil
	}
	u.IsAdmin = true
	u.IsActive = true
	if _, err := users.Update(ctx, *u); err != nil {
		return Result{}, fmt.Errorf("promote admin: %w", err)
	}
	fmt.Fprintf(out, "usuario promovido a admin: id=%s\n", u.ID)
	return Result{UserID: u.ID, Promoted: true}, nil
}

func promptCredentials(out io.Writer, email string) (string, string, error) {
	if email == "" {
		fmt.Fprint(out, "Email del admin: ")
		line, err := bufio.NewReader(os.Stdin).ReadString('\n')
		if err != nil {
			return "", "", err
		}
		email = strings.TrimSpace(line)
	}

	fmt.Fprint(out, "Password: ")
	pwd, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(out)
	if err != nil {
		return "", "", err
	}
	fmt.Fprint(out, "Confirmar password: ")
	confirm, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(out)
	if err != nil {
		return "", "", err
	}
	if string(pwd) != string(confirm) {
		return "", "", errors.New("las passwords no coinciden")
	}
	return email, string(pwd), nil
}
