package idp

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dropDatabas3/alquiler/internal/domain/repository"
	"github.com/go-resty/resty/v2"
)

// DefaultFirebaseURL es el endpoint público de Identity Toolkit.
const DefaultFirebaseURL = "https://identitytoolkit.googleapis.com"

// Firebase habla con la API REST de Identity Toolkit.
type Firebase struct {
	http   *resty.Client
	apiKey string
}

type firebaseRequest struct {
	Email             string `json:"email"`
	Password          string `json:"password"`
	ReturnSecureToken bool   `json:"returnSecureToken"`
}

type firebaseResponse struct {
	LocalID string `json:"localId"`
	Email   string `json:"email"`
}

type firebaseError struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func NewFirebase(baseURL, apiKey string) (*Firebase, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("idp: firebase api key is required")
	}
	if baseURL == "" {
		baseURL = DefaultFirebaseURL
	}
	client := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetTimeout(10*time.Second).
		SetRetryCount(2).
		SetRetryWaitTime(200*time.Millisecond).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")
	// Solo se reintentan fallas de transporte y 5xx; un 400 es definitivo.
	client.AddRetryCondition(func(r *resty.Response, err error) bool {
		return err != nil || r.StatusCode() >= 500
	})
	return &Firebase{http: client, apiKey: apiKey}, nil
}

func (f *Firebase) Name() string { return "firebase" }

func (f *Firebase) SignIn(ctx context.Context, email, password string) (Identity, error) {
	return f.call(ctx, "/v1/accounts:signInWithPassword", email, password)
}

func (f *Firebase) SignUp(ctx context.Context, email, password string) (Identity, error) {
	return f.call(ctx, "/v1/accounts:signUp", email, password)
}

func (f *Firebase) call(ctx context.Context, path, email, password string) (Identity, error) {
	var ok firebaseResponse
	var fail firebaseError
	resp, err := f.http.R().
		SetContext(ctx).
		SetQueryParam("key", f.apiKey).
		SetBody(firebaseRequest{Email: email, Password: password, ReturnSecureToken: true}).
		SetResult(&ok).
		SetError(&fail).
		Post(path)
	if err != nil {
		return Identity{}, repository.Unavailable("firebase "+path, err)
	}
	if resp.IsError() {
		return Identity{}, mapFirebaseError(resp.StatusCode(), fail.Error.Message)
	}
	if ok.Email == "" {
		ok.Email = email
	}
	return Identity{UID: ok.LocalID, Email: ok.Email}, nil
}

// mapFirebaseError traduce los códigos de Identity Toolkit.
// El mensaje puede venir con detalle: "WEAK_PASSWORD : Password should be ...".
func mapFirebaseError(status int, msg string) error {
	code := strings.TrimSpace(strings.SplitN(msg, ":", 2)[0])
	switch code {
	case "EMAIL_NOT_FOUND", "INVALID_PASSWORD", "INVALID_LOGIN_CREDENTIALS", "USER_DISABLED", "INVALID_EMAIL":
		return ErrInvalidCredentials
	case "EMAIL_EXISTS":
		return ErrEmailExists
	case "WEAK_PASSWORD":
		return repository.Invalid("password", "rejected by identity provider")
	}
	if status >= 500 || status == 429 {
		return repository.Unavailable("firebase", fmt.Errorf("status %d: %s", status, msg))
	}
	return fmt.Errorf("firebase: status %d: %s", status, msg)
}
