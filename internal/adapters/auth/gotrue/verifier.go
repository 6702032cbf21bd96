package gotrue

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"appointment-calendar/internal/platform/httpclient"
	"appointment-calendar/internal/ports/auth"
)

var (
	ErrNotConfigured = errors.New("gotrue verifier not configured")
	ErrUnauthorized  = errors.New("gotrue unauthorized")
	ErrUpstream      = errors.New("gotrue upstream error")
)

// Config del verifier remoto. BaseURL apunta a la raíz de GoTrue
// (ej. https://xyz.supabase.co/auth/v1) y APIKey es el anon key que
// GoTrue exige en el header apikey.
type Config struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

// Verifier implementa auth.AuthVerifier delegando en el endpoint /user
// de GoTrue: el token del caller va en Authorization y GoTrue devuelve
// el usuario si el token es válido.
type Verifier struct {
	client *httpclient.Client
	apiKey string
}

func NewVerifier(cfg Config) (*Verifier, error) {
	if strings.TrimSpace(cfg.BaseURL) == "" {
		return nil, ErrNotConfigured
	}
	c, err := httpclient.NewWithBaseURL(cfg.BaseURL, cfg.Timeout)
	if err != nil {
		return nil, err
	}
	return &Verifier{
		client: c,
		apiKey: strings.TrimSpace(cfg.APIKey),
	}, nil
}

type userResponse struct {
	ID           string `json:"id"`
	Email        string `json:"email"`
	EmailConfirm string `json:"email_confirmed_at"`
}

func (v *Verifier) Verify(ctx context.Context, token string) (auth.Claims, error) {
	if v == nil || v.client == nil {
		return auth.Claims{}, ErrNotConfigured
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return auth.Claims{}, ErrUnauthorized
	}

	headers := map[string]string{
		"Authorization": "Bearer " + token,
	}
	if v.apiKey != "" {
		headers["apikey"] = v.apiKey
	}

	var out userResponse
	err := v.client.DoJSON(ctx, http.MethodGet, "/user", headers, nil, &out)
	if err != nil {
		var httpErr *httpclient.HTTPError
		if errors.As(err, &httpErr) {
			if httpErr.StatusCode == http.StatusUnauthorized || httpErr.StatusCode == http.StatusForbidden {
				return auth.Claims{}, ErrUnauthorized
			}
			return auth.Claims{}, fmt.Errorf("%w: status=%d", ErrUpstream, httpErr.StatusCode)
		}
		return auth.Claims{}, fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	out.ID = strings.TrimSpace(out.ID)
	if out.ID == "" {
		return auth.Claims{}, errors.New("gotrue response missing user id")
	}

	return auth.Claims{
		UserID:        out.ID,
		Email:         strings.TrimSpace(out.Email),
		EmailVerified: strings.TrimSpace(out.EmailConfirm) != "",
	}, nil
}
