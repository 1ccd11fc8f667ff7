package out

import (
	"context"

	"shiftware/internal/modules/session/domain"
	sessionout "shiftware/internal/modules/session/port/out"
	"shiftware/internal/platform/rest"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string `json:"token"`
}

type profileWire struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Business string `json:"business"`
	ABN      string `json:"abn"`
	Phone    string `json:"phone"`
}

type profileResponse struct {
	Profile profileWire `json:"profile"`
}

type AuthAPI struct {
	client *rest.Client
}

func NewAuthAPI(client *rest.Client) sessionout.AuthAPI {
	return &AuthAPI{client: client}
}

func (a *AuthAPI) Login(ctx context.Context, email, password string) (string, error) {
	var resp loginResponse
	if err := a.client.Post(ctx, "/login", loginRequest{Email: email, Password: password}, &resp); err != nil {
		return "", err
	}
	return resp.Token, nil
}

func (a *AuthAPI) Logout(ctx context.Context) error {
	return a.client.Get(ctx, "/logout", nil)
}

func (a *AuthAPI) Profile(ctx context.Context) (domain.Profile, error) {
	var resp profileResponse
	if err := a.client.Get(ctx, "/profile", &resp); err != nil {
		return domain.Profile{}, err
	}
	return domain.Profile{
		Name:     resp.Profile.Name,
		Email:    resp.Profile.Email,
		Business: resp.Profile.Business,
		ABN:      resp.Profile.ABN,
		Phone:    resp.Profile.Phone,
	}, nil
}

// Probe hits /profile and discards the body. The API has no dedicated
// token-introspection endpoint, so the cheapest authenticated read serves.
func (a *AuthAPI) Probe(ctx context.Context) error {
	return a.client.Get(ctx, "/profile", nil)
}
