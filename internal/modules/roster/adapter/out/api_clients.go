package out

import (
	"context"

	"shiftware/internal/modules/roster/domain"
	rosterout "shiftware/internal/modules/roster/port/out"
	"shiftware/internal/platform/rest"
)

type clientWire struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type clientsResponse struct {
	Clients []clientWire `json:"clients"`
}

type clientResponse struct {
	Client clientWire `json:"client"`
}

type createClientRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type ClientsAPI struct {
	client *rest.Client
}

func NewClientsAPI(client *rest.Client) rosterout.ClientsAPI {
	return &ClientsAPI{client: client}
}

func (a *ClientsAPI) List(ctx context.Context) ([]domain.Client, error) {
	var resp clientsResponse
	if err := a.client.Get(ctx, "/clients", &resp); err != nil {
		return nil, err
	}
	clients := make([]domain.Client, 0, len(resp.Clients))
	for _, w := range resp.Clients {
		clients = append(clients, domain.Client{ID: w.ID, Name: w.Name, Email: w.Email})
	}
	return clients, nil
}

func (a *ClientsAPI) Create(ctx context.Context, client domain.Client) (domain.Client, error) {
	var resp clientResponse
	req := createClientRequest{Name: client.Name, Email: client.Email}
	if err := a.client.Post(ctx, "/clients", req, &resp); err != nil {
		return domain.Client{}, err
	}
	return domain.Client{ID: resp.Client.ID, Name: resp.Client.Name, Email: resp.Client.Email}, nil
}
