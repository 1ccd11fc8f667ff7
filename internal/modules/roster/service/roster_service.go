package service

import (
	"context"

	"shiftware/internal/modules/roster/domain"
	rosterout "shiftware/internal/modules/roster/port/out"
)

type RosterService struct {
	api rosterout.ClientsAPI
}

func NewRosterService(api rosterout.ClientsAPI) *RosterService {
	return &RosterService{api: api}
}

func (s *RosterService) List(ctx context.Context) ([]domain.Client, error) {
	return s.api.List(ctx)
}

func (s *RosterService) Create(ctx context.Context, name, email string) (domain.Client, error) {
	client, err := domain.NewClient(name, email)
	if err != nil {
		return domain.Client{}, err
	}
	return s.api.Create(ctx, client)
}
