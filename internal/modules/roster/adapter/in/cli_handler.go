package in

import (
	"context"

	"shiftware/internal/modules/roster/dto"
	rosterin "shiftware/internal/modules/roster/port/in"
)

type CLIHandler struct {
	usecase rosterin.Usecase
}

func NewCLIHandler(usecase rosterin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) List(ctx context.Context) (dto.ListOutput, error) {
	return h.usecase.List(ctx)
}

func (h CLIHandler) Create(ctx context.Context, name, email string) (dto.ClientOutput, error) {
	return h.usecase.Create(ctx, dto.CreateClientInput{Name: name, Email: email})
}
