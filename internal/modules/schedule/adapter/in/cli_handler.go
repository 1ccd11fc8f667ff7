package in

import (
	"context"

	"shiftware/internal/modules/schedule/dto"
	schedulein "shiftware/internal/modules/schedule/port/in"
)

type CLIHandler struct {
	usecase schedulein.Usecase
}

func NewCLIHandler(usecase schedulein.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Calendar(ctx context.Context) (dto.CalendarOutput, error) {
	return h.usecase.Calendar(ctx)
}
