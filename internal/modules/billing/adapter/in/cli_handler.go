package in

import (
	"context"
	"time"

	"shiftware/internal/modules/billing/dto"
	billingin "shiftware/internal/modules/billing/port/in"
)

type CLIHandler struct {
	usecase billingin.Usecase
}

func NewCLIHandler(usecase billingin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) List(ctx context.Context) (dto.ListOutput, error) {
	return h.usecase.List(ctx)
}

func (h CLIHandler) Create(ctx context.Context, clientID int64, shiftIDs []int64, due time.Time) (dto.InvoiceOutput, error) {
	return h.usecase.Create(ctx, dto.CreateInvoiceInput{ClientID: clientID, ShiftIDs: shiftIDs, Due: due})
}
