package in

import (
	"context"

	sessiondto "shiftware/internal/modules/session/dto"
	sessionin "shiftware/internal/modules/session/port/in"
)

type CLIHandler struct {
	usecase sessionin.Usecase
}

func NewCLIHandler(usecase sessionin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Login(ctx context.Context, email, password string) (sessiondto.SessionOutput, error) {
	return h.usecase.Login(ctx, sessiondto.LoginInput{Email: email, Password: password})
}

func (h CLIHandler) Logout(ctx context.Context, notifyServer bool) error {
	return h.usecase.Logout(ctx, notifyServer)
}

func (h CLIHandler) Restore(ctx context.Context) (sessiondto.SessionOutput, error) {
	return h.usecase.Restore(ctx)
}

func (h CLIHandler) Validate(ctx context.Context) (bool, error) {
	return h.usecase.Validate(ctx)
}

func (h CLIHandler) LoadProfile(ctx context.Context) (sessiondto.ProfileOutput, error) {
	return h.usecase.LoadProfile(ctx)
}

func (h CLIHandler) Current(ctx context.Context) sessiondto.SessionOutput {
	return h.usecase.Current(ctx)
}
