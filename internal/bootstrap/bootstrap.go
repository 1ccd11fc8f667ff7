package bootstrap

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	billinginadapter "shiftware/internal/modules/billing/adapter/in"
	billingoutadapter "shiftware/internal/modules/billing/adapter/out"
	billingservice "shiftware/internal/modules/billing/service"
	billingusecase "shiftware/internal/modules/billing/usecase"
	rosterinadapter "shiftware/internal/modules/roster/adapter/in"
	rosteroutadapter "shiftware/internal/modules/roster/adapter/out"
	rosterservice "shiftware/internal/modules/roster/service"
	rosterusecase "shiftware/internal/modules/roster/usecase"
	scheduleinadapter "shiftware/internal/modules/schedule/adapter/in"
	scheduleoutadapter "shiftware/internal/modules/schedule/adapter/out"
	scheduleservice "shiftware/internal/modules/schedule/service"
	scheduleusecase "shiftware/internal/modules/schedule/usecase"
	sessioninadapter "shiftware/internal/modules/session/adapter/in"
	sessionoutadapter "shiftware/internal/modules/session/adapter/out"
	sessionservice "shiftware/internal/modules/session/service"
	sessionusecase "shiftware/internal/modules/session/usecase"
	"shiftware/internal/platform/clock"
	"shiftware/internal/platform/config"
	"shiftware/internal/platform/id"
	"shiftware/internal/platform/rest"
	uiapp "shiftware/internal/ui/app"
)

type App struct {
	SessionCLI  sessioninadapter.CLIHandler
	RosterCLI   rosterinadapter.CLIHandler
	ScheduleCLI scheduleinadapter.CLIHandler
	BillingCLI  billinginadapter.CLIHandler

	sessionUC  *sessionusecase.Interactor
	scheduleUC *scheduleusecase.Interactor
	rosterUC   *rosterusecase.Interactor
	billingUC  *billingusecase.Interactor
}

// New wires the module graph. The session service is the token source for
// the shared REST client, so it is built first; the aggregation usecases
// take the session usecase as their guard and register back as data
// caches so a logout can drop everything they hold.
func New(cfg config.Config) (*App, error) {
	clk := clock.SystemClock{}
	ids := id.RandomHex{}

	sessionSvc := sessionservice.NewSessionService()
	client := rest.NewClient(cfg.BaseURL, cfg.Timeout, sessionSvc)

	vault := sessionoutadapter.NewFileTokenVault(cfg.VaultPath, cfg.VaultKeyPath)
	sessionUC := sessionusecase.NewInteractor(sessionSvc, sessionoutadapter.NewAuthAPI(client), vault, clk)

	clientCache, err := rosteroutadapter.NewSQLiteClientCache(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("new client cache: %w", err)
	}
	rosterSvc := rosterservice.NewRosterService(rosteroutadapter.NewClientsAPI(client))
	rosterUC := rosterusecase.NewInteractor(rosterSvc, clientCache, sessionUC)

	shiftCache, err := scheduleoutadapter.NewSQLiteShiftCache(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("new shift cache: %w", err)
	}
	scheduleSvc := scheduleservice.NewScheduleService(scheduleoutadapter.NewShiftsAPI(client, cfg.ShiftTimezone))
	scheduleUC := scheduleusecase.NewInteractor(scheduleSvc, shiftCache, sessionUC)

	invoiceCache, err := billingoutadapter.NewSQLiteInvoiceCache(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("new invoice cache: %w", err)
	}
	billingSvc := billingservice.NewBillingService(billingoutadapter.NewInvoicesAPI(client, cfg.ShiftTimezone), ids)
	billingUC := billingusecase.NewInteractor(billingSvc, invoiceCache, sessionUC)

	sessionUC.RegisterCaches(rosterUC, scheduleUC, billingUC)

	return &App{
		SessionCLI:  sessioninadapter.NewCLIHandler(sessionUC),
		RosterCLI:   rosterinadapter.NewCLIHandler(rosterUC),
		ScheduleCLI: scheduleinadapter.NewCLIHandler(scheduleUC),
		BillingCLI:  billinginadapter.NewCLIHandler(billingUC),
		sessionUC:   sessionUC,
		scheduleUC:  scheduleUC,
		rosterUC:    rosterUC,
		billingUC:   billingUC,
	}, nil
}

func RunTUI(app *App) error {
	model := uiapp.NewModel(app.sessionUC, app.scheduleUC, app.rosterUC, app.billingUC)
	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err := program.Run()
	return err
}
