package setup

import (
	"fmt"
	"reflect"

	"github.com/andrescamacho/dronewatch-go/internal/application/game"
	gameCommands "github.com/andrescamacho/dronewatch-go/internal/application/game/commands"
	gameQueries "github.com/andrescamacho/dronewatch-go/internal/application/game/queries"
	historyCommands "github.com/andrescamacho/dronewatch-go/internal/application/history/commands"
	historyQueries "github.com/andrescamacho/dronewatch-go/internal/application/history/queries"
	ledgerCommands "github.com/andrescamacho/dronewatch-go/internal/application/ledger/commands"
	ledgerQueries "github.com/andrescamacho/dronewatch-go/internal/application/ledger/queries"
	"github.com/andrescamacho/dronewatch-go/internal/application/mediator"
	"github.com/andrescamacho/dronewatch-go/internal/domain/ledger"
	"github.com/andrescamacho/dronewatch-go/internal/domain/round"
	"github.com/andrescamacho/dronewatch-go/internal/domain/shared"
)

// HandlerRegistry holds the dependencies every handler is built from
type HandlerRegistry struct {
	engine          *game.Engine
	transactionRepo ledger.TransactionRepository
	historyRepo     round.HistoryRepository
	clock           shared.Clock
}

// NewHandlerRegistry creates a registry. The repositories may be nil, in which case
// the journal and history handlers are not registered.
func NewHandlerRegistry(
	engine *game.Engine,
	transactionRepo ledger.TransactionRepository,
	historyRepo round.HistoryRepository,
	clock shared.Clock,
) *HandlerRegistry {
	if clock == nil {
		clock = shared.NewRealClock()
	}
	return &HandlerRegistry{
		engine:          engine,
		transactionRepo: transactionRepo,
		historyRepo:     historyRepo,
		clock:           clock,
	}
}

type registration struct {
	request interface{}
	handler mediator.RequestHandler
}

func register(m mediator.Mediator, regs []registration) error {
	for _, r := range regs {
		if err := m.Register(reflect.TypeOf(r.request), r.handler); err != nil {
			return fmt.Errorf("failed to register %T handler: %w", r.request, err)
		}
	}
	return nil
}

// RegisterGameHandlers registers the gameplay commands and the state queries
func (r *HandlerRegistry) RegisterGameHandlers(m mediator.Mediator) error {
	e := r.engine
	return register(m, []registration{
		{&gameCommands.StartRoundCommand{}, gameCommands.NewStartRoundHandler(e)},
		{&gameCommands.EndRoundCommand{}, gameCommands.NewEndRoundHandler(e)},
		{&gameCommands.PurchaseDroneCommand{}, gameCommands.NewPurchaseDroneHandler(e)},
		{&gameCommands.ArrestSuspectCommand{}, gameCommands.NewArrestSuspectHandler(e)},
		{&gameCommands.RespondToIdentificationCommand{}, gameCommands.NewRespondToIdentificationHandler(e)},
		{&gameCommands.TargetPlayerCommand{}, gameCommands.NewTargetPlayerHandler(e)},
		{&gameCommands.ResetGameCommand{}, gameCommands.NewResetGameHandler(e)},
		{&gameQueries.GetGameStateQuery{}, gameQueries.NewGetGameStateHandler(e)},
		{&gameQueries.GetWantedListQuery{}, gameQueries.NewGetWantedListHandler(e)},
		{&gameQueries.ListDronesQuery{}, gameQueries.NewListDronesHandler(e)},
		{&gameQueries.ListCrowdQuery{}, gameQueries.NewListCrowdHandler(e)},
		{&gameQueries.GetRoundResultsQuery{}, gameQueries.NewGetRoundResultsHandler(e)},
	})
}

// RegisterLedgerHandlers registers the transaction journal command and its reports
func (r *HandlerRegistry) RegisterLedgerHandlers(m mediator.Mediator) error {
	return register(m, []registration{
		{&ledgerCommands.RecordTransactionCommand{}, ledgerCommands.NewRecordTransactionHandler(r.transactionRepo, r.clock)},
		{&ledgerQueries.GetTransactionsQuery{}, ledgerQueries.NewGetTransactionsHandler(r.transactionRepo)},
		{&ledgerQueries.GetProfitLossQuery{}, ledgerQueries.NewGetProfitLossHandler(r.transactionRepo)},
	})
}

// RegisterHistoryHandlers registers the round history commands and queries
func (r *HandlerRegistry) RegisterHistoryHandlers(m mediator.Mediator) error {
	return register(m, []registration{
		{&historyCommands.StartGameCommand{}, historyCommands.NewStartGameHandler(r.historyRepo)},
		{&historyCommands.RecordRoundCommand{}, historyCommands.NewRecordRoundHandler(r.historyRepo)},
		{&historyQueries.ListGamesQuery{}, historyQueries.NewListGamesHandler(r.historyRepo)},
		{&historyQueries.GetGameHistoryQuery{}, historyQueries.NewGetGameHistoryHandler(r.historyRepo)},
	})
}

// CreateConfiguredMediator creates a mediator with the middleware installed and every
// handler whose dependencies are available registered
func (r *HandlerRegistry) CreateConfiguredMediator(middleware ...mediator.Middleware) (mediator.Mediator, error) {
	m := mediator.NewMediator()
	for _, mw := range middleware {
		m.Use(mw)
	}

	if r.engine != nil {
		if err := r.RegisterGameHandlers(m); err != nil {
			return nil, err
		}
	}
	if r.transactionRepo != nil {
		if err := r.RegisterLedgerHandlers(m); err != nil {
			return nil, err
		}
	}
	if r.historyRepo != nil {
		if err := r.RegisterHistoryHandlers(m); err != nil {
			return nil, err
		}
	}
	return m, nil
}
