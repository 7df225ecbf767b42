package grpc

import (
	"fmt"
	"strings"

	gameCmd "github.com/andrescamacho/dronewatch-go/internal/application/game/commands"
	gameQuery "github.com/andrescamacho/dronewatch-go/internal/application/game/queries"
	historyQuery "github.com/andrescamacho/dronewatch-go/internal/application/history/queries"
	ledgerQuery "github.com/andrescamacho/dronewatch-go/internal/application/ledger/queries"
	"github.com/andrescamacho/dronewatch-go/internal/application/mediator"
	"github.com/andrescamacho/dronewatch-go/internal/domain/daemon"
)

// CommandFactory builds a mediator request from Execute arguments. currentGameID is
// the running session, used when a query omits game_id.
type CommandFactory func(args map[string]interface{}, currentGameID string) (mediator.Request, error)

// registerCommandFactories maps every command name to its request.
// Serving a new command only requires adding a factory here.
func (s *DaemonServer) registerCommandFactories() {
	noArgs := func(req func() mediator.Request) CommandFactory {
		return func(map[string]interface{}, string) (mediator.Request, error) {
			return req(), nil
		}
	}

	s.commandFactories[daemon.CommandStartRound] = noArgs(func() mediator.Request { return &gameCmd.StartRoundCommand{} })
	s.commandFactories[daemon.CommandEndRound] = noArgs(func() mediator.Request { return &gameCmd.EndRoundCommand{} })
	s.commandFactories[daemon.CommandRoundResults] = noArgs(func() mediator.Request { return &gameQuery.GetRoundResultsQuery{} })
	s.commandFactories[daemon.CommandBuyDrone] = noArgs(func() mediator.Request { return &gameCmd.PurchaseDroneCommand{} })
	s.commandFactories[daemon.CommandTargetPlayer] = noArgs(func() mediator.Request { return &gameCmd.TargetPlayerCommand{} })
	s.commandFactories[daemon.CommandResetGame] = noArgs(func() mediator.Request { return &gameCmd.ResetGameCommand{} })
	s.commandFactories[daemon.CommandGameState] = noArgs(func() mediator.Request { return &gameQuery.GetGameStateQuery{} })
	s.commandFactories[daemon.CommandWantedList] = noArgs(func() mediator.Request { return &gameQuery.GetWantedListQuery{} })

	s.commandFactories[daemon.CommandListDrones] = func(args map[string]interface{}, _ string) (mediator.Request, error) {
		pending, err := boolArg(args, "pending_only")
		if err != nil {
			return nil, err
		}
		return &gameQuery.ListDronesQuery{PendingOnly: pending}, nil
	}

	s.commandFactories[daemon.CommandRespond] = func(args map[string]interface{}, _ string) (mediator.Request, error) {
		droneID, ok, err := intArg(args, "drone_id")
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, fmt.Errorf("%w: missing drone_id", daemon.ErrInvalidArguments)
		}
		confirm, err := boolArg(args, "confirm")
		if err != nil {
			return nil, err
		}
		return &gameCmd.RespondToIdentificationCommand{DroneID: droneID, Confirm: confirm}, nil
	}

	s.commandFactories[daemon.CommandArrest] = func(args map[string]interface{}, _ string) (mediator.Request, error) {
		sighting, ok, err := stringArg(args, "sighting_id")
		if err != nil {
			return nil, err
		}
		if !ok || sighting == "" {
			return nil, fmt.Errorf("%w: missing sighting_id", daemon.ErrInvalidArguments)
		}
		return &gameCmd.ArrestSuspectCommand{SightingID: sighting}, nil
	}

	s.commandFactories[daemon.CommandCrowd] = func(args map[string]interface{}, _ string) (mediator.Request, error) {
		class, _, err := stringArg(args, "class")
		if err != nil {
			return nil, err
		}
		return &gameQuery.ListCrowdQuery{Class: strings.ToUpper(class)}, nil
	}

	s.commandFactories[daemon.CommandTransactions] = func(args map[string]interface{}, current string) (mediator.Request, error) {
		q := &ledgerQuery.GetTransactionsQuery{GameID: current}
		if id, ok, err := stringArg(args, "game_id"); err != nil {
			return nil, err
		} else if ok && id != "" {
			q.GameID = id
		}
		if r, ok, err := intArg(args, "round"); err != nil {
			return nil, err
		} else if ok {
			q.Round = &r
		}
		if c, ok, err := stringArg(args, "category"); err != nil {
			return nil, err
		} else if ok && c != "" {
			q.Category = &c
		}
		if t, ok, err := stringArg(args, "type"); err != nil {
			return nil, err
		} else if ok && t != "" {
			q.TransactionType = &t
		}
		var err error
		if q.Limit, _, err = intArg(args, "limit"); err != nil {
			return nil, err
		}
		if q.Offset, _, err = intArg(args, "offset"); err != nil {
			return nil, err
		}
		return q, nil
	}

	s.commandFactories[daemon.CommandProfitLoss] = func(args map[string]interface{}, current string) (mediator.Request, error) {
		q := &ledgerQuery.GetProfitLossQuery{GameID: current}
		if id, ok, err := stringArg(args, "game_id"); err != nil {
			return nil, err
		} else if ok && id != "" {
			q.GameID = id
		}
		if r, ok, err := intArg(args, "round"); err != nil {
			return nil, err
		} else if ok {
			q.Round = &r
		}
		return q, nil
	}

	s.commandFactories[daemon.CommandListGames] = func(args map[string]interface{}, _ string) (mediator.Request, error) {
		limit, _, err := intArg(args, "limit")
		if err != nil {
			return nil, err
		}
		return &historyQuery.ListGamesQuery{Limit: limit}, nil
	}

	s.commandFactories[daemon.CommandGameHistory] = func(args map[string]interface{}, current string) (mediator.Request, error) {
		id, ok, err := stringArg(args, "game_id")
		if err != nil {
			return nil, err
		}
		if !ok || id == "" {
			id = current
		}
		return &historyQuery.GetGameHistoryQuery{GameID: id}, nil
	}
}

// buildRequest resolves a command name and its arguments into a mediator request
func (s *DaemonServer) buildRequest(command string, args map[string]interface{}) (mediator.Request, error) {
	factory, ok := s.commandFactories[command]
	if !ok {
		return nil, fmt.Errorf("%w: %q", daemon.ErrUnknownCommand, command)
	}
	if args == nil {
		args = map[string]interface{}{}
	}
	return factory(args, s.engine.GameID().String())
}
