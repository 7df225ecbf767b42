package daemon

import (
	"context"
	"errors"
)

var (
	// ErrUnknownCommand is returned for a command name the daemon does not serve
	ErrUnknownCommand = errors.New("unknown command")

	// ErrInvalidArguments is returned when a command's arguments cannot be decoded
	ErrInvalidArguments = errors.New("invalid command arguments")

	// ErrRejected marks a command the game refused without changing state,
	// such as an arrest outside a round or a purchase the balance cannot cover
	ErrRejected = errors.New("command rejected")
)

// Command names accepted by DaemonClient.Execute
const (
	CommandStartRound   = "round.start"
	CommandEndRound     = "round.end"
	CommandRoundResults = "round.results"
	CommandBuyDrone     = "drone.buy"
	CommandListDrones   = "drone.list"
	CommandRespond      = "drone.respond"
	CommandArrest       = "arrest"
	CommandTargetPlayer = "player.target"
	CommandResetGame    = "game.reset"
	CommandGameState    = "game.state"
	CommandWantedList   = "wanted.list"
	CommandCrowd        = "crowd.list"
	CommandTransactions = "ledger.transactions"
	CommandProfitLoss   = "ledger.report"
	CommandListGames    = "history.list"
	CommandGameHistory  = "history.game"
)

// Event is one notification as delivered to remote watchers: the JSON form of
// an event with type, game_id, round, timestamp and payload keys
type Event map[string]interface{}

// Type returns the event kind, e.g. "ROUND_STARTED"
func (e Event) Type() string {
	t, _ := e["type"].(string)
	return t
}

// Payload returns the event payload as a map, or nil
func (e Event) Payload() map[string]interface{} {
	p, _ := e["payload"].(map[string]interface{})
	return p
}

// DaemonClient is how presentation layers talk to a running game session
type DaemonClient interface {
	// Execute runs one named command or query. args and the result use JSON-compatible values.
	Execute(ctx context.Context, command string, args map[string]interface{}) (map[string]interface{}, error)

	// Watch delivers events of the given types (all when empty) until ctx ends or handle fails
	Watch(ctx context.Context, types []string, handle func(Event) error) error

	Close() error
}
