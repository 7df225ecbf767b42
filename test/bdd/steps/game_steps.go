package steps

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/cucumber/godog"

	"github.com/andrescamacho/dronewatch-go/internal/adapters/persistence"
	"github.com/andrescamacho/dronewatch-go/internal/application/events"
	"github.com/andrescamacho/dronewatch-go/internal/application/game"
	gameCommands "github.com/andrescamacho/dronewatch-go/internal/application/game/commands"
	historyQueries "github.com/andrescamacho/dronewatch-go/internal/application/history/queries"
	"github.com/andrescamacho/dronewatch-go/internal/application/journal"
	ledgerQueries "github.com/andrescamacho/dronewatch-go/internal/application/ledger/queries"
	"github.com/andrescamacho/dronewatch-go/internal/application/mediator"
	"github.com/andrescamacho/dronewatch-go/internal/application/setup"
	"github.com/andrescamacho/dronewatch-go/internal/domain/roster"
	"github.com/andrescamacho/dronewatch-go/internal/domain/shared"
	"github.com/andrescamacho/dronewatch-go/test/helpers"
)

// gameContext drives one engine through the mediator, the same way the daemon does
type gameContext struct {
	config     game.Config
	persistent bool

	engine   *game.Engine
	mediator mediator.Mediator
	recorder *helpers.EventRecorder

	lastVerdict *gameCommands.VerdictDTO
	lastErr     error
}

func (gc *gameContext) reset() {
	if gc.recorder != nil {
		gc.recorder.Close()
	}
	gc.config = game.DefaultConfig()
	gc.config.CrowdSize = 6
	gc.config.BetrayalRound = 0
	gc.persistent = false
	gc.engine = nil
	gc.mediator = nil
	gc.recorder = nil
	gc.lastVerdict = nil
	gc.lastErr = nil
}

// ensureEngine builds the session on first use so Given steps can still tune the config
func (gc *gameContext) ensureEngine() error {
	if gc.engine != nil {
		return nil
	}

	clock := shared.NewMockClock(time.Date(2026, 4, 1, 18, 0, 0, 0, time.UTC))
	bus := events.NewBus()
	gc.recorder = helpers.NewEventRecorder(bus)
	gc.engine = game.NewEngine(gc.config, roster.DefaultCatalog(), shared.NewSeededRandom(11), clock, bus, nil)

	var registry *setup.HandlerRegistry
	if gc.persistent {
		if err := helpers.TruncateAllTables(); err != nil {
			return err
		}
		registry = setup.NewHandlerRegistry(gc.engine,
			persistence.NewGormTransactionRepository(helpers.SharedTestDB),
			persistence.NewGormHistoryRepository(helpers.SharedTestDB),
			clock)
	} else {
		registry = setup.NewHandlerRegistry(gc.engine, nil, nil, clock)
	}

	m, err := registry.CreateConfiguredMediator()
	if err != nil {
		return fmt.Errorf("failed to configure mediator: %w", err)
	}
	gc.mediator = m
	if gc.persistent {
		journal.NewJournal(m, nil).Attach(bus)
	}

	return gc.engine.Boot()
}

func (gc *gameContext) send(req mediator.Request) (mediator.Response, error) {
	if err := gc.ensureEngine(); err != nil {
		return nil, err
	}
	return gc.mediator.Send(context.Background(), req)
}

// sendRecorded sends a player command and keeps its failure for later assertions
func (gc *gameContext) sendRecorded(req mediator.Request) error {
	resp, err := gc.send(req)
	gc.lastErr = err
	if verdict, ok := resp.(*gameCommands.VerdictDTO); ok {
		gc.lastVerdict = verdict
	}
	return nil
}

// Given steps

func (gc *gameContext) aNewGame() error {
	return nil
}

func (gc *gameContext) aNewGameWithAPersistentJournal() error {
	if helpers.SharedTestDB == nil {
		return fmt.Errorf("shared test database not initialized")
	}
	gc.persistent = true
	return nil
}

func (gc *gameContext) theStartingBalanceIs(balance int) error {
	gc.config.Ledger.StartingBalance = float64(balance)
	return nil
}

func (gc *gameContext) theGameLastsRounds(rounds int) error {
	gc.config.Round.MaxRounds = rounds
	return nil
}

func (gc *gameContext) dronesIdentifyWithPerfectAccuracy() error {
	gc.config.Fleet.BaseAccuracy = 1
	gc.config.Fleet.MinAccuracy = 1
	return nil
}

func (gc *gameContext) commendationIsAwardedAfterRound(r int) error {
	gc.config.CommendationRound = r
	return nil
}

func (gc *gameContext) dronesTurnOnThePlayer(seconds, r int) error {
	gc.config.BetrayalRound = r
	gc.config.BetrayalDelay = time.Duration(seconds) * time.Second
	return nil
}

// When steps

func (gc *gameContext) theNextRoundStarts() error {
	return gc.sendRecorded(&gameCommands.StartRoundCommand{})
}

func (gc *gameContext) theRoundIsEndedEarly() error {
	return gc.sendRecorded(&gameCommands.EndRoundCommand{})
}

func (gc *gameContext) iBuyADrone() error {
	return gc.sendRecorded(&gameCommands.PurchaseDroneCommand{})
}

func (gc *gameContext) theGameIsReset() error {
	return gc.sendRecorded(&gameCommands.ResetGameCommand{})
}

func (gc *gameContext) theDronesAreOrderedToTargetThePlayer() error {
	return gc.sendRecorded(&gameCommands.TargetPlayerCommand{})
}

func (gc *gameContext) iArrestSighting(id string) error {
	return gc.sendRecorded(&gameCommands.ArrestSuspectCommand{SightingID: id})
}

func (gc *gameContext) iRespondToTheIdentificationOfDrone(answer string, droneID int) error {
	return gc.sendRecorded(&gameCommands.RespondToIdentificationCommand{
		DroneID: droneID,
		Confirm: answer == "confirm",
	})
}

func (gc *gameContext) iArrestEveryWantedSuspect() error {
	if err := gc.ensureEngine(); err != nil {
		return err
	}
	snap := gc.engine.Snapshot()
	for _, w := range snap.Wanted {
		for _, p := range snap.Crowd {
			if p.Class != w.Class || p.SubClass != w.SubClass {
				continue
			}
			resp, err := gc.send(&gameCommands.ArrestSuspectCommand{SightingID: p.ID})
			if err != nil {
				return fmt.Errorf("arrest of %s failed: %w", p.ID, err)
			}
			if v := resp.(*gameCommands.VerdictDTO); v.Outcome != "CORRECT_ARREST" {
				return fmt.Errorf("expected CORRECT_ARREST for %s, got %s", w.Name, v.Outcome)
			}
			break
		}
	}
	return nil
}

func (gc *gameContext) bystanderID() (string, error) {
	if err := gc.ensureEngine(); err != nil {
		return "", err
	}
	snap := gc.engine.Snapshot()
	for _, p := range snap.Crowd {
		wanted := false
		for _, w := range snap.Wanted {
			if p.Class == w.Class && p.SubClass == w.SubClass {
				wanted = true
				break
			}
		}
		if !wanted {
			return p.ID, nil
		}
	}
	return "", fmt.Errorf("no bystander present")
}

func (gc *gameContext) iArrestABystander() error {
	id, err := gc.bystanderID()
	if err != nil {
		return err
	}
	return gc.iArrestSighting(id)
}

func (gc *gameContext) iArrestBystandersUntilBankrupt() error {
	for !gc.engine.Snapshot().Bankrupt {
		id, err := gc.bystanderID()
		if err != nil {
			return err
		}
		if _, err := gc.send(&gameCommands.ArrestSuspectCommand{SightingID: id}); err != nil {
			return err
		}
	}
	return nil
}

func (gc *gameContext) iPlayPerfectRounds(n int) error {
	for i := 0; i < n; i++ {
		if _, err := gc.send(&gameCommands.StartRoundCommand{}); err != nil {
			return err
		}
		if err := gc.iArrestEveryWantedSuspect(); err != nil {
			return err
		}
		resp, err := gc.send(&gameCommands.EndRoundCommand{})
		if err != nil {
			return err
		}
		if r := resp.(*gameCommands.EndRoundResponse); r.NextState != "INTERLUDE" {
			return fmt.Errorf("round %d ended in %s", r.Round, r.NextState)
		}
	}
	return nil
}

// secondsPass advances game time one second at a time, like the daemon ticker
func (gc *gameContext) secondsPass(seconds int) error {
	if err := gc.ensureEngine(); err != nil {
		return err
	}
	for i := 0; i < seconds; i++ {
		gc.engine.Advance(time.Second)
	}
	return nil
}

// Then steps

func (gc *gameContext) theGameStateShouldBe(state string) error {
	if got := gc.engine.Snapshot().State; got != state {
		return fmt.Errorf("expected state %s, got %s", state, got)
	}
	return nil
}

func (gc *gameContext) theRoundShouldBe(r int) error {
	if got := gc.engine.Snapshot().Round; got != r {
		return fmt.Errorf("expected round %d, got %d", r, got)
	}
	return nil
}

func (gc *gameContext) theWantedListShouldHaveEntries(n int) error {
	if got := len(gc.engine.Snapshot().Wanted); got != n {
		return fmt.Errorf("expected %d wanted entries, got %d", n, got)
	}
	return nil
}

func (gc *gameContext) arrestsShouldBeRequired(n int) error {
	if got := gc.engine.Snapshot().RequiredArrests; got != n {
		return fmt.Errorf("expected %d required arrests, got %d", n, got)
	}
	return nil
}

func (gc *gameContext) theBalanceShouldBe(balance float64) error {
	if got := gc.engine.Snapshot().Balance; math.Abs(got-balance) > 1e-9 {
		return fmt.Errorf("expected balance %.2f, got %.2f", balance, got)
	}
	return nil
}

func (gc *gameContext) theArrestCountShouldBe(n int) error {
	if got := gc.engine.Snapshot().Arrests; got != n {
		return fmt.Errorf("expected %d arrests, got %d", n, got)
	}
	return nil
}

func (gc *gameContext) theNextDroneShouldCost(cost float64) error {
	if got := gc.engine.Snapshot().NextDroneCost; math.Abs(got-cost) > 1e-9 {
		return fmt.Errorf("expected next drone cost %.2f, got %.2f", cost, got)
	}
	return nil
}

func (gc *gameContext) theFleetShouldBeEmpty() error {
	if drones := gc.engine.Snapshot().Drones; len(drones) != 0 {
		return fmt.Errorf("expected no drones, got %d", len(drones))
	}
	return nil
}

func (gc *gameContext) droneShouldBe(id int, state string) error {
	for _, d := range gc.engine.Snapshot().Drones {
		if d.ID == id {
			if d.State != state {
				return fmt.Errorf("expected drone %d to be %s, got %s", id, state, d.State)
			}
			return nil
		}
	}
	return fmt.Errorf("drone %d not found", id)
}

func (gc *gameContext) theVerdictShouldBe(outcome string) error {
	if gc.lastErr != nil {
		return fmt.Errorf("expected verdict %s, command failed: %w", outcome, gc.lastErr)
	}
	if gc.lastVerdict == nil {
		return fmt.Errorf("no verdict recorded")
	}
	if gc.lastVerdict.Outcome != outcome {
		return fmt.Errorf("expected verdict %s, got %s", outcome, gc.lastVerdict.Outcome)
	}
	return nil
}

func (gc *gameContext) theCommandShouldBeRejectedAs(kind string) error {
	if gc.lastErr == nil {
		return fmt.Errorf("expected the command to be rejected as %s, it succeeded", kind)
	}

	var (
		stateErr    *shared.InvalidStateError
		notFoundErr *shared.NotFoundError
		fundsErr    *shared.InsufficientFundsError
		validErr    *shared.ValidationError
		matched     bool
	)
	switch kind {
	case "invalid_state":
		matched = errors.As(gc.lastErr, &stateErr)
	case "not_found":
		matched = errors.As(gc.lastErr, &notFoundErr)
	case "insufficient_funds":
		matched = errors.As(gc.lastErr, &fundsErr)
	case "validation":
		matched = errors.As(gc.lastErr, &validErr)
	default:
		return fmt.Errorf("unknown rejection kind %q", kind)
	}
	if !matched {
		return fmt.Errorf("expected %s rejection, got %v", kind, gc.lastErr)
	}
	return nil
}

func (gc *gameContext) anEventShouldHaveBeenPublished(eventType string) error {
	if gc.recorder.Count(events.EventType(eventType)) == 0 {
		return fmt.Errorf("no %s event was published", eventType)
	}
	return nil
}

func (gc *gameContext) eventsShouldHaveBeenPublished(n int, eventType string) error {
	if got := gc.recorder.Count(events.EventType(eventType)); got != n {
		return fmt.Errorf("expected %d %s events, got %d", n, eventType, got)
	}
	return nil
}

func (gc *gameContext) theRoundShouldEndWithReason(reason string) error {
	e, ok := gc.recorder.Last(events.EventTypeRoundEnded)
	if !ok {
		return fmt.Errorf("no round has ended")
	}
	if got := e.Payload.(events.RoundEndedPayload).Reason; got != reason {
		return fmt.Errorf("expected round end reason %s, got %s", reason, got)
	}
	return nil
}

func (gc *gameContext) gameOver() (events.GameOverPayload, error) {
	e, ok := gc.recorder.Last(events.EventTypeGameOver)
	if !ok {
		return events.GameOverPayload{}, fmt.Errorf("the game is not over")
	}
	return e.Payload.(events.GameOverPayload), nil
}

func (gc *gameContext) theGameShouldBeOverWithReason(reason string) error {
	over, err := gc.gameOver()
	if err != nil {
		return err
	}
	if over.Reason != reason {
		return fmt.Errorf("expected game over reason %s, got %s", reason, over.Reason)
	}
	return nil
}

func (gc *gameContext) theGameShouldBeWon() error {
	over, err := gc.gameOver()
	if err != nil {
		return err
	}
	if !over.Won {
		return fmt.Errorf("expected the game to be won")
	}
	return nil
}

func (gc *gameContext) theLastArrestShouldHaveBeenConfirmedAutomatically() error {
	e, ok := gc.recorder.Last(events.EventTypeArrestResolved)
	if !ok {
		return fmt.Errorf("no arrest resolved")
	}
	if !e.Payload.(events.ArrestResolvedPayload).AutoConfirmed {
		return fmt.Errorf("expected the last arrest to be auto-confirmed")
	}
	return nil
}

func (gc *gameContext) thePlayerShouldBeTargeted(negation string) error {
	targeted := gc.engine.Snapshot().PlayerTargeted
	if negation == "" && !targeted {
		return fmt.Errorf("expected the player to be targeted")
	}
	if negation != "" && targeted {
		return fmt.Errorf("expected the player not to be targeted")
	}
	return nil
}

func (gc *gameContext) thePlayerShouldBeTheLastWantedEntry() error {
	wanted := gc.engine.Snapshot().Wanted
	if len(wanted) == 0 {
		return fmt.Errorf("the wanted list is empty")
	}
	if got := wanted[len(wanted)-1].Name; got != gc.config.PlayerName {
		return fmt.Errorf("expected %s last on the wanted list, got %s", gc.config.PlayerName, got)
	}
	return nil
}

// Journal steps

func (gc *gameContext) transactions() (*ledgerQueries.GetTransactionsResponse, error) {
	resp, err := gc.send(&ledgerQueries.GetTransactionsQuery{GameID: gc.engine.GameID().String(), Limit: 100})
	if err != nil {
		return nil, err
	}
	return resp.(*ledgerQueries.GetTransactionsResponse), nil
}

func (gc *gameContext) theJournalShouldHoldTransactions(n int) error {
	txs, err := gc.transactions()
	if err != nil {
		return err
	}
	if txs.Total != n {
		return fmt.Errorf("expected %d journaled transactions, got %d", n, txs.Total)
	}
	return nil
}

func (gc *gameContext) theJournalShouldHoldATransactionOf(txType string, amount float64) error {
	txs, err := gc.transactions()
	if err != nil {
		return err
	}
	for _, tx := range txs.Transactions {
		if tx.Type == txType && math.Abs(tx.Amount-amount) < 1e-9 {
			return nil
		}
	}
	return fmt.Errorf("no %s transaction of %.2f in the journal", txType, amount)
}

func (gc *gameContext) theJournalShouldHoldTheseTransactions(table *godog.Table) error {
	txs, err := gc.transactions()
	if err != nil {
		return err
	}
	for _, row := range dataRows(table) {
		txType := cellValue(table, row, "type")
		amount, err := strconv.ParseFloat(cellValue(table, row, "amount"), 64)
		if err != nil {
			return fmt.Errorf("invalid amount for %s: %w", txType, err)
		}
		after, err := strconv.ParseFloat(cellValue(table, row, "balance_after"), 64)
		if err != nil {
			return fmt.Errorf("invalid balance_after for %s: %w", txType, err)
		}

		found := false
		for _, tx := range txs.Transactions {
			if tx.Type == txType && math.Abs(tx.Amount-amount) < 1e-9 && math.Abs(tx.BalanceAfter-after) < 1e-9 {
				found = true
				break
			}
		}
		if !found {
			return fmt.Errorf("no %s transaction of %.2f leaving %.2f in the journal", txType, amount, after)
		}
	}
	return nil
}

func (gc *gameContext) gameHistory() (*historyQueries.GetGameHistoryResponse, error) {
	resp, err := gc.send(&historyQueries.GetGameHistoryQuery{GameID: gc.engine.GameID().String()})
	if err != nil {
		return nil, err
	}
	return resp.(*historyQueries.GetGameHistoryResponse), nil
}

func (gc *gameContext) theGameHistoryShouldListRounds(n int) error {
	history, err := gc.gameHistory()
	if err != nil {
		return err
	}
	if len(history.Rounds) != n {
		return fmt.Errorf("expected %d recorded rounds, got %d", n, len(history.Rounds))
	}
	return nil
}

func (gc *gameContext) theRecordedGameShouldEndWithReason(reason string) error {
	history, err := gc.gameHistory()
	if err != nil {
		return err
	}
	if history.Game.Reason != reason {
		return fmt.Errorf("expected recorded end reason %s, got %s", reason, history.Game.Reason)
	}
	if history.Game.EndedAt == nil {
		return fmt.Errorf("expected the recorded game to be closed")
	}
	return nil
}

func InitializeGameScenario(sc *godog.ScenarioContext) {
	gc := &gameContext{}

	sc.Before(func(ctx context.Context, s *godog.Scenario) (context.Context, error) {
		gc.reset()
		return ctx, nil
	})

	// Setup
	sc.Step(`^a new game$`, gc.aNewGame)
	sc.Step(`^a new game with a persistent journal$`, gc.aNewGameWithAPersistentJournal)
	sc.Step(`^the starting balance is (-?\d+)$`, gc.theStartingBalanceIs)
	sc.Step(`^the game lasts (\d+) rounds?$`, gc.theGameLastsRounds)
	sc.Step(`^drones identify with perfect accuracy$`, gc.dronesIdentifyWithPerfectAccuracy)
	sc.Step(`^commendation is awarded after round (\d+)$`, gc.commendationIsAwardedAfterRound)
	sc.Step(`^drones turn on the player (\d+) seconds into the round after round (\d+)$`, gc.dronesTurnOnThePlayer)

	// Actions
	sc.Step(`^the next round starts$`, gc.theNextRoundStarts)
	sc.Step(`^the round is ended early$`, gc.theRoundIsEndedEarly)
	sc.Step(`^I buy a drone$`, gc.iBuyADrone)
	sc.Step(`^the game is reset$`, gc.theGameIsReset)
	sc.Step(`^the drones are ordered to target the player$`, gc.theDronesAreOrderedToTargetThePlayer)
	sc.Step(`^I arrest sighting "([^"]*)"$`, gc.iArrestSighting)
	sc.Step(`^I arrest every wanted suspect$`, gc.iArrestEveryWantedSuspect)
	sc.Step(`^I arrest a bystander$`, gc.iArrestABystander)
	sc.Step(`^I arrest bystanders until bankrupt$`, gc.iArrestBystandersUntilBankrupt)
	sc.Step(`^I (confirm|deny) the identification of drone (\d+)$`, gc.iRespondToTheIdentificationOfDrone)
	sc.Step(`^I play (\d+) perfect rounds?$`, gc.iPlayPerfectRounds)
	sc.Step(`^(\d+) seconds? pass(?:es)?$`, gc.secondsPass)

	// Assertions
	sc.Step(`^the game state should be "([^"]*)"$`, gc.theGameStateShouldBe)
	sc.Step(`^the round should be (\d+)$`, gc.theRoundShouldBe)
	sc.Step(`^the wanted list should have (\d+) entries$`, gc.theWantedListShouldHaveEntries)
	sc.Step(`^(\d+) arrests? should be required$`, gc.arrestsShouldBeRequired)
	sc.Step(`^the balance should be (-?\d+(?:\.\d+)?)$`, gc.theBalanceShouldBe)
	sc.Step(`^the arrest count should be (\d+)$`, gc.theArrestCountShouldBe)
	sc.Step(`^the next drone should cost (\d+(?:\.\d+)?)$`, gc.theNextDroneShouldCost)
	sc.Step(`^the fleet should be empty$`, gc.theFleetShouldBeEmpty)
	sc.Step(`^drone (\d+) should be "([^"]*)"$`, gc.droneShouldBe)
	sc.Step(`^the verdict should be "([^"]*)"$`, gc.theVerdictShouldBe)
	sc.Step(`^the command should be rejected as "([^"]*)"$`, gc.theCommandShouldBeRejectedAs)
	sc.Step(`^an? "([^"]*)" event should have been published$`, gc.anEventShouldHaveBeenPublished)
	sc.Step(`^(\d+) "([^"]*)" events should have been published$`, gc.eventsShouldHaveBeenPublished)
	sc.Step(`^the round should end with reason "([^"]*)"$`, gc.theRoundShouldEndWithReason)
	sc.Step(`^the game should be over with reason "([^"]*)"$`, gc.theGameShouldBeOverWithReason)
	sc.Step(`^the game should be won$`, gc.theGameShouldBeWon)
	sc.Step(`^the last arrest should have been confirmed automatically$`, gc.theLastArrestShouldHaveBeenConfirmedAutomatically)
	sc.Step(`^the player should( not)? be targeted$`, gc.thePlayerShouldBeTargeted)
	sc.Step(`^the player should be the last wanted entry$`, gc.thePlayerShouldBeTheLastWantedEntry)

	// Journal
	sc.Step(`^the journal should hold (\d+) transactions?$`, gc.theJournalShouldHoldTransactions)
	sc.Step(`^the journal should hold a "([^"]*)" transaction of (-?\d+(?:\.\d+)?)$`, gc.theJournalShouldHoldATransactionOf)
	sc.Step(`^the journal should hold these transactions:$`, gc.theJournalShouldHoldTheseTransactions)
	sc.Step(`^the game history should list (\d+) rounds?$`, gc.theGameHistoryShouldListRounds)
	sc.Step(`^the recorded game should end with reason "([^"]*)"$`, gc.theRecordedGameShouldEndWithReason)
}
