package game

import (
	"log/slog"
	"math"
	"sync"
	"time"

	"github.com/andrescamacho/dronewatch-go/internal/application/common"
	"github.com/andrescamacho/dronewatch-go/internal/application/events"
	"github.com/andrescamacho/dronewatch-go/internal/domain/arrest"
	"github.com/andrescamacho/dronewatch-go/internal/domain/crowd"
	"github.com/andrescamacho/dronewatch-go/internal/domain/drone"
	"github.com/andrescamacho/dronewatch-go/internal/domain/ledger"
	"github.com/andrescamacho/dronewatch-go/internal/domain/roster"
	"github.com/andrescamacho/dronewatch-go/internal/domain/round"
	"github.com/andrescamacho/dronewatch-go/internal/domain/shared"
)

// Engine owns one game session and serializes every mutation behind a single lock.
// All waiting is expressed as deadlines that move forward only through Advance.
//
// Event handlers subscribed to the engine's bus run while the lock is held and
// must not call back into the engine.
type Engine struct {
	mu sync.Mutex

	config  Config
	gameID  shared.GameID
	clock   shared.Clock
	bus     *events.Bus
	logger  *slog.Logger
	catalog *roster.Catalog

	generator   *roster.Generator
	wanted      *roster.WantedRoster
	crowd       *crowd.Crowd
	ledger      *ledger.Ledger
	rounds      *round.Clock
	fleet       *drone.Fleet
	adjudicator *arrest.Adjudicator
	player      roster.PersonRecord

	betrayalPending bool
	betrayalArmed   bool
	playerTargeted  bool
	lastTickSecond  int
	results         []round.Result
}

// NewEngine wires a game session. A nil catalog means an empty catalog, a nil bus
// gets a private bus and a nil logger discards output.
func NewEngine(
	config Config,
	catalog *roster.Catalog,
	rng shared.RandomSource,
	clock shared.Clock,
	bus *events.Bus,
	logger *slog.Logger,
) *Engine {
	if catalog == nil {
		catalog = roster.NewCatalog(nil)
	}
	if rng == nil {
		rng = shared.NewSeededRandom(0)
	}
	if clock == nil {
		clock = shared.NewRealClock()
	}
	if bus == nil {
		bus = events.NewBus()
	}
	if logger == nil {
		logger = common.DiscardLogger()
	}
	if config.PlayerName == "" {
		config.PlayerName = DefaultPlayerName
	}
	if config.CrowdSize < 0 {
		config.CrowdSize = 0
	}

	e := &Engine{
		config:    config,
		gameID:    shared.NewGameID(),
		clock:     clock,
		bus:       bus,
		logger:    logger,
		catalog:   catalog,
		generator: roster.NewGenerator(config.Roster, rng),
		wanted:    roster.NewWantedRoster(),
		crowd:     crowd.NewCrowd(rng),
		ledger:    ledger.NewLedger(config.Ledger),
		rounds:    round.NewClock(config.Round),
		fleet:     drone.NewFleet(config.Fleet, rng),
		player:    roster.NewPlayerRecord(config.PlayerName),
	}
	e.ledger.Subscribe(&ledgerPublisher{engine: e})
	e.adjudicator = arrest.NewAdjudicator(e.wanted, e.ledger, e.rounds, e.crowd, e.fleet)
	return e
}

// Bus returns the bus the engine publishes to
func (e *Engine) Bus() *events.Bus {
	return e.bus
}

func (e *Engine) Config() Config {
	return e.config
}

func (e *Engine) GameID() shared.GameID {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.gameID
}

func (e *Engine) State() round.State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.rounds.State()
}

// Results returns the results of every finished round of the current game
func (e *Engine) Results() []round.Result {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]round.Result, len(e.results))
	copy(out, e.results)
	return out
}

// Boot moves the game from PREPARING into the first interlude
func (e *Engine) Boot() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	from := e.rounds.State()
	if err := e.rounds.Boot(); err != nil {
		e.logger.Warn("boot rejected", "state", from, "error", err)
		return err
	}
	e.publishStateChange(from)
	e.logger.Info("game booted", "game_id", e.gameID.String())
	return nil
}

// StartNextRound begins the next round: new wanted list, new crowd, drones resume
func (e *Engine) StartNextRound() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	from := e.rounds.State()
	if err := e.rounds.StartNextRound(); err != nil {
		e.logger.Warn("start round rejected", "state", from, "error", err)
		return err
	}

	index := e.rounds.Round()
	e.wanted.Replace(e.generator.Generate(index, e.catalog))
	e.rounds.SetTotalSuspects(e.wanted.Size())
	e.crowd.Populate(e.catalog, e.wanted, e.config.CrowdSize)
	e.fleet.ResumeAll()
	e.lastTickSecond = int(math.Ceil(e.rounds.Remaining().Seconds()))
	if e.betrayalPending {
		e.betrayalPending = false
		e.betrayalArmed = true
	}

	e.publishStateChange(from)
	e.publishWantedList()
	e.publish(events.EventTypeRoundStarted, events.RoundStartedPayload{
		Round:           index,
		WantedCount:     e.wanted.Size(),
		RequiredArrests: e.rounds.RequiredArrests(),
		DurationSeconds: e.rounds.Remaining().Seconds(),
		CrowdSize:       e.crowd.Size(),
	})
	e.logger.Info("round started",
		"round", index,
		"wanted", e.wanted.Size(),
		"required_arrests", e.rounds.RequiredArrests(),
		"crowd", e.crowd.Size())
	return nil
}

// Advance moves game time forward by dt. Drone timers are processed in drone order
// before the round countdown is evaluated, so arrests made during this tick count
// toward the quota of the round that is ending.
func (e *Engine) Advance(dt time.Duration) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.rounds.IsPlaying() || dt <= 0 {
		return
	}

	expired := e.rounds.Advance(dt)

	for _, agent := range e.fleet.Agents() {
		if !e.rounds.IsPlaying() {
			return
		}
		step := agent.Advance(dt, e.wanted, e.crowd.Present())
		if step.Identified != nil {
			e.publishIdentification(*step.Identified)
		}
		if step.Expired != nil {
			if _, err := e.resolve(agent, true, true); err != nil {
				e.logger.Warn("auto-confirm failed", "drone", agent.ID(), "error", err)
			}
		}
	}
	if !e.rounds.IsPlaying() {
		return
	}

	if e.betrayalArmed && !e.playerTargeted && e.rounds.Elapsed() >= e.config.BetrayalDelay {
		e.targetPlayer()
	}

	if sec := int(math.Ceil(e.rounds.Remaining().Seconds())); sec != e.lastTickSecond {
		e.lastTickSecond = sec
		e.publish(events.EventTypeTimerTick, events.TimerTickPayload{
			RemainingSeconds: e.rounds.Remaining().Seconds(),
		})
	}

	if expired {
		e.endRound()
	}
}

// EndRoundEarly ends the running round immediately with the normal evaluation
func (e *Engine) EndRoundEarly() (round.Result, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.rounds.IsPlaying() {
		err := shared.NewInvalidStateError("end round", e.rounds.State().String())
		e.logger.Warn("end round rejected", "error", err)
		return round.Result{}, err
	}
	return e.endRound(), nil
}

// PurchaseDrone buys the next drone. Unaffordable purchases are declined without side effects.
func (e *Engine) PurchaseDrone() (DroneView, float64, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.rounds.State() == round.StateGameOver {
		err := shared.NewInvalidStateError("purchase drone", e.rounds.State().String())
		e.logger.Warn("drone purchase rejected", "error", err)
		return DroneView{}, 0, err
	}

	agent, cost, err := e.fleet.Purchase(e.ledger)
	if err != nil {
		e.logger.Warn("drone purchase declined", "cost", cost, "balance", e.ledger.Balance(), "error", err)
		return DroneView{}, cost, err
	}
	if e.rounds.IsPlaying() {
		agent.Resume()
	}

	e.publish(events.EventTypeDronePurchased, events.DronePurchasedPayload{
		DroneID:  agent.ID(),
		Cost:     cost,
		Accuracy: agent.Accuracy(),
		NextCost: e.fleet.NextCost(),
	})
	e.logger.Info("drone purchased", "drone", agent.ID(), "cost", cost, "accuracy", agent.Accuracy())
	return droneView(agent), cost, nil
}

// ArrestSuspect is the player's direct arrest of a sighting
func (e *Engine) ArrestSuspect(id crowd.SightingID) (arrest.Verdict, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.rounds.IsPlaying() {
		err := shared.NewInvalidStateError("arrest", e.rounds.State().String())
		e.logger.Warn("arrest rejected", "sighting", id.String(), "error", err)
		return arrest.Verdict{}, err
	}
	target, ok := e.crowd.Find(id)
	if !ok {
		err := shared.NewNotFoundError("sighting", id.String())
		e.logger.Warn("arrest rejected", "error", err)
		return arrest.Verdict{}, err
	}

	verdict, err := e.adjudicator.Resolve(target, true)
	if err != nil {
		return arrest.Verdict{}, err
	}
	e.publishVerdict(verdict, 0, false)
	return verdict, nil
}

// RespondToIdentification confirms or denies a drone's pending identification
func (e *Engine) RespondToIdentification(droneID int, confirm bool) (arrest.Verdict, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.rounds.IsPlaying() {
		err := shared.NewInvalidStateError("respond to identification", e.rounds.State().String())
		e.logger.Warn("response rejected", "drone", droneID, "error", err)
		return arrest.Verdict{}, err
	}
	agent, err := e.fleet.Get(droneID)
	if err != nil {
		e.logger.Warn("response rejected", "drone", droneID, "error", err)
		return arrest.Verdict{}, err
	}
	return e.resolve(agent, confirm, false)
}

// TargetPlayer turns every drone on the player immediately
func (e *Engine) TargetPlayer() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.rounds.IsPlaying() {
		return shared.NewInvalidStateError("target player", e.rounds.State().String())
	}
	e.targetPlayer()
	return nil
}

// Reset starts a fresh game: new session ID, starting balance, no drones, first interlude
func (e *Engine) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()

	from := e.rounds.State()
	previous := e.gameID

	e.gameID = shared.NewGameID()
	e.fleet.Reset()
	e.wanted.Clear()
	e.crowd.Clear()
	e.rounds.Reset()
	e.ledger.Reset()
	e.betrayalPending = false
	e.betrayalArmed = false
	e.playerTargeted = false
	e.lastTickSecond = 0
	e.results = nil

	e.publishStateChange(from)
	e.publishWantedList()
	e.logger.Info("game reset", "previous_game_id", previous.String(), "game_id", e.gameID.String())
}

// Snapshot returns a consistent read of the game state
func (e *Engine) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()

	s := Snapshot{
		GameID:            e.gameID.String(),
		State:             e.rounds.State().String(),
		Round:             e.rounds.Round(),
		MaxRounds:         e.rounds.Config().MaxRounds,
		RemainingSeconds:  e.rounds.Remaining().Seconds(),
		Arrests:           e.rounds.Arrests(),
		RequiredArrests:   e.rounds.RequiredArrests(),
		TotalSuspects:     e.rounds.TotalSuspects(),
		Balance:           e.ledger.Balance(),
		Bankrupt:          e.ledger.IsBankrupt(),
		NextDroneCost:     e.fleet.NextCost(),
		NextDroneAccuracy: e.fleet.NextAccuracy(),
		PlayerTargeted:    e.playerTargeted,
		Drones:            []DroneView{},
		Wanted:            []events.WantedEntry{},
		Crowd:             []SightingView{},
	}
	for _, a := range e.fleet.Agents() {
		s.Drones = append(s.Drones, droneView(a))
	}
	for _, r := range e.wanted.Records() {
		s.Wanted = append(s.Wanted, wantedEntry(r))
	}
	for _, p := range e.crowd.Present() {
		s.Crowd = append(s.Crowd, SightingView{
			ID:       p.ID.String(),
			Name:     p.Record.Name(),
			Class:    p.Record.Class().String(),
			SubClass: p.Record.SubClass(),
		})
	}
	return s
}

// resolve closes an agent's pending identification. A denial of a player
// identification is ignored and leaves it pending.
func (e *Engine) resolve(agent *drone.Agent, confirm, auto bool) (arrest.Verdict, error) {
	pending, ok := agent.Pending()
	if !ok {
		return arrest.Verdict{}, shared.NewInvalidStateError("respond to identification", agent.State().String())
	}

	if pending.TargetsPlayer {
		if !confirm {
			return arrest.Verdict{Outcome: arrest.OutcomeDenied}, nil
		}
		if _, err := agent.Resolve(); err != nil {
			return arrest.Verdict{}, err
		}
		verdict := e.adjudicator.ResolvePlayer(true)
		e.publishVerdict(verdict, agent.ID(), auto)
		e.logger.Info("player caught", "drone", agent.ID(), "auto_confirmed", auto)
		e.endRound()
		return verdict, nil
	}

	if _, err := agent.Resolve(); err != nil {
		return arrest.Verdict{}, err
	}
	verdict, err := e.adjudicator.Resolve(pending.Target, confirm)
	if err != nil {
		return arrest.Verdict{}, err
	}
	e.publishVerdict(verdict, agent.ID(), auto)
	return verdict, nil
}

func (e *Engine) targetPlayer() {
	e.playerTargeted = true
	e.betrayalArmed = false

	identifications := e.fleet.TargetPlayer(e.player)
	e.publish(events.EventTypePlayerTargeted, events.PlayerTargetedPayload{Drones: len(identifications)})
	e.publishWantedList()
	for _, id := range identifications {
		e.publishIdentification(id)
	}
	e.logger.Warn("drones are targeting the player", "drones", len(identifications))
}

func (e *Engine) endRound() round.Result {
	from := e.rounds.State()
	bankrupt := e.ledger.IsBankrupt()

	result, err := e.rounds.End(bankrupt)
	if err != nil {
		e.logger.Error("round end failed", "error", err)
		return round.Result{}
	}
	e.results = append(e.results, result)
	e.fleet.PauseAll()
	// The player is only wanted during the round the drones turned
	e.playerTargeted = false

	e.publish(events.EventTypeRoundEnded, events.RoundEndedPayload{
		Round:           result.Round,
		Arrests:         result.Arrests,
		TotalSuspects:   result.TotalSuspects,
		RequiredArrests: result.RequiredArrests,
		Balance:         e.ledger.Balance(),
		Reason:          result.Reason.String(),
		NextState:       result.NextState.String(),
	})
	e.publishStateChange(from)
	e.logger.Info("round ended",
		"round", result.Round,
		"arrests", result.Arrests,
		"required", result.RequiredArrests,
		"reason", result.Reason.String(),
		"next_state", result.NextState)

	quotaMet := result.Arrests >= result.RequiredArrests
	if e.config.CommendationRound > 0 && result.Round == e.config.CommendationRound && quotaMet && !bankrupt {
		e.publish(events.EventTypeCommendationAwarded, events.CommendationAwardedPayload{
			Round: result.Round,
			Title: "Employee of the Month",
		})
	}

	if result.GameOver() {
		e.betrayalArmed = false
		e.publish(events.EventTypeGameOver, events.GameOverPayload{
			Reason:  result.Reason.String(),
			Round:   result.Round,
			Balance: e.ledger.Balance(),
			Won:     result.Reason.IsWin(),
		})
		e.logger.Info("game over", "reason", result.Reason.String(), "round", result.Round)
		return result
	}

	if e.config.BetrayalRound > 0 && result.Round == e.config.BetrayalRound {
		e.betrayalPending = true
	}
	return result
}

func (e *Engine) publish(t events.EventType, payload interface{}) {
	e.bus.Publish(events.Event{
		Type:      t,
		GameID:    e.gameID.String(),
		Round:     e.rounds.Round(),
		Timestamp: e.clock.Now(),
		Payload:   payload,
	})
}

func (e *Engine) publishStateChange(from round.State) {
	to := e.rounds.State()
	if from == to {
		return
	}
	e.publish(events.EventTypeStateChanged, events.StateChangedPayload{From: from.String(), To: to.String()})
}

func (e *Engine) publishWantedList() {
	payload := events.WantedListUpdatedPayload{
		Entries:     []events.WantedEntry{},
		ClassCounts: map[string]int{},
	}
	for _, r := range e.wanted.Records() {
		payload.Entries = append(payload.Entries, wantedEntry(r))
	}
	for class, n := range e.wanted.ClassCounts() {
		payload.ClassCounts[class.String()] = n
	}
	if e.playerTargeted {
		payload.Entries = append(payload.Entries, wantedEntry(e.player))
	}
	e.publish(events.EventTypeWantedListUpdated, payload)
}

func (e *Engine) publishIdentification(id drone.Identification) {
	payload := events.DroneIdentificationPayload{
		DroneID:               id.DroneID,
		ReportedAs:            wantedEntry(id.ReportedAs),
		TargetsPlayer:         id.TargetsPlayer,
		ResponseWindowSeconds: id.Remaining.Seconds(),
	}
	if !id.TargetsPlayer {
		payload.SightingID = id.Target.ID.String()
	}
	e.publish(events.EventTypeDroneIdentification, payload)
}

func (e *Engine) publishVerdict(v arrest.Verdict, droneID int, auto bool) {
	payload := events.ArrestResolvedPayload{
		Outcome:       v.Outcome.String(),
		DroneID:       droneID,
		AutoConfirmed: auto,
	}
	if v.Outcome != arrest.OutcomePlayerCaught {
		payload.SightingID = v.Target.ID.String()
		payload.Name = v.Target.Record.Name()
	}
	e.publish(events.EventTypeArrestResolved, payload)
	if v.Outcome != arrest.OutcomeDenied {
		e.logger.Info("arrest resolved",
			"outcome", v.Outcome.String(),
			"drone", droneID,
			"target", payload.Name,
			"auto_confirmed", auto)
	}
}

// ledgerPublisher forwards ledger notifications to the bus
type ledgerPublisher struct {
	engine *Engine
}

func (p *ledgerPublisher) BalanceChanged(change ledger.BalanceChange) {
	p.engine.publish(events.EventTypeBalanceChanged, events.BalanceChangedPayload{
		TransactionType: change.Type.String(),
		Amount:          change.Amount,
		Before:          change.Before,
		After:           change.After,
		Description:     change.Description,
	})
}

func (p *ledgerPublisher) Bankrupt(balance float64) {
	p.engine.publish(events.EventTypeBankruptcy, events.BankruptcyPayload{
		Balance:   balance,
		Threshold: p.engine.ledger.Config().BankruptcyThreshold,
	})
	p.engine.logger.Warn("balance at or below bankruptcy threshold", "balance", balance)
}
