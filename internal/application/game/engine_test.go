package game

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/dronewatch-go/internal/application/events"
	"github.com/andrescamacho/dronewatch-go/internal/domain/arrest"
	"github.com/andrescamacho/dronewatch-go/internal/domain/crowd"
	"github.com/andrescamacho/dronewatch-go/internal/domain/roster"
	"github.com/andrescamacho/dronewatch-go/internal/domain/round"
	"github.com/andrescamacho/dronewatch-go/internal/domain/shared"
)

type recorder struct {
	events []events.Event
}

func (r *recorder) handle(e events.Event) {
	r.events = append(r.events, e)
}

func (r *recorder) types() []events.EventType {
	out := make([]events.EventType, 0, len(r.events))
	for _, e := range r.events {
		out = append(out, e.Type)
	}
	return out
}

func (r *recorder) last(t events.EventType) (events.Event, bool) {
	for i := len(r.events) - 1; i >= 0; i-- {
		if r.events[i].Type == t {
			return r.events[i], true
		}
	}
	return events.Event{}, false
}

func (r *recorder) reset() {
	r.events = nil
}

func testEngine(t *testing.T, mutate func(*Config)) (*Engine, *recorder) {
	t.Helper()
	config := DefaultConfig()
	config.CrowdSize = 6
	config.BetrayalRound = 0
	if mutate != nil {
		mutate(&config)
	}
	rec := &recorder{}
	bus := events.NewBus()
	bus.Subscribe(rec.handle)

	e := NewEngine(config, roster.DefaultCatalog(), shared.NewSeededRandom(11), shared.NewMockClock(time.Time{}), bus, nil)
	require.NoError(t, e.Boot())
	return e, rec
}

func startRound(t *testing.T, e *Engine) {
	t.Helper()
	require.NoError(t, e.StartNextRound())
}

// arrestAllWanted arrests one present instance of every wanted record
func arrestAllWanted(t *testing.T, e *Engine) {
	t.Helper()
	snap := e.Snapshot()
	for _, w := range snap.Wanted {
		for _, p := range snap.Crowd {
			if p.Class == w.Class && p.SubClass == w.SubClass {
				id, err := crowd.ParseSightingID(p.ID)
				require.NoError(t, err)
				verdict, err := e.ArrestSuspect(id)
				require.NoError(t, err)
				require.Equal(t, arrest.OutcomeCorrectArrest, verdict.Outcome)
				break
			}
		}
	}
}

// bystander returns a present sighting that is not wanted
func bystander(t *testing.T, e *Engine) crowd.SightingID {
	t.Helper()
	snap := e.Snapshot()
	for _, p := range snap.Crowd {
		wanted := false
		for _, w := range snap.Wanted {
			if p.Class == w.Class && p.SubClass == w.SubClass {
				wanted = true
				break
			}
		}
		if !wanted {
			id, err := crowd.ParseSightingID(p.ID)
			require.NoError(t, err)
			return id
		}
	}
	t.Fatal("no bystander present")
	return 0
}

func TestEngine_BootAndStartRound(t *testing.T) {
	e, rec := testEngine(t, nil)
	assert.Equal(t, round.StateInterlude, e.State())

	rec.reset()
	startRound(t, e)

	snap := e.Snapshot()
	assert.Equal(t, "PLAYING", snap.State)
	assert.Equal(t, 1, snap.Round)
	assert.Len(t, snap.Wanted, 3)
	assert.Equal(t, 3, snap.TotalSuspects)
	assert.Equal(t, 1, snap.RequiredArrests)
	assert.Len(t, snap.Crowd, 9)
	assert.Equal(t, 60.0, snap.RemainingSeconds)
	assert.Equal(t, []events.EventType{
		events.EventTypeStateChanged,
		events.EventTypeWantedListUpdated,
		events.EventTypeRoundStarted,
	}, rec.types())
}

func TestEngine_StartRoundOnlyFromInterlude(t *testing.T) {
	e, _ := testEngine(t, nil)
	startRound(t, e)

	err := e.StartNextRound()
	var stateErr *shared.InvalidStateError
	require.ErrorAs(t, err, &stateErr)
	assert.Equal(t, 1, e.Snapshot().Round)
}

func TestEngine_QuotaProgressionAcrossRounds(t *testing.T) {
	e, _ := testEngine(t, nil)

	for _, expected := range []int{3, 5, 7} {
		startRound(t, e)
		assert.Len(t, e.Snapshot().Wanted, expected)
		arrestAllWanted(t, e)
		result, err := e.EndRoundEarly()
		require.NoError(t, err)
		require.Equal(t, round.StateInterlude, result.NextState)
	}
}

func TestEngine_CountdownExpiryWithoutArrestsEndsGame(t *testing.T) {
	e, rec := testEngine(t, nil)
	startRound(t, e)

	for i := 0; i < 600; i++ {
		e.Advance(100 * time.Millisecond)
	}

	assert.Equal(t, round.StateGameOver, e.State())
	over, ok := rec.last(events.EventTypeGameOver)
	require.True(t, ok)
	assert.Equal(t, "QUOTA_MISSED", over.Payload.(events.GameOverPayload).Reason)

	ticks := 0
	for _, tt := range rec.types() {
		if tt == events.EventTypeTimerTick {
			ticks++
		}
	}
	assert.Equal(t, 60, ticks)
}

func TestEngine_CorrectArrestsSurviveRound(t *testing.T) {
	e, rec := testEngine(t, nil)
	startRound(t, e)
	arrestAllWanted(t, e)

	snap := e.Snapshot()
	assert.Equal(t, 250.0, snap.Balance)
	assert.Equal(t, 3, snap.Arrests)
	assert.Empty(t, snap.Wanted)
	assert.Len(t, snap.Crowd, 6)

	e.Advance(61 * time.Second)
	assert.Equal(t, round.StateInterlude, e.State())
	ended, ok := rec.last(events.EventTypeRoundEnded)
	require.True(t, ok)
	assert.Equal(t, "NONE", ended.Payload.(events.RoundEndedPayload).Reason)
	require.Len(t, e.Results(), 1)
}

func TestEngine_WrongArrestPenalty(t *testing.T) {
	e, _ := testEngine(t, nil)
	startRound(t, e)

	verdict, err := e.ArrestSuspect(bystander(t, e))
	require.NoError(t, err)
	assert.Equal(t, arrest.OutcomeWrongArrest, verdict.Outcome)
	assert.Equal(t, 70.0, e.Snapshot().Balance)
	assert.Equal(t, 0, e.Snapshot().Arrests)
}

func TestEngine_ArrestRejectedOutsideRound(t *testing.T) {
	e, _ := testEngine(t, nil)

	_, err := e.ArrestSuspect(1)
	var stateErr *shared.InvalidStateError
	assert.ErrorAs(t, err, &stateErr)

	startRound(t, e)
	_, err = e.ArrestSuspect(9999)
	var notFound *shared.NotFoundError
	assert.ErrorAs(t, err, &notFound)
	assert.Equal(t, 100.0, e.Snapshot().Balance)
}

func TestEngine_PurchaseDrone(t *testing.T) {
	e, rec := testEngine(t, nil)

	view, cost, err := e.PurchaseDrone()
	require.NoError(t, err)
	assert.Equal(t, 15.0, cost)
	assert.Equal(t, 1, view.ID)
	assert.Equal(t, "IDLE", view.State)
	assert.Equal(t, 85.0, e.Snapshot().Balance)
	assert.InDelta(t, 22.5, e.Snapshot().NextDroneCost, 1e-9)

	purchased, ok := rec.last(events.EventTypeDronePurchased)
	require.True(t, ok)
	assert.Equal(t, 1, purchased.Payload.(events.DronePurchasedPayload).DroneID)

	startRound(t, e)
	view, _, err = e.PurchaseDrone()
	require.NoError(t, err)
	assert.Equal(t, "SCANNING", view.State)
	assert.Equal(t, "SCANNING", e.Snapshot().Drones[0].State)
}

func TestEngine_UnaffordablePurchaseIsDeclined(t *testing.T) {
	e, rec := testEngine(t, func(c *Config) { c.Ledger.StartingBalance = 10 })
	rec.reset()

	_, _, err := e.PurchaseDrone()
	var fundsErr *shared.InsufficientFundsError
	require.ErrorAs(t, err, &fundsErr)
	assert.Empty(t, e.Snapshot().Drones)
	assert.Equal(t, 10.0, e.Snapshot().Balance)
	assert.Empty(t, rec.events)
}

func perfectDrones(c *Config) {
	c.Fleet.BaseAccuracy = 1
	c.Fleet.MinAccuracy = 1
}

func TestEngine_IdentificationAutoConfirmsOnTimeout(t *testing.T) {
	e, rec := testEngine(t, perfectDrones)
	_, _, err := e.PurchaseDrone()
	require.NoError(t, err)
	startRound(t, e)

	e.Advance(9 * time.Second)
	identified, ok := rec.last(events.EventTypeDroneIdentification)
	require.True(t, ok)
	assert.Equal(t, 1, identified.Payload.(events.DroneIdentificationPayload).DroneID)
	assert.Equal(t, "AWAITING_RESPONSE", e.Snapshot().Drones[0].State)

	e.Advance(5 * time.Second)
	resolved, ok := rec.last(events.EventTypeArrestResolved)
	require.True(t, ok)
	payload := resolved.Payload.(events.ArrestResolvedPayload)
	assert.True(t, payload.AutoConfirmed)
	assert.Equal(t, "CORRECT_ARREST", payload.Outcome)
	assert.Equal(t, 1, e.Snapshot().Arrests)
	assert.Equal(t, "SCANNING", e.Snapshot().Drones[0].State)
}

func TestEngine_DenyLeavesStateUnchanged(t *testing.T) {
	e, _ := testEngine(t, perfectDrones)
	_, _, err := e.PurchaseDrone()
	require.NoError(t, err)
	startRound(t, e)
	e.Advance(9 * time.Second)

	before := e.Snapshot()
	verdict, err := e.RespondToIdentification(1, false)
	require.NoError(t, err)
	assert.Equal(t, arrest.OutcomeDenied, verdict.Outcome)

	after := e.Snapshot()
	assert.Equal(t, before.Balance, after.Balance)
	assert.Equal(t, before.Wanted, after.Wanted)
	assert.Equal(t, "SCANNING", after.Drones[0].State)

	_, err = e.RespondToIdentification(1, true)
	var stateErr *shared.InvalidStateError
	assert.ErrorAs(t, err, &stateErr)

	_, err = e.RespondToIdentification(7, true)
	var notFound *shared.NotFoundError
	assert.ErrorAs(t, err, &notFound)
}

func TestEngine_RoundEndCancelsPendingIdentifications(t *testing.T) {
	e, _ := testEngine(t, perfectDrones)
	_, _, err := e.PurchaseDrone()
	require.NoError(t, err)
	startRound(t, e)
	e.Advance(9 * time.Second)
	require.Equal(t, "AWAITING_RESPONSE", e.Snapshot().Drones[0].State)

	arrests := e.Snapshot().Arrests
	_, err = e.EndRoundEarly()
	require.NoError(t, err)

	snap := e.Snapshot()
	assert.Equal(t, "IDLE", snap.Drones[0].State)
	assert.Empty(t, snap.Drones[0].PendingSightingID)

	e.Advance(10 * time.Second)
	assert.Equal(t, arrests, e.Snapshot().Arrests)
}

func TestEngine_BankruptcyEndsGame(t *testing.T) {
	e, rec := testEngine(t, func(c *Config) { c.Ledger.StartingBalance = 0 })
	startRound(t, e)
	arrestAllWanted(t, e)

	for e.Snapshot().Balance > -10 {
		_, err := e.ArrestSuspect(bystander(t, e))
		require.NoError(t, err)
	}
	_, ok := rec.last(events.EventTypeBankruptcy)
	assert.True(t, ok)

	result, err := e.EndRoundEarly()
	require.NoError(t, err)
	assert.Equal(t, round.EndReasonBankrupt, result.Reason)
	assert.Equal(t, round.StateGameOver, e.State())
}

func TestEngine_FinalRoundWins(t *testing.T) {
	e, rec := testEngine(t, func(c *Config) { c.Round.MaxRounds = 1 })
	startRound(t, e)
	arrestAllWanted(t, e)

	result, err := e.EndRoundEarly()
	require.NoError(t, err)
	assert.Equal(t, round.EndReasonAllRoundsComplete, result.Reason)

	over, ok := rec.last(events.EventTypeGameOver)
	require.True(t, ok)
	assert.True(t, over.Payload.(events.GameOverPayload).Won)

	_, _, err = e.PurchaseDrone()
	assert.Error(t, err)
}

func TestEngine_Commendation(t *testing.T) {
	e, rec := testEngine(t, func(c *Config) { c.CommendationRound = 1 })
	startRound(t, e)
	arrestAllWanted(t, e)
	_, err := e.EndRoundEarly()
	require.NoError(t, err)

	award, ok := rec.last(events.EventTypeCommendationAwarded)
	require.True(t, ok)
	assert.Equal(t, 1, award.Payload.(events.CommendationAwardedPayload).Round)
}

func TestEngine_BetrayalAndPlayerCaught(t *testing.T) {
	e, rec := testEngine(t, func(c *Config) {
		c.BetrayalRound = 1
		c.BetrayalDelay = 5 * time.Second
	})
	startRound(t, e)
	arrestAllWanted(t, e)
	_, err := e.EndRoundEarly()
	require.NoError(t, err)

	_, _, err = e.PurchaseDrone()
	require.NoError(t, err)
	startRound(t, e)
	arrestAllWanted(t, e)

	e.Advance(4 * time.Second)
	assert.False(t, e.Snapshot().PlayerTargeted)
	e.Advance(time.Second)
	snap := e.Snapshot()
	require.True(t, snap.PlayerTargeted)
	assert.True(t, snap.Drones[0].TargetsPlayer)

	wanted, ok := rec.last(events.EventTypeWantedListUpdated)
	require.True(t, ok)
	entries := wanted.Payload.(events.WantedListUpdatedPayload).Entries
	assert.Equal(t, DefaultPlayerName, entries[len(entries)-1].Name)

	verdict, err := e.RespondToIdentification(1, false)
	require.NoError(t, err)
	assert.Equal(t, arrest.OutcomeDenied, verdict.Outcome)
	assert.True(t, e.Snapshot().Drones[0].TargetsPlayer)

	verdict, err = e.RespondToIdentification(1, true)
	require.NoError(t, err)
	assert.Equal(t, arrest.OutcomePlayerCaught, verdict.Outcome)
	assert.Equal(t, round.StateGameOver, e.State())

	over, ok := rec.last(events.EventTypeGameOver)
	require.True(t, ok)
	assert.Equal(t, "PLAYER_CAUGHT", over.Payload.(events.GameOverPayload).Reason)
}

func TestEngine_SurvivedBetrayalClearsPlayerFromWantedList(t *testing.T) {
	e, rec := testEngine(t, func(c *Config) {
		c.BetrayalRound = 1
		c.BetrayalDelay = 5 * time.Second
	})
	startRound(t, e)
	arrestAllWanted(t, e)
	_, err := e.EndRoundEarly()
	require.NoError(t, err)

	_, _, err = e.PurchaseDrone()
	require.NoError(t, err)
	startRound(t, e)
	arrestAllWanted(t, e)
	e.Advance(5 * time.Second)
	require.True(t, e.Snapshot().PlayerTargeted)

	// The round ends while the drone still waits on the player
	_, err = e.EndRoundEarly()
	require.NoError(t, err)
	require.Equal(t, round.StateInterlude, e.State())
	assert.False(t, e.Snapshot().PlayerTargeted)

	rec.reset()
	startRound(t, e)
	snap := e.Snapshot()
	assert.False(t, snap.PlayerTargeted)
	assert.False(t, snap.Drones[0].TargetsPlayer)

	published, ok := rec.last(events.EventTypeWantedListUpdated)
	require.True(t, ok)
	entries := published.Payload.(events.WantedListUpdatedPayload).Entries
	assert.Len(t, entries, len(snap.Wanted))

	classes := make(map[string]bool)
	for _, entry := range entries {
		assert.NotEqual(t, DefaultPlayerName, entry.Name)
		assert.False(t, classes[entry.Class], "class %s listed twice", entry.Class)
		classes[entry.Class] = true
	}

	// Long enough for a second betrayal if the trigger were still armed
	e.Advance(10 * time.Second)
	assert.False(t, e.Snapshot().PlayerTargeted)
}

func TestEngine_PlayerIdentificationTimesOut(t *testing.T) {
	e, _ := testEngine(t, nil)
	_, _, err := e.PurchaseDrone()
	require.NoError(t, err)
	startRound(t, e)
	arrestAllWanted(t, e)

	require.NoError(t, e.TargetPlayer())
	e.Advance(5 * time.Second)
	assert.Equal(t, round.StateGameOver, e.State())
	results := e.Results()
	require.Len(t, results, 1)
	assert.Equal(t, round.EndReasonPlayerCaught, results[0].Reason)
}

func TestEngine_Reset(t *testing.T) {
	e, _ := testEngine(t, nil)
	firstID := e.GameID()
	_, _, err := e.PurchaseDrone()
	require.NoError(t, err)
	startRound(t, e)
	_, err = e.EndRoundEarly()
	require.NoError(t, err)
	require.Equal(t, round.StateGameOver, e.State())

	e.Reset()
	snap := e.Snapshot()
	assert.Equal(t, "INTERLUDE", snap.State)
	assert.Equal(t, 0, snap.Round)
	assert.Equal(t, 100.0, snap.Balance)
	assert.Empty(t, snap.Drones)
	assert.Empty(t, snap.Wanted)
	assert.Empty(t, snap.Crowd)
	assert.Empty(t, e.Results())
	assert.False(t, firstID.Equals(e.GameID()))

	startRound(t, e)
	assert.Equal(t, 1, e.Snapshot().Round)
}

func TestEngine_EmptyCatalogRoundsAreTriviallySatisfied(t *testing.T) {
	e := NewEngine(DefaultConfig(), roster.NewCatalog(nil), shared.NewSeededRandom(1), nil, nil, nil)
	require.NoError(t, e.Boot())
	require.NoError(t, e.StartNextRound())

	snap := e.Snapshot()
	assert.Empty(t, snap.Wanted)
	assert.Empty(t, snap.Crowd)

	result, err := e.EndRoundEarly()
	require.NoError(t, err)
	assert.Equal(t, round.StateInterlude, result.NextState)
}
