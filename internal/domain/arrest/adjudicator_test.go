package arrest

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/dronewatch-go/internal/domain/crowd"
	"github.com/andrescamacho/dronewatch-go/internal/domain/drone"
	"github.com/andrescamacho/dronewatch-go/internal/domain/ledger"
	"github.com/andrescamacho/dronewatch-go/internal/domain/roster"
	"github.com/andrescamacho/dronewatch-go/internal/domain/round"
	"github.com/andrescamacho/dronewatch-go/internal/domain/shared"
)

type fixture struct {
	wanted      *roster.WantedRoster
	ledger      *ledger.Ledger
	clock       *round.Clock
	crowd       *crowd.Crowd
	fleet       *drone.Fleet
	adjudicator *Adjudicator
	ada, bea    crowd.Sighting
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	rng := shared.NewSeededRandom(1)
	f := &fixture{
		ledger: ledger.NewLedger(ledger.DefaultConfig()),
		clock:  round.NewClock(round.DefaultConfig()),
		crowd:  crowd.NewCrowd(rng),
		fleet:  drone.NewFleet(drone.DefaultFleetConfig(), rng),
	}
	adaRecord := roster.MustNewPersonRecord("Ada", "a1", roster.ClassA, 1)
	beaRecord := roster.MustNewPersonRecord("Bea", "b1", roster.ClassB, 1)
	f.wanted = roster.NewWantedRoster(adaRecord)
	f.ada = f.crowd.Register(adaRecord)
	f.bea = f.crowd.Register(beaRecord)

	require.NoError(t, f.clock.Boot())
	require.NoError(t, f.clock.StartNextRound())
	f.clock.SetTotalSuspects(1)

	f.adjudicator = NewAdjudicator(f.wanted, f.ledger, f.clock, f.crowd, f.fleet)
	return f
}

func TestResolve_DeniedChangesNothing(t *testing.T) {
	f := newFixture(t)

	verdict, err := f.adjudicator.Resolve(f.ada, false)
	require.NoError(t, err)
	assert.Equal(t, OutcomeDenied, verdict.Outcome)
	assert.Equal(t, 100.0, f.ledger.Balance())
	assert.True(t, f.wanted.Contains(f.ada.Record))
	assert.Equal(t, 0, f.clock.Arrests())
	assert.Equal(t, 2, f.crowd.Size())
}

func TestResolve_CorrectArrest(t *testing.T) {
	f := newFixture(t)

	verdict, err := f.adjudicator.Resolve(f.ada, true)
	require.NoError(t, err)
	assert.Equal(t, OutcomeCorrectArrest, verdict.Outcome)
	assert.Equal(t, 150.0, f.ledger.Balance())
	assert.False(t, f.wanted.Contains(f.ada.Record))
	assert.Equal(t, 1, f.clock.Arrests())
	assert.False(t, f.crowd.Contains(f.ada.ID))
}

func TestResolve_WrongArrest(t *testing.T) {
	f := newFixture(t)

	verdict, err := f.adjudicator.Resolve(f.bea, true)
	require.NoError(t, err)
	assert.Equal(t, OutcomeWrongArrest, verdict.Outcome)
	assert.Equal(t, 70.0, f.ledger.Balance())
	assert.Equal(t, 0, f.clock.Arrests())
	assert.True(t, f.crowd.Contains(f.bea.ID))
	assert.True(t, f.wanted.Contains(f.ada.Record))
}

func TestResolve_SecondArrestOfSameRecordIsWrong(t *testing.T) {
	f := newFixture(t)
	_, err := f.adjudicator.Resolve(f.ada, true)
	require.NoError(t, err)

	verdict, err := f.adjudicator.Resolve(f.ada, true)
	require.NoError(t, err)
	assert.Equal(t, OutcomeWrongArrest, verdict.Outcome)
}

func TestResolve_ReleasesDronesWatchingTheArrestedPerson(t *testing.T) {
	f := newFixture(t)
	f.fleet = drone.NewFleet(drone.FleetConfig{
		CostMultiplier: 1, BaseAccuracy: 1, MinAccuracy: 1,
		Agent: drone.AgentConfig{ScanInterval: time.Second, ResponseWindow: 5 * time.Second},
	}, shared.NewSeededRandom(2))
	f.adjudicator = NewAdjudicator(f.wanted, f.ledger, f.clock, f.crowd, f.fleet)

	agent, _, err := f.fleet.Purchase(f.ledger)
	require.NoError(t, err)
	agent.Resume()
	step := agent.Advance(time.Second, f.wanted, f.crowd.Present())
	require.NotNil(t, step.Identified)
	require.Equal(t, f.ada.ID, step.Identified.Target.ID)

	verdict, err := f.adjudicator.Resolve(f.ada, true)
	require.NoError(t, err)
	assert.Equal(t, []int{1}, verdict.AffectedDrones)
	assert.Equal(t, drone.AgentStateScanning, agent.State())
}

func TestResolve_ArrestOutsideRoundIsRejected(t *testing.T) {
	f := newFixture(t)
	_, err := f.clock.End(false)
	require.NoError(t, err)

	_, err = f.adjudicator.Resolve(f.ada, true)
	assert.Error(t, err)
	assert.Equal(t, 100.0, f.ledger.Balance())
	assert.True(t, f.wanted.Contains(f.ada.Record))
}

func TestResolvePlayer(t *testing.T) {
	f := newFixture(t)

	assert.Equal(t, OutcomeDenied, f.adjudicator.ResolvePlayer(false).Outcome)
	assert.False(t, f.clock.PlayerCaught())

	assert.Equal(t, OutcomePlayerCaught, f.adjudicator.ResolvePlayer(true).Outcome)
	assert.True(t, f.clock.PlayerCaught())
}
