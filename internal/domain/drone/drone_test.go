package drone

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/dronewatch-go/internal/domain/crowd"
	"github.com/andrescamacho/dronewatch-go/internal/domain/ledger"
	"github.com/andrescamacho/dronewatch-go/internal/domain/roster"
	"github.com/andrescamacho/dronewatch-go/internal/domain/shared"
)

var (
	ada  = roster.MustNewPersonRecord("Ada", "a1", roster.ClassA, 1)
	bea  = roster.MustNewPersonRecord("Bea", "b1", roster.ClassB, 1)
	cy   = roster.MustNewPersonRecord("Cy", "c1", roster.ClassC, 1)
	self = roster.NewPlayerRecord("Officer")
)

func testConfig() AgentConfig {
	return AgentConfig{
		ScanInterval:   8 * time.Second,
		ResponseWindow: 5 * time.Second,
		WarmupDelay:    time.Second,
		RetryDelay:     time.Second,
	}
}

func world(t *testing.T) (*roster.WantedRoster, []crowd.Sighting) {
	t.Helper()
	c := crowd.NewCrowd(shared.NewSeededRandom(1))
	c.Register(ada)
	c.Register(bea)
	c.Register(cy)
	return roster.NewWantedRoster(ada), c.Present()
}

func TestAgent_PerfectAccuracyAlwaysNamesAWantedPerson(t *testing.T) {
	wanted, present := world(t)
	for seed := uint64(1); seed <= 25; seed++ {
		a := NewAgent(1, 1.0, testConfig(), shared.NewSeededRandom(seed))
		a.Resume()

		step := a.Advance(9*time.Second, wanted, present)
		require.NotNil(t, step.Identified)
		assert.True(t, wanted.Contains(step.Identified.Target.Record))
		assert.True(t, step.Identified.IsCorrectReport())
		assert.Equal(t, AgentStateAwaitingResponse, a.State())
	}
}

func TestAgent_ZeroAccuracyTakesFalseAccusationPath(t *testing.T) {
	wanted, present := world(t)
	for seed := uint64(1); seed <= 25; seed++ {
		a := NewAgent(1, 0.0, testConfig(), shared.NewSeededRandom(seed))
		a.Resume()

		step := a.Advance(9*time.Second, wanted, present)
		require.NotNil(t, step.Identified)
		assert.True(t, step.Identified.ReportedAs.IsSamePerson(ada))
		// With a single wanted record a scan that lands on that person has no
		// other name to report, so the report falls back to the truth.
		if step.Identified.Target.Record.IsSamePerson(ada) {
			assert.True(t, step.Identified.IsCorrectReport())
			continue
		}
		assert.False(t, step.Identified.IsCorrectReport())
	}
}

func TestAgent_ZeroAccuracyWithSeveralWantedAlwaysMisreports(t *testing.T) {
	_, present := world(t)
	wanted := roster.NewWantedRoster(ada, bea)
	for seed := uint64(1); seed <= 50; seed++ {
		a := NewAgent(1, 0.0, testConfig(), shared.NewSeededRandom(seed))
		a.Resume()

		step := a.Advance(9*time.Second, wanted, present)
		require.NotNil(t, step.Identified)
		assert.True(t, wanted.Contains(step.Identified.ReportedAs))
		assert.False(t, step.Identified.IsCorrectReport(), "seed %d reported %s for %s",
			seed, step.Identified.ReportedAs.Key(), step.Identified.Target.Record.Key())
	}
}

func TestAgent_WaitsForWarmupAndScanInterval(t *testing.T) {
	wanted, present := world(t)
	a := NewAgent(1, 1.0, testConfig(), shared.NewSeededRandom(1))
	a.Resume()

	assert.Nil(t, a.Advance(8900*time.Millisecond, wanted, present).Identified)
	assert.NotNil(t, a.Advance(100*time.Millisecond, wanted, present).Identified)
}

func TestAgent_IdleAgentDoesNothing(t *testing.T) {
	wanted, present := world(t)
	a := NewAgent(1, 1.0, testConfig(), shared.NewSeededRandom(1))

	step := a.Advance(time.Minute, wanted, present)
	assert.Nil(t, step.Identified)
	assert.Equal(t, AgentStateIdle, a.State())
}

func TestAgent_FailedAttemptRetries(t *testing.T) {
	_, present := world(t)
	a := NewAgent(1, 1.0, testConfig(), shared.NewSeededRandom(1))
	a.Resume()

	step := a.Advance(9*time.Second, roster.NewWantedRoster(), present)
	assert.True(t, step.Failed)
	assert.Equal(t, AgentStateScanning, a.State())
	assert.Equal(t, 9*time.Second, a.NextScanIn())

	step = a.Advance(9*time.Second, roster.NewWantedRoster(ada), nil)
	assert.True(t, step.Failed)
}

func TestAgent_ResponseTimeoutExpires(t *testing.T) {
	wanted, present := world(t)
	a := NewAgent(1, 1.0, testConfig(), shared.NewSeededRandom(1))
	a.Resume()
	require.NotNil(t, a.Advance(9*time.Second, wanted, present).Identified)

	assert.Nil(t, a.Advance(4*time.Second, wanted, present).Expired)
	step := a.Advance(time.Second, wanted, present)
	require.NotNil(t, step.Expired)

	resolved, err := a.Resolve()
	require.NoError(t, err)
	assert.Equal(t, 1, resolved.DroneID)
	assert.Equal(t, AgentStateScanning, a.State())
	assert.Equal(t, 8*time.Second, a.NextScanIn())
}

func TestAgent_LeftoverTimeCountsTowardResponseWindow(t *testing.T) {
	wanted, present := world(t)
	a := NewAgent(1, 1.0, testConfig(), shared.NewSeededRandom(1))
	a.Resume()

	step := a.Advance(15*time.Second, wanted, present)
	require.NotNil(t, step.Identified)
	require.NotNil(t, step.Expired)
}

func TestAgent_ResolveOnlyOnce(t *testing.T) {
	wanted, present := world(t)
	a := NewAgent(1, 1.0, testConfig(), shared.NewSeededRandom(1))
	a.Resume()
	a.Advance(9*time.Second, wanted, present)

	_, err := a.Resolve()
	require.NoError(t, err)
	_, err = a.Resolve()
	var stateErr *shared.InvalidStateError
	assert.ErrorAs(t, err, &stateErr)
}

func TestAgent_PauseDiscardsPending(t *testing.T) {
	wanted, present := world(t)
	a := NewAgent(1, 1.0, testConfig(), shared.NewSeededRandom(1))
	a.Resume()
	a.Advance(9*time.Second, wanted, present)

	discarded := a.Pause()
	require.NotNil(t, discarded)
	_, pending := a.Pending()
	assert.False(t, pending)
	assert.Equal(t, AgentStateIdle, a.State())
	assert.Nil(t, a.Advance(time.Minute, wanted, present).Expired)
}

func TestAgent_NotifyArrestedCancelsMatchingTarget(t *testing.T) {
	wanted, present := world(t)
	a := NewAgent(1, 1.0, testConfig(), shared.NewSeededRandom(1))
	a.Resume()
	step := a.Advance(9*time.Second, wanted, present)
	require.NotNil(t, step.Identified)

	assert.False(t, a.NotifyArrested(step.Identified.Target.ID+100))
	assert.True(t, a.NotifyArrested(step.Identified.Target.ID))
	assert.Equal(t, AgentStateScanning, a.State())
}

func TestAgent_ForceTargetPlayer(t *testing.T) {
	a := NewAgent(1, 0.5, testConfig(), shared.NewSeededRandom(1))
	identification := a.ForceTargetPlayer(self)

	assert.True(t, identification.TargetsPlayer)
	assert.Equal(t, AgentStateAwaitingResponse, a.State())
	assert.False(t, a.NotifyArrested(0))

	step := a.Advance(5*time.Second, roster.NewWantedRoster(), nil)
	require.NotNil(t, step.Expired)
	assert.True(t, step.Expired.TargetsPlayer)
}

func TestFleet_CostAndAccuracyProgression(t *testing.T) {
	f := NewFleet(DefaultFleetConfig(), shared.NewSeededRandom(1))
	l := ledger.NewLedger(ledger.Config{StartingBalance: 10000, BankruptcyThreshold: -10})

	expectedCosts := []float64{15, 22.5, 33.75, 50.625}
	expectedAccuracy := []float64{0.75, 0.65, 0.55, 0.45, 0.35, 0.3, 0.3}

	for i, acc := range expectedAccuracy {
		if i < len(expectedCosts) {
			assert.InDelta(t, expectedCosts[i], f.NextCost(), 1e-9)
		}
		agent, _, err := f.Purchase(l)
		require.NoError(t, err)
		assert.InDelta(t, acc, agent.Accuracy(), 1e-9)
		assert.Equal(t, i+1, agent.ID())
	}
}

func TestFleet_UnaffordablePurchaseChangesNothing(t *testing.T) {
	f := NewFleet(DefaultFleetConfig(), shared.NewSeededRandom(1))
	l := ledger.NewLedger(ledger.Config{StartingBalance: 10, BankruptcyThreshold: -10})

	agent, cost, err := f.Purchase(l)
	assert.Nil(t, agent)
	assert.Equal(t, 15.0, cost)
	var fundsErr *shared.InsufficientFundsError
	require.ErrorAs(t, err, &fundsErr)
	assert.Equal(t, 0, f.Size())
	assert.Equal(t, 10.0, l.Balance())
}

func TestFleet_PurchaseDebitsWallet(t *testing.T) {
	f := NewFleet(DefaultFleetConfig(), shared.NewSeededRandom(1))
	l := ledger.NewLedger(ledger.DefaultConfig())

	_, _, err := f.Purchase(l)
	require.NoError(t, err)
	assert.Equal(t, 85.0, l.Balance())
}

func TestFleet_PauseResumeAndReset(t *testing.T) {
	wanted, present := world(t)
	f := NewFleet(FleetConfig{BaseCost: 0, CostMultiplier: 1, BaseAccuracy: 1, MinAccuracy: 1, Agent: testConfig()}, shared.NewSeededRandom(1))
	l := ledger.NewLedger(ledger.DefaultConfig())
	for i := 0; i < 2; i++ {
		_, _, err := f.Purchase(l)
		require.NoError(t, err)
	}

	f.ResumeAll()
	for _, a := range f.Agents() {
		a.Advance(9*time.Second, wanted, present)
		assert.Equal(t, AgentStateAwaitingResponse, a.State())
	}

	discarded := f.PauseAll()
	assert.Len(t, discarded, 2)

	f.Reset()
	assert.Equal(t, 0, f.Size())
	_, err := f.Get(1)
	assert.Error(t, err)
}

func TestFleet_TargetPlayer(t *testing.T) {
	f := NewFleet(FleetConfig{BaseCost: 0, CostMultiplier: 1, BaseAccuracy: 1, MinAccuracy: 1, Agent: testConfig()}, shared.NewSeededRandom(1))
	l := ledger.NewLedger(ledger.DefaultConfig())
	_, _, err := f.Purchase(l)
	require.NoError(t, err)

	ids := f.TargetPlayer(self)
	require.Len(t, ids, 1)
	assert.True(t, ids[0].TargetsPlayer)
	assert.True(t, ids[0].ReportedAs.IsSamePerson(self))
}
