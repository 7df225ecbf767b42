package drone

import (
	"time"

	"github.com/andrescamacho/dronewatch-go/internal/domain/crowd"
	"github.com/andrescamacho/dronewatch-go/internal/domain/roster"
	"github.com/andrescamacho/dronewatch-go/internal/domain/shared"
)

// AgentConfig holds the identification cycle timings
type AgentConfig struct {
	ScanInterval   time.Duration
	ResponseWindow time.Duration
	WarmupDelay    time.Duration
	RetryDelay     time.Duration
}

func DefaultAgentConfig() AgentConfig {
	return AgentConfig{
		ScanInterval:   8 * time.Second,
		ResponseWindow: 5 * time.Second,
		WarmupDelay:    time.Second,
		RetryDelay:     time.Second,
	}
}

// Agent is one surveillance drone. It holds at most one pending identification.
type Agent struct {
	id       int
	accuracy float64
	config   AgentConfig
	rng      shared.RandomSource

	state   AgentState
	timer   time.Duration
	pending *Identification
}

func NewAgent(id int, accuracy float64, config AgentConfig, rng shared.RandomSource) *Agent {
	if accuracy < 0 {
		accuracy = 0
	}
	if accuracy > 1 {
		accuracy = 1
	}
	return &Agent{id: id, accuracy: accuracy, config: config, rng: rng, state: AgentStateIdle}
}

func (a *Agent) ID() int                     { return a.id }
func (a *Agent) Accuracy() float64           { return a.accuracy }
func (a *Agent) State() AgentState           { return a.state }
func (a *Agent) NextScanIn() time.Duration   { return a.timer }
func (a *Agent) ScanInterval() time.Duration { return a.config.ScanInterval }

// Pending returns a copy of the pending identification, if any
func (a *Agent) Pending() (Identification, bool) {
	if a.pending == nil {
		return Identification{}, false
	}
	return *a.pending, true
}

// Resume starts the scan cycle after the warm-up delay. Only an idle agent resumes.
func (a *Agent) Resume() {
	if a.state != AgentStateIdle {
		return
	}
	a.state = AgentStateScanning
	a.timer = a.config.WarmupDelay + a.config.ScanInterval
}

// Pause stops the cycle and discards any pending identification, which is returned
func (a *Agent) Pause() *Identification {
	discarded := a.pending
	a.pending = nil
	a.state = AgentStateIdle
	a.timer = 0
	return discarded
}

// ForceTargetPlayer replaces any activity with an identification of the player
func (a *Agent) ForceTargetPlayer(player roster.PersonRecord) Identification {
	a.pending = &Identification{
		DroneID:       a.id,
		ReportedAs:    player,
		TargetsPlayer: true,
		Remaining:     a.config.ResponseWindow,
	}
	a.state = AgentStateAwaitingResponse
	a.timer = 0
	return *a.pending
}

// Resolve closes the pending identification and returns to scanning.
// Each identification can be resolved only once.
func (a *Agent) Resolve() (Identification, error) {
	if a.pending == nil {
		return Identification{}, shared.NewInvalidStateError("resolve identification", a.state.String())
	}
	resolved := *a.pending
	a.pending = nil
	a.state = AgentStateScanning
	a.timer = a.config.ScanInterval
	return resolved, nil
}

// NotifyArrested cancels a pending identification of a sighting that has just been arrested
func (a *Agent) NotifyArrested(id crowd.SightingID) bool {
	if a.pending == nil || a.pending.TargetsPlayer || a.pending.Target.ID != id {
		return false
	}
	a.pending = nil
	a.state = AgentStateScanning
	a.timer = a.config.ScanInterval
	return true
}

// Advance moves the agent's timers forward by dt.
// A scan that succeeds carries the leftover time into the response window.
func (a *Agent) Advance(dt time.Duration, wanted *roster.WantedRoster, present []crowd.Sighting) Step {
	var step Step

	switch a.state {
	case AgentStateScanning:
		if a.timer > dt {
			a.timer -= dt
			return step
		}
		leftover := dt - a.timer
		identification, ok := a.identify(wanted, present)
		if !ok {
			step.Failed = true
			a.timer = a.config.RetryDelay + a.config.ScanInterval
			return step
		}
		a.pending = &identification
		a.state = AgentStateAwaitingResponse
		a.timer = 0
		copied := identification
		step.Identified = &copied
		dt = leftover
		if dt <= 0 {
			return step
		}
		fallthrough

	case AgentStateAwaitingResponse:
		if a.pending == nil {
			return step
		}
		a.pending.Remaining -= dt
		if a.pending.Remaining <= 0 {
			a.pending.Remaining = 0
			expired := *a.pending
			step.Expired = &expired
		}
	}
	return step
}

// identify picks a target from the sightings present. With probability equal to the
// accuracy it names a wanted person truthfully; otherwise it pictures anyone and
// reports them as some wanted record.
func (a *Agent) identify(wanted *roster.WantedRoster, present []crowd.Sighting) (Identification, bool) {
	if wanted.IsEmpty() || len(present) == 0 {
		return Identification{}, false
	}

	var presentWanted []crowd.Sighting
	for _, s := range present {
		if wanted.Contains(s.Record) {
			presentWanted = append(presentWanted, s)
		}
	}

	if a.rng.Float64() < a.accuracy && len(presentWanted) > 0 {
		target := presentWanted[a.rng.IntN(len(presentWanted))]
		return Identification{
			DroneID:    a.id,
			Target:     target,
			ReportedAs: target.Record,
			Remaining:  a.config.ResponseWindow,
		}, true
	}

	target := present[a.rng.IntN(len(present))]
	candidates := make([]roster.PersonRecord, 0, wanted.Size())
	for _, r := range wanted.Records() {
		if !r.IsSamePerson(target.Record) {
			candidates = append(candidates, r)
		}
	}
	if len(candidates) == 0 {
		candidates = wanted.Records()
	}
	return Identification{
		DroneID:    a.id,
		Target:     target,
		ReportedAs: candidates[a.rng.IntN(len(candidates))],
		Remaining:  a.config.ResponseWindow,
	}, true
}
