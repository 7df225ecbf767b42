package drone

import (
	"fmt"
	"math"

	"github.com/andrescamacho/dronewatch-go/internal/domain/crowd"
	"github.com/andrescamacho/dronewatch-go/internal/domain/ledger"
	"github.com/andrescamacho/dronewatch-go/internal/domain/roster"
	"github.com/andrescamacho/dronewatch-go/internal/domain/shared"
)

// FleetConfig holds drone pricing and accuracy decay
type FleetConfig struct {
	BaseCost         float64
	CostMultiplier   float64
	BaseAccuracy     float64
	AccuracyDecrease float64
	MinAccuracy      float64
	Agent            AgentConfig
}

func DefaultFleetConfig() FleetConfig {
	return FleetConfig{
		BaseCost:         15,
		CostMultiplier:   1.5,
		BaseAccuracy:     0.75,
		AccuracyDecrease: 0.1,
		MinAccuracy:      0.3,
		Agent:            DefaultAgentConfig(),
	}
}

// Wallet is the part of the ledger a purchase needs
type Wallet interface {
	CanAfford(cost float64) bool
	Balance() float64
	Debit(t ledger.TransactionType, amount float64, description string) ledger.BalanceChange
}

// Fleet owns the drones in purchase order
type Fleet struct {
	config FleetConfig
	rng    shared.RandomSource
	agents []*Agent
}

func NewFleet(config FleetConfig, rng shared.RandomSource) *Fleet {
	return &Fleet{config: config, rng: rng}
}

func (f *Fleet) Config() FleetConfig {
	return f.config
}

// NextCost is baseCost * multiplier^existingDrones
func (f *Fleet) NextCost() float64 {
	return f.config.BaseCost * math.Pow(f.config.CostMultiplier, float64(len(f.agents)))
}

// NextAccuracy is max(minAccuracy, baseAccuracy - decrease*existingDrones)
func (f *Fleet) NextAccuracy() float64 {
	return math.Max(f.config.MinAccuracy, f.config.BaseAccuracy-f.config.AccuracyDecrease*float64(len(f.agents)))
}

// Purchase buys the next drone if the wallet can afford it. An unaffordable
// purchase returns InsufficientFundsError and changes nothing.
func (f *Fleet) Purchase(wallet Wallet) (*Agent, float64, error) {
	cost := f.NextCost()
	if !wallet.CanAfford(cost) {
		return nil, cost, shared.NewInsufficientFundsError(cost, wallet.Balance())
	}

	agent := NewAgent(len(f.agents)+1, f.NextAccuracy(), f.config.Agent, f.rng)
	wallet.Debit(ledger.TransactionTypeDronePurchase, cost, fmt.Sprintf("drone #%d", agent.ID()))
	f.agents = append(f.agents, agent)
	return agent, cost, nil
}

// Agents returns the drones in purchase order
func (f *Fleet) Agents() []*Agent {
	out := make([]*Agent, len(f.agents))
	copy(out, f.agents)
	return out
}

func (f *Fleet) Size() int {
	return len(f.agents)
}

// Get looks up a drone by its 1-based ID
func (f *Fleet) Get(id int) (*Agent, error) {
	if id < 1 || id > len(f.agents) {
		return nil, shared.NewNotFoundError("drone", fmt.Sprintf("%d", id))
	}
	return f.agents[id-1], nil
}

// ResumeAll starts every idle drone's scan cycle
func (f *Fleet) ResumeAll() {
	for _, a := range f.agents {
		a.Resume()
	}
}

// PauseAll idles every drone and returns the identifications that were discarded
func (f *Fleet) PauseAll() []Identification {
	var discarded []Identification
	for _, a := range f.agents {
		if p := a.Pause(); p != nil {
			discarded = append(discarded, *p)
		}
	}
	return discarded
}

// NotifyArrested cancels pending identifications of the arrested sighting; it returns the affected drone IDs
func (f *Fleet) NotifyArrested(id crowd.SightingID) []int {
	var affected []int
	for _, a := range f.agents {
		if a.NotifyArrested(id) {
			affected = append(affected, a.ID())
		}
	}
	return affected
}

// TargetPlayer forces every drone to identify the player
func (f *Fleet) TargetPlayer(player roster.PersonRecord) []Identification {
	identifications := make([]Identification, 0, len(f.agents))
	for _, a := range f.agents {
		identifications = append(identifications, a.ForceTargetPlayer(player))
	}
	return identifications
}

// Reset removes every drone
func (f *Fleet) Reset() {
	for _, a := range f.agents {
		a.Pause()
	}
	f.agents = nil
}
