package arrest

import (
	"fmt"

	"github.com/andrescamacho/dronewatch-go/internal/domain/crowd"
	"github.com/andrescamacho/dronewatch-go/internal/domain/ledger"
	"github.com/andrescamacho/dronewatch-go/internal/domain/roster"
)

// Outcome is the result of adjudicating a confirm or deny decision
type Outcome string

const (
	OutcomeDenied        Outcome = "DENIED"
	OutcomeCorrectArrest Outcome = "CORRECT_ARREST"
	OutcomeWrongArrest   Outcome = "WRONG_ARREST"
	OutcomePlayerCaught  Outcome = "PLAYER_CAUGHT"
)

func (o Outcome) String() string {
	return string(o)
}

// Roster is the wanted list as seen by the adjudicator
type Roster interface {
	Contains(r roster.PersonRecord) bool
	Remove(r roster.PersonRecord) bool
}

// Treasury applies arrest rewards and penalties
type Treasury interface {
	RewardArrest(description string) ledger.BalanceChange
	PenalizeWrongArrest(description string) ledger.BalanceChange
}

// Counter tracks arrests and the caught flag for the running round
type Counter interface {
	RecordArrest() error
	MarkPlayerCaught()
}

// Population is the set of persons that can be removed after an arrest
type Population interface {
	Unregister(id crowd.SightingID) bool
}

// Notifier tells drones a sighting has been arrested
type Notifier interface {
	NotifyArrested(id crowd.SightingID) []int
}

// Verdict records everything an adjudication changed
type Verdict struct {
	Outcome        Outcome
	Target         crowd.Sighting
	Change         *ledger.BalanceChange
	AffectedDrones []int
}

// Adjudicator resolves confirm/deny decisions against the wanted list
type Adjudicator struct {
	roster     Roster
	treasury   Treasury
	counter    Counter
	population Population
	notifier   Notifier
}

func NewAdjudicator(r Roster, t Treasury, c Counter, p Population, n Notifier) *Adjudicator {
	return &Adjudicator{roster: r, treasury: t, counter: c, population: p, notifier: n}
}

// Resolve applies a decision about target.
//   - denied: nothing changes
//   - confirmed and wanted: arrest counted, reward paid, record leaves the roster,
//     the person leaves the crowd and drones watching them are released
//   - confirmed and not wanted: penalty paid
func (a *Adjudicator) Resolve(target crowd.Sighting, confirmed bool) (Verdict, error) {
	verdict := Verdict{Outcome: OutcomeDenied, Target: target}
	if !confirmed {
		return verdict, nil
	}

	if !a.roster.Contains(target.Record) {
		change := a.treasury.PenalizeWrongArrest(fmt.Sprintf("wrong arrest of %s", target.Record))
		verdict.Outcome = OutcomeWrongArrest
		verdict.Change = &change
		return verdict, nil
	}

	if err := a.counter.RecordArrest(); err != nil {
		return Verdict{}, fmt.Errorf("failed to record arrest: %w", err)
	}
	change := a.treasury.RewardArrest(fmt.Sprintf("arrest of %s", target.Record))
	a.roster.Remove(target.Record)
	a.population.Unregister(target.ID)

	verdict.Outcome = OutcomeCorrectArrest
	verdict.Change = &change
	verdict.AffectedDrones = a.notifier.NotifyArrested(target.ID)
	return verdict, nil
}

// ResolvePlayer applies a decision about a drone that identified the player.
// Only a confirmation has an effect.
func (a *Adjudicator) ResolvePlayer(confirmed bool) Verdict {
	if !confirmed {
		return Verdict{Outcome: OutcomeDenied}
	}
	a.counter.MarkPlayerCaught()
	return Verdict{Outcome: OutcomePlayerCaught}
}
