package drone

import (
	"time"

	"github.com/andrescamacho/dronewatch-go/internal/domain/crowd"
	"github.com/andrescamacho/dronewatch-go/internal/domain/roster"
)

// Identification is a drone's claim that a sighting matches a wanted record.
// When TargetsPlayer is set the claim is about the player and Target is empty.
type Identification struct {
	DroneID       int
	Target        crowd.Sighting
	ReportedAs    roster.PersonRecord
	TargetsPlayer bool
	Remaining     time.Duration
}

// IsCorrectReport reports whether the drone pictured the person it named
func (i Identification) IsCorrectReport() bool {
	return !i.TargetsPlayer && i.Target.Record.IsSamePerson(i.ReportedAs)
}

// Step describes what happened to an agent during one Advance call
type Step struct {
	// Identified is set when a new identification started awaiting a response
	Identified *Identification
	// Expired is set when the response window closed; it must be resolved as confirmed
	Expired *Identification
	// Failed is set when an attempt found nothing to identify
	Failed bool
}
