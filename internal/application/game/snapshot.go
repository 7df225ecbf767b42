package game

import (
	"github.com/andrescamacho/dronewatch-go/internal/application/events"
	"github.com/andrescamacho/dronewatch-go/internal/domain/drone"
	"github.com/andrescamacho/dronewatch-go/internal/domain/roster"
)

// DroneView is the read model of one drone
type DroneView struct {
	ID                int     `json:"id"`
	Accuracy          float64 `json:"accuracy"`
	State             string  `json:"state"`
	NextScanSeconds   float64 `json:"next_scan_seconds"`
	PendingSightingID string  `json:"pending_sighting_id,omitempty"`
	PendingReportedAs string  `json:"pending_reported_as,omitempty"`
	PendingSeconds    float64 `json:"pending_seconds,omitempty"`
	TargetsPlayer     bool    `json:"targets_player,omitempty"`
}

// SightingView is the read model of one person present in the world
type SightingView struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Class    string `json:"class"`
	SubClass int    `json:"sub_class"`
}

// Snapshot is a consistent read of the whole game state
type Snapshot struct {
	GameID            string               `json:"game_id"`
	State             string               `json:"state"`
	Round             int                  `json:"round"`
	MaxRounds         int                  `json:"max_rounds"`
	RemainingSeconds  float64              `json:"remaining_seconds"`
	Arrests           int                  `json:"arrests"`
	RequiredArrests   int                  `json:"required_arrests"`
	TotalSuspects     int                  `json:"total_suspects"`
	Balance           float64              `json:"balance"`
	Bankrupt          bool                 `json:"bankrupt"`
	NextDroneCost     float64              `json:"next_drone_cost"`
	NextDroneAccuracy float64              `json:"next_drone_accuracy"`
	PlayerTargeted    bool                 `json:"player_targeted"`
	Drones            []DroneView          `json:"drones"`
	Wanted            []events.WantedEntry `json:"wanted"`
	Crowd             []SightingView       `json:"crowd"`
}

func wantedEntry(r roster.PersonRecord) events.WantedEntry {
	return events.WantedEntry{
		Name:     r.Name(),
		Visual:   r.Visual(),
		Class:    r.Class().String(),
		SubClass: r.SubClass(),
	}
}

func droneView(a *drone.Agent) DroneView {
	view := DroneView{
		ID:              a.ID(),
		Accuracy:        a.Accuracy(),
		State:           a.State().String(),
		NextScanSeconds: a.NextScanIn().Seconds(),
	}
	if p, ok := a.Pending(); ok {
		view.PendingReportedAs = p.ReportedAs.Name()
		view.PendingSeconds = p.Remaining.Seconds()
		view.TargetsPlayer = p.TargetsPlayer
		if !p.TargetsPlayer {
			view.PendingSightingID = p.Target.ID.String()
		}
	}
	return view
}
