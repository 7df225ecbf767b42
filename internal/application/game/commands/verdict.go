package commands

import (
	"github.com/andrescamacho/dronewatch-go/internal/domain/arrest"
)

// VerdictDTO is the outcome of an arrest or a response to an identification
type VerdictDTO struct {
	Outcome        string  `json:"outcome"`
	SightingID     string  `json:"sighting_id,omitempty"`
	Name           string  `json:"name,omitempty"`
	Amount         float64 `json:"amount"`
	Balance        float64 `json:"balance"`
	AffectedDrones []int   `json:"affected_drones,omitempty"`
}

func toVerdictDTO(v arrest.Verdict, balance float64) *VerdictDTO {
	dto := &VerdictDTO{
		Outcome:        v.Outcome.String(),
		Balance:        balance,
		AffectedDrones: v.AffectedDrones,
	}
	if v.Outcome != arrest.OutcomePlayerCaught && v.Target.ID != 0 {
		dto.SightingID = v.Target.ID.String()
		dto.Name = v.Target.Record.Name()
	}
	if v.Change != nil {
		dto.Amount = v.Change.Amount
		dto.Balance = v.Change.After
	}
	return dto
}
