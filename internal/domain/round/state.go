package round

import "fmt"

// State is the round lifecycle state
type State string

const (
	// StatePreparing is the state before the game has booted
	StatePreparing State = "PREPARING"

	// StatePlaying means a round countdown is running
	StatePlaying State = "PLAYING"

	// StateInterlude is the pause between rounds
	StateInterlude State = "INTERLUDE"

	// StateGameOver is terminal until reset
	StateGameOver State = "GAME_OVER"
)

func (s State) String() string {
	return string(s)
}

func (s State) IsValid() bool {
	switch s {
	case StatePreparing, StatePlaying, StateInterlude, StateGameOver:
		return true
	default:
		return false
	}
}

func ParseState(s string) (State, error) {
	st := State(s)
	if !st.IsValid() {
		return "", fmt.Errorf("invalid round state: %s", s)
	}
	return st, nil
}

// EndReason explains why a game ended. Empty means the game continues.
type EndReason string

const (
	EndReasonNone              EndReason = ""
	EndReasonBankrupt          EndReason = "BANKRUPT"
	EndReasonQuotaMissed       EndReason = "QUOTA_MISSED"
	EndReasonPlayerCaught      EndReason = "PLAYER_CAUGHT"
	EndReasonAllRoundsComplete EndReason = "ALL_ROUNDS_COMPLETE"
)

func (r EndReason) String() string {
	if r == EndReasonNone {
		return "NONE"
	}
	return string(r)
}

// IsWin reports whether the reason is the survival ending
func (r EndReason) IsWin() bool {
	return r == EndReasonAllRoundsComplete
}

// ParseEndReason accepts the String form, so "NONE" and "" both mean the game continues
func ParseEndReason(s string) (EndReason, error) {
	switch r := EndReason(s); r {
	case EndReasonNone, EndReasonBankrupt, EndReasonQuotaMissed, EndReasonPlayerCaught, EndReasonAllRoundsComplete:
		return r, nil
	}
	if s == "NONE" {
		return EndReasonNone, nil
	}
	return "", fmt.Errorf("invalid end reason: %s", s)
}
