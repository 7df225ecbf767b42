package drone

import "fmt"

// AgentState is the identification cycle state of a drone
type AgentState string

const (
	// AgentStateIdle means the drone is paused (no round running)
	AgentStateIdle AgentState = "IDLE"

	// AgentStateScanning means the drone is counting down to its next identification attempt
	AgentStateScanning AgentState = "SCANNING"

	// AgentStateAwaitingResponse means an identification is waiting for confirm or deny
	AgentStateAwaitingResponse AgentState = "AWAITING_RESPONSE"
)

func (s AgentState) String() string {
	return string(s)
}

func (s AgentState) IsValid() bool {
	switch s {
	case AgentStateIdle, AgentStateScanning, AgentStateAwaitingResponse:
		return true
	default:
		return false
	}
}

func ParseAgentState(s string) (AgentState, error) {
	st := AgentState(s)
	if !st.IsValid() {
		return "", fmt.Errorf("invalid agent state: %s", s)
	}
	return st, nil
}
