package round

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/dronewatch-go/internal/domain/shared"
)

func TestRoundRecord_QuotaMet(t *testing.T) {
	r := &RoundRecord{Arrests: 3, RequiredArrests: 3}
	assert.True(t, r.QuotaMet())

	r.Arrests = 2
	assert.False(t, r.QuotaMet())
}

func TestGameRecord_ApplyRound(t *testing.T) {
	start := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	g := &GameRecord{ID: shared.NewGameID(), StartedAt: start}

	g.ApplyRound(&RoundRecord{Round: 1, Balance: 7, EndedAt: start.Add(time.Minute)})
	assert.Equal(t, 1, g.RoundsPlayed)
	assert.Equal(t, 7.0, g.FinalBalance)
	assert.False(t, g.IsFinished())
	assert.False(t, g.Won())

	end := start.Add(2 * time.Minute)
	g.ApplyRound(&RoundRecord{Round: 2, Balance: -3, Reason: EndReasonBankrupt, EndedAt: end})
	assert.Equal(t, 2, g.RoundsPlayed)
	assert.Equal(t, -3.0, g.FinalBalance)
	require.True(t, g.IsFinished())
	assert.Equal(t, end, *g.EndedAt)
	assert.Equal(t, EndReasonBankrupt, g.Reason)
	assert.False(t, g.Won())
}

func TestGameRecord_ReplayedRoundKeepsHighestCount(t *testing.T) {
	g := &GameRecord{RoundsPlayed: 4}
	g.ApplyRound(&RoundRecord{Round: 2, Balance: 1})
	assert.Equal(t, 4, g.RoundsPlayed)
}

func TestGameRecord_WonOnSurvival(t *testing.T) {
	g := &GameRecord{}
	g.ApplyRound(&RoundRecord{Round: 10, Reason: EndReasonAllRoundsComplete, EndedAt: time.Now()})
	assert.True(t, g.Won())
}

func TestParseEndReason(t *testing.T) {
	tests := []struct {
		in   string
		want EndReason
	}{
		{"", EndReasonNone},
		{"NONE", EndReasonNone},
		{"BANKRUPT", EndReasonBankrupt},
		{"QUOTA_MISSED", EndReasonQuotaMissed},
		{"PLAYER_CAUGHT", EndReasonPlayerCaught},
		{"ALL_ROUNDS_COMPLETE", EndReasonAllRoundsComplete},
	}
	for _, tt := range tests {
		got, err := ParseEndReason(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got)
		if tt.want != EndReasonNone {
			assert.Equal(t, tt.in, got.String())
		}
	}

	_, err := ParseEndReason("bankrupt")
	assert.Error(t, err)
}
