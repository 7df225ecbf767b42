package round

import (
	"math"
	"time"

	"github.com/andrescamacho/dronewatch-go/internal/domain/shared"
)

// Config holds round pacing and win/loss parameters
type Config struct {
	RoundDuration time.Duration
	MaxRounds     int
	QuotaFraction float64
}

// DefaultConfig returns 60 second rounds, five rounds, one third of suspects required
func DefaultConfig() Config {
	return Config{
		RoundDuration: 60 * time.Second,
		MaxRounds:     5,
		QuotaFraction: 1.0 / 3.0,
	}
}

// Result summarises a finished round
type Result struct {
	Round           int
	Arrests         int
	TotalSuspects   int
	RequiredArrests int
	Reason          EndReason
	NextState       State
}

// GameOver reports whether this round ended the game
func (r Result) GameOver() bool {
	return r.NextState == StateGameOver
}

// Clock is the round state machine.
//
// Transitions:
//   - PREPARING -> INTERLUDE on Boot
//   - INTERLUDE -> PLAYING on StartNextRound
//   - PLAYING -> INTERLUDE | GAME_OVER when the countdown expires or the round is ended early
//   - any -> INTERLUDE on Reset
type Clock struct {
	config        Config
	state         State
	round         int
	remaining     time.Duration
	elapsed       time.Duration
	arrests       int
	totalSuspects int
	playerCaught  bool
}

func NewClock(config Config) *Clock {
	if config.RoundDuration <= 0 {
		config.RoundDuration = DefaultConfig().RoundDuration
	}
	if config.MaxRounds <= 0 {
		config.MaxRounds = DefaultConfig().MaxRounds
	}
	if config.QuotaFraction < 0 || config.QuotaFraction > 1 {
		config.QuotaFraction = DefaultConfig().QuotaFraction
	}
	return &Clock{config: config, state: StatePreparing}
}

// Getters

func (c *Clock) Config() Config           { return c.config }
func (c *Clock) State() State             { return c.state }
func (c *Clock) Round() int               { return c.round }
func (c *Clock) Remaining() time.Duration { return c.remaining }
func (c *Clock) Elapsed() time.Duration   { return c.elapsed }
func (c *Clock) Arrests() int             { return c.arrests }
func (c *Clock) TotalSuspects() int       { return c.totalSuspects }
func (c *Clock) PlayerCaught() bool       { return c.playerCaught }
func (c *Clock) IsPlaying() bool          { return c.state == StatePlaying }

// RequiredArrests is ceil(totalSuspects * quotaFraction). A small tolerance keeps
// exact products such as 9 * (1/3) from rounding up to the next integer.
func (c *Clock) RequiredArrests() int {
	return RequiredArrests(c.totalSuspects, c.config.QuotaFraction)
}

func RequiredArrests(total int, fraction float64) int {
	if total <= 0 || fraction <= 0 {
		return 0
	}
	return int(math.Ceil(float64(total)*fraction - 1e-9))
}

// Boot leaves PREPARING for the first interlude
func (c *Clock) Boot() error {
	if c.state != StatePreparing {
		return shared.NewInvalidStateError("boot", c.state.String())
	}
	c.state = StateInterlude
	return nil
}

// StartNextRound begins the next round. Only valid from INTERLUDE.
func (c *Clock) StartNextRound() error {
	if c.state != StateInterlude {
		return shared.NewInvalidStateError("start next round", c.state.String())
	}
	c.round++
	c.arrests = 0
	c.remaining = c.config.RoundDuration
	c.elapsed = 0
	c.state = StatePlaying
	return nil
}

// SetTotalSuspects records the size of this round's wanted list
func (c *Clock) SetTotalSuspects(n int) {
	if n < 0 {
		n = 0
	}
	c.totalSuspects = n
}

// RecordArrest counts a correct arrest. Only counted while PLAYING.
func (c *Clock) RecordArrest() error {
	if c.state != StatePlaying {
		return shared.NewInvalidStateError("record arrest", c.state.String())
	}
	c.arrests++
	return nil
}

// MarkPlayerCaught flags the player as caught; it takes effect at round end evaluation
func (c *Clock) MarkPlayerCaught() {
	c.playerCaught = true
}

// Advance runs the countdown by dt. It reports true when the countdown has expired
// and the round must be ended. Outside PLAYING it does nothing.
func (c *Clock) Advance(dt time.Duration) bool {
	if c.state != StatePlaying || dt <= 0 {
		return false
	}
	c.elapsed += dt
	c.remaining -= dt
	if c.remaining <= 0 {
		c.remaining = 0
		return true
	}
	return false
}

// End evaluates the round and transitions to INTERLUDE or GAME_OVER.
// Checks run in order: bankruptcy, quota, player caught, final round.
func (c *Clock) End(bankrupt bool) (Result, error) {
	if c.state != StatePlaying {
		return Result{}, shared.NewInvalidStateError("end round", c.state.String())
	}

	result := Result{
		Round:           c.round,
		Arrests:         c.arrests,
		TotalSuspects:   c.totalSuspects,
		RequiredArrests: c.RequiredArrests(),
	}

	switch {
	case bankrupt:
		result.Reason = EndReasonBankrupt
	case c.arrests < result.RequiredArrests:
		result.Reason = EndReasonQuotaMissed
	case c.playerCaught:
		result.Reason = EndReasonPlayerCaught
	case c.round >= c.config.MaxRounds:
		result.Reason = EndReasonAllRoundsComplete
	}

	c.remaining = 0
	if result.Reason != EndReasonNone {
		c.state = StateGameOver
	} else {
		c.state = StateInterlude
	}
	result.NextState = c.state
	return result, nil
}

// Reset returns to INTERLUDE with all counters cleared
func (c *Clock) Reset() {
	c.state = StateInterlude
	c.round = 0
	c.remaining = 0
	c.elapsed = 0
	c.arrests = 0
	c.totalSuspects = 0
	c.playerCaught = false
}
