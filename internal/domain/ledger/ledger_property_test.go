package ledger

import (
	"math"
	"testing"

	"pgregory.net/rapid"
)

func TestLedger_BalanceIsSumOfChanges(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		config := DefaultConfig()
		l := NewLedger(config)
		obs := &recordingObserver{}
		l.Subscribe(obs)

		ops := rapid.SliceOfN(rapid.IntRange(0, 4), 0, 60).Draw(t, "ops")
		for _, op := range ops {
			switch op {
			case 0:
				l.RewardArrest("reward")
			case 1:
				l.PenalizeWrongArrest("penalty")
			case 2:
				l.Add(rapid.Float64Range(0, 200).Draw(t, "credit"))
			case 3:
				l.Subtract(rapid.Float64Range(0, 200).Draw(t, "debit"))
			case 4:
				cost := rapid.Float64Range(0, 300).Draw(t, "cost")
				before := l.Balance()
				l.CanAfford(cost)
				if l.Balance() != before {
					t.Fatalf("CanAfford mutated the balance")
				}
			}
		}

		sum := config.StartingBalance
		prev := config.StartingBalance
		for i, c := range obs.changes {
			if c.Before != prev {
				t.Fatalf("change %d starts at %v, previous ended at %v", i, c.Before, prev)
			}
			if math.Abs(c.Before+c.Amount-c.After) > 1e-9 {
				t.Fatalf("change %d: %v + %v != %v", i, c.Before, c.Amount, c.After)
			}
			sum += c.Amount
			prev = c.After
		}
		if math.Abs(sum-l.Balance()) > 1e-6 {
			t.Fatalf("balance %v, sum of changes %v", l.Balance(), sum)
		}
		if l.IsBankrupt() != (l.Balance() <= config.BankruptcyThreshold) {
			t.Fatalf("bankruptcy flag disagrees with balance %v", l.Balance())
		}
	})
}
