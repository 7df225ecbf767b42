package roster

import (
	"github.com/andrescamacho/dronewatch-go/internal/domain/shared"
)

// GeneratorConfig tunes the per-round wanted quota
type GeneratorConfig struct {
	BaseWanted      int
	WantedIncrement int
}

// DefaultGeneratorConfig returns base 3 wanted, plus 2 per additional round
func DefaultGeneratorConfig() GeneratorConfig {
	return GeneratorConfig{BaseWanted: 3, WantedIncrement: 2}
}

// Generator builds the wanted roster for each round
type Generator struct {
	config GeneratorConfig
	rng    shared.RandomSource
}

func NewGenerator(config GeneratorConfig, rng shared.RandomSource) *Generator {
	if config.BaseWanted < 0 {
		config.BaseWanted = 0
	}
	if config.WantedIncrement < 0 {
		config.WantedIncrement = 0
	}
	return &Generator{config: config, rng: rng}
}

// QuotaForRound returns the unclamped wanted count for a 1-based round index
func (g *Generator) QuotaForRound(roundIndex int) int {
	if roundIndex < 1 {
		roundIndex = 1
	}
	return g.config.BaseWanted + g.config.WantedIncrement*(roundIndex-1)
}

// Generate picks distinct classes uniformly without replacement, then one record per class.
// The quota is clamped to the number of distinct classes; an empty catalog yields an empty roster.
func (g *Generator) Generate(roundIndex int, catalog *Catalog) *WantedRoster {
	groups := catalog.GroupByClass()
	classes := catalog.DistinctClasses()

	quota := g.QuotaForRound(roundIndex)
	if quota > len(classes) {
		quota = len(classes)
	}

	shared.Shuffle(g.rng, len(classes), func(i, j int) {
		classes[i], classes[j] = classes[j], classes[i]
	})

	wanted := NewWantedRoster()
	for _, class := range classes[:quota] {
		members := groups[class]
		wanted.Add(members[g.rng.IntN(len(members))])
	}
	return wanted
}
