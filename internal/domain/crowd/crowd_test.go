package crowd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/dronewatch-go/internal/domain/roster"
	"github.com/andrescamacho/dronewatch-go/internal/domain/shared"
)

func TestCrowd_RegisterAndUnregister(t *testing.T) {
	c := NewCrowd(shared.NewSeededRandom(1))
	a := c.Register(roster.MustNewPersonRecord("Ada", "a", roster.ClassA, 1))
	b := c.Register(roster.MustNewPersonRecord("Bea", "b", roster.ClassB, 1))

	assert.NotEqual(t, a.ID, b.ID)
	assert.Equal(t, 2, c.Size())

	assert.True(t, c.Unregister(a.ID))
	assert.False(t, c.Unregister(a.ID))
	assert.False(t, c.Contains(a.ID))

	found, ok := c.Find(b.ID)
	require.True(t, ok)
	assert.Equal(t, "Bea", found.Record.Name())
}

func TestCrowd_PopulateIncludesEveryWantedRecord(t *testing.T) {
	rng := shared.NewSeededRandom(5)
	catalog := roster.DefaultCatalog()
	wanted := roster.NewGenerator(roster.DefaultGeneratorConfig(), rng).Generate(2, catalog)

	c := NewCrowd(rng)
	c.Populate(catalog, wanted, 12)

	assert.Equal(t, wanted.Size()+12, c.Size())
	for _, r := range wanted.Records() {
		found := false
		for _, s := range c.Present() {
			if s.Record.IsSamePerson(r) {
				found = true
				break
			}
		}
		assert.True(t, found, "wanted record %s missing from crowd", r)
	}
	assert.GreaterOrEqual(t, len(c.PresentWanted(wanted)), wanted.Size())
}

func TestCrowd_IDsNotReusedAfterClear(t *testing.T) {
	c := NewCrowd(shared.NewSeededRandom(1))
	first := c.Register(roster.MustNewPersonRecord("Ada", "a", roster.ClassA, 1))
	c.Clear()
	second := c.Register(roster.MustNewPersonRecord("Ada", "a", roster.ClassA, 1))
	assert.Greater(t, int(second.ID), int(first.ID))
}

func TestParseSightingID(t *testing.T) {
	id, err := ParseSightingID("P7")
	require.NoError(t, err)
	assert.Equal(t, SightingID(7), id)

	id, err = ParseSightingID("12")
	require.NoError(t, err)
	assert.Equal(t, SightingID(12), id)

	_, err = ParseSightingID("nope")
	assert.Error(t, err)
	assert.Equal(t, "P7", SightingID(7).String())
}
