package crowd

import (
	"fmt"

	"github.com/andrescamacho/dronewatch-go/internal/domain/roster"
	"github.com/andrescamacho/dronewatch-go/internal/domain/shared"
)

// SightingID identifies one person instance present in the world
type SightingID int

func (id SightingID) String() string {
	return fmt.Sprintf("P%d", int(id))
}

// ParseSightingID accepts either "P12" or "12"
func ParseSightingID(s string) (SightingID, error) {
	var n int
	if _, err := fmt.Sscanf(s, "P%d", &n); err == nil && n > 0 {
		return SightingID(n), nil
	}
	if _, err := fmt.Sscanf(s, "%d", &n); err == nil && n > 0 {
		return SightingID(n), nil
	}
	return 0, fmt.Errorf("invalid sighting id: %q", s)
}

// Sighting is a person instance that drones can observe and the player can arrest
type Sighting struct {
	ID     SightingID
	Record roster.PersonRecord
}

// Crowd is the set of persons currently present, in spawn order
type Crowd struct {
	nextID    SightingID
	sightings []Sighting
	rng       shared.RandomSource
}

func NewCrowd(rng shared.RandomSource) *Crowd {
	return &Crowd{nextID: 1, rng: rng}
}

// Register adds a person instance and returns its sighting
func (c *Crowd) Register(record roster.PersonRecord) Sighting {
	s := Sighting{ID: c.nextID, Record: record}
	c.nextID++
	c.sightings = append(c.sightings, s)
	return s
}

// Unregister removes a sighting; it reports whether it was present
func (c *Crowd) Unregister(id SightingID) bool {
	for i, s := range c.sightings {
		if s.ID == id {
			c.sightings = append(c.sightings[:i], c.sightings[i+1:]...)
			return true
		}
	}
	return false
}

func (c *Crowd) Find(id SightingID) (Sighting, bool) {
	for _, s := range c.sightings {
		if s.ID == id {
			return s, true
		}
	}
	return Sighting{}, false
}

func (c *Crowd) Contains(id SightingID) bool {
	_, ok := c.Find(id)
	return ok
}

// Present returns a copy of all sightings in spawn order
func (c *Crowd) Present() []Sighting {
	out := make([]Sighting, len(c.sightings))
	copy(out, c.sightings)
	return out
}

// PresentWanted returns the sightings whose record is on the roster
func (c *Crowd) PresentWanted(wanted *roster.WantedRoster) []Sighting {
	var out []Sighting
	for _, s := range c.sightings {
		if wanted.Contains(s.Record) {
			out = append(out, s)
		}
	}
	return out
}

func (c *Crowd) Size() int {
	return len(c.sightings)
}

// Clear removes everyone. Sighting IDs keep increasing so stale references never resolve.
func (c *Crowd) Clear() {
	c.sightings = nil
}

// Populate replaces the crowd with one instance per wanted record plus
// extra random catalog records, then shuffles spawn order.
func (c *Crowd) Populate(catalog *roster.Catalog, wanted *roster.WantedRoster, extra int) {
	c.Clear()

	records := wanted.Records()
	pool := catalog.Records()
	if len(pool) > 0 {
		for i := 0; i < extra; i++ {
			records = append(records, pool[c.rng.IntN(len(pool))])
		}
	}

	shared.Shuffle(c.rng, len(records), func(i, j int) {
		records[i], records[j] = records[j], records[i]
	})
	for _, r := range records {
		c.Register(r)
	}
}
