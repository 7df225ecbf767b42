package roster

import (
	"context"
	"fmt"
	"sort"
)

// Catalog is the authored set of person records available to a game
type Catalog struct {
	records []PersonRecord
}

// NewCatalog builds a catalog, dropping records that repeat an existing identity
func NewCatalog(records []PersonRecord) *Catalog {
	seen := make(map[string]bool, len(records))
	kept := make([]PersonRecord, 0, len(records))
	for _, r := range records {
		if r.IsZero() || seen[r.Key()] {
			continue
		}
		seen[r.Key()] = true
		kept = append(kept, r)
	}
	return &Catalog{records: kept}
}

// Records returns a copy of the catalog entries
func (c *Catalog) Records() []PersonRecord {
	if c == nil {
		return nil
	}
	out := make([]PersonRecord, len(c.records))
	copy(out, c.records)
	return out
}

func (c *Catalog) Size() int {
	if c == nil {
		return 0
	}
	return len(c.records)
}

func (c *Catalog) IsEmpty() bool {
	return c.Size() == 0
}

// GroupByClass groups records by class tag, preserving catalog order within each class
func (c *Catalog) GroupByClass() map[PersonClass][]PersonRecord {
	groups := make(map[PersonClass][]PersonRecord)
	if c == nil {
		return groups
	}
	for _, r := range c.records {
		groups[r.Class()] = append(groups[r.Class()], r)
	}
	return groups
}

// DistinctClasses returns the classes present in the catalog, sorted
func (c *Catalog) DistinctClasses() []PersonClass {
	groups := c.GroupByClass()
	classes := make([]PersonClass, 0, len(groups))
	for class := range groups {
		classes = append(classes, class)
	}
	sort.Slice(classes, func(i, j int) bool { return classes[i] < classes[j] })
	return classes
}

// DefaultCatalog returns the built-in catalog: every class with three sub-classes
func DefaultCatalog() *Catalog {
	records := make([]PersonRecord, 0, len(AllClasses())*MaxSubClass)
	for _, class := range AllClasses() {
		for sub := MinSubClass; sub <= MaxSubClass; sub++ {
			name := fmt.Sprintf("Suspect %s-%d", class, sub)
			visual := fmt.Sprintf("portrait_%s%d", class, sub)
			records = append(records, MustNewPersonRecord(name, visual, class, sub))
		}
	}
	return NewCatalog(records)
}

// CatalogRepository loads and stores person catalogs
type CatalogRepository interface {
	Load(ctx context.Context) (*Catalog, error)
	Save(ctx context.Context, catalog *Catalog) error
}
