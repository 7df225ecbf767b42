package config

import (
	"fmt"

	"github.com/andrescamacho/dronewatch-go/internal/domain/roster"
)

const (
	// CatalogSourceBuiltin uses the built-in catalog of ten classes with three variants each
	CatalogSourceBuiltin = "builtin"
	// CatalogSourceConfig uses catalog.people
	CatalogSourceConfig = "config"
	// CatalogSourceDatabase loads the people table, seeding it from the built-in catalog when empty
	CatalogSourceDatabase = "database"
)

// CatalogConfig selects where the authored person catalog comes from
type CatalogConfig struct {
	Source string         `mapstructure:"source" validate:"required,oneof=builtin config database"`
	People []PersonConfig `mapstructure:"people" validate:"dive"`
}

// PersonConfig is one authored person
type PersonConfig struct {
	Name     string `mapstructure:"name" validate:"required"`
	Visual   string `mapstructure:"visual"`
	Class    string `mapstructure:"class" validate:"required,len=1"`
	SubClass int    `mapstructure:"sub_class" validate:"min=1,max=3"`
}

// BuildCatalog converts catalog.people into a domain catalog
func (c CatalogConfig) BuildCatalog() (*roster.Catalog, error) {
	records := make([]roster.PersonRecord, 0, len(c.People))
	for i, p := range c.People {
		class, err := roster.ParsePersonClass(p.Class)
		if err != nil {
			return nil, fmt.Errorf("catalog.people[%d]: %w", i, err)
		}
		record, err := roster.NewPersonRecord(p.Name, p.Visual, class, p.SubClass)
		if err != nil {
			return nil, fmt.Errorf("catalog.people[%d]: %w", i, err)
		}
		records = append(records, record)
	}
	return roster.NewCatalog(records), nil
}
