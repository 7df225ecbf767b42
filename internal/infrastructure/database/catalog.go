package database

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/andrescamacho/dronewatch-go/internal/adapters/persistence"
	"github.com/andrescamacho/dronewatch-go/internal/domain/roster"
	"github.com/andrescamacho/dronewatch-go/internal/infrastructure/config"
)

// LoadCatalog resolves the person catalog named by catalog.source. db is only
// needed for the database source, which seeds an empty table with the built-in catalog.
func LoadCatalog(ctx context.Context, cfg config.CatalogConfig, db *gorm.DB) (*roster.Catalog, error) {
	switch cfg.Source {
	case "", config.CatalogSourceBuiltin:
		return roster.DefaultCatalog(), nil
	case config.CatalogSourceConfig:
		return cfg.BuildCatalog()
	case config.CatalogSourceDatabase:
		if db == nil {
			return nil, fmt.Errorf("catalog source %q needs a database connection", cfg.Source)
		}
		return persistence.NewGormCatalogRepository(db).LoadOrSeed(ctx, roster.DefaultCatalog())
	}
	return nil, fmt.Errorf("unknown catalog source %q", cfg.Source)
}
