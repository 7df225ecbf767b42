package persistence

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/andrescamacho/dronewatch-go/internal/domain/roster"
)

// GormCatalogRepository stores the authored person catalog in the people table
type GormCatalogRepository struct {
	db *gorm.DB
}

// NewGormCatalogRepository creates a new GORM catalog repository
func NewGormCatalogRepository(db *gorm.DB) *GormCatalogRepository {
	return &GormCatalogRepository{db: db}
}

// Load returns every stored person; an empty table yields an empty catalog
func (r *GormCatalogRepository) Load(ctx context.Context) (*roster.Catalog, error) {
	var models []PersonModel
	if err := r.db.WithContext(ctx).Order("class ASC, sub_class ASC").Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}

	records := make([]roster.PersonRecord, 0, len(models))
	for _, m := range models {
		class, err := roster.ParsePersonClass(m.Class)
		if err != nil {
			return nil, fmt.Errorf("invalid class in database: %w", err)
		}
		record, err := roster.NewPersonRecord(m.Name, m.Visual, class, m.SubClass)
		if err != nil {
			return nil, fmt.Errorf("invalid person %s%d in database: %w", m.Class, m.SubClass, err)
		}
		records = append(records, record)
	}
	return roster.NewCatalog(records), nil
}

// Save replaces the stored catalog in a single transaction
func (r *GormCatalogRepository) Save(ctx context.Context, catalog *roster.Catalog) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&PersonModel{}).Error; err != nil {
			return fmt.Errorf("failed to clear catalog: %w", err)
		}

		records := catalog.Records()
		if len(records) == 0 {
			return nil
		}

		models := make([]PersonModel, 0, len(records))
		for _, record := range records {
			models = append(models, PersonModel{
				Class:    record.Class().String(),
				SubClass: record.SubClass(),
				Name:     record.Name(),
				Visual:   record.Visual(),
			})
		}
		if err := tx.Create(&models).Error; err != nil {
			return fmt.Errorf("failed to save catalog: %w", err)
		}
		return nil
	})
}

// LoadOrSeed loads the stored catalog, saving seed first when the table is empty
func (r *GormCatalogRepository) LoadOrSeed(ctx context.Context, seed *roster.Catalog) (*roster.Catalog, error) {
	catalog, err := r.Load(ctx)
	if err != nil {
		return nil, err
	}
	if !catalog.IsEmpty() || seed == nil || seed.IsEmpty() {
		return catalog, nil
	}
	if err := r.Save(ctx, seed); err != nil {
		return nil, err
	}
	return r.Load(ctx)
}
