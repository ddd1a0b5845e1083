package store

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// KeyColumn is the primary key column every persisted model maps its natural key to.
const KeyColumn = "id"

// GormRepository persists entities through GORM, one table per kind.
type GormRepository struct {
	db       *gorm.DB
	registry *Registry
}

// NewGormRepository creates a repository over db. Models are resolved through registry.
func NewGormRepository(db *gorm.DB, registry *Registry) *GormRepository {
	return &GormRepository{db: db, registry: registry}
}

// Migrate creates or updates the tables of all registered kinds.
func (g *GormRepository) Migrate(ctx context.Context) error {
	models := g.registry.Models()
	if len(models) == 0 {
		return nil
	}
	if err := g.db.WithContext(ctx).AutoMigrate(models...); err != nil {
		return fmt.Errorf("failed to migrate entity tables: %w", err)
	}
	return nil
}

func (g *GormRepository) Load(ctx context.Context, kind Kind, key string) (Entity, error) {
	if err := validate(kind, key); err != nil {
		return nil, err
	}
	entity, err := g.registry.New(kind)
	if err != nil {
		return nil, err
	}

	err = g.db.WithContext(ctx).Where(KeyColumn+" = ?", key).Take(entity).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load %s %q: %w", kind, key, err)
	}
	return entity, nil
}

func (g *GormRepository) Save(ctx context.Context, entity Entity) error {
	if err := validate(entity.Kind(), entity.Key()); err != nil {
		return err
	}
	// Upsert on the primary key so inserts overwrite unconditionally.
	err := g.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(entity).Error
	if err != nil {
		return fmt.Errorf("failed to save %s %q: %w", entity.Kind(), entity.Key(), err)
	}
	return nil
}

func (g *GormRepository) Remove(ctx context.Context, kind Kind, key string) error {
	if err := validate(kind, key); err != nil {
		return err
	}
	model, err := g.registry.New(kind)
	if err != nil {
		return err
	}
	if err := g.db.WithContext(ctx).Where(KeyColumn+" = ?", key).Delete(model).Error; err != nil {
		return fmt.Errorf("failed to remove %s %q: %w", kind, key, err)
	}
	return nil
}
