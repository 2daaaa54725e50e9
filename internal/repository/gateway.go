package repository

import (
	"context"
	"sync"

	"github.com/deppfellow/accountowner/internal/sqlerr"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Scope narrows a query.
type Scope = func(*gorm.DB) *gorm.DB

// Where filters rows, e.g. Where("owner_id = ?", id).
func Where(query any, args ...any) Scope {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where(query, args...)
	}
}

// Preload eager loads an association with a separate query.
func Preload(association string) Scope {
	return func(db *gorm.DB) *gorm.DB {
		return db.Preload(association)
	}
}

// Limit caps the number of rows returned.
func Limit(n int) Scope {
	return func(db *gorm.DB) *gorm.DB {
		return db.Limit(n)
	}
}

// Gateway is the only access path to the relational store.
//
// Find methods fill dest, a pointer to a slice of entities, and never track
// what they return. Add, MarkUpdated and Remove take a pointer to an entity
// and only stage the change; Commit writes every staged change in a single
// transaction and reports the number of rows affected. Failures of the store
// are returned as *sqlerr.StorageError.
type Gateway interface {
	FindAll(ctx context.Context, dest any) error
	FindBy(ctx context.Context, dest any, scopes ...Scope) error

	Add(entity any)
	MarkUpdated(entity any)
	Remove(entity any)

	Pending() int
	Commit(ctx context.Context) (int64, error)
}

type changeKind int

const (
	changeAdd changeKind = iota
	changeUpdate
	changeRemove
)

type stagedChange struct {
	kind   changeKind
	entity any
}

type ormGateway struct {
	db *gorm.DB

	mu     sync.Mutex
	staged []stagedChange
}

// NewGateway returns a Gateway with its own, empty, set of staged changes.
func NewGateway(db *gorm.DB) Gateway {
	return &ormGateway{db: db}
}

func (g *ormGateway) FindAll(ctx context.Context, dest any) error {
	return g.FindBy(ctx, dest)
}

func (g *ormGateway) FindBy(ctx context.Context, dest any, scopes ...Scope) error {
	err := g.db.WithContext(ctx).Scopes(scopes...).Find(dest).Error
	return sqlerr.NewStorageError("find", err)
}

func (g *ormGateway) Add(entity any) {
	g.stage(changeAdd, entity)
}

func (g *ormGateway) MarkUpdated(entity any) {
	g.stage(changeUpdate, entity)
}

func (g *ormGateway) Remove(entity any) {
	g.stage(changeRemove, entity)
}

func (g *ormGateway) stage(kind changeKind, entity any) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.staged = append(g.staged, stagedChange{kind: kind, entity: entity})
}

func (g *ormGateway) Pending() int {
	g.mu.Lock()
	defer g.mu.Unlock()

	return len(g.staged)
}

// Commit drains the staged changes whatever the outcome, so a failed commit
// is never replayed by a later one.
func (g *ormGateway) Commit(ctx context.Context) (int64, error) {
	g.mu.Lock()
	staged := g.staged
	g.staged = nil
	g.mu.Unlock()

	if len(staged) == 0 {
		return 0, nil
	}

	var affected int64

	err := g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, change := range staged {
			var result *gorm.DB

			// Associations are never written implicitly.
			switch change.kind {
			case changeAdd:
				result = tx.Omit(clause.Associations).Create(change.entity)
			case changeUpdate:
				result = tx.Model(change.entity).Select("*").Omit(clause.Associations).Updates(change.entity)
			case changeRemove:
				result = tx.Delete(change.entity)
			}

			if result.Error != nil {
				return result.Error
			}
			affected += result.RowsAffected
		}
		return nil
	})
	if err != nil {
		return 0, sqlerr.NewStorageError("commit", err)
	}

	return affected, nil
}
