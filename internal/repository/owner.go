package repository

import (
	"context"

	"github.com/deppfellow/accountowner/internal/model/owner"
	"github.com/google/uuid"
)

type OwnerRepository struct {
	Base[owner.Owner]
}

func NewOwnerRepository(gateway Gateway) *OwnerRepository {
	return &OwnerRepository{Base: NewBase[owner.Owner](gateway)}
}

func (r *OwnerRepository) GetAll(ctx context.Context) ([]owner.Owner, error) {
	return r.FindAll(ctx)
}

func (r *OwnerRepository) GetByID(ctx context.Context, id uuid.UUID) (*owner.Owner, error) {
	return r.FindOne(ctx, Where("id = ?", id))
}

// GetWithDetails loads the owner and, in a second query, its accounts.
func (r *OwnerRepository) GetWithDetails(ctx context.Context, id uuid.UUID) (*owner.Owner, error) {
	return r.FindOne(ctx, Where("id = ?", id), Preload("Accounts"))
}
