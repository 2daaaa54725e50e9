package repository

import (
	"context"

	"github.com/deppfellow/accountowner/internal/model/account"
	"github.com/google/uuid"
)

type AccountRepository struct {
	Base[account.Account]
}

func NewAccountRepository(gateway Gateway) *AccountRepository {
	return &AccountRepository{Base: NewBase[account.Account](gateway)}
}

func (r *AccountRepository) GetAll(ctx context.Context) ([]account.Account, error) {
	return r.FindAll(ctx)
}

func (r *AccountRepository) GetByID(ctx context.Context, id uuid.UUID) (*account.Account, error) {
	return r.FindOne(ctx, Where("id = ?", id))
}

func (r *AccountRepository) GetByOwner(ctx context.Context, ownerID uuid.UUID) ([]account.Account, error) {
	return r.FindBy(ctx, Where("owner_id = ?", ownerID))
}
