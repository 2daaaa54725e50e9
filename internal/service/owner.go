package service

import (
	"context"
	"fmt"

	"github.com/deppfellow/accountowner/internal/errs"
	"github.com/deppfellow/accountowner/internal/mapper"
	"github.com/deppfellow/accountowner/internal/model/owner"
	"github.com/deppfellow/accountowner/internal/repository"
	"github.com/deppfellow/accountowner/internal/server"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const codeOwnerHasAccounts = "OWNER_HAS_ACCOUNTS"

type OwnerService struct {
	server *server.Server
	repos  *repository.Repositories
}

func NewOwnerService(s *server.Server, repos *repository.Repositories) *OwnerService {
	return &OwnerService{
		server: s,
		repos:  repos,
	}
}

func (s *OwnerService) GetOwners(ctx context.Context) ([]owner.Response, error) {
	logger := zerolog.Ctx(ctx).With().Str("operation", "GetOwners").Logger()

	owners, err := s.repos.Wrapper().Owner().GetAll(ctx)
	if err != nil {
		return nil, err
	}

	logger.Info().Int("count", len(owners)).Msg("returned all owners")

	return mapper.OwnersToResponse(owners), nil
}

func (s *OwnerService) GetOwner(ctx context.Context, id uuid.UUID) (*owner.Response, error) {
	logger := zerolog.Ctx(ctx).With().Str("operation", "GetOwner").Str("owner_id", id.String()).Logger()

	o, err := s.repos.Wrapper().Owner().GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if o == nil {
		logger.Warn().Msg("owner not found")
		return nil, ownerNotFound(id)
	}

	logger.Info().Msg("returned owner")

	res := mapper.OwnerToResponse(*o)
	return &res, nil
}

// GetOwnerWithAccounts returns the owner together with every account it holds.
func (s *OwnerService) GetOwnerWithAccounts(ctx context.Context, id uuid.UUID) (*owner.WithAccountsResponse, error) {
	logger := zerolog.Ctx(ctx).With().Str("operation", "GetOwnerWithAccounts").Str("owner_id", id.String()).Logger()

	o, err := s.repos.Wrapper().Owner().GetWithDetails(ctx, id)
	if err != nil {
		return nil, err
	}
	if o == nil {
		logger.Warn().Msg("owner not found")
		return nil, ownerNotFound(id)
	}

	logger.Info().Int("accounts", len(o.Accounts)).Msg("returned owner with accounts")

	res := mapper.OwnerToDetailsResponse(*o)
	return &res, nil
}

func (s *OwnerService) CreateOwner(ctx context.Context, payload *owner.CreateOwnerPayload) (*owner.Response, error) {
	logger := zerolog.Ctx(ctx).With().Str("operation", "CreateOwner").Logger()

	o, err := mapper.OwnerFromCreate(payload)
	if err != nil {
		return nil, invalidPayload(err)
	}

	w := s.repos.Wrapper()
	w.Owner().Create(&o)

	if _, err := w.Save(ctx); err != nil {
		return nil, err
	}

	logger.Info().Str("owner_id", o.ID.String()).Msg("created owner")

	res := mapper.OwnerToResponse(o)
	return &res, nil
}

// UpdateOwner replaces the owner's name, date of birth and address.
func (s *OwnerService) UpdateOwner(ctx context.Context, payload *owner.UpdateOwnerPayload) error {
	id := payload.OwnerID()
	logger := zerolog.Ctx(ctx).With().Str("operation", "UpdateOwner").Str("owner_id", id.String()).Logger()

	w := s.repos.Wrapper()

	o, err := w.Owner().GetByID(ctx, id)
	if err != nil {
		return err
	}
	if o == nil {
		logger.Warn().Msg("owner not found")
		return ownerNotFound(id)
	}

	if err := mapper.ApplyOwnerUpdate(payload, o); err != nil {
		return invalidPayload(err)
	}

	w.Owner().Update(o)

	if _, err := w.Save(ctx); err != nil {
		return err
	}

	logger.Info().Msg("updated owner")
	return nil
}

// DeleteOwner removes an owner that holds no account.
func (s *OwnerService) DeleteOwner(ctx context.Context, id uuid.UUID) error {
	logger := zerolog.Ctx(ctx).With().Str("operation", "DeleteOwner").Str("owner_id", id.String()).Logger()

	w := s.repos.Wrapper()

	o, err := w.Owner().GetByID(ctx, id)
	if err != nil {
		return err
	}
	if o == nil {
		logger.Warn().Msg("owner not found")
		return ownerNotFound(id)
	}

	accounts, err := w.Account().GetByOwner(ctx, id)
	if err != nil {
		return err
	}
	if len(accounts) > 0 {
		logger.Warn().Int("accounts", len(accounts)).Msg("cannot delete owner with accounts")
		return errs.NewReferentialError(
			fmt.Sprintf("Cannot delete owner with id %s. It has %d related accounts, delete those accounts first", id, len(accounts)),
			codeOwnerHasAccounts,
		)
	}

	w.Owner().Delete(o)

	if _, err := w.Save(ctx); err != nil {
		return err
	}

	logger.Info().Msg("deleted owner")
	return nil
}

func ownerNotFound(id uuid.UUID) error {
	code := "OWNER_NOT_FOUND"
	return errs.NewNotFoundError(fmt.Sprintf("Owner with id %s not found", id), true, &code)
}

func invalidPayload(err error) error {
	return errs.NewBadRequestError(err.Error(), true, nil, nil, nil)
}
