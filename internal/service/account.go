package service

import (
	"context"
	"fmt"
	"time"

	"github.com/deppfellow/accountowner/internal/errs"
	"github.com/deppfellow/accountowner/internal/lib/job"
	"github.com/deppfellow/accountowner/internal/mapper"
	"github.com/deppfellow/accountowner/internal/model"
	"github.com/deppfellow/accountowner/internal/model/account"
	"github.com/deppfellow/accountowner/internal/model/owner"
	"github.com/deppfellow/accountowner/internal/repository"
	"github.com/deppfellow/accountowner/internal/server"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const codeOwnerNotFound = "OWNER_NOT_FOUND"

// AccountNotifier is told about every account once it is committed.
type AccountNotifier interface {
	NotifyAccountOpened(ctx context.Context, payload job.AccountOpenedPayload) error
}

type AccountService struct {
	server   *server.Server
	repos    *repository.Repositories
	notifier AccountNotifier
	now      func() time.Time
}

// NewAccountService creates an AccountService. notifier may be nil.
func NewAccountService(s *server.Server, repos *repository.Repositories, notifier AccountNotifier) *AccountService {
	return &AccountService{
		server:   s,
		repos:    repos,
		notifier: notifier,
		now:      time.Now,
	}
}

func (s *AccountService) GetAccounts(ctx context.Context) ([]account.Response, error) {
	logger := zerolog.Ctx(ctx).With().Str("operation", "GetAccounts").Logger()

	accounts, err := s.repos.Wrapper().Account().GetAll(ctx)
	if err != nil {
		return nil, err
	}

	logger.Info().Int("count", len(accounts)).Msg("returned all accounts")

	return mapper.AccountsToResponse(accounts), nil
}

func (s *AccountService) GetAccount(ctx context.Context, id uuid.UUID) (*account.Response, error) {
	logger := zerolog.Ctx(ctx).With().Str("operation", "GetAccount").Str("account_id", id.String()).Logger()

	a, err := s.repos.Wrapper().Account().GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if a == nil {
		logger.Warn().Msg("account not found")
		return nil, accountNotFound(id)
	}

	logger.Info().Msg("returned account")

	res := mapper.AccountToResponse(*a)
	return &res, nil
}

// CreateAccount opens an account for an existing owner. DateCreated is
// today's UTC date.
func (s *AccountService) CreateAccount(ctx context.Context, payload *account.CreateAccountPayload) (*account.Response, error) {
	logger := zerolog.Ctx(ctx).With().Str("operation", "CreateAccount").Str("owner_id", payload.OwnerID).Logger()

	w := s.repos.Wrapper()

	o, err := s.requireOwner(ctx, w, payload.OwnerID)
	if err != nil {
		logger.Warn().Err(err).Msg("cannot create account")
		return nil, err
	}

	a, err := mapper.AccountFromCreate(payload, s.now())
	if err != nil {
		return nil, invalidPayload(err)
	}

	w.Account().Create(&a)

	if _, err := w.Save(ctx); err != nil {
		return nil, err
	}

	logger.Info().Str("account_id", a.ID.String()).Msg("created account")

	s.notifyOpened(ctx, o, a)

	res := mapper.AccountToResponse(a)
	return &res, nil
}

// UpdateAccount replaces the account type and owner. The new owner must exist.
func (s *AccountService) UpdateAccount(ctx context.Context, payload *account.UpdateAccountPayload) error {
	id := payload.AccountID()
	logger := zerolog.Ctx(ctx).With().Str("operation", "UpdateAccount").Str("account_id", id.String()).Logger()

	w := s.repos.Wrapper()

	a, err := w.Account().GetByID(ctx, id)
	if err != nil {
		return err
	}
	if a == nil {
		logger.Warn().Msg("account not found")
		return accountNotFound(id)
	}

	if _, err := s.requireOwner(ctx, w, payload.OwnerID); err != nil {
		logger.Warn().Err(err).Msg("cannot update account")
		return err
	}

	if err := mapper.ApplyAccountUpdate(payload, a); err != nil {
		return invalidPayload(err)
	}

	w.Account().Update(a)

	if _, err := w.Save(ctx); err != nil {
		return err
	}

	logger.Info().Msg("updated account")
	return nil
}

func (s *AccountService) DeleteAccount(ctx context.Context, id uuid.UUID) error {
	logger := zerolog.Ctx(ctx).With().Str("operation", "DeleteAccount").Str("account_id", id.String()).Logger()

	w := s.repos.Wrapper()

	a, err := w.Account().GetByID(ctx, id)
	if err != nil {
		return err
	}
	if a == nil {
		logger.Warn().Msg("account not found")
		return accountNotFound(id)
	}

	w.Account().Delete(a)

	if _, err := w.Save(ctx); err != nil {
		return err
	}

	logger.Info().Msg("deleted account")
	return nil
}

// requireOwner loads the owner an account refers to, failing with a 400
// when it does not exist.
func (s *AccountService) requireOwner(ctx context.Context, w *repository.Wrapper, rawID string) (*owner.Owner, error) {
	ownerID, err := uuid.Parse(rawID)
	if err != nil {
		return nil, invalidPayload(err)
	}

	o, err := w.Owner().GetByID(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, errs.NewReferentialError(fmt.Sprintf("Owner with id %s does not exist", ownerID), codeOwnerNotFound)
	}

	return o, nil
}

// notifyOpened never fails the request; the account is already committed.
func (s *AccountService) notifyOpened(ctx context.Context, o *owner.Owner, a account.Account) {
	if s.notifier == nil {
		return
	}

	err := s.notifier.NotifyAccountOpened(ctx, job.AccountOpenedPayload{
		AccountID:   a.ID.String(),
		AccountType: a.AccountType,
		OwnerID:     o.ID.String(),
		OwnerName:   o.Name,
		DateCreated: model.FormatDate(a.DateCreated),
	})
	if err != nil {
		zerolog.Ctx(ctx).Error().
			Err(err).
			Str("account_id", a.ID.String()).
			Msg("failed to enqueue account opened notification")
	}
}

func accountNotFound(id uuid.UUID) error {
	code := "ACCOUNT_NOT_FOUND"
	return errs.NewNotFoundError(fmt.Sprintf("Account with id %s not found", id), true, &code)
}
