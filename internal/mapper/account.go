package mapper

import (
	"fmt"
	"time"

	"github.com/deppfellow/accountowner/internal/model"
	"github.com/deppfellow/accountowner/internal/model/account"
	"github.com/google/uuid"
)

func AccountToResponse(a account.Account) account.Response {
	return account.Response{
		ID:          a.ID,
		AccountType: a.AccountType,
		DateCreated: model.FormatDate(a.DateCreated),
		OwnerID:     a.OwnerID,
	}
}

// AccountsToResponse never returns nil, so an empty list renders as [].
func AccountsToResponse(accounts []account.Account) []account.Response {
	out := make([]account.Response, 0, len(accounts))
	for _, a := range accounts {
		out = append(out, AccountToResponse(a))
	}
	return out
}

// AccountFromCreate builds a new Account created on the given day.
func AccountFromCreate(p *account.CreateAccountPayload, created time.Time) (account.Account, error) {
	ownerID, err := uuid.Parse(p.OwnerID)
	if err != nil {
		return account.Account{}, fmt.Errorf("parse owner id: %w", err)
	}

	return account.Account{
		AccountType: p.AccountType,
		OwnerID:     ownerID,
		DateCreated: model.Today(created),
	}, nil
}

// ApplyAccountUpdate merges p into a. DateCreated is never changed.
func ApplyAccountUpdate(p *account.UpdateAccountPayload, a *account.Account) error {
	ownerID, err := uuid.Parse(p.OwnerID)
	if err != nil {
		return fmt.Errorf("parse owner id: %w", err)
	}

	a.AccountType = p.AccountType
	a.OwnerID = ownerID
	return nil
}
