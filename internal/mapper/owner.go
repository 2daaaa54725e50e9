package mapper

import (
	"fmt"

	"github.com/deppfellow/accountowner/internal/model"
	"github.com/deppfellow/accountowner/internal/model/owner"
)

func OwnerToResponse(o owner.Owner) owner.Response {
	return owner.Response{
		ID:          o.ID,
		Name:        o.Name,
		DateOfBirth: model.FormatDate(o.DateOfBirth),
		Address:     o.Address,
	}
}

// OwnersToResponse never returns nil, so an empty list renders as [].
func OwnersToResponse(owners []owner.Owner) []owner.Response {
	out := make([]owner.Response, 0, len(owners))
	for _, o := range owners {
		out = append(out, OwnerToResponse(o))
	}
	return out
}

func OwnerToDetailsResponse(o owner.Owner) owner.WithAccountsResponse {
	return owner.WithAccountsResponse{
		Response: OwnerToResponse(o),
		Accounts: AccountsToResponse(o.Accounts),
	}
}

// OwnerFromCreate builds a new, not yet persisted, Owner.
func OwnerFromCreate(p *owner.CreateOwnerPayload) (owner.Owner, error) {
	dob, err := model.ParseDate(p.DateOfBirth)
	if err != nil {
		return owner.Owner{}, fmt.Errorf("parse date of birth: %w", err)
	}

	return owner.Owner{
		Name:        p.Name,
		DateOfBirth: dob,
		Address:     p.Address,
	}, nil
}

// ApplyOwnerUpdate merges p into o. o is left untouched on error.
func ApplyOwnerUpdate(p *owner.UpdateOwnerPayload, o *owner.Owner) error {
	dob, err := model.ParseDate(p.DateOfBirth)
	if err != nil {
		return fmt.Errorf("parse date of birth: %w", err)
	}

	o.Name = p.Name
	o.DateOfBirth = dob
	o.Address = p.Address
	return nil
}
