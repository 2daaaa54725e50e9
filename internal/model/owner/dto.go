package owner

import (
	"github.com/deppfellow/accountowner/internal/model/account"
	"github.com/deppfellow/accountowner/internal/validation"
	"github.com/google/uuid"
)

// ------------------------------------------------------------

type CreateOwnerPayload struct {
	Name        string `json:"name" validate:"required,notblank,max=60"`
	DateOfBirth string `json:"dateOfBirth" validate:"required,datetime=2006-01-02"`
	Address     string `json:"address" validate:"required,notblank,max=100"`
}

func (p *CreateOwnerPayload) Validate() error {
	return validation.Struct(p)
}

// ------------------------------------------------------------

type UpdateOwnerPayload struct {
	ID          string `param:"id" json:"-" validate:"required,guid"`
	Name        string `json:"name" validate:"required,notblank,max=60"`
	DateOfBirth string `json:"dateOfBirth" validate:"required,datetime=2006-01-02"`
	Address     string `json:"address" validate:"required,notblank,max=100"`
}

func (p *UpdateOwnerPayload) Validate() error {
	return validation.Struct(p)
}

// OwnerID is only meaningful once the payload has been validated.
func (p *UpdateOwnerPayload) OwnerID() uuid.UUID {
	return uuid.MustParse(p.ID)
}

// ------------------------------------------------------------

type GetOwnersPayload struct{}

func (p *GetOwnersPayload) Validate() error {
	return nil
}

// ------------------------------------------------------------

type GetOwnerByIDPayload struct {
	ID string `param:"id" json:"-" validate:"required,guid"`
}

func (p *GetOwnerByIDPayload) Validate() error {
	return validation.Struct(p)
}

func (p *GetOwnerByIDPayload) OwnerID() uuid.UUID {
	return uuid.MustParse(p.ID)
}

// ------------------------------------------------------------

type DeleteOwnerPayload struct {
	ID string `param:"id" json:"-" validate:"required,guid"`
}

func (p *DeleteOwnerPayload) Validate() error {
	return validation.Struct(p)
}

func (p *DeleteOwnerPayload) OwnerID() uuid.UUID {
	return uuid.MustParse(p.ID)
}

// ------------------------------------------------------------

// Response is the public representation of an Owner.
type Response struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	DateOfBirth string    `json:"dateOfBirth"`
	Address     string    `json:"address"`
}

// WithAccountsResponse is an Owner together with its accounts.
type WithAccountsResponse struct {
	Response
	Accounts []account.Response `json:"accounts"`
}
