package account

import (
	"github.com/deppfellow/accountowner/internal/validation"
	"github.com/google/uuid"
)

// ------------------------------------------------------------

type CreateAccountPayload struct {
	AccountType string `json:"accountType" validate:"required,notblank,max=45"`
	OwnerID     string `json:"ownerId" validate:"required,guid"`
}

func (p *CreateAccountPayload) Validate() error {
	return validation.Struct(p)
}

// ------------------------------------------------------------

type UpdateAccountPayload struct {
	ID          string `param:"id" json:"-" validate:"required,guid"`
	AccountType string `json:"accountType" validate:"required,notblank,max=45"`
	OwnerID     string `json:"ownerId" validate:"required,guid"`
}

func (p *UpdateAccountPayload) Validate() error {
	return validation.Struct(p)
}

func (p *UpdateAccountPayload) AccountID() uuid.UUID {
	return uuid.MustParse(p.ID)
}

// ------------------------------------------------------------

type GetAccountsPayload struct{}

func (p *GetAccountsPayload) Validate() error {
	return nil
}

// ------------------------------------------------------------

type GetAccountByIDPayload struct {
	ID string `param:"id" json:"-" validate:"required,guid"`
}

func (p *GetAccountByIDPayload) Validate() error {
	return validation.Struct(p)
}

func (p *GetAccountByIDPayload) AccountID() uuid.UUID {
	return uuid.MustParse(p.ID)
}

// ------------------------------------------------------------

type DeleteAccountPayload struct {
	ID string `param:"id" json:"-" validate:"required,guid"`
}

func (p *DeleteAccountPayload) Validate() error {
	return validation.Struct(p)
}

func (p *DeleteAccountPayload) AccountID() uuid.UUID {
	return uuid.MustParse(p.ID)
}

// ------------------------------------------------------------

// Response is the public representation of an Account.
type Response struct {
	ID          uuid.UUID `json:"id"`
	AccountType string    `json:"accountType"`
	DateCreated string    `json:"dateCreated"`
	OwnerID     uuid.UUID `json:"ownerId"`
}
