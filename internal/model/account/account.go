// Package account defines the Account entity and the payloads of the
// /accounts endpoints.
package account

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Account belongs to exactly one owner. OwnerID is checked against the
// owners table when written, it is not a database constraint.
type Account struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	AccountType string    `gorm:"size:45;not null"`
	DateCreated time.Time `gorm:"not null"`
	OwnerID     uuid.UUID `gorm:"type:uuid;not null;index"`
}

func (Account) TableName() string {
	return "accounts"
}

// BeforeCreate assigns a random id when none is set.
func (a *Account) BeforeCreate(*gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
