// Package owner defines the Owner entity and the payloads of the
// /owners endpoints.
package owner

import (
	"time"

	"github.com/deppfellow/accountowner/internal/model/account"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Owner is a person holding zero or more accounts.
//
// Accounts is only populated by explicit eager loads and is never written
// back by the repositories.
type Owner struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name        string    `gorm:"size:60;not null"`
	DateOfBirth time.Time `gorm:"not null"`
	Address     string    `gorm:"size:100;not null"`

	Accounts []account.Account `gorm:"foreignKey:OwnerID"`
}

func (Owner) TableName() string {
	return "owners"
}

// BeforeCreate assigns a random id when none is set.
func (o *Owner) BeforeCreate(*gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}
