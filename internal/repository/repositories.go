package repository

import (
	"context"

	"github.com/deppfellow/accountowner/internal/metrics"
	"github.com/deppfellow/accountowner/internal/server"
	"gorm.io/gorm"
)

// Repositories is built once per process and hands out a Wrapper per
// request.
type Repositories struct {
	db      *gorm.DB
	metrics *metrics.Metrics
}

func NewRepositories(s *server.Server) *Repositories {
	return &Repositories{
		db:      s.DB.ORM,
		metrics: s.Metrics,
	}
}

// Wrapper returns a Wrapper with no staged changes.
func (r *Repositories) Wrapper() *Wrapper {
	return &Wrapper{
		gateway: NewGateway(r.db),
		metrics: r.metrics,
	}
}

// Wrapper gives access to the entity repositories of one request. They
// share the Wrapper's Gateway, so Save commits whatever any of them staged.
// A Wrapper must not be reused across requests.
type Wrapper struct {
	gateway Gateway
	metrics *metrics.Metrics

	owner   *OwnerRepository
	account *AccountRepository
}

func (w *Wrapper) Owner() *OwnerRepository {
	if w.owner == nil {
		w.owner = NewOwnerRepository(w.gateway)
	}
	return w.owner
}

func (w *Wrapper) Account() *AccountRepository {
	if w.account == nil {
		w.account = NewAccountRepository(w.gateway)
	}
	return w.account
}

// Save commits every staged change and returns the number of rows affected.
// Store failures are returned unchanged as *sqlerr.StorageError.
func (w *Wrapper) Save(ctx context.Context) (int64, error) {
	rows, err := w.gateway.Commit(ctx)
	w.metrics.ObserveCommit(rows, err)
	return rows, err
}
