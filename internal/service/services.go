package service

import (
	"github.com/deppfellow/accountowner/internal/lib/job"
	"github.com/deppfellow/accountowner/internal/repository"
	"github.com/deppfellow/accountowner/internal/server"
)

type Services struct {
	Job     *job.JobService
	Owner   *OwnerService
	Account *AccountService
}

func NewServices(s *server.Server, repos *repository.Repositories) (*Services, error) {
	var notifier AccountNotifier
	if s.Job.NotificationsEnabled() {
		notifier = s.Job
	}

	return &Services{
		Job:     s.Job,
		Owner:   NewOwnerService(s, repos),
		Account: NewAccountService(s, repos, notifier),
	}, nil
}
