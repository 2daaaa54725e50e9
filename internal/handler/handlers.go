package handler

import (
	"github.com/deppfellow/accountowner/internal/server"
	"github.com/deppfellow/accountowner/internal/service"
)

// Handlers groups every HTTP handler for the router.
type Handlers struct {
	Health  *HealthHandler
	OpenAPI *OpenAPIHandler
	Owner   *OwnerHandler
	Account *AccountHandler
}

func NewHandlers(s *server.Server, services *service.Services) *Handlers {
	return &Handlers{
		Health:  NewHealthHandler(s),
		OpenAPI: NewOpenAPIHandler(s),
		Owner:   NewOwnerHandler(s, services.Owner),
		Account: NewAccountHandler(s, services.Account),
	}
}
