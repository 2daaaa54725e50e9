package handler

import (
	"github.com/deppfellow/accountowner/internal/model/owner"
	"github.com/deppfellow/accountowner/internal/server"
	"github.com/deppfellow/accountowner/internal/service"
	"github.com/labstack/echo/v4"
)

type OwnerHandler struct {
	Handler
	ownerService *service.OwnerService
}

func NewOwnerHandler(s *server.Server, ownerService *service.OwnerService) *OwnerHandler {
	return &OwnerHandler{
		Handler:      NewHandler(s),
		ownerService: ownerService,
	}
}

func (h *OwnerHandler) GetOwners(c echo.Context, _ *owner.GetOwnersPayload) ([]owner.Response, error) {
	return h.ownerService.GetOwners(c.Request().Context())
}

func (h *OwnerHandler) GetOwnerByID(c echo.Context, payload *owner.GetOwnerByIDPayload) (*owner.Response, error) {
	return h.ownerService.GetOwner(c.Request().Context(), payload.OwnerID())
}

func (h *OwnerHandler) GetOwnerWithAccounts(c echo.Context, payload *owner.GetOwnerByIDPayload) (*owner.WithAccountsResponse, error) {
	return h.ownerService.GetOwnerWithAccounts(c.Request().Context(), payload.OwnerID())
}

// CreateOwner answers 201 with the Location of the new owner.
func (h *OwnerHandler) CreateOwner(c echo.Context, payload *owner.CreateOwnerPayload) (*owner.Response, error) {
	created, err := h.ownerService.CreateOwner(c.Request().Context(), payload)
	if err != nil {
		return nil, err
	}

	c.Response().Header().Set(echo.HeaderLocation, "/owners/"+created.ID.String())
	return created, nil
}

func (h *OwnerHandler) UpdateOwner(c echo.Context, payload *owner.UpdateOwnerPayload) error {
	return h.ownerService.UpdateOwner(c.Request().Context(), payload)
}

func (h *OwnerHandler) DeleteOwner(c echo.Context, payload *owner.DeleteOwnerPayload) error {
	return h.ownerService.DeleteOwner(c.Request().Context(), payload.OwnerID())
}
