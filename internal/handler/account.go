package handler

import (
	"github.com/deppfellow/accountowner/internal/model/account"
	"github.com/deppfellow/accountowner/internal/server"
	"github.com/deppfellow/accountowner/internal/service"
	"github.com/labstack/echo/v4"
)

type AccountHandler struct {
	Handler
	accountService *service.AccountService
}

func NewAccountHandler(s *server.Server, accountService *service.AccountService) *AccountHandler {
	return &AccountHandler{
		Handler:        NewHandler(s),
		accountService: accountService,
	}
}

func (h *AccountHandler) GetAccounts(c echo.Context, _ *account.GetAccountsPayload) ([]account.Response, error) {
	return h.accountService.GetAccounts(c.Request().Context())
}

func (h *AccountHandler) GetAccountByID(c echo.Context, payload *account.GetAccountByIDPayload) (*account.Response, error) {
	return h.accountService.GetAccount(c.Request().Context(), payload.AccountID())
}

func (h *AccountHandler) CreateAccount(c echo.Context, payload *account.CreateAccountPayload) (*account.Response, error) {
	created, err := h.accountService.CreateAccount(c.Request().Context(), payload)
	if err != nil {
		return nil, err
	}

	c.Response().Header().Set(echo.HeaderLocation, "/accounts/"+created.ID.String())
	return created, nil
}

func (h *AccountHandler) UpdateAccount(c echo.Context, payload *account.UpdateAccountPayload) error {
	return h.accountService.UpdateAccount(c.Request().Context(), payload)
}

func (h *AccountHandler) DeleteAccount(c echo.Context, payload *account.DeleteAccountPayload) error {
	return h.accountService.DeleteAccount(c.Request().Context(), payload.AccountID())
}
