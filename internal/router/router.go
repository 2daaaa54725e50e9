// Package router builds the Echo instance: the middleware chain, the error
// handler, and every route.
package router

import (
	"net/http"

	"github.com/deppfellow/accountowner/internal/handler"
	"github.com/deppfellow/accountowner/internal/middleware"
	"github.com/deppfellow/accountowner/internal/model/account"
	"github.com/deppfellow/accountowner/internal/model/owner"
	"github.com/deppfellow/accountowner/internal/server"
	"github.com/labstack/echo/v4"
)

func NewRouter(s *server.Server, h *handler.Handlers) *echo.Echo {
	middlewares := middleware.NewMiddlewares(s)

	router := echo.New()
	router.HideBanner = true
	router.HidePort = true

	router.HTTPErrorHandler = middlewares.Global.GlobalErrorHandler

	// Order matters: the request id must exist before tracing and the
	// context logger, and Recover must be innermost so a panic still goes
	// through logging and metrics as a 500.
	router.Use(
		middlewares.RateLimit.Limiter(),
		middlewares.Global.CORS(),
		middlewares.Global.Secure(),
		middleware.RequestID(),
		middlewares.Tracing.NewRelicMiddleware(),
		middlewares.Tracing.EnhanceTracing(),
		middlewares.Metrics.Observe(),
		middlewares.ContextEnhancer.EnhanceContext(),
		middlewares.Global.RequestLogger(),
		middlewares.Global.Recover(),
	)

	registerSystemRoutes(router, s, h)
	registerOwnerRoutes(router, h)
	registerAccountRoutes(router, h)

	return router
}

func registerOwnerRoutes(r *echo.Echo, h *handler.Handlers) {
	owners := r.Group("/owners")

	owners.GET("", handler.Handle(h.Owner.Handler, h.Owner.GetOwners, http.StatusOK, &owner.GetOwnersPayload{}))
	owners.POST("", handler.Handle(h.Owner.Handler, h.Owner.CreateOwner, http.StatusCreated, &owner.CreateOwnerPayload{}))
	owners.GET("/:id", handler.Handle(h.Owner.Handler, h.Owner.GetOwnerByID, http.StatusOK, &owner.GetOwnerByIDPayload{}))
	owners.GET("/:id/account", handler.Handle(h.Owner.Handler, h.Owner.GetOwnerWithAccounts, http.StatusOK, &owner.GetOwnerByIDPayload{}))
	owners.PUT("/:id", handler.HandleNoContent(h.Owner.Handler, h.Owner.UpdateOwner, http.StatusNoContent, &owner.UpdateOwnerPayload{}))
	owners.DELETE("/:id", handler.HandleNoContent(h.Owner.Handler, h.Owner.DeleteOwner, http.StatusNoContent, &owner.DeleteOwnerPayload{}))
}

func registerAccountRoutes(r *echo.Echo, h *handler.Handlers) {
	accounts := r.Group("/accounts")

	accounts.GET("", handler.Handle(h.Account.Handler, h.Account.GetAccounts, http.StatusOK, &account.GetAccountsPayload{}))
	accounts.POST("", handler.Handle(h.Account.Handler, h.Account.CreateAccount, http.StatusCreated, &account.CreateAccountPayload{}))
	accounts.GET("/:id", handler.Handle(h.Account.Handler, h.Account.GetAccountByID, http.StatusOK, &account.GetAccountByIDPayload{}))
	accounts.PUT("/:id", handler.HandleNoContent(h.Account.Handler, h.Account.UpdateAccount, http.StatusNoContent, &account.UpdateAccountPayload{}))
	accounts.DELETE("/:id", handler.HandleNoContent(h.Account.Handler, h.Account.DeleteAccount, http.StatusNoContent, &account.DeleteAccountPayload{}))
}
