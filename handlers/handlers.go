// Package handlers exposes the ledger services over gin.
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/fadhlanhapp/giftbuddy-backend/auth"
	"github.com/fadhlanhapp/giftbuddy-backend/middleware"
	"github.com/fadhlanhapp/giftbuddy-backend/utils"
)

// principal returns the caller or writes a 401 and reports false
func principal(c *gin.Context) (auth.Principal, bool) {
	p, ok := middleware.PrincipalFrom(c)
	if !ok {
		utils.HandleError(c, utils.NewUnauthorizedError(utils.ErrNotAuthenticated))
		return nil, false
	}
	return p, true
}

// bindJSON binds the body or writes a 400 and reports false
func bindJSON(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		utils.HandleError(c, utils.NewBadRequestError(err.Error()))
		return false
	}
	return true
}
