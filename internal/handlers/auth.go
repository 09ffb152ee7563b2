package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/instantfun/soundboard/internal/auth"
	"github.com/instantfun/soundboard/internal/util"
)

// Register creates a new account and returns a bearer token.
// POST /api/auth/register
func (h *Handlers) Register(c *gin.Context) {
	var req auth.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.RespondBadRequest(c, "invalid request body")
		return
	}

	resp, err := h.auth.Register(req)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrMissingFields):
			util.RespondValidationError(c, "", err.Error())
		case errors.Is(err, auth.ErrPasswordTooShort):
			util.RespondValidationError(c, "password", err.Error())
		case errors.Is(err, auth.ErrUserExists):
			util.RespondConflict(c, err.Error())
		default:
			util.RespondInternalError(c, "registration failed")
		}
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Login authenticates an existing account.
// POST /api/auth/login
func (h *Handlers) Login(c *gin.Context) {
	var req auth.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.RespondBadRequest(c, "invalid request body")
		return
	}

	resp, err := h.auth.Login(req)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrMissingFields):
			util.RespondValidationError(c, "", err.Error())
		case errors.Is(err, auth.ErrInvalidCredentials):
			util.RespondUnauthorized(c, err.Error())
		default:
			util.RespondInternalError(c, "login failed")
		}
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Me returns the authenticated user's profile.
// GET /api/auth/me
func (h *Handlers) Me(c *gin.Context) {
	user, ok := util.GetUserFromContext(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":       user.ID,
		"username": user.Username,
		"email":    user.Email,
	})
}
