/*
 *  Copyright (c) 2025 TDR Ledger API contributors.
 *
 *  SPDX-License-Identifier: Apache-2.0
 */

package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/vivekNinjatech/Fabric-2.5-MVP/internal/constants"
	"github.com/vivekNinjatech/Fabric-2.5-MVP/internal/dto"
	"github.com/vivekNinjatech/Fabric-2.5-MVP/internal/identity"
	"github.com/vivekNinjatech/Fabric-2.5-MVP/internal/middleware"
)

// IdentityService is the slice of the lifecycle manager the auth endpoints
// use. Satisfied by *identity.Manager.
type IdentityService interface {
	RegisterAndEnroll(ctx context.Context, org, username string) (identity.Result, error)
	IsRegistered(org, username string) (bool, error)
	ListRegistered(org string) ([]string, error)
}

// TokenIssuer signs session tokens. Satisfied by *token.Service.
type TokenIssuer interface {
	Issue(username, orgName string) (string, error)
}

// AuthHandler serves the identity endpoints. These always answer 200; the
// success flag in the body carries the real outcome.
type AuthHandler struct {
	identities IdentityService
	tokens     TokenIssuer
	log        *zap.SugaredLogger
}

func NewAuthHandler(identities IdentityService, tokens TokenIssuer, log *zap.SugaredLogger) *AuthHandler {
	return &AuthHandler{
		identities: identities,
		tokens:     tokens,
		log:        log,
	}
}

// RegisterUser registers a username with its organization's CA and returns a
// session token. Registering a name that already holds credentials succeeds
// without a new secret.
func (h *AuthHandler) RegisterUser(c *gin.Context) {
	req, ok := h.bindCredentials(c)
	if !ok {
		return
	}

	tok, err := h.tokens.Issue(req.Username, req.OrgName)
	if err != nil {
		h.log.Errorw("signing session token failed", "error", err)
		c.JSON(http.StatusOK, dto.AuthResponse{
			Success: false,
			Message: "Failed to register user due to an unexpected error.",
		})
		return
	}

	result, err := h.identities.RegisterAndEnroll(c.Request.Context(), req.OrgName, req.Username)
	if err != nil {
		h.log.Errorw("user registration failed", "user", req.Username, "org", req.OrgName, "error", err)
		c.JSON(http.StatusOK, dto.AuthResponse{
			Success: false,
			Message: registrationFailureMessage(err),
		})
		return
	}

	c.JSON(http.StatusOK, dto.AuthResponse{
		Success: true,
		Message: fmt.Sprintf("%s enrolled Successfully", req.Username),
		Token:   tok,
		Secret:  result.Secret,
	})
}

// LoginUser answers a session token for a username already holding wallet
// credentials.
func (h *AuthHandler) LoginUser(c *gin.Context) {
	req, ok := h.bindCredentials(c)
	if !ok {
		return
	}

	registered, err := h.identities.IsRegistered(req.OrgName, req.Username)
	if err != nil {
		h.log.Errorw("login check failed", "user", req.Username, "org", req.OrgName, "error", err)
		c.JSON(http.StatusOK, dto.AuthResponse{
			Success: false,
			Message: "Failed to login due to an unexpected error.",
		})
		return
	}
	if !registered {
		c.JSON(http.StatusOK, dto.AuthResponse{
			Success: false,
			Message: fmt.Sprintf("User with username %s is not registered with %s, Please register first.", req.Username, req.OrgName),
		})
		return
	}

	tok, err := h.tokens.Issue(req.Username, req.OrgName)
	if err != nil {
		h.log.Errorw("signing session token failed", "error", err)
		c.JSON(http.StatusOK, dto.AuthResponse{
			Success: false,
			Message: "Failed to login due to an unexpected error.",
		})
		return
	}

	c.JSON(http.StatusOK, dto.AuthResponse{Success: true, Token: tok})
}

// ListUsers lists the registered usernames of the caller's organization. The
// organization comes from the verified token, not the request body.
func (h *AuthHandler) ListUsers(c *gin.Context) {
	orgName, ok := middleware.GetOrgNameFromContext(c)
	if !ok {
		c.JSON(http.StatusOK, dto.AuthResponse{
			Success: false,
			Message: "Failed to retrieve user list due to an unexpected error.",
		})
		return
	}

	users, err := h.identities.ListRegistered(orgName)
	if err != nil {
		h.log.Errorw("user listing failed", "org", orgName, "error", err)
		c.JSON(http.StatusOK, dto.AuthResponse{
			Success: false,
			Message: "Failed to retrieve user list due to an unexpected error.",
		})
		return
	}

	c.JSON(http.StatusOK, dto.UserListResponse{Success: true, Users: users})
}

// bindCredentials decodes the shared register/login body and enforces the
// required fields. Field failures answer 200 with the fixed message format.
func (h *AuthHandler) bindCredentials(c *gin.Context) (dto.CredentialRequest, bool) {
	var req dto.CredentialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		req = dto.CredentialRequest{}
	}
	if req.Username == "" {
		h.log.Warnw("username missing in request body")
		c.JSON(http.StatusOK, dto.AuthResponse{
			Success: false,
			Message: fmt.Sprintf(constants.MsgFieldFormat, "'username'"),
		})
		return req, false
	}
	if req.OrgName == "" {
		h.log.Warnw("organization name missing in request body")
		c.JSON(http.StatusOK, dto.AuthResponse{
			Success: false,
			Message: fmt.Sprintf(constants.MsgFieldFormat, "'orgName'"),
		})
		return req, false
	}
	return req, true
}

func registrationFailureMessage(err error) string {
	switch {
	case errors.Is(err, constants.ErrUnknownOrganization):
		return "Organization is not configured."
	case errors.Is(err, constants.ErrCAUnavailable):
		return "Certificate authority is unreachable."
	default:
		return "Failed to register user due to an unexpected error."
	}
}

// RegisterRoutes wires the identity endpoints. Register and login are open;
// the user listing requires a session token.
func (h *AuthHandler) RegisterRoutes(r *gin.Engine, auth gin.HandlerFunc) {
	authGroup := r.Group("/api/auth")
	{
		authGroup.POST("/register", h.RegisterUser)
		authGroup.POST("/users/login", h.LoginUser)
		authGroup.GET("/all-users", auth, h.ListUsers)
	}
}
