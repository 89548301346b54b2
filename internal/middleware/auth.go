/*
 *  Copyright (c) 2025 TDR Ledger API contributors.
 *
 *  SPDX-License-Identifier: Apache-2.0
 */

package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/vivekNinjatech/Fabric-2.5-MVP/internal/constants"
	"github.com/vivekNinjatech/Fabric-2.5-MVP/internal/token"
)

// Context keys set by the auth middleware for downstream handlers.
const (
	ContextUsername = "username"
	ContextOrgName  = "orgName"
)

// Verifier validates a bearer token and returns its claims. Satisfied by
// *token.Service.
type Verifier interface {
	Verify(tokenString string) (*token.Claims, error)
}

// Auth returns the bearer-token middleware guarding the protected routes.
// A missing or failed token answers 403 with a fixed message body; the two
// messages are part of the API contract and clients match on them.
func Auth(verifier Verifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := bearerToken(c)
		if raw == "" {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"success": false,
				"message": constants.MsgNoToken,
			})
			return
		}

		claims, err := verifier.Verify(raw)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"success": false,
				"message": constants.MsgBadToken,
			})
			return
		}

		c.Set(ContextUsername, claims.Username)
		c.Set(ContextOrgName, claims.OrgName)
		c.Next()
	}
}

// bearerToken extracts the token from the Authorization header. Anything not
// in "Bearer <token>" form counts as no token at all.
func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
}

// GetUsernameFromContext extracts the authenticated username from the Gin
// context.
func GetUsernameFromContext(c *gin.Context) (string, bool) {
	username, exists := c.Get(ContextUsername)
	if !exists {
		return "", false
	}
	usernameStr, ok := username.(string)
	return usernameStr, ok
}

// GetOrgNameFromContext extracts the authenticated organization from the Gin
// context.
func GetOrgNameFromContext(c *gin.Context) (string, bool) {
	orgName, exists := c.Get(ContextOrgName)
	if !exists {
		return "", false
	}
	orgNameStr, ok := orgName.(string)
	return orgNameStr, ok
}
