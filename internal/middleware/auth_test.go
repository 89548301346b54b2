/*
 *  Copyright (c) 2025 TDR Ledger API contributors.
 *
 *  SPDX-License-Identifier: Apache-2.0
 */

package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/vivekNinjatech/Fabric-2.5-MVP/internal/constants"
	"github.com/vivekNinjatech/Fabric-2.5-MVP/internal/token"
)

func newProtectedRouter(verifier Verifier) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", Auth(verifier), func(c *gin.Context) {
		username, _ := GetUsernameFromContext(c)
		orgName, _ := GetOrgNameFromContext(c)
		c.JSON(http.StatusOK, gin.H{"username": username, "orgName": orgName})
	})
	return r
}

func TestAuthMissingToken(t *testing.T) {
	svc := token.New(token.Config{Secret: "test-secret"})
	r := newProtectedRouter(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Errorf("status = %d, want 403", w.Code)
	}
	if !strings.Contains(w.Body.String(), constants.MsgNoToken) {
		t.Errorf("body = %s, want %q", w.Body.String(), constants.MsgNoToken)
	}
}

func TestAuthBadToken(t *testing.T) {
	svc := token.New(token.Config{Secret: "test-secret"})
	r := newProtectedRouter(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Errorf("status = %d, want 403", w.Code)
	}
	if !strings.Contains(w.Body.String(), constants.MsgBadToken) {
		t.Errorf("body = %s, want %q", w.Body.String(), constants.MsgBadToken)
	}
}

func TestAuthExpiredToken(t *testing.T) {
	issuedAt := time.Now().Add(-2 * time.Hour)
	issuer := token.NewWithClock(token.Config{Secret: "test-secret", Expiry: time.Hour},
		func() time.Time { return issuedAt })
	tok, err := issuer.Issue("alice", "Org1")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	r := newProtectedRouter(token.New(token.Config{Secret: "test-secret"}))
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Errorf("status = %d, want 403", w.Code)
	}
	if !strings.Contains(w.Body.String(), constants.MsgBadToken) {
		t.Errorf("body = %s, want %q", w.Body.String(), constants.MsgBadToken)
	}
}

func TestAuthValidToken(t *testing.T) {
	svc := token.New(token.Config{Secret: "test-secret"})
	tok, err := svc.Issue("alice", "Org1")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	r := newProtectedRouter(svc)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body %s", w.Code, w.Body.String())
	}
	body := w.Body.String()
	if !strings.Contains(body, `"username":"alice"`) || !strings.Contains(body, `"orgName":"Org1"`) {
		t.Errorf("claims not injected into context: %s", body)
	}
}

func TestAuthNonBearerHeaderIsNoToken(t *testing.T) {
	svc := token.New(token.Config{Secret: "test-secret"})
	tok, err := svc.Issue("alice", "Org1")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	// A valid token without the Bearer prefix counts as no token at all.
	r := newProtectedRouter(svc)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", tok)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Errorf("status = %d, want 403", w.Code)
	}
	if !strings.Contains(w.Body.String(), constants.MsgNoToken) {
		t.Errorf("body = %s, want %q", w.Body.String(), constants.MsgNoToken)
	}
}
