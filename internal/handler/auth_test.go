/*
 *  Copyright (c) 2025 TDR Ledger API contributors.
 *
 *  SPDX-License-Identifier: Apache-2.0
 */

package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/vivekNinjatech/Fabric-2.5-MVP/internal/constants"
	"github.com/vivekNinjatech/Fabric-2.5-MVP/internal/dto"
	"github.com/vivekNinjatech/Fabric-2.5-MVP/internal/identity"
	"github.com/vivekNinjatech/Fabric-2.5-MVP/internal/middleware"
	"github.com/vivekNinjatech/Fabric-2.5-MVP/internal/token"
)

type fakeIdentities struct {
	result     identity.Result
	registered bool
	users      []string
	err        error
}

func (f *fakeIdentities) RegisterAndEnroll(context.Context, string, string) (identity.Result, error) {
	return f.result, f.err
}

func (f *fakeIdentities) IsRegistered(string, string) (bool, error) {
	return f.registered, f.err
}

func (f *fakeIdentities) ListRegistered(string) ([]string, error) {
	return f.users, f.err
}

func newAuthRouter(identities IdentityService) (*gin.Engine, *token.Service) {
	gin.SetMode(gin.TestMode)
	tokens := token.New(token.Config{Secret: "test-secret"})
	h := NewAuthHandler(identities, tokens, zap.NewNop().Sugar())
	r := gin.New()
	h.RegisterRoutes(r, middleware.Auth(tokens))
	return r, tokens
}

func postJSON(r *gin.Engine, path string, body interface{}) *httptest.ResponseRecorder {
	raw, _ := json.Marshal(body)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func decodeAuth(t *testing.T, w *httptest.ResponseRecorder) dto.AuthResponse {
	t.Helper()
	var resp dto.AuthResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding response %s: %v", w.Body.String(), err)
	}
	return resp
}

func TestRegisterUser(t *testing.T) {
	identities := &fakeIdentities{result: identity.Result{Secret: "s3cret"}}
	r, _ := newAuthRouter(identities)

	w := postJSON(r, "/api/auth/register", dto.CredentialRequest{Username: "alice", OrgName: "Org1"})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	resp := decodeAuth(t, w)
	if !resp.Success {
		t.Errorf("Success = false: %s", resp.Message)
	}
	if resp.Secret != "s3cret" {
		t.Errorf("Secret = %q", resp.Secret)
	}
	if resp.Token == "" {
		t.Error("Token missing from registration response")
	}
	if resp.Message != "alice enrolled Successfully" {
		t.Errorf("Message = %q", resp.Message)
	}
}

func TestRegisterUserAlreadyExists(t *testing.T) {
	identities := &fakeIdentities{result: identity.Result{AlreadyExists: true}}
	r, _ := newAuthRouter(identities)

	w := postJSON(r, "/api/auth/register", dto.CredentialRequest{Username: "alice", OrgName: "Org1"})
	resp := decodeAuth(t, w)
	if !resp.Success {
		t.Errorf("repeat registration Success = false: %s", resp.Message)
	}
	if resp.Secret != "" {
		t.Errorf("repeat registration leaked a secret: %q", resp.Secret)
	}
	if resp.Token == "" {
		t.Error("Token missing from repeat registration response")
	}
}

func TestRegisterUserMissingFields(t *testing.T) {
	r, _ := newAuthRouter(&fakeIdentities{})

	tests := []struct {
		name string
		body dto.CredentialRequest
		want string
	}{
		{"missing username", dto.CredentialRequest{OrgName: "Org1"}, "'username' field is missing or Invalid in the request"},
		{"missing org", dto.CredentialRequest{Username: "alice"}, "'orgName' field is missing or Invalid in the request"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := postJSON(r, "/api/auth/register", tt.body)
			if w.Code != http.StatusOK {
				t.Fatalf("status = %d, want 200", w.Code)
			}
			resp := decodeAuth(t, w)
			if resp.Success {
				t.Error("Success = true for invalid body")
			}
			if resp.Message != tt.want {
				t.Errorf("Message = %q, want %q", resp.Message, tt.want)
			}
		})
	}
}

func TestRegisterUserFailure(t *testing.T) {
	identities := &fakeIdentities{err: constants.ErrUnknownOrganization}
	r, _ := newAuthRouter(identities)

	w := postJSON(r, "/api/auth/register", dto.CredentialRequest{Username: "alice", OrgName: "Org9"})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	resp := decodeAuth(t, w)
	if resp.Success {
		t.Error("Success = true for unknown organization")
	}
}

func TestLoginUser(t *testing.T) {
	identities := &fakeIdentities{registered: true}
	r, _ := newAuthRouter(identities)

	w := postJSON(r, "/api/auth/users/login", dto.CredentialRequest{Username: "alice", OrgName: "Org1"})
	resp := decodeAuth(t, w)
	if !resp.Success {
		t.Errorf("Success = false: %s", resp.Message)
	}
	if resp.Token == "" {
		t.Error("Token missing from login response")
	}
}

func TestLoginUserNotRegistered(t *testing.T) {
	identities := &fakeIdentities{registered: false}
	r, _ := newAuthRouter(identities)

	w := postJSON(r, "/api/auth/users/login", dto.CredentialRequest{Username: "alice", OrgName: "Org1"})
	resp := decodeAuth(t, w)
	if resp.Success {
		t.Error("Success = true for unregistered user")
	}
	if !strings.Contains(resp.Message, "Please register first") {
		t.Errorf("Message = %q", resp.Message)
	}
	if resp.Token != "" {
		t.Error("unregistered login leaked a token")
	}
}

func TestListUsersRequiresToken(t *testing.T) {
	r, _ := newAuthRouter(&fakeIdentities{users: []string{"alice"}})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/auth/all-users", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Errorf("status = %d, want 403", w.Code)
	}
}

func TestListUsers(t *testing.T) {
	identities := &fakeIdentities{users: []string{"admin", "alice"}}
	r, tokens := newAuthRouter(identities)

	tok, err := tokens.Issue("alice", "Org1")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/auth/all-users", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	var resp dto.UserListResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if !resp.Success || len(resp.Users) != 2 {
		t.Errorf("response = %+v", resp)
	}
}
