/*
 *  Copyright (c) 2025 TDR Ledger API contributors.
 *
 *  SPDX-License-Identifier: Apache-2.0
 */

package ca

import (
	"context"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/x509"
	"encoding/base64"
	"encoding/json"
	"encoding/pem"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/vivekNinjatech/Fabric-2.5-MVP/internal/constants"
	"github.com/vivekNinjatech/Fabric-2.5-MVP/internal/wallet"
)

func testRegistrar(t *testing.T) *wallet.Identity {
	t.Helper()
	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		t.Fatalf("generating registrar key: %v", err)
	}
	der, err := x509.MarshalPKCS8PrivateKey(key)
	if err != nil {
		t.Fatalf("marshaling registrar key: %v", err)
	}
	keyPEM := pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: der})
	certPEM := pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: []byte("registrar-cert")})
	return &wallet.Identity{
		Label:       "admin",
		MSPID:       "Org1MSP",
		Certificate: string(certPEM),
		PrivateKey:  string(keyPEM),
	}
}

func respond(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}

func newTestClient(t *testing.T, url string) *Client {
	t.Helper()
	c, err := New(Config{URL: url, CAName: "ca-org1"})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return c
}

func TestEnroll(t *testing.T) {
	certPEM := pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: []byte("enrolled-cert")})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/enroll" {
			t.Errorf("path = %s", r.URL.Path)
		}
		user, secret, ok := r.BasicAuth()
		if !ok || user != "alice" || secret != "alicepw" {
			respond(w, http.StatusUnauthorized,
				`{"success":false,"result":null,"errors":[{"code":20,"message":"Authentication failure"}]}`)
			return
		}
		var req struct {
			CertificateRequest string `json:"certificate_request"`
			CAName             string `json:"caname"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decoding enroll body: %v", err)
		}
		if !strings.Contains(req.CertificateRequest, "CERTIFICATE REQUEST") {
			t.Errorf("body carries no CSR")
		}
		if req.CAName != "ca-org1" {
			t.Errorf("caname = %q", req.CAName)
		}
		respond(w, http.StatusCreated,
			`{"success":true,"result":{"Cert":"`+base64.StdEncoding.EncodeToString(certPEM)+`"},"errors":[]}`)
	}))
	defer srv.Close()

	enrollment, err := newTestClient(t, srv.URL).Enroll(context.Background(), "alice", "alicepw")
	if err != nil {
		t.Fatalf("Enroll: %v", err)
	}
	if string(enrollment.CertPEM) != string(certPEM) {
		t.Errorf("certificate mismatch")
	}
	if _, err := parseECPrivateKey(enrollment.KeyPEM); err != nil {
		t.Errorf("returned key does not parse: %v", err)
	}
}

func TestEnrollInvalidSecret(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		respond(w, http.StatusUnauthorized,
			`{"success":false,"result":null,"errors":[{"code":20,"message":"Authentication failure"}]}`)
	}))
	defer srv.Close()

	_, err := newTestClient(t, srv.URL).Enroll(context.Background(), "alice", "wrong")
	if !errors.Is(err, constants.ErrInvalidSecret) {
		t.Errorf("Enroll with bad secret = %v, want ErrInvalidSecret", err)
	}
}

func TestRegister(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/register" {
			t.Errorf("path = %s", r.URL.Path)
		}
		tok := r.Header.Get("Authorization")
		if parts := strings.Split(tok, "."); len(parts) != 2 {
			t.Errorf("authorization token has %d segments, want 2", len(parts))
		}
		var req struct {
			ID          string `json:"id"`
			Type        string `json:"type"`
			Affiliation string `json:"affiliation"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decoding register body: %v", err)
		}
		if req.ID != "alice" || req.Type != "client" || req.Affiliation != "org1.department1" {
			t.Errorf("register body = %+v", req)
		}
		respond(w, http.StatusCreated, `{"success":true,"result":{"secret":"s3cret"},"errors":[]}`)
	}))
	defer srv.Close()

	secret, err := newTestClient(t, srv.URL).Register(context.Background(), RegisterRequest{
		Name:        "alice",
		Affiliation: "org1.department1",
		Type:        "client",
	}, testRegistrar(t))
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if secret != "s3cret" {
		t.Errorf("secret = %q", secret)
	}
}

func TestRegisterDuplicate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		respond(w, http.StatusConflict,
			`{"success":false,"result":null,"errors":[{"code":0,"message":"Identity 'alice' is already registered"}]}`)
	}))
	defer srv.Close()

	_, err := newTestClient(t, srv.URL).Register(context.Background(), RegisterRequest{
		Name: "alice", Affiliation: "org1.department1", Type: "client",
	}, testRegistrar(t))
	if !errors.Is(err, constants.ErrDuplicateEnrollment) {
		t.Errorf("duplicate Register = %v, want ErrDuplicateEnrollment", err)
	}
}

func TestUnreachableCA(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := srv.URL
	srv.Close()

	_, err := newTestClient(t, url).Enroll(context.Background(), "alice", "alicepw")
	if !errors.Is(err, constants.ErrCAUnavailable) {
		t.Errorf("Enroll against closed server = %v, want ErrCAUnavailable", err)
	}
}
