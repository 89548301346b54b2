/*
 *  Copyright (c) 2025 TDR Ledger API contributors.
 *
 *  SPDX-License-Identifier: Apache-2.0
 */

// Package ca talks to a Fabric certificate authority over its REST API.
// Registration and enrollment are independent remote calls: an identity is
// registered once (yielding a one-time secret) and the secret is then
// exchanged for a signed certificate/key pair. The client caches nothing.
package ca

import (
	"bytes"
	"context"
	"crypto/tls"
	"crypto/x509"
	"encoding/base64"
	"encoding/json"
	"encoding/pem"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/vivekNinjatech/Fabric-2.5-MVP/internal/constants"
	"github.com/vivekNinjatech/Fabric-2.5-MVP/internal/wallet"
)

const defaultTimeout = 30 * time.Second

// Config locates one organization's CA.
type Config struct {
	URL    string
	CAName string
	// TLSCertPath points at the CA's TLS root; empty skips verification,
	// matching the connection profile's verify:false development setting.
	TLSCertPath string
	Timeout     time.Duration
}

// RegisterRequest registers a new enrollment ID with the CA.
type RegisterRequest struct {
	Name           string
	Affiliation    string
	Type           string
	Secret         string
	MaxEnrollments int
}

// Enrollment is the signed certificate/key pair returned by Enroll.
type Enrollment struct {
	CertPEM []byte
	KeyPEM  []byte
}

// Client is a fabric-ca REST client for a single CA instance.
type Client struct {
	cfg        Config
	httpClient *http.Client
}

// New builds a client from the organization's CA configuration.
func New(cfg Config) (*Client, error) {
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	tlsCfg := &tls.Config{MinVersion: tls.VersionTLS12}
	if cfg.TLSCertPath != "" {
		pemBytes, err := os.ReadFile(cfg.TLSCertPath)
		if err != nil {
			return nil, errors.Wrap(err, "reading CA TLS root")
		}
		pool := x509.NewCertPool()
		if !pool.AppendCertsFromPEM(pemBytes) {
			return nil, errors.New("CA TLS root contains no certificates")
		}
		tlsCfg.RootCAs = pool
	} else {
		tlsCfg.InsecureSkipVerify = true
	}
	return &Client{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: &http.Transport{TLSClientConfig: tlsCfg},
		},
	}, nil
}

// fabric-ca wire shapes. The envelope is shared by every endpoint; Result
// is endpoint-specific.
type caResponse struct {
	Success  bool                `json:"success"`
	Result   json.RawMessage     `json:"result"`
	Errors   []caResponseMessage `json:"errors"`
	Messages []caResponseMessage `json:"messages"`
}

type caResponseMessage struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type registrationRequestNet struct {
	ID             string `json:"id"`
	Type           string `json:"type"`
	Secret         string `json:"secret,omitempty"`
	MaxEnrollments int    `json:"max_enrollments,omitempty"`
	Affiliation    string `json:"affiliation"`
	CAName         string `json:"caname,omitempty"`
}

type registrationResponseNet struct {
	Secret string `json:"secret"`
}

type enrollmentRequestNet struct {
	CertificateRequest string `json:"certificate_request"`
	CAName             string `json:"caname,omitempty"`
}

// Cert is base64 of the PEM-encoded enrollment certificate; the field name
// is uppercase on the wire (the server marshals an untagged struct).
type enrollmentResponseNet struct {
	Cert string `json:"Cert"`
}

// Register registers a new enrollment ID under the registrar's authority and
// returns the enrollment secret. The registrar is the org admin identity
// from the wallet; its key signs the request token.
func (c *Client) Register(ctx context.Context, req RegisterRequest, registrar *wallet.Identity) (string, error) {
	body, err := json.Marshal(registrationRequestNet{
		ID:          req.Name,
		Type:        req.Type,
		Secret:      req.Secret,
		Affiliation: req.Affiliation,
		CAName:      c.cfg.CAName,

		MaxEnrollments: req.MaxEnrollments,
	})
	if err != nil {
		return "", errors.Wrap(err, "marshaling registration request")
	}

	httpReq, err := c.newPost(ctx, "register", body)
	if err != nil {
		return "", err
	}
	tok, err := createToken([]byte(registrar.Certificate), []byte(registrar.PrivateKey),
		httpReq.Method, httpReq.URL.RequestURI(), body)
	if err != nil {
		return "", errors.Wrap(err, "signing registration token")
	}
	httpReq.Header.Set("Authorization", tok)

	var result registrationResponseNet
	if err := c.send(httpReq, &result); err != nil {
		return "", err
	}
	return result.Secret, nil
}

// Enroll exchanges an enrollment ID and secret for a signed certificate and
// a locally generated private key. The key never leaves the process.
func (c *Client) Enroll(ctx context.Context, enrollmentID, secret string) (*Enrollment, error) {
	keyPEM, csrPEM, err := generateKeyAndCSR(enrollmentID)
	if err != nil {
		return nil, err
	}

	body, err := json.Marshal(enrollmentRequestNet{
		CertificateRequest: string(csrPEM),
		CAName:             c.cfg.CAName,
	})
	if err != nil {
		return nil, errors.Wrap(err, "marshaling enrollment request")
	}

	httpReq, err := c.newPost(ctx, "enroll", body)
	if err != nil {
		return nil, err
	}
	httpReq.SetBasicAuth(enrollmentID, secret)

	var result enrollmentResponseNet
	if err := c.send(httpReq, &result); err != nil {
		return nil, err
	}

	certPEM, err := base64.StdEncoding.DecodeString(result.Cert)
	if err != nil {
		return nil, errors.Wrap(err, "decoding enrollment certificate")
	}
	if block, _ := pem.Decode(certPEM); block == nil {
		return nil, errors.New("enrollment response is not PEM")
	}
	return &Enrollment{CertPEM: certPEM, KeyPEM: keyPEM}, nil
}

func (c *Client) newPost(ctx context.Context, endpoint string, body []byte) (*http.Request, error) {
	url := fmt.Sprintf("%s/api/v1/%s", strings.TrimRight(c.cfg.URL, "/"), endpoint)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, errors.Wrapf(err, "building %s request", endpoint)
	}
	req.Header.Set("Content-Type", "application/json")
	return req, nil
}

func (c *Client) send(req *http.Request, result interface{}) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.Wrapf(constants.ErrCAUnavailable, "%s: %v", c.cfg.URL, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.Wrapf(constants.ErrCAUnavailable, "reading CA response: %v", err)
	}

	var envelope caResponse
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return errors.Wrapf(constants.ErrCAUnavailable, "malformed CA response (status %d)", resp.StatusCode)
	}
	if !envelope.Success || resp.StatusCode >= 400 {
		return classify(resp.StatusCode, envelope.Errors)
	}
	if result != nil {
		if err := json.Unmarshal(envelope.Result, result); err != nil {
			return errors.Wrap(err, "decoding CA result")
		}
	}
	return nil
}

// classify maps the server's error messages to the client taxonomy. The
// message texts are fabric-ca's own and stable across releases.
func classify(status int, msgs []caResponseMessage) error {
	parts := make([]string, 0, len(msgs))
	for _, m := range msgs {
		parts = append(parts, m.Message)
	}
	detail := strings.Join(parts, "; ")
	if detail == "" {
		detail = fmt.Sprintf("CA returned status %d", status)
	}

	lower := strings.ToLower(detail)
	switch {
	case strings.Contains(lower, "already registered"):
		return errors.Wrap(constants.ErrDuplicateEnrollment, detail)
	case strings.Contains(lower, "authentication failure"),
		strings.Contains(lower, "authorization failure"):
		return errors.Wrap(constants.ErrInvalidSecret, detail)
	case status >= 500:
		return errors.Wrap(constants.ErrCAUnavailable, detail)
	default:
		return errors.New(detail)
	}
}
