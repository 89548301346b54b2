/*
 *  Copyright (c) 2025 TDR Ledger API contributors.
 *
 *  SPDX-License-Identifier: Apache-2.0
 */

package ca

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/x509"
	"encoding/pem"

	"github.com/cloudflare/cfssl/csr"
	"github.com/pkg/errors"
)

// generateKeyAndCSR creates a fresh P-256 key and a certificate signing
// request with the enrollment ID as CN, the shape fabric-ca expects.
// Returns the PKCS#8 PEM key and the PEM CSR.
func generateKeyAndCSR(enrollmentID string) (keyPEM, csrPEM []byte, err error) {
	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		return nil, nil, errors.Wrap(err, "generating enrollment key")
	}

	csrPEM, err = csr.Generate(key, &csr.CertificateRequest{CN: enrollmentID})
	if err != nil {
		return nil, nil, errors.Wrap(err, "generating CSR")
	}

	der, err := x509.MarshalPKCS8PrivateKey(key)
	if err != nil {
		return nil, nil, errors.Wrap(err, "marshaling enrollment key")
	}
	keyPEM = pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: der})
	return keyPEM, csrPEM, nil
}
