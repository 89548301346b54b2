/*
 *  Copyright (c) 2025 TDR Ledger API contributors.
 *
 *  SPDX-License-Identifier: Apache-2.0
 */

package constants

import "errors"

// Token verification outcomes. The middleware maps all three to 403; the
// message text is the only distinction exposed to clients.
var (
	ErrTokenMissing = errors.New("no token provided")
	ErrTokenInvalid = errors.New("token is invalid")
	ErrTokenExpired = errors.New("token has expired")
)

// Identity and CA outcomes.
var (
	ErrUnknownOrganization = errors.New("organization is not configured")
	ErrIdentityNotFound    = errors.New("identity not found in wallet")
	ErrCAUnavailable       = errors.New("certificate authority is unreachable")
	ErrDuplicateEnrollment = errors.New("enrollment id is already registered")
	ErrInvalidSecret       = errors.New("enrollment secret was rejected")
	ErrAdminEnrollment     = errors.New("admin enrollment failed")
	ErrRegistration        = errors.New("user registration failed")
)

// Ledger gateway outcomes.
var (
	ErrTDRNotFound      = errors.New("tdr does not exist")
	ErrCredentialLayout = errors.New("credential directory must contain exactly one file")
	ErrLedgerGateway    = errors.New("ledger gateway operation failed")
)
