/*
 *  Copyright (c) 2025 TDR Ledger API contributors.
 *
 *  SPDX-License-Identifier: Apache-2.0
 */

package constants

// Admin bootstrap identity. The label is the wallet key for the org admin;
// the secret is the CA's well-known bootstrap enrollment secret.
const (
	AdminLabel  = "admin"
	AdminSecret = "adminpw"
)

// IdentityTypeClient is the CA identity type used for registered users.
const IdentityTypeClient = "client"

// Chaincode function names exposed by the TDR contract.
const (
	TxIssueTDR       = "IssueTDR"
	TxTransferTDR    = "TransferTDR"
	TxVerifyTDR      = "VerifyTDR"
	TxDestroyTDR     = "DestroyTDR"
	TxUpdateTDR      = "UpdateTDR"
	TxGetTDRDetails  = "GetTDRDetails"
	TxGetAllUserTDRs = "GetAllUserTDRs"
	TxGetAllTDRs     = "GetAllTDRs"
	TxGetTDRHistory  = "GetTDRHistory"
)

// Fixed bearer-token middleware messages. Clients match on these strings,
// so they are part of the API contract.
const (
	MsgNoToken     = "No token provided."
	MsgBadToken    = "Failed to authenticate token. Please include the token returned from login as a Bearer token"
	MsgFieldFormat = "%s field is missing or Invalid in the request"
)
