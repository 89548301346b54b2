/*
 *  Copyright (c) 2025 TDR Ledger API contributors.
 *
 *  SPDX-License-Identifier: Apache-2.0
 */

package model

// TDR is a Transferable Development Right as stored by the TDR chaincode.
// Field names and JSON tags mirror the ledger record exactly; the ledger is
// the system of record and this layer never reshapes it.
type TDR struct {
	ID               string  `json:"id"`
	Issuer           string  `json:"issuer"`
	Owner            string  `json:"owner"`
	Amount           float64 `json:"amount"`
	IssueDate        string  `json:"issueDate"`
	ValidTill        string  `json:"validTill"`
	IsVerified       bool    `json:"isVerified"`
	IsActive         bool    `json:"isActive"`
	IpfsDocumentLink string  `json:"ipfsDocumentLink"`
}

// TDRHistoryEntry is one modification record returned by GetTDRHistory.
// Timestamp keeps the chaincode's wire encoding (protobuf timestamp object),
// so it stays an untyped value here.
type TDRHistoryEntry struct {
	TxID      string      `json:"txId"`
	Timestamp interface{} `json:"timestamp"`
	IsDelete  bool        `json:"isDelete"`
	Value     *TDR        `json:"value,omitempty"`
}
