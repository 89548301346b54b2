package dto

// IssueTDRRequest is the body of POST /api/assets/issue-tdr.
type IssueTDRRequest struct {
	ID               string  `json:"id"`
	Issuer           string  `json:"issuer"`
	Owner            string  `json:"owner"`
	Amount           float64 `json:"amount"`
	ValidTill        string  `json:"validTill"`
	IpfsDocumentLink string  `json:"ipfsDocumentLink"`
}

// TransferTDRRequest is the body of POST /api/assets/transfer-tdr.
type TransferTDRRequest struct {
	ID       string `json:"id"`
	NewOwner string `json:"newOwner"`
}

// TDRIDRequest is the body of the verify and destroy endpoints.
type TDRIDRequest struct {
	ID string `json:"id"`
}

// UpdateTDRRequest is the body of POST /api/assets/update-tdr.
type UpdateTDRRequest struct {
	ID        string  `json:"id"`
	Amount    float64 `json:"amount"`
	ValidTill string  `json:"validTill"`
}

// MessageResponse acknowledges a successful ledger write.
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse is the failure body of the ledger endpoints.
type ErrorResponse struct {
	Error string `json:"error"`
}
