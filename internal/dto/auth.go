package dto

// CredentialRequest is the body of the register and login endpoints.
type CredentialRequest struct {
	Username string `json:"username"`
	OrgName  string `json:"orgName"`
}

// AuthResponse is the success-flagged body of the identity endpoints.
// Identity endpoints always answer 200; Success carries the real outcome.
type AuthResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Token   string `json:"token,omitempty"`
	Secret  string `json:"secret,omitempty"`
}

// UserListResponse is the body of the registered-user listing endpoint.
type UserListResponse struct {
	Success bool     `json:"success"`
	Users   []string `json:"users"`
}
