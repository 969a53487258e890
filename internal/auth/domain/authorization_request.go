package domain

import "time"

// AuthorizationRequest tracks one authorization-code transaction from code
// issuance to token exchange.
type AuthorizationRequest struct {
	ID            string
	ResourceOwner string // user id
	ClientID      string // project id
	Scope         []string
	Code          string
	TokenHash     string     // empty until the code has been exchanged
	ExpiredAt     *time.Time // access token expiry, nil until exchanged
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Exchanged reports whether the code has already been traded for a token.
func (r AuthorizationRequest) Exchanged() bool {
	return r.TokenHash != ""
}
