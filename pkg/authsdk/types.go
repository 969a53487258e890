package authsdk

import (
	"time"

	"github.com/aussiebroadwan/oauthd/pkg/httpx"
	"github.com/aussiebroadwan/oauthd/pkg/jwtx"
)

// ============================================================================
// Error Types
// ============================================================================

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse = httpx.ErrorBody

// ============================================================================
// OAuth2 Types
// ============================================================================

// TokenRequest is the body of POST /api/oauth2/token. The server accepts it
// as JSON or as application/x-www-form-urlencoded.
type TokenRequest struct {
	// GrantType must be "authorization_code"
	GrantType string `json:"grant_type" example:"authorization_code"`

	// ClientID is the project id
	ClientID string `json:"client_id" example:"01JB2X4Q0K6ZJ7Y3S9C1T5V8NW"`

	// ClientSecret is the plaintext secret returned when the project was created
	ClientSecret string `json:"client_secret" example:"9f86d081884c7d659a2feaa0c55ad015"`

	// Code is the authorization code received on the redirect
	Code string `json:"code" example:"a1b2c3d4e5f60718"`

	// RedirectURI must equal the project's redirect URL
	RedirectURI string `json:"redirect_uri" example:"https://app.example/cb"`
}

// TokenResponse is returned by a successful code exchange.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type" example:"Bearer"`
	ExpiresIn   int64  `json:"expires_in" example:"3600"`

	// IDToken is a signed identity token, only present when openid was granted
	IDToken string `json:"id_token,omitempty"`
}

// UserInfoResponse holds the profile attributes granted to the access token,
// keyed by scope name, plus "sub".
type UserInfoResponse map[string]any

// ============================================================================
// Session Types
// ============================================================================

// LoginRequest is the body of POST /api/auth/login.
type LoginRequest struct {
	Email    string `json:"email" example:"jane@example.com"`
	Password string `json:"password" example:"correct horse battery staple"`
}

// LoginResponse carries the session token used as a bearer credential on
// authorize and on the user/project endpoints.
type LoginResponse struct {
	Message string `json:"message" example:"Logged in as 01JB2X4Q0K6ZJ7Y3S9C1T5V8NW"`
	Token   string `json:"token"`
}

// ============================================================================
// User Types
// ============================================================================

// CreateUserRequest is the body of POST /api/users.
type CreateUserRequest struct {
	Email       string `json:"email" example:"jane@example.com"`
	Password    string `json:"password"`
	GivenName   string `json:"givenName" example:"Jane"`
	FamilyName  string `json:"familyName" example:"Doe"`
	Picture     string `json:"picture,omitempty" example:"https://img.example/jane.png"`
	PhoneNumber string `json:"phoneNumber,omitempty" example:"+61400000000"`
	Birthdate   string `json:"birthdate,omitempty" example:"1990-01-31"`
	Gender      string `json:"gender,omitempty" example:"female"`
}

// UpdateUserRequest is the body of PATCH /api/users/{id}. Omitted fields are
// left untouched.
type UpdateUserRequest struct {
	Email       string `json:"email,omitempty"`
	Password    string `json:"password,omitempty"`
	GivenName   string `json:"givenName,omitempty"`
	FamilyName  string `json:"familyName,omitempty"`
	Picture     string `json:"picture,omitempty"`
	PhoneNumber string `json:"phoneNumber,omitempty"`
	Birthdate   string `json:"birthdate,omitempty"`
	Gender      string `json:"gender,omitempty"`
}

// UserResponse never carries the password.
type UserResponse struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	GivenName   string    `json:"givenName"`
	FamilyName  string    `json:"familyName"`
	Picture     string    `json:"picture,omitempty"`
	PhoneNumber string    `json:"phoneNumber,omitempty"`
	Birthdate   string    `json:"birthdate,omitempty"`
	Gender      string    `json:"gender,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// DeletedResponse is returned by DELETE endpoints.
type DeletedResponse struct {
	Deleted string `json:"deleted"`
}

// ============================================================================
// Project Types
// ============================================================================

// CreateProjectRequest is the body of POST /api/projects.
type CreateProjectRequest struct {
	Name        string   `json:"name" example:"Example App"`
	RedirectURL string   `json:"redirectURL" example:"https://app.example/cb"`
	Scope       []string `json:"scope" example:"given_name,email"`
}

// ProjectResponse never carries the secret.
type ProjectResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	RedirectURL string    `json:"redirectURL"`
	Scope       []string  `json:"scope"`
	CreatorID   string    `json:"creatorID"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// CreatedProjectResponse is returned once, at creation. Secret cannot be
// retrieved again.
type CreatedProjectResponse struct {
	ProjectResponse
	Secret string `json:"secret"`
}

// ============================================================================
// Health Types
// ============================================================================

// HealthResponse represents the response structure for health check endpoints.
// Used by both /livez and /readyz endpoints (readyz includes additional Checks field).
type HealthResponse struct {
	// Status indicates the overall health status (e.g., "ok")
	Status string `json:"status"`

	// Uptime is the service uptime duration as a string (e.g., "1h23m45s")
	Uptime string `json:"uptime,omitempty"`

	// Version is the service version string
	Version string `json:"version,omitempty"`

	// Checks contains readiness check results for critical dependencies (only for /readyz)
	Checks *HealthChecks `json:"checks,omitempty"`
}

// HealthChecks represents the status of critical service dependencies.
type HealthChecks struct {
	// Database indicates the database connection status
	Database string `json:"database"`

	// Signer indicates whether the session signing key is loaded
	Signer string `json:"signer"`
}

// ============================================================================
// JWKS Types
// ============================================================================

// JWKSResponse contains the public key used to verify session and identity
// tokens.
type JWKSResponse jwtx.JWKS
