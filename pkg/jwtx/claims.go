package jwtx

import (
	"crypto/rand"
	"encoding/base64"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Default lifetimes for the tokens this package signs.
const (
	// DefaultSessionTTL bounds session tokens handed out at login.
	DefaultSessionTTL = 24 * time.Hour

	// DefaultIdentityTTL bounds id_tokens returned from the token endpoint.
	DefaultIdentityTTL = time.Hour
)

// Claims are the session and identity token claims. Profile attributes use
// the same names as the scopes that unlock them.
type Claims struct {
	jwt.RegisteredClaims

	Email       string `json:"email,omitempty"`
	GivenName   string `json:"given_name,omitempty"`
	FamilyName  string `json:"family_name,omitempty"`
	Picture     string `json:"picture,omitempty"`
	PhoneNumber string `json:"phone_number,omitempty"`
	Birthdate   string `json:"birthdate,omitempty"`
	Gender      string `json:"gender,omitempty"`

	// BareSubject is set when the token payload was a plain JSON string
	// instead of a claims object. Only Subject is populated then.
	BareSubject bool `json:"-"`
}

// NewClaims builds minimally-correct claims for subject.
func NewClaims(subject, issuer string, ttl time.Duration, now time.Time) Claims {
	return Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        NewJTI(),
		},
	}
}

// WithProfile copies the known profile attributes into the claims. Unknown
// keys and non-string values are ignored.
func (c Claims) WithProfile(profile map[string]any) Claims {
	for name, v := range profile {
		s, ok := v.(string)
		if !ok {
			continue
		}
		if field := c.attribute(name); field != nil {
			*field = s
		}
	}
	return c
}

// Profile returns the non-empty profile attributes keyed by claim name.
func (c *Claims) Profile() map[string]any {
	out := make(map[string]any)
	for _, name := range profileClaims {
		if v := *c.attribute(name); v != "" {
			out[name] = v
		}
	}
	return out
}

var profileClaims = []string{
	"email",
	"given_name",
	"family_name",
	"picture",
	"phone_number",
	"birthdate",
	"gender",
}

func (c *Claims) attribute(name string) *string {
	switch name {
	case "email":
		return &c.Email
	case "given_name":
		return &c.GivenName
	case "family_name":
		return &c.FamilyName
	case "picture":
		return &c.Picture
	case "phone_number":
		return &c.PhoneNumber
	case "birthdate":
		return &c.Birthdate
	case "gender":
		return &c.Gender
	}
	return nil
}

// NewJTI returns a URL-safe random identifier for the "jti" claim.
func NewJTI() string {
	var b [20]byte
	_, _ = rand.Read(b[:])
	return base64.RawURLEncoding.EncodeToString(b[:])
}
