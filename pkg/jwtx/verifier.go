package jwtx

import (
	"errors"
	"strings"
	"time"
)

// Verifier validates a JWT and gives you back the claims if it's legit.
type Verifier interface {
	Verify(token string) (Claims, error)
}

// VerifyOptions captures the expectations a verifier enforces.
type VerifyOptions struct {
	// Issuer the token must have (claims.iss). Empty means "don't care".
	Issuer string

	// Leeway allows small clock skew when validating exp/nbf/iat.
	Leeway time.Duration

	// AllowBareSubject accepts tokens whose payload is a bare JSON string
	// naming the subject, as issued by older deployments.
	AllowBareSubject bool

	// Now overrides the clock, mostly for tests.
	Now func() time.Time
}

var (
	ErrMalformed   = errors.New("jwtx: malformed token")
	ErrUnknownKID  = errors.New("jwtx: unknown kid")
	ErrInvalidSig  = errors.New("jwtx: invalid signature")
	ErrIssuer      = errors.New("jwtx: issuer mismatch")
	ErrExpired     = errors.New("jwtx: token expired")
	ErrNotYetValid = errors.New("jwtx: token not yet valid")
)

// Reason returns a short, client-safe description of a verification error.
func Reason(err error) string {
	for _, known := range []error{ErrMalformed, ErrUnknownKID, ErrInvalidSig, ErrIssuer, ErrExpired, ErrNotYetValid} {
		if errors.Is(err, known) {
			return strings.TrimPrefix(known.Error(), "jwtx: ")
		}
	}
	return "invalid token"
}
