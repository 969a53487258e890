package domain

import (
	"slices"
	"strings"
)

// Scope values. Apart from openid each one names a profile attribute.
const (
	ScopeOpenID      = "openid"
	ScopeEmail       = "email"
	ScopeGivenName   = "given_name"
	ScopeFamilyName  = "family_name"
	ScopePicture     = "picture"
	ScopePhoneNumber = "phone_number"
	ScopeBirthdate   = "birthdate"
	ScopeGender      = "gender"
)

// Scopes lists every scope value a project may declare.
var Scopes = []string{
	ScopeOpenID,
	ScopeEmail,
	ScopeGivenName,
	ScopeFamilyName,
	ScopePicture,
	ScopePhoneNumber,
	ScopeBirthdate,
	ScopeGender,
}

// ParseScope splits a scope parameter on commas and whitespace, dropping
// empty entries and duplicates while keeping the original order.
func ParseScope(raw string) []string {
	return NormalizeScope(strings.FieldsFunc(raw, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n'
	}))
}

// NormalizeScope drops empty entries and duplicates, keeping order.
func NormalizeScope(scope []string) []string {
	if len(scope) == 0 {
		return nil
	}

	out := make([]string, 0, len(scope))
	seen := make(map[string]struct{}, len(scope))
	for _, s := range scope {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// WithoutOpenID returns scope minus the openid marker.
func WithoutOpenID(scope []string) []string {
	out := make([]string, 0, len(scope))
	for _, s := range scope {
		if s != ScopeOpenID {
			out = append(out, s)
		}
	}
	return out
}

// HasOpenID reports whether scope requests an identity token.
func HasOpenID(scope []string) bool {
	return slices.Contains(scope, ScopeOpenID)
}
