package domain

import "time"

// Project is a registered client application. Its ID doubles as the OAuth2
// client_id.
type Project struct {
	ID          string
	Name        string
	SecretHash  string
	RedirectURL string
	Scope       []string
	CreatorID   string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// AllowRequest reports whether an authorization request for redirectURI and
// scope stays within what the project declared. The redirect must match
// byte for byte and every requested scope must be declared.
func (p Project) AllowRequest(redirectURI string, scope []string) bool {
	if redirectURI != p.RedirectURL {
		return false
	}

	declared := make(map[string]struct{}, len(p.Scope))
	for _, s := range p.Scope {
		declared[s] = struct{}{}
	}

	for _, s := range scope {
		if _, ok := declared[s]; !ok {
			return false
		}
	}

	return true
}
