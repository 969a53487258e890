package domain

import "time"

// Gender values accepted for User.Gender.
const (
	GenderFemale = "female"
	GenderMale   = "male"
)

// User is a resource owner. PasswordHash is the only credential kept at rest.
type User struct {
	ID           string
	Email        string
	PasswordHash string // argon2 encoded (bcrypt accepted for imported rows)
	GivenName    string
	FamilyName   string

	// Optional, empty means unset.
	Picture     string
	PhoneNumber string
	Birthdate   string // YYYY-MM-DD
	Gender      string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Attributes returns the profile attributes of the user keyed by scope name.
// Unset optional attributes are omitted.
func (u User) Attributes() map[string]string {
	attrs := map[string]string{
		ScopeEmail:      u.Email,
		ScopeGivenName:  u.GivenName,
		ScopeFamilyName: u.FamilyName,
	}
	for scope, v := range map[string]string{
		ScopePicture:     u.Picture,
		ScopePhoneNumber: u.PhoneNumber,
		ScopeBirthdate:   u.Birthdate,
		ScopeGender:      u.Gender,
	} {
		if v != "" {
			attrs[scope] = v
		}
	}
	return attrs
}

// Profile restricts the user's attributes to the given scope. Scope values
// that do not name a profile attribute (openid included) are ignored.
func (u User) Profile(scope []string) map[string]any {
	attrs := u.Attributes()
	out := make(map[string]any, len(scope))
	for _, s := range scope {
		if v, ok := attrs[s]; ok {
			out[s] = v
		}
	}
	return out
}
