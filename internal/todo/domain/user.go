package domain

import "time"

// AuthToken is one entry in a user's active token list. Access is the
// token class; only "auth" tokens are issued today. A signed token is
// only honoured while its exact string is still present here, which is
// what makes server-side revocation work.
type AuthToken struct {
	Access string
	Token  string
}

type User struct {
	ID           string
	Email        string
	PasswordHash string // bcrypt encoded
	Tokens       []AuthToken
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// PublicUser is the only user shape that may cross the HTTP boundary.
// The password hash and token list never leave the service.
type PublicUser struct {
	ID    string `json:"_id"`
	Email string `json:"email"`
}

// Public returns the boundary-safe projection of the user.
func (u User) Public() PublicUser {
	return PublicUser{ID: u.ID, Email: u.Email}
}

// HasToken reports whether the exact token string is active for the
// user under the given class.
func (u User) HasToken(access, token string) bool {
	for _, t := range u.Tokens {
		if t.Access == access && t.Token == token {
			return true
		}
	}
	return false
}
