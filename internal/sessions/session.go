package sessions

import "time"

// Revocation marks an access token as logged out until it would have
// expired anyway.
type Revocation struct {
	Token     string    `json:"-"`
	Sub       string    `json:"sub"`
	RevokedAt time.Time `json:"revokedAt"`
	ExpiresAt time.Time `json:"expiresAt"`
}
