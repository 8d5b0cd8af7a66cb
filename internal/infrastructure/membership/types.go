package membership

import "time"

// Member is a record in the external membership registry
type Member struct {
	MemberNumber uint32    `json:"lidnr"`
	FirstName    string    `json:"given_name"`
	LastName     string    `json:"family_name"`
	Email        string    `json:"email"`
	OfAge        bool      `json:"is_18_plus"`
	Expiration   time.Time `json:"expiration"`
}

// Expired reports whether the membership has lapsed at the given instant
func (m *Member) Expired(now time.Time) bool {
	return m.Expiration.Before(now)
}

// healthResponse is the registry's health endpoint payload
type healthResponse struct {
	Healthy    bool `json:"healthy"`
	SyncPaused bool `json:"sync_paused"`
}
