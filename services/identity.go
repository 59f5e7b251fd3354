package services

import "time"

// Identity is the caller on whose behalf a service operation runs.
// The zero value is the anonymous caller.
type Identity struct {
	UserID    uint
	Username  string
	TokenID   string
	ExpiresAt time.Time
}

func (i Identity) IsAnonymous() bool {
	return i.UserID == 0
}

func requireIdentity(id Identity) error {
	if id.IsAnonymous() {
		return ErrUnauthenticated
	}
	return nil
}
