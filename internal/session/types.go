package session

import (
	"github.com/estately-app/estately-backend/internal/users"
)

// State names the session lifecycle phase.
type State string

const (
	StateLoading       State = "loading"
	StateGuest         State = "guest"
	StateAuthenticated State = "authenticated"
)

// Session is the read-only projection handed to consumers. User is a
// deep copy; a snapshot stays valid but goes stale after the next
// broadcast, and holding one across broadcasts is on the caller.
type Session struct {
	State           State
	IsAuthenticated bool
	User            *users.User
}

// HasUser reports whether a user record (guest or authenticated) is loaded.
func (s Session) HasUser() bool {
	return s.User != nil
}

// Favorites returns the favorited property ids, or nil without a user.
func (s Session) Favorites() []string {
	if s.User == nil {
		return nil
	}
	return s.User.Favorites
}

func snapshotUser(u *users.User) *users.User {
	if u == nil {
		return nil
	}
	clone := u.Clone()
	return &clone
}
