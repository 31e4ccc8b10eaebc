package views

import (
	"github.com/estately-app/estately-backend/internal/session"
)

// ResolveFavoriteStatus computes a surface's favorited flag from the
// three possible sources, in precedence order: an explicitly supplied
// override list, then the session's favorites, then false. A non-nil
// empty override still wins over the session; nil means "not supplied".
// Keeping this a pure function keeps the precedence rule testable away
// from any rendering concern.
func ResolveFavoriteStatus(override []string, sess session.Session, propertyID string) bool {
	if override != nil {
		for _, id := range override {
			if id == propertyID {
				return true
			}
		}
		return false
	}
	if sess.User != nil {
		return sess.User.HasFavorite(propertyID)
	}
	return false
}
