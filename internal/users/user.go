package users

import (
	"strings"
	"time"
)

// Preference frequency values accepted in communication preferences.
const (
	FrequencyDaily   = "daily"
	FrequencyWeekly  = "weekly"
	FrequencyMonthly = "monthly"
)

const defaultProfilePicture = "https://cdn.estately.app/avatars/placeholder.png"

// CommunicationPreferences is a value type embedded in User; it has no
// identity of its own and is always persisted inside the user record.
type CommunicationPreferences struct {
	EmailNotifications bool   `json:"email_notifications"`
	SMSNotifications   bool   `json:"sms_notifications"`
	MarketingOptIn     bool   `json:"marketing_opt_in"`
	Frequency          string `json:"frequency"`
}

// DefaultCommunicationPreferences mirrors the defaults applied to a fresh
// profile before the user has touched the preferences form.
func DefaultCommunicationPreferences() CommunicationPreferences {
	return CommunicationPreferences{
		EmailNotifications: true,
		SMSNotifications:   false,
		MarketingOptIn:     false,
		Frequency:          FrequencyWeekly,
	}
}

// Normalize clamps the frequency to a known value.
func (p CommunicationPreferences) Normalize() CommunicationPreferences {
	switch strings.ToLower(strings.TrimSpace(p.Frequency)) {
	case FrequencyDaily:
		p.Frequency = FrequencyDaily
	case FrequencyMonthly:
		p.Frequency = FrequencyMonthly
	default:
		p.Frequency = FrequencyWeekly
	}
	return p
}

// User is the session-scoped identity plus profile, preferences, and the
// favorited property set. The JSON shape is the persisted `userData`
// schema and must stay stable across versions.
type User struct {
	ID                 string                   `json:"id"`
	Email              string                   `json:"email"`
	FirstName          string                   `json:"first_name"`
	LastName           string                   `json:"last_name"`
	Phone              string                   `json:"phone"`
	ProfilePictureURL  string                   `json:"profile_picture_url"`
	CreatedAt          time.Time                `json:"created_at"`
	CommunicationPrefs CommunicationPreferences `json:"communication_preferences"`
	Favorites          []string                 `json:"favorites"`
}

// ProfilePatch enumerates the profile fields a user may edit. Nil fields
// are left untouched; identity and created_at are deliberately absent.
type ProfilePatch struct {
	Email             *string `json:"email,omitempty"`
	FirstName         *string `json:"first_name,omitempty"`
	LastName          *string `json:"last_name,omitempty"`
	Phone             *string `json:"phone,omitempty"`
	ProfilePictureURL *string `json:"profile_picture_url,omitempty"`
}

// IsEmpty reports whether the patch carries no changes.
func (p ProfilePatch) IsEmpty() bool {
	return p.Email == nil && p.FirstName == nil && p.LastName == nil &&
		p.Phone == nil && p.ProfilePictureURL == nil
}

// Apply returns a copy of u with the patch fields merged in.
func (p ProfilePatch) Apply(u User) User {
	out := u.Clone()
	if p.Email != nil {
		out.Email = strings.TrimSpace(*p.Email)
	}
	if p.FirstName != nil {
		out.FirstName = strings.TrimSpace(*p.FirstName)
	}
	if p.LastName != nil {
		out.LastName = strings.TrimSpace(*p.LastName)
	}
	if p.Phone != nil {
		out.Phone = strings.TrimSpace(*p.Phone)
	}
	if p.ProfilePictureURL != nil {
		out.ProfilePictureURL = strings.TrimSpace(*p.ProfilePictureURL)
	}
	return out
}

// Clone returns a deep copy so callers can hand out snapshots without
// sharing the favorites slice.
func (u User) Clone() User {
	out := u
	out.Favorites = append([]string(nil), u.Favorites...)
	return out
}

// HasFavorite reports whether the property id is in the favorites set.
func (u User) HasFavorite(propertyID string) bool {
	for _, id := range u.Favorites {
		if id == propertyID {
			return true
		}
	}
	return false
}

// WithFavoriteToggled returns a copy with the property id added if absent
// or removed if present. Set semantics live here rather than in the type.
func (u User) WithFavoriteToggled(propertyID string) User {
	out := u.Clone()
	for i, id := range out.Favorites {
		if id == propertyID {
			out.Favorites = append(out.Favorites[:i], out.Favorites[i+1:]...)
			return out
		}
	}
	out.Favorites = append(out.Favorites, propertyID)
	return out
}

// Sanitize fills zero-value fields a stored or fetched record may omit.
func (u User) Sanitize() User {
	out := u.Clone()
	if strings.TrimSpace(out.ProfilePictureURL) == "" {
		out.ProfilePictureURL = defaultProfilePicture
	}
	if out.Favorites == nil {
		out.Favorites = []string{}
	}
	out.CommunicationPrefs = out.CommunicationPrefs.Normalize()
	return out
}

// DisplayName is the header-friendly rendering of the user's name.
func (u User) DisplayName() string {
	name := strings.TrimSpace(u.FirstName + " " + u.LastName)
	if name == "" {
		return u.Email
	}
	return name
}

// Equal compares users field for field, including favorites order.
func (u User) Equal(other User) bool {
	if u.ID != other.ID || u.Email != other.Email ||
		u.FirstName != other.FirstName || u.LastName != other.LastName ||
		u.Phone != other.Phone || u.ProfilePictureURL != other.ProfilePictureURL ||
		!u.CreatedAt.Equal(other.CreatedAt) ||
		u.CommunicationPrefs != other.CommunicationPrefs ||
		len(u.Favorites) != len(other.Favorites) {
		return false
	}
	for i := range u.Favorites {
		if u.Favorites[i] != other.Favorites[i] {
			return false
		}
	}
	return true
}
