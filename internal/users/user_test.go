package users

import (
	"testing"
	"time"
)

func baseUser() User {
	return User{
		ID:                 "u1",
		Email:              "ana@example.com",
		FirstName:          "Ana",
		LastName:           "Reyes",
		Phone:              "555-0101",
		ProfilePictureURL:  "https://cdn.estately.app/avatars/ana.png",
		CreatedAt:          time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
		CommunicationPrefs: DefaultCommunicationPreferences(),
		Favorites:          []string{"3", "7"},
	}
}

func TestProfilePatchApplyOnlyTouchesSetFields(t *testing.T) {
	u := baseUser()
	phone := " 555-0202 "
	patched := ProfilePatch{Phone: &phone}.Apply(u)

	if patched.Phone != "555-0202" {
		t.Fatalf("expected trimmed phone, got %q", patched.Phone)
	}
	if patched.Email != u.Email || patched.FirstName != u.FirstName {
		t.Fatalf("patch touched fields it should not have")
	}
	if patched.ID != u.ID || !patched.CreatedAt.Equal(u.CreatedAt) {
		t.Fatalf("identity fields must be immutable under patch")
	}
}

func TestProfilePatchEmptyIsNoop(t *testing.T) {
	u := baseUser()
	patched := ProfilePatch{}.Apply(u)
	if !patched.Equal(u) {
		t.Fatalf("empty patch changed the user")
	}
	if !(ProfilePatch{}).IsEmpty() {
		t.Fatalf("expected IsEmpty for zero patch")
	}
}

func TestWithFavoriteToggled(t *testing.T) {
	u := baseUser()

	added := u.WithFavoriteToggled("9")
	if !added.HasFavorite("9") {
		t.Fatalf("expected 9 to be favorited")
	}
	if u.HasFavorite("9") {
		t.Fatalf("toggle mutated the receiver")
	}

	removed := added.WithFavoriteToggled("9")
	if removed.HasFavorite("9") {
		t.Fatalf("expected 9 removed on second toggle")
	}
	if !removed.Equal(u) {
		t.Fatalf("double toggle should restore the original favorites")
	}
}

func TestSanitizeFillsDefaults(t *testing.T) {
	u := User{ID: "u2", Email: "g@example.com", CommunicationPrefs: CommunicationPreferences{Frequency: "hourly"}}
	clean := u.Sanitize()

	if clean.ProfilePictureURL == "" {
		t.Fatalf("expected placeholder profile picture")
	}
	if clean.Favorites == nil {
		t.Fatalf("expected empty favorites slice, got nil")
	}
	if clean.CommunicationPrefs.Frequency != FrequencyWeekly {
		t.Fatalf("unknown frequency should clamp to weekly, got %q", clean.CommunicationPrefs.Frequency)
	}
}

func TestDisplayNameFallsBackToEmail(t *testing.T) {
	u := User{Email: "g@example.com"}
	if got := u.DisplayName(); got != "g@example.com" {
		t.Fatalf("expected email fallback, got %q", got)
	}
	if got := baseUser().DisplayName(); got != "Ana Reyes" {
		t.Fatalf("unexpected display name %q", got)
	}
}
