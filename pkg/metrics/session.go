package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// SessionMetrics counts session state transitions and persistence faults.
type SessionMetrics struct {
	logins             prometheus.Counter
	logouts            prometheus.Counter
	favoriteToggles    prometheus.Counter
	profileUpdates     prometheus.Counter
	preferenceUpdates  prometheus.Counter
	storeWriteFailures prometheus.Counter
}

// NewSessionMetrics registers the session metrics on the provided registerer.
func NewSessionMetrics(reg prometheus.Registerer) *SessionMetrics {
	if reg == nil {
		return &SessionMetrics{}
	}
	m := &SessionMetrics{
		logins: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "session_logins_total",
			Help: "Successful logins.",
		}),
		logouts: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "session_logouts_total",
			Help: "Logout transitions.",
		}),
		favoriteToggles: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "session_favorite_toggles_total",
			Help: "Favorite toggle operations applied to the session.",
		}),
		profileUpdates: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "session_profile_updates_total",
			Help: "Profile patch operations applied to the session.",
		}),
		preferenceUpdates: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "session_preference_updates_total",
			Help: "Communication preference replacements.",
		}),
		storeWriteFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "session_store_write_failures_total",
			Help: "Persisted store writes that failed and were swallowed.",
		}),
	}
	reg.MustRegister(m.logins, m.logouts, m.favoriteToggles, m.profileUpdates, m.preferenceUpdates, m.storeWriteFailures)
	return m
}

// IncLogin increments the login counter.
func (m *SessionMetrics) IncLogin() {
	if m == nil || m.logins == nil {
		return
	}
	m.logins.Inc()
}

// IncLogout increments the logout counter.
func (m *SessionMetrics) IncLogout() {
	if m == nil || m.logouts == nil {
		return
	}
	m.logouts.Inc()
}

// IncFavoriteToggle increments the favorite toggle counter.
func (m *SessionMetrics) IncFavoriteToggle() {
	if m == nil || m.favoriteToggles == nil {
		return
	}
	m.favoriteToggles.Inc()
}

// IncProfileUpdate increments the profile update counter.
func (m *SessionMetrics) IncProfileUpdate() {
	if m == nil || m.profileUpdates == nil {
		return
	}
	m.profileUpdates.Inc()
}

// IncPreferenceUpdate increments the preference replacement counter.
func (m *SessionMetrics) IncPreferenceUpdate() {
	if m == nil || m.preferenceUpdates == nil {
		return
	}
	m.preferenceUpdates.Inc()
}

// IncStoreWriteFailure increments the swallowed-write counter.
func (m *SessionMetrics) IncStoreWriteFailure() {
	if m == nil || m.storeWriteFailures == nil {
		return
	}
	m.storeWriteFailures.Inc()
}
