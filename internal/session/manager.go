package session

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/multierr"

	"github.com/estately-app/estately-backend/internal/store"
	"github.com/estately-app/estately-backend/internal/users"
	pkgerrors "github.com/estately-app/estately-backend/pkg/errors"
	"github.com/estately-app/estately-backend/pkg/logger"
	"github.com/estately-app/estately-backend/pkg/metrics"
)

// GuestProfileFetcher supplies the default profile record used for the
// guest session and as the template merged into a fresh login.
type GuestProfileFetcher interface {
	GuestProfile(ctx context.Context) (users.User, error)
}

// ManagerParams groups dependencies for the session state manager.
type ManagerParams struct {
	Store       store.KV
	Guests      GuestProfileFetcher
	Distributor *Distributor
	Logger      *logger.Logger
	Metrics     *metrics.SessionMetrics
	LoginDelay  time.Duration
}

// Manager owns the in-memory session and is the only writer to the
// persisted store. Every mutation writes through synchronously and then
// broadcasts the new snapshot before returning.
type Manager struct {
	kv          store.KV
	guests      GuestProfileFetcher
	distributor *Distributor
	logg        *logger.Logger
	metrics     *metrics.SessionMetrics
	loginDelay  time.Duration

	mu            sync.Mutex
	state         State
	user          *users.User
	loginInFlight bool
}

// NewManager builds a session manager in the Loading state; call
// Hydrate before serving traffic.
func NewManager(params ManagerParams) (*Manager, error) {
	if params.Store == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "persisted store is required")
	}
	if params.Guests == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "guest profile fetcher is required")
	}
	if params.Distributor == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "distributor is required")
	}
	return &Manager{
		kv:          params.Store,
		guests:      params.Guests,
		distributor: params.Distributor,
		logg:        params.Logger,
		metrics:     params.Metrics,
		loginDelay:  params.LoginDelay,
		state:       StateLoading,
	}, nil
}

// Hydrate derives the initial session from the persisted store. A
// stored authenticated session is restored when `authState` says
// "authenticated" and the user record parses; anything else, including
// a corrupt record or an unavailable store, falls back to Guest. Never
// returns an error to the boot path.
func (m *Manager) Hydrate(ctx context.Context) {
	if restored := m.restore(ctx); restored {
		m.broadcast()
		return
	}

	guest, err := m.guests.GuestProfile(ctx)
	m.mu.Lock()
	if err != nil {
		m.warn(ctx, "guest profile unavailable, starting with empty guest session", err)
		m.user = nil
	} else {
		m.user = &guest
	}
	m.state = StateGuest
	m.mu.Unlock()
	m.broadcast()
}

func (m *Manager) restore(ctx context.Context) bool {
	flag, err := m.kv.Get(ctx, store.KeyAuthState)
	if err != nil || flag != store.AuthStateAuthenticated {
		return false
	}
	raw, err := m.kv.Get(ctx, store.KeyUserData)
	if err != nil {
		return false
	}
	var user users.User
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		m.warn(ctx, "persisted user record is malformed, treating as no session", err)
		return false
	}
	user = user.Sanitize()

	m.mu.Lock()
	m.user = &user
	m.state = StateAuthenticated
	m.mu.Unlock()
	return true
}

// Login transitions Guest to Authenticated. Empty credentials are the
// only caller-visible validation here; shape checks live in the form
// layer. Concurrent logins are rejected so a slow first attempt cannot
// interleave with a second one.
func (m *Manager) Login(ctx context.Context, email, password string) error {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return pkgerrors.New(pkgerrors.CodeInvalidCredentials, "email and password are required")
	}

	m.mu.Lock()
	if m.loginInFlight {
		m.mu.Unlock()
		return pkgerrors.New(pkgerrors.CodeLoginInFlight, "another login is pending")
	}
	m.loginInFlight = true
	m.mu.Unlock()
	defer func() {
		m.mu.Lock()
		m.loginInFlight = false
		m.mu.Unlock()
	}()

	if err := m.simulateLatency(ctx); err != nil {
		return err
	}

	template, err := m.guests.GuestProfile(ctx)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "fetch profile template")
	}

	user := template.Sanitize()
	user.Email = strings.ToLower(email)
	if user.ID == "" || strings.HasPrefix(user.ID, "guest-") {
		user.ID = uuid.NewString()
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}

	m.mu.Lock()
	m.user = &user
	m.state = StateAuthenticated
	m.mu.Unlock()

	m.persistAuth(ctx, user)
	m.broadcast()
	m.metrics.IncLogin()
	return nil
}

func (m *Manager) simulateLatency(ctx context.Context) error {
	if m.loginDelay <= 0 {
		return nil
	}
	timer := time.NewTimer(m.loginDelay)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return pkgerrors.Wrap(pkgerrors.CodeInternal, ctx.Err(), "login interrupted")
	}
}

// Logout clears the in-memory user and removes every persisted key.
// Calling it when already logged out is a no-op.
func (m *Manager) Logout(ctx context.Context) {
	m.mu.Lock()
	if m.state != StateAuthenticated {
		m.mu.Unlock()
		return
	}
	m.user = nil
	m.state = StateGuest
	m.mu.Unlock()

	var errs error
	errs = multierr.Append(errs, m.kv.Remove(ctx, store.KeyAuthState))
	errs = multierr.Append(errs, m.kv.Remove(ctx, store.KeyUserData))
	errs = multierr.Append(errs, m.kv.Remove(ctx, store.KeyFavorites))
	if errs != nil {
		m.swallowWriteFailure(ctx, "clear persisted session", errs)
	}

	m.broadcast()
	m.metrics.IncLogout()
}

// UpdateProfile shallow-merges the patch into the current user and
// writes through. Without a loaded user it is a silent no-op.
func (m *Manager) UpdateProfile(ctx context.Context, patch users.ProfilePatch) {
	m.mu.Lock()
	if m.user == nil {
		m.mu.Unlock()
		return
	}
	updated := patch.Apply(*m.user)
	m.user = &updated
	authenticated := m.state == StateAuthenticated
	m.mu.Unlock()

	if authenticated {
		m.persistUser(ctx, updated)
	}
	m.broadcast()
	m.metrics.IncProfileUpdate()
}

// ToggleFavorite adds the property id to the favorites set or removes
// it if already present. Both the user record and the redundant
// favorites key are written. Silent no-op without a user.
func (m *Manager) ToggleFavorite(ctx context.Context, propertyID string) {
	propertyID = strings.TrimSpace(propertyID)
	if propertyID == "" {
		return
	}

	m.mu.Lock()
	if m.user == nil {
		m.mu.Unlock()
		return
	}
	updated := m.user.WithFavoriteToggled(propertyID)
	m.user = &updated
	authenticated := m.state == StateAuthenticated
	m.mu.Unlock()

	if authenticated {
		m.persistUser(ctx, updated)
		m.persistFavorites(ctx, updated.Favorites)
	}
	m.broadcast()
	m.metrics.IncFavoriteToggle()
}

// UpdateCommunicationPreferences replaces the preferences value wholesale.
// Silent no-op without a user.
func (m *Manager) UpdateCommunicationPreferences(ctx context.Context, prefs users.CommunicationPreferences) {
	m.mu.Lock()
	if m.user == nil {
		m.mu.Unlock()
		return
	}
	updated := m.user.Clone()
	updated.CommunicationPrefs = prefs.Normalize()
	m.user = &updated
	authenticated := m.state == StateAuthenticated
	m.mu.Unlock()

	if authenticated {
		m.persistUser(ctx, updated)
	}
	m.broadcast()
	m.metrics.IncPreferenceUpdate()
}

// Snapshot returns the current session projection.
func (m *Manager) Snapshot() Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	return Session{
		State:           m.state,
		IsAuthenticated: m.state == StateAuthenticated,
		User:            snapshotUser(m.user),
	}
}

func (m *Manager) broadcast() {
	m.distributor.Publish(m.Snapshot())
}

func (m *Manager) persistAuth(ctx context.Context, user users.User) {
	var errs error
	errs = multierr.Append(errs, m.kv.Set(ctx, store.KeyAuthState, store.AuthStateAuthenticated))
	errs = multierr.Append(errs, m.setUserData(ctx, user))
	errs = multierr.Append(errs, m.setFavorites(ctx, user.Favorites))
	if errs != nil {
		m.swallowWriteFailure(ctx, "persist login", errs)
	}
}

func (m *Manager) persistUser(ctx context.Context, user users.User) {
	if err := m.setUserData(ctx, user); err != nil {
		m.swallowWriteFailure(ctx, "persist user record", err)
	}
}

func (m *Manager) persistFavorites(ctx context.Context, favorites []string) {
	if err := m.setFavorites(ctx, favorites); err != nil {
		m.swallowWriteFailure(ctx, "persist favorites projection", err)
	}
}

func (m *Manager) setUserData(ctx context.Context, user users.User) error {
	raw, err := json.Marshal(user)
	if err != nil {
		return err
	}
	return m.kv.Set(ctx, store.KeyUserData, string(raw))
}

func (m *Manager) setFavorites(ctx context.Context, favorites []string) error {
	if favorites == nil {
		favorites = []string{}
	}
	raw, err := json.Marshal(favorites)
	if err != nil {
		return err
	}
	return m.kv.Set(ctx, store.KeyFavorites, string(raw))
}

// swallowWriteFailure logs and counts a persistence fault without
// surfacing it; the session continues in memory only.
func (m *Manager) swallowWriteFailure(ctx context.Context, op string, err error) {
	m.metrics.IncStoreWriteFailure()
	if errors.Is(err, store.ErrUnavailable) {
		m.warn(ctx, op+": store unavailable, session will not persist", err)
		return
	}
	m.warn(ctx, op+" failed", err)
}

func (m *Manager) warn(ctx context.Context, msg string, err error) {
	if m.logg == nil {
		return
	}
	m.logg.Warn(m.logg.WithField(ctx, "error", err.Error()), msg)
}
