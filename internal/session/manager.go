// Package session holds the authoritative in-memory answer to "who is
// logged in". It is seeded from the credential store at startup, mutated
// only by authenticate/register/logout (and the gateway's forced-logout
// capability), and read by everything else.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	logx "zippgo/internal/common/log"
	"zippgo/internal/credstore"
	"zippgo/internal/domain/principal"
)

var (
	ErrNotAuthenticated = errors.New("no authenticated session")
	ErrNotWired         = errors.New("session manager has no authenticator bound")
)

// Credentials are a login attempt.
type Credentials struct {
	Email    string
	Password string
}

// Registration is a signup attempt. The driver variant also reads the
// vehicle fields and attachments; the rider variant ignores them.
type Registration struct {
	Name     string
	Email    string
	Phone    string
	Password string

	VehicleType   string
	VehicleNumber string
	LicenseNumber string
	Attachments   []Attachment
}

// Attachment is one binary upload of a driver registration.
type Attachment struct {
	Field    string // "rc", "license" or "profilePhoto"
	Filename string
	Content  []byte
}

// Authenticator performs the wire calls for one principal kind. The rider
// and driver endpoint clients each implement it.
type Authenticator interface {
	Login(ctx context.Context, creds Credentials) (token string, p principal.Principal, err error)
	Register(ctx context.Context, reg Registration) (token string, p principal.Principal, err error)
	Profile(ctx context.Context) (principal.Principal, error)
}

// Manager is the session state machine. Safe for concurrent readers;
// overlapping authenticate calls are last-writer-wins (the UI is expected
// not to issue them).
type Manager struct {
	mu        sync.RWMutex
	state     State
	token     string
	principal principal.Principal

	store *credstore.Store
	log   *slog.Logger
	auth  map[principal.Kind]Authenticator
}

// NewManager seeds the session from the credential store synchronously: by
// the time it returns the state is Anonymous or Authenticated, never
// Loading. A stored token that already carries a past expiry is discarded
// (and the store cleared) rather than replayed into a guaranteed 401.
func NewManager(store *credstore.Store, logger *slog.Logger) *Manager {
	manager := &Manager{
		state: StateLoading,
		store: store,
		log:   logger,
		auth:  make(map[principal.Kind]Authenticator),
	}

	token, p, ok := store.Get()
	if !ok {
		manager.state = StateAnonymous
		return manager
	}
	if claims, err := InspectToken(token); err == nil && claims.Expired(time.Now()) {
		logx.Info(context.Background(), logger, "session_seed", "stored token expired, starting anonymous")
		_ = store.Clear()
		manager.state = StateAnonymous
		return manager
	}

	manager.state = StateAuthenticated
	manager.token = token
	manager.principal = p
	return manager
}

// Bind wires the per-kind endpoint clients. Called once during composition,
// before any authenticate call; it exists because those clients sit on the
// gateway, which in turn needs this manager as its token source.
func (manager *Manager) Bind(rider, driver Authenticator) {
	manager.auth[principal.KindRider] = rider
	manager.auth[principal.KindDriver] = driver
}

// State returns the current lifecycle state.
func (manager *Manager) State() State {
	manager.mu.RLock()
	defer manager.mu.RUnlock()
	return manager.state
}

// Principal returns the authenticated principal, or nil when anonymous. The
// caller holds a read reference only.
func (manager *Manager) Principal() principal.Principal {
	manager.mu.RLock()
	defer manager.mu.RUnlock()
	return manager.principal
}

// CurrentToken implements the gateway's token capability.
func (manager *Manager) CurrentToken() (string, bool) {
	manager.mu.RLock()
	defer manager.mu.RUnlock()
	return manager.token, manager.state == StateAuthenticated
}

// ForceLogout implements the gateway's teardown capability: store first,
// then memory, unconditionally. After it returns no credential injection can
// observe the old token.
func (manager *Manager) ForceLogout(ctx context.Context) {
	manager.clear(ctx, "force_logout")
}

// Authenticate performs a rider or driver login. On success the pair is
// persisted and the session flips to Authenticated; on any failure state and
// store are left exactly as they were.
func (manager *Manager) Authenticate(ctx context.Context, creds Credentials, kind principal.Kind) (principal.Principal, error) {
	authenticator, err := manager.authenticatorFor(kind)
	if err != nil {
		return nil, err
	}

	// The wire call runs outside the lock: the gateway re-enters this
	// manager for the (absent or stale) token while the call is in flight.
	token, p, err := authenticator.Login(ctx, creds)
	if err != nil {
		return nil, err
	}

	manager.commit(ctx, token, p, "login")
	return p, nil
}

// Register performs a rider signup or a driver registration (multipart,
// with attachments). Success and failure behave exactly as in Authenticate.
func (manager *Manager) Register(ctx context.Context, reg Registration, kind principal.Kind) (principal.Principal, error) {
	authenticator, err := manager.authenticatorFor(kind)
	if err != nil {
		return nil, err
	}

	token, p, err := authenticator.Register(ctx, reg)
	if err != nil {
		return nil, err
	}

	manager.commit(ctx, token, p, "signup")
	return p, nil
}

// Logout unconditionally clears store and memory. Logging out while already
// anonymous is a no-op, not an error.
func (manager *Manager) Logout(ctx context.Context) {
	manager.clear(ctx, "logout")
}

// RefreshProfile re-fetches the principal from the service and overwrites
// the cached copy, token untouched. A failed fetch mutates nothing.
func (manager *Manager) RefreshProfile(ctx context.Context) (principal.Principal, error) {
	manager.mu.RLock()
	if manager.state != StateAuthenticated {
		manager.mu.RUnlock()
		return nil, ErrNotAuthenticated
	}
	kind := manager.principal.Kind()
	manager.mu.RUnlock()

	authenticator, err := manager.authenticatorFor(kind)
	if err != nil {
		return nil, err
	}

	p, err := authenticator.Profile(ctx)
	if err != nil {
		return nil, err
	}

	manager.mu.Lock()
	defer manager.mu.Unlock()
	// A forced logout may have torn the session down while the fetch was in
	// flight; a profile refresh must not resurrect it.
	if manager.state != StateAuthenticated {
		return nil, ErrNotAuthenticated
	}
	manager.principal = p
	if err := manager.store.Put(manager.token, p); err != nil {
		logx.Error(ctx, manager.log, "refresh_profile", "persisting refreshed profile failed", err)
	}
	return p, nil
}

func (manager *Manager) authenticatorFor(kind principal.Kind) (Authenticator, error) {
	if !kind.Valid() {
		return nil, principal.ErrInvalidKind
	}
	authenticator, ok := manager.auth[kind]
	if !ok || authenticator == nil {
		return nil, fmt.Errorf("%w: %s", ErrNotWired, kind)
	}
	return authenticator, nil
}

// commit installs a freshly authenticated pair: store first, then memory.
// A store failure is logged but does not fail the login; the session then
// simply does not survive a restart.
func (manager *Manager) commit(ctx context.Context, token string, p principal.Principal, action string) {
	if err := manager.store.Put(token, p); err != nil {
		logx.Error(ctx, manager.log, action, "persisting credentials failed", err)
	}

	manager.mu.Lock()
	manager.state = StateAuthenticated
	manager.token = token
	manager.principal = p
	manager.mu.Unlock()

	logx.Info(ctx, manager.log, action, "session authenticated as "+p.Kind().String())
}

func (manager *Manager) clear(ctx context.Context, action string) {
	if err := manager.store.Clear(); err != nil {
		logx.Error(ctx, manager.log, action, "clearing credential store failed", err)
	}

	manager.mu.Lock()
	wasAuthenticated := manager.state == StateAuthenticated
	manager.state = StateAnonymous
	manager.token = ""
	manager.principal = nil
	manager.mu.Unlock()

	if wasAuthenticated {
		logx.Info(ctx, manager.log, action, "session cleared")
	}
}
