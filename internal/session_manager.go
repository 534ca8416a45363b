package internal

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/flightdesk/pkg/session"
)

const (
	defaultSessionCookieName = "__sid"
	defaultSessionMaxAge     = 86400 * 30
)

// SessionManager maps the session cookie to a session in the store.
type SessionManager struct {
	store      session.Store
	logger     *slog.Logger
	cookieName string
	domain     string
	path       string
	maxAge     int
	sameSite   http.SameSite
	secure     bool
}

// SessionOption configures the SessionManager.
type SessionOption func(*SessionManager)

// NewSessionManager creates a SessionManager backed by store.
func NewSessionManager(store session.Store, opts ...SessionOption) *SessionManager {
	sm := &SessionManager{
		store:      store,
		logger:     slog.New(slog.DiscardHandler),
		cookieName: defaultSessionCookieName,
		path:       "/",
		maxAge:     defaultSessionMaxAge,
		sameSite:   http.SameSiteLaxMode,
	}
	for _, opt := range opts {
		opt(sm)
	}
	return sm
}

// WithSessionCookieName sets the cookie name. Default "__sid".
func WithSessionCookieName(name string) SessionOption {
	return func(sm *SessionManager) {
		if name != "" {
			sm.cookieName = name
		}
	}
}

// WithSessionMaxAge sets the session lifetime. Default 30 days.
func WithSessionMaxAge(d time.Duration) SessionOption {
	return func(sm *SessionManager) {
		if d > 0 {
			sm.maxAge = int(d / time.Second)
		}
	}
}

// WithSessionDomain sets the cookie domain.
func WithSessionDomain(domain string) SessionOption {
	return func(sm *SessionManager) {
		sm.domain = domain
	}
}

// WithSessionSecure sets the cookie Secure flag.
func WithSessionSecure(secure bool) SessionOption {
	return func(sm *SessionManager) {
		sm.secure = secure
	}
}

// WithSessionSameSite sets the cookie SameSite attribute.
func WithSessionSameSite(ss http.SameSite) SessionOption {
	return func(sm *SessionManager) {
		sm.sameSite = ss
	}
}

// SetLogger replaces the logger. Called by App.
func (sm *SessionManager) SetLogger(l *slog.Logger) {
	if l != nil {
		sm.logger = l
	}
}

// Store returns the underlying store.
func (sm *SessionManager) Store() session.Store {
	return sm.store
}

// Load returns the session named by the request cookie. A missing cookie,
// or a cookie naming an unknown or expired session, yields nil without
// error.
func (sm *SessionManager) Load(ctx context.Context, r *http.Request) (*session.Session, error) {
	c, err := r.Cookie(sm.cookieName)
	if err != nil || c.Value == "" {
		return nil, nil
	}

	sess, err := sm.store.Get(ctx, c.Value)
	switch {
	case errors.Is(err, session.ErrNotFound), errors.Is(err, session.ErrExpired):
		return nil, nil
	case err != nil:
		return nil, err
	}
	return sess, nil
}

// Create persists a fresh session.
func (sm *SessionManager) Create(ctx context.Context) (*session.Session, error) {
	token, err := generateToken()
	if err != nil {
		return nil, err
	}

	expiresAt := time.Now().Add(time.Duration(sm.maxAge) * time.Second)
	sess := session.New(uuid.NewString(), token, expiresAt)
	if err := sm.store.Create(ctx, sess); err != nil {
		return nil, err
	}
	sess.ClearNew()
	sess.ClearDirty()
	return sess, nil
}

// Rotate moves sess to a new token. Called on login so a token planted
// before authentication is useless afterwards.
func (sm *SessionManager) Rotate(ctx context.Context, sess *session.Session) error {
	oldToken := sess.Token
	newToken, err := generateToken()
	if err != nil {
		return err
	}

	sess.Token = newToken
	if err := sm.store.Create(ctx, sess); err != nil {
		sess.Token = oldToken
		return err
	}
	if err := sm.store.Delete(ctx, oldToken); err != nil {
		sm.logger.WarnContext(ctx, "failed to delete rotated session", slog.String("session_id", sess.ID), slog.Any("error", err))
	}
	sess.ClearDirty()
	return nil
}

// Destroy removes sess from the store.
func (sm *SessionManager) Destroy(ctx context.Context, sess *session.Session) error {
	if sess == nil {
		return nil
	}
	return sm.store.Delete(ctx, sess.Token)
}

// Save writes pending changes of sess to the store.
func (sm *SessionManager) Save(ctx context.Context, sess *session.Session) error {
	if sess == nil || !sess.IsDirty() {
		return nil
	}
	if err := sm.store.Update(ctx, sess); err != nil {
		return err
	}
	sess.ClearDirty()
	return nil
}

// SetCookie points the browser at sess.
func (sm *SessionManager) SetCookie(w http.ResponseWriter, sess *session.Session) {
	http.SetCookie(w, sm.cookie(sess.Token, sm.maxAge))
}

// ClearCookie expires the session cookie.
func (sm *SessionManager) ClearCookie(w http.ResponseWriter) {
	http.SetCookie(w, sm.cookie("", -1))
}

func (sm *SessionManager) cookie(value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     sm.cookieName,
		Value:    value,
		Path:     sm.path,
		Domain:   sm.domain,
		MaxAge:   maxAge,
		Secure:   sm.secure,
		HttpOnly: true,
		SameSite: sm.sameSite,
	}
}

func generateToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate session token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
