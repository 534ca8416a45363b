package cookie

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
)

// Errors.
var (
	ErrNotFound  = errors.New("cookie: not found")
	ErrBadSecret = errors.New("cookie: secret must be 32+ bytes")
	ErrDecrypt   = errors.New("cookie: decryption failed")
	ErrTooLarge  = errors.New("cookie: encoded value exceeds 4096 bytes")
)

const maxCookieSize = 4096

// Session is the MaxAge for cookies that live until the browser session ends.
const Session = 0

// Manager reads and writes AES-GCM sealed JSON cookies. The cookie name is
// bound to the ciphertext, so a value cannot be replayed under another name.
type Manager struct {
	aead     cipher.AEAD
	domain   string
	path     string
	sameSite http.SameSite
	secure   bool
}

// Option configures the Manager.
type Option func(*Manager)

// New creates a Manager. secret must be at least 32 bytes.
func New(secret string, opts ...Option) (*Manager, error) {
	if len(secret) < 32 {
		return nil, ErrBadSecret
	}

	key := sha256.Sum256([]byte(secret))
	block, err := aes.NewCipher(key[:])
	if err != nil {
		return nil, err
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}

	m := &Manager{
		aead:     aead,
		path:     "/",
		sameSite: http.SameSiteLaxMode,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m, nil
}

// WithDomain sets the cookie domain.
func WithDomain(domain string) Option {
	return func(m *Manager) {
		m.domain = domain
	}
}

// WithPath sets the cookie path.
func WithPath(path string) Option {
	return func(m *Manager) {
		if path != "" {
			m.path = path
		}
	}
}

// WithSecure sets the Secure flag.
func WithSecure(secure bool) Option {
	return func(m *Manager) {
		m.secure = secure
	}
}

// WithSameSite sets the SameSite attribute.
func WithSameSite(ss http.SameSite) Option {
	return func(m *Manager) {
		m.sameSite = ss
	}
}

// Write seals v as JSON into the named cookie. maxAge follows http.Cookie:
// Session (0) keeps the cookie until the browser session ends.
func (m *Manager) Write(w http.ResponseWriter, name string, v any, maxAge int) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}

	nonce := make([]byte, m.aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return err
	}
	sealed := m.aead.Seal(nonce, nonce, data, []byte(name))

	value := base64.RawURLEncoding.EncodeToString(sealed)
	if len(name)+len(value) > maxCookieSize {
		return ErrTooLarge
	}

	http.SetCookie(w, m.cookie(name, value, maxAge))
	return nil
}

// Read opens the named cookie into dst.
// Returns ErrNotFound if the cookie is absent and ErrDecrypt if it was
// tampered with, sealed under another secret or another name.
func (m *Manager) Read(r *http.Request, name string, dst any) error {
	c, err := r.Cookie(name)
	if err != nil || c.Value == "" {
		return ErrNotFound
	}

	raw, err := base64.RawURLEncoding.DecodeString(c.Value)
	if err != nil || len(raw) < m.aead.NonceSize() {
		return ErrDecrypt
	}

	nonce, ciphertext := raw[:m.aead.NonceSize()], raw[m.aead.NonceSize():]
	data, err := m.aead.Open(nil, nonce, ciphertext, []byte(name))
	if err != nil {
		return ErrDecrypt
	}

	if err := json.Unmarshal(data, dst); err != nil {
		return errors.Join(ErrDecrypt, err)
	}
	return nil
}

// Delete expires the named cookie.
func (m *Manager) Delete(w http.ResponseWriter, name string) {
	http.SetCookie(w, m.cookie(name, "", -1))
}

func (m *Manager) cookie(name, value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     m.path,
		Domain:   m.domain,
		MaxAge:   maxAge,
		Secure:   m.secure,
		HttpOnly: true,
		SameSite: m.sameSite,
	}
}
