package session

import (
	"encoding/json"
	"errors"
	"maps"
	"time"
)

// Session is a server-side session. Values are stored as JSON so a session
// can move between stores without losing type information.
type Session struct {
	CreatedAt    time.Time                  `json:"created_at"`
	LastActiveAt time.Time                  `json:"last_active_at"`
	ExpiresAt    time.Time                  `json:"expires_at"`
	Values       map[string]json.RawMessage `json:"values"`
	ID           string                     `json:"id"`    // Unique identifier (UUID)
	Token        string                     `json:"token"` // Cookie token, rotated on login

	dirty bool // tracks if session needs saving
	isNew bool // tracks if session was just created
}

// New creates a new session with the given ID and token.
func New(id, token string, expiresAt time.Time) *Session {
	now := time.Now()
	return &Session{
		ID:           id,
		Token:        token,
		Values:       make(map[string]json.RawMessage),
		CreatedAt:    now,
		LastActiveAt: now,
		ExpiresAt:    expiresAt,
		isNew:        true,
		dirty:        true,
	}
}

// Set stores v under key as JSON.
// Marks the session as dirty for automatic saving.
func (s *Session) Set(key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return errors.Join(ErrEncode, err)
	}
	if s.Values == nil {
		s.Values = make(map[string]json.RawMessage)
	}
	s.Values[key] = data
	s.dirty = true
	return nil
}

// Get decodes the value stored under key into dst.
// Returns ErrNotFound if the key does not exist.
func (s *Session) Get(key string, dst any) error {
	data, ok := s.Values[key]
	if !ok {
		return ErrNotFound
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return errors.Join(ErrDecode, err)
	}
	return nil
}

// Has reports whether key is set.
func (s *Session) Has(key string) bool {
	_, ok := s.Values[key]
	return ok
}

// Delete removes a value from the session.
// Marks the session as dirty only if the key existed.
func (s *Session) Delete(key string) {
	if _, exists := s.Values[key]; exists {
		delete(s.Values, key)
		s.dirty = true
	}
}

// Clone returns a deep copy of the session, including its state flags.
func (s *Session) Clone() *Session {
	cp := *s
	cp.Values = maps.Clone(s.Values)
	if cp.Values == nil {
		cp.Values = make(map[string]json.RawMessage)
	}
	return &cp
}

// IsDirty returns true if the session has unsaved changes.
func (s *Session) IsDirty() bool {
	return s.dirty
}

// ClearDirty marks the session as saved.
func (s *Session) ClearDirty() {
	s.dirty = false
}

// MarkDirty marks the session as needing to be saved.
func (s *Session) MarkDirty() {
	s.dirty = true
}

// IsNew returns true if the session was just created.
func (s *Session) IsNew() bool {
	return s.isNew
}

// ClearNew marks the session as persisted at least once.
func (s *Session) ClearNew() {
	s.isNew = false
}

// IsExpired returns true if the session has expired.
func (s *Session) IsExpired() bool {
	return time.Now().After(s.ExpiresAt)
}

// Touch records activity and marks the session dirty.
func (s *Session) Touch(now time.Time) {
	s.LastActiveAt = now
	s.dirty = true
}
