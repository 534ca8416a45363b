package cookie

import "net/http"

const flashCookie = "__flash"

// Flash kinds.
const (
	FlashSuccess = "success"
	FlashError   = "error"
	FlashInfo    = "info"
)

// Flash is a one-shot message shown on the next rendered page.
type Flash struct {
	Kind string `json:"k"`
	Text string `json:"t"`
}

// AddFlash appends a message to the pending flashes of the request.
func (m *Manager) AddFlash(w http.ResponseWriter, r *http.Request, kind, text string) error {
	var pending []Flash
	_ = m.Read(r, flashCookie, &pending)
	pending = append(pending, Flash{Kind: kind, Text: text})
	return m.Write(w, flashCookie, pending, Session)
}

// Flashes returns and clears pending messages. A missing or unreadable
// flash cookie yields no messages.
func (m *Manager) Flashes(w http.ResponseWriter, r *http.Request) []Flash {
	var pending []Flash
	if err := m.Read(r, flashCookie, &pending); err != nil {
		if err != ErrNotFound {
			m.Delete(w, flashCookie)
		}
		return nil
	}
	m.Delete(w, flashCookie)
	return pending
}
