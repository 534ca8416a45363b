// Package cookie stores small JSON values in encrypted cookies.
//
// Values are sealed with AES-GCM under a key derived from a 32+ byte secret.
// The cookie name is authenticated together with the value.
//
//	m, err := cookie.New(cfg.CookieSecret, cookie.WithSecure(true))
//	if err != nil {
//		return err
//	}
//
//	// Lives until the browser session ends.
//	err = m.Write(w, "booking", booking, cookie.Session)
//
//	var b Booking
//	if err := m.Read(r, "booking", &b); errors.Is(err, cookie.ErrNotFound) {
//		// no booking in progress
//	}
//
// # Flash messages
//
// AddFlash queues a message for the next page; Flashes returns and clears
// the queue:
//
//	_ = m.AddFlash(w, r, cookie.FlashSuccess, "Tarjeta agregada")
//	for _, f := range m.Flashes(w, r) {
//		// render f.Kind, f.Text
//	}
package cookie
