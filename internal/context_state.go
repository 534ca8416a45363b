package internal

import (
	"errors"
	"log/slog"

	"github.com/dmitrymomot/flightdesk/internal/state"
	"github.com/dmitrymomot/flightdesk/pkg/cookie"
	"github.com/dmitrymomot/flightdesk/pkg/flightapi"
	"github.com/dmitrymomot/flightdesk/pkg/session"
)

const (
	authSessionKey = "auth"
	bookingCookie  = "__booking"
)

// loadSession returns the session named by the request cookie, or nil.
func (c *requestContext) loadSession() (*session.Session, error) {
	if c.sessionLoaded {
		return c.session, nil
	}
	sess, err := c.app.sessions.Load(c, c.request)
	if err != nil {
		return nil, err
	}
	c.session = sess
	c.sessionLoaded = true
	return sess, nil
}

func (c *requestContext) State() (*state.State, error) {
	if c.state != nil {
		return c.state, nil
	}
	if c.app.sessions == nil {
		return nil, session.ErrNotConfigured
	}

	sess, err := c.loadSession()
	if err != nil {
		return nil, err
	}

	var auth state.Auth
	if sess != nil {
		if err := sess.Get(authSessionKey, &auth); err != nil && !errors.Is(err, session.ErrNotFound) {
			c.LogWarn("discarding unreadable auth state", slog.Any("error", err))
			auth = state.Auth{}
		}
	}

	var booking *state.Booking
	if c.app.cookies != nil {
		var b state.Booking
		switch err := c.app.cookies.Read(c.request, bookingCookie, &b); {
		case err == nil:
			booking = &b
		case !errors.Is(err, cookie.ErrNotFound):
			c.LogWarn("discarding unreadable booking flow", slog.Any("error", err))
		}
	}

	c.state = state.New(auth, booking)
	c.registerSaveHook()
	return c.state, nil
}

func (c *requestContext) IsAuthenticated() bool {
	st, err := c.State()
	return err == nil && st.IsAuthenticated()
}

func (c *requestContext) SignIn(token string, user *flightapi.User) error {
	st, err := c.State()
	if err != nil {
		return err
	}
	if c.session != nil {
		if err := c.app.sessions.Rotate(c, c.session); err != nil {
			return err
		}
		c.app.sessions.SetCookie(c.response, c.session)
	}
	st.SetToken(token)
	st.SetUser(user)
	return nil
}

func (c *requestContext) SignOut() error {
	st, err := c.State()
	if err != nil {
		return err
	}
	st.ClearToken()
	st.ClearBooking()

	if c.session != nil {
		if err := c.app.sessions.Destroy(c, c.session); err != nil {
			return err
		}
		c.session = nil
	}
	c.app.sessions.ClearCookie(c.response)
	return nil
}

// registerSaveHook persists state changes right before the header goes out.
func (c *requestContext) registerSaveHook() {
	if c.hookRegistered {
		return
	}
	c.hookRegistered = true
	c.response.OnBeforeWrite(func() {
		if err := c.saveState(); err != nil {
			c.LogError("failed to save visitor state", slog.Any("error", err))
		}
	})
}

func (c *requestContext) saveState() error {
	st := c.state
	if st == nil || !st.Dirty() {
		return nil
	}

	var errs []error
	if st.AuthDirty() {
		if err := c.saveAuth(st); err != nil {
			errs = append(errs, err)
		}
	}
	if st.BookingDirty() && c.app.cookies != nil {
		if b := st.Booking(); b == nil {
			c.app.cookies.Delete(c.response, bookingCookie)
		} else if err := c.app.cookies.Write(c.response, bookingCookie, b, cookie.Session); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) == 0 {
		st.MarkClean()
	}
	return errors.Join(errs...)
}

func (c *requestContext) saveAuth(st *state.State) error {
	sess := c.session
	if !st.IsAuthenticated() {
		if sess == nil {
			return nil
		}
		sess.Delete(authSessionKey)
		return c.app.sessions.Save(c, sess)
	}

	if sess == nil {
		created, err := c.app.sessions.Create(c)
		if err != nil {
			return err
		}
		sess = created
		c.session = created
		c.app.sessions.SetCookie(c.response, created)
	}
	if err := sess.Set(authSessionKey, st.Auth()); err != nil {
		return err
	}
	return c.app.sessions.Save(c, sess)
}
