package pages

import (
	"net/http"

	"github.com/dmitrymomot/flightdesk/internal"
	"github.com/dmitrymomot/flightdesk/internal/views"
	"github.com/dmitrymomot/flightdesk/pkg/cookie"
	"github.com/dmitrymomot/flightdesk/pkg/route"
	"github.com/dmitrymomot/flightdesk/pkg/sanitizer"
)

const (
	loginTitle       = "Login"
	msgRegistered    = "¡Registro exitoso! Ahora puedes iniciar sesión."
	msgMissingLogin  = "Por favor, introduce tu email y contraseña."
	msgMissingSignup = "Por favor, completa todos los campos."
)

func loginPage(c internal.Context, _ route.Params, title string) error {
	return c.RenderPage(http.StatusOK, title, views.LoginPage(views.LoginData{}))
}

// Auth handles sign in, sign up and sign out.
type Auth struct{}

func (h *Auth) Routes(r internal.Router) {
	r.POST("/login", h.login)
	r.POST("/register", h.register)
	r.POST("/logout", h.logout)
}

// login exchanges the credentials for a token, loads the user and lands
// on the search page. Failures re-render the form with the API message.
func (h *Auth) login(c internal.Context) error {
	email := sanitizer.Email(c.Form("email"))
	password := c.Form("password")

	fail := func(code int, msg string) error {
		return c.RenderPage(code, loginTitle, views.LoginPage(views.LoginData{Email: email, LoginError: msg}))
	}
	if email == "" || password == "" {
		return fail(http.StatusUnprocessableEntity, msgMissingLogin)
	}

	tok, err := c.API().Login(c, email, password)
	if err != nil {
		return fail(internal.ToHTTPError(err).Code, message(err))
	}
	user, err := c.API().WithToken(tok.AccessToken).Me(c)
	if err != nil {
		return fail(internal.ToHTTPError(err).Code, message(err))
	}

	if err := c.SignIn(tok.AccessToken, user); err != nil {
		return err
	}
	c.LogInfo("signed in", "user_id", user.ID)
	return c.Redirect(http.StatusSeeOther, LandingPath)
}

func (h *Auth) register(c internal.Context) error {
	data := views.LoginData{
		RegisterName:  sanitizer.Text(c.Form("nombre_completo")),
		RegisterEmail: sanitizer.Email(c.Form("email")),
	}
	password := c.Form("password")

	if data.RegisterName == "" || data.RegisterEmail == "" || password == "" {
		data.RegisterError = msgMissingSignup
		return c.RenderPage(http.StatusUnprocessableEntity, loginTitle, views.LoginPage(data))
	}

	if _, err := c.API().Register(c, data.RegisterName, data.RegisterEmail, password); err != nil {
		data.RegisterError = message(err)
		return c.RenderPage(internal.ToHTTPError(err).Code, loginTitle, views.LoginPage(data))
	}

	c.Flash(cookie.FlashSuccess, msgRegistered)
	return c.Redirect(http.StatusSeeOther, LoginPath)
}

func (h *Auth) logout(c internal.Context) error {
	if err := c.SignOut(); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, LoginPath)
}
