package pages

import (
	"fmt"
	"net/http"

	"golang.org/x/sync/errgroup"

	"github.com/dmitrymomot/flightdesk/internal"
	"github.com/dmitrymomot/flightdesk/internal/views"
	"github.com/dmitrymomot/flightdesk/middlewares"
	"github.com/dmitrymomot/flightdesk/pkg/cookie"
	"github.com/dmitrymomot/flightdesk/pkg/flightapi"
	"github.com/dmitrymomot/flightdesk/pkg/route"
	"github.com/dmitrymomot/flightdesk/pkg/sanitizer"
)

const (
	profilePath = "/profile"

	msgProfileUpdated  = "Perfil actualizado."
	msgPasswordUpdated = "Contraseña actualizada."
	msgProfileCard     = "Tarjeta añadida."
	msgCardDeleted     = "Tarjeta eliminada."
	msgMissingProfile  = "Por favor, completa nombre y email."
	msgMissingPassword = "Por favor, introduce la contraseña actual y la nueva."
)

func profilePage(c internal.Context, _ route.Params, title string) error {
	var data views.ProfileData
	g, ctx := errgroup.WithContext(c)
	api := c.API()
	g.Go(func() (err error) {
		data.Profile, err = api.FullProfile(ctx)
		return err
	})
	g.Go(func() (err error) {
		data.Cards, err = api.MyCards(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return err
	}
	return c.RenderPage(http.StatusOK, title, views.ProfilePage(data))
}

// Account handles profile, password and saved card changes.
type Account struct{}

func (h *Account) Routes(r internal.Router) {
	r.Group(func(r internal.Router) {
		r.Use(middlewares.RequireAuth(LoginPath))
		r.POST(profilePath, h.update)
		r.POST(profilePath+"/password", h.password)
		r.POST(profilePath+"/cards", h.addCard)
		r.POST(profilePath+"/cards/{id}/delete", h.deleteCard)
	})
}

// update saves the profile and refreshes the signed-in user shown in the
// shell.
func (h *Account) update(c internal.Context) error {
	in := flightapi.ProfileUpdate{
		FullName: sanitizer.Text(c.Form("nombre_completo")),
		Email:    sanitizer.Email(c.Form("email")),
	}
	if in.FullName == "" || in.Email == "" {
		c.Flash(cookie.FlashError, msgMissingProfile)
		return redirect(c, profilePath)
	}

	user, err := c.API().UpdateProfile(c, in)
	if err == nil {
		st, serr := c.State()
		if serr != nil {
			return serr
		}
		st.SetUser(user)
	}
	return back(c, profilePath, err, msgProfileUpdated)
}

func (h *Account) password(c internal.Context) error {
	current, next := c.Form("current_password"), c.Form("new_password")
	if current == "" || next == "" {
		c.Flash(cookie.FlashError, msgMissingPassword)
		return redirect(c, profilePath)
	}
	_, err := c.API().ChangePassword(c, current, next)
	return back(c, profilePath, err, msgPasswordUpdated)
}

func (h *Account) addCard(c internal.Context) error {
	in := cardInput(c)
	if in.Number == "" || in.Expiry == "" || in.Holder == "" {
		c.Flash(cookie.FlashError, msgMissingCard)
		return redirect(c, profilePath)
	}
	_, err := c.API().AddCard(c, in)
	return back(c, profilePath, err, msgProfileCard)
}

func (h *Account) deleteCard(c internal.Context) error {
	id := internal.Param[int](c, "id")
	if id <= 0 {
		return internal.ErrBadRequest(fmt.Sprintf("Tarjeta %q no válida.", c.Param("id")))
	}
	err := c.API().DeleteCard(c, id)
	return back(c, profilePath, err, msgCardDeleted)
}
