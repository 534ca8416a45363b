package route

// Outcome is the single action taken for a navigation.
type Outcome uint8

const (
	Render            Outcome = iota + 1 // render the shell and invoke the handler
	RedirectToLogin                      // private entry, unauthenticated
	RedirectToLanding                    // public entry, authenticated
)

// String returns the outcome name.
func (o Outcome) String() string {
	switch o {
	case Render:
		return "render"
	case RedirectToLogin:
		return "redirect_login"
	case RedirectToLanding:
		return "redirect_landing"
	default:
		return "unknown"
	}
}

// Shell is the page frame rendered around a handler's content.
type Shell uint8

const (
	NoShell      Shell = iota // redirects render nothing
	PublicShell               // bare shell for unauthenticated pages
	PrivateShell              // layout shell with navigation
)

// String returns the shell name.
func (s Shell) String() string {
	switch s {
	case PublicShell:
		return "public"
	case PrivateShell:
		return "private"
	default:
		return "none"
	}
}

// Policy holds the two guard redirect targets.
type Policy struct {
	Login   string // where unauthenticated visitors of private entries go
	Landing string // where authenticated visitors of public entries go
}

// Decision is the guard's verdict for one navigation.
// Location is set only for redirects.
type Decision struct {
	Location string
	Outcome  Outcome
	Shell    Shell
}

// Redirect reports whether the decision is a redirect.
func (d Decision) Redirect() bool {
	return d.Outcome == RedirectToLogin || d.Outcome == RedirectToLanding
}

// Decide applies the access rule to an entry's privacy flag and the current
// authentication state. It has no side effects.
func (p Policy) Decide(private, authenticated bool) Decision {
	switch {
	case private && !authenticated:
		return Decision{Outcome: RedirectToLogin, Location: p.Login}
	case !private && authenticated:
		return Decision{Outcome: RedirectToLanding, Location: p.Landing}
	case private:
		return Decision{Outcome: Render, Shell: PrivateShell}
	default:
		return Decision{Outcome: Render, Shell: PublicShell}
	}
}
