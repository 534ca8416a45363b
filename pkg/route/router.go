package route

import "errors"

// Env is the navigation environment the router acts on.
// Exactly one of SetLocation or a shell render followed by Invoke is called
// per navigation.
type Env[H any] interface {
	// IsAuthenticated reports whether a session token is present.
	IsAuthenticated() bool

	// SetLocation changes the current location. The new location is
	// navigated separately; the router never recurses.
	SetLocation(location string)

	// RenderPublicShell renders the bare unauthenticated shell.
	RenderPublicShell()

	// RenderPrivateShell renders the layout shell. pattern is the matched
	// key used to highlight the active navigation entry.
	RenderPrivateShell(pattern string)

	// Invoke runs the entry's handler. Its result is not observed.
	Invoke(handler H, params Params, title string)
}

// Result describes what a navigation resolved to and decided.
type Result[H any] struct {
	Resolution[H]
	Decision Decision
}

// Router combines a Table with a guard Policy.
type Router[H any] struct {
	table  *Table[H]
	policy Policy
}

// NewRouter validates that the policy targets are registered, that the
// login entry is public and that the landing entry is private.
func NewRouter[H any](table *Table[H], policy Policy) (*Router[H], error) {
	login, ok := table.Lookup(policy.Login)
	if !ok {
		return nil, errors.Join(ErrUnknownPattern, errors.New("login: "+policy.Login))
	}
	landing, ok := table.Lookup(policy.Landing)
	if !ok {
		return nil, errors.Join(ErrUnknownPattern, errors.New("landing: "+policy.Landing))
	}
	if login.Private {
		return nil, errors.Join(ErrInvalidPolicy, errors.New("login entry must be public"))
	}
	if !landing.Private {
		return nil, errors.Join(ErrInvalidPolicy, errors.New("landing entry must be private"))
	}
	return &Router[H]{table: table, policy: policy}, nil
}

// Table returns the underlying route table.
func (r *Router[H]) Table() *Table[H] {
	return r.table
}

// Policy returns the guard policy.
func (r *Router[H]) Policy() Policy {
	return r.policy
}

// Plan resolves location and applies the guard without acting on it.
func (r *Router[H]) Plan(location string, authenticated bool) Result[H] {
	res := r.table.Resolve(location)
	return Result[H]{
		Resolution: res,
		Decision:   r.policy.Decide(res.Entry.Private, authenticated),
	}
}

// Navigate plans location against env's authentication state and performs
// the single resulting outcome on env.
func (r *Router[H]) Navigate(location string, env Env[H]) Result[H] {
	res := r.Plan(location, env.IsAuthenticated())

	if res.Decision.Redirect() {
		env.SetLocation(res.Decision.Location)
		return res
	}

	if res.Decision.Shell == PublicShell {
		env.RenderPublicShell()
	} else {
		env.RenderPrivateShell(res.Match.Pattern)
	}
	env.Invoke(res.Entry.Handler, res.Match.Params, res.Entry.Title)

	return res
}
