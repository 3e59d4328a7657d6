package client

// View is anything that can render a screen of the client.
type View interface {
	Render() string
}

// GuardOutcome is the route guard's decision for a protected view.
type GuardOutcome int

const (
	// GuardPending means auth is still resolving; show a placeholder.
	GuardPending GuardOutcome = iota
	// GuardAllowed means the wrapped view was rendered.
	GuardAllowed
	// GuardRedirectLogin means the navigation should go to the login view.
	GuardRedirectLogin
)

// Guard wraps a protected view. While auth status is loading it renders a
// placeholder; once resolved it renders the view for an authenticated
// session and redirects to login otherwise.
type Guard struct {
	store *Store
	view  View
}

func NewGuard(store *Store, view View) *Guard {
	return &Guard{store: store, view: view}
}

// Resolve returns the guard decision and the rendered output for it.
func (g *Guard) Resolve() (GuardOutcome, string) {
	auth := g.store.Auth()
	switch {
	case auth.Loading:
		return GuardPending, loadingPlaceholder
	case auth.Authenticated:
		return GuardAllowed, g.view.Render()
	default:
		return GuardRedirectLogin, "Redirecting to /login"
	}
}
