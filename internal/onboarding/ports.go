package onboarding

import "context"

// AuthProvider is the remote identity service.
type AuthProvider interface {
	Authenticate(ctx context.Context, email, password string) (Account, error)
	CreateAccount(ctx context.Context, email, password string) (Account, error)
}

// ProfileStore persists profile documents keyed by account id.
type ProfileStore interface {
	WriteProfile(ctx context.Context, record ProfileRecord) error
}

// Router is the navigation container. Calls are fire-and-forget.
type Router interface {
	NavigateTo(screen Screen)
}

// RouterFunc adapts a function to Router.
type RouterFunc func(screen Screen)

// NavigateTo calls f(screen).
func (f RouterFunc) NavigateTo(screen Screen) { f(screen) }
