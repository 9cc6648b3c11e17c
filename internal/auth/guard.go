package auth

import (
	"context"
	"fmt"
)

type Navigator interface {
	Navigate(ctx context.Context, path string) error
}

// Guard lets a route activate only for an authenticated session and otherwise
// sends the navigator to LoginPath.
type Guard struct {
	session   *Session
	navigator Navigator
}

func NewGuard(session *Session, navigator Navigator) *Guard {
	return &Guard{session: session, navigator: navigator}
}

func (g *Guard) CanActivate(ctx context.Context, path string) (bool, error) {
	if g.session.Authenticated() {
		return true, nil
	}

	if err := g.navigator.Navigate(ctx, LoginPath); err != nil {
		return false, fmt.Errorf("redirecting %s to %s: %w", path, LoginPath, err)
	}
	return false, nil
}
