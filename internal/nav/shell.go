// Package nav matches navigation paths to views and keeps the history the views
// move back and forth in.
package nav

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

var ErrNoRoute = errors.New("no route")

// Page is an activated view.
type Page interface {
	Render(w io.Writer) error
}

type Guard interface {
	CanActivate(ctx context.Context, path string) (bool, error)
}

// Activation builds the page for a matched route. A nil page with a nil error means
// the activation navigated somewhere else and there is nothing to show.
type Activation func(ctx context.Context, vars map[string]string) (Page, error)

type route struct {
	activate Activation
	guarded  bool
}

// Shell owns the current page. Each activation runs with its own context derived
// from root; moving to another path cancels it, so requests still running for a
// page the user left are aborted and never applied.
type Shell struct {
	root   context.Context
	router *mux.Router
	routes map[string]route
	guard  Guard

	history    []string
	current    Page
	path       string
	ctx        context.Context
	cancel     context.CancelFunc
	generation int
}

func NewShell(root context.Context, guard Guard) *Shell {
	s := &Shell{
		root:   root,
		router: mux.NewRouter(),
		routes: make(map[string]route),
		guard:  guard,
		ctx:    root,
	}

	s.Handle("/404", "not-found", false, func(context.Context, map[string]string) (Page, error) {
		return NotFoundPage{}, nil
	})
	s.Handle("/login", "login", false, func(context.Context, map[string]string) (Page, error) {
		return LoginPage{}, nil
	})

	return s
}

// SetGuard replaces the guard; the guard usually needs the shell as its navigator.
func (s *Shell) SetGuard(guard Guard) {
	s.guard = guard
}

// Handle registers a path template in gorilla/mux syntax under a unique name.
func (s *Shell) Handle(path, name string, guarded bool, activate Activation) {
	s.router.Path(path).Name(name)
	s.routes[name] = route{activate: activate, guarded: guarded}
}

func (s *Shell) Navigate(ctx context.Context, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	path = normalize(path)
	return s.activate(path, func() {
		s.history = append(s.history, path)
	})
}

// Back returns to the previous path. With nothing to go back to it does nothing.
// History only shrinks once the previous page is shown again.
func (s *Shell) Back(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if len(s.history) < 2 {
		return nil
	}

	return s.activate(s.history[len(s.history)-2], func() {
		s.history = s.history[:len(s.history)-1]
	})
}

func (s *Shell) Current() Page {
	return s.current
}

func (s *Shell) Path() string {
	return s.path
}

// Context is the context of the current activation. It is cancelled once the shell
// navigates away.
func (s *Shell) Context() context.Context {
	return s.ctx
}

// History lists the paths whose pages were shown, oldest first. Paths that
// redirected elsewhere are not recorded.
func (s *Shell) History() []string {
	return append([]string(nil), s.history...)
}

// Close cancels the current activation.
func (s *Shell) Close() {
	if s.cancel != nil {
		s.cancel()
	}
}

// activate shows the page of path and calls commit once it is current.
func (s *Shell) activate(path string, commit func()) error {
	if s.cancel != nil {
		s.cancel()
	}
	ctx, cancel := context.WithCancel(s.root)
	s.ctx, s.cancel = ctx, cancel
	s.generation++
	generation := s.generation

	req := &http.Request{Method: http.MethodGet, URL: &url.URL{Path: path}}
	var match mux.RouteMatch
	if !s.router.Match(req, &match) || match.Route == nil {
		return fmt.Errorf("%s: %w", path, ErrNoRoute)
	}

	r := s.routes[match.Route.GetName()]
	if r.guarded && s.guard != nil {
		ok, err := s.guard.CanActivate(ctx, path)
		if err != nil {
			return err
		}
		if !ok {
			log.Debugf("activation of %s refused", path)
			return nil
		}
	}

	page, err := r.activate(ctx, match.Vars)
	if err != nil {
		return fmt.Errorf("activating %s: %w", path, err)
	}
	if page == nil || generation != s.generation {
		return nil
	}

	s.current = page
	s.path = path
	commit()
	return nil
}

func normalize(path string) string {
	return "/" + strings.Trim(path, "/")
}
