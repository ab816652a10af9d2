// Package router maps client paths to pages using a chi route tree.
//
// Nothing is served over HTTP here: the mux is only used for matching, so
// the client shares its route syntax ({param} placeholders) with the dev
// server.
package router

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
)

type Page string

const (
	PageHome     Page = "home"
	PageLogin    Page = "login"
	PageMy       Page = "my"
	PageOrder    Page = "order"
	PageTheme    Page = "theme"
	PageNotFound Page = "not-found"
)

// RedirectKey is the navigation state key carrying the path to return to
// after logging in.
const RedirectKey = "redirect"

// Redirect asks the front end to navigate elsewhere.
type Redirect struct {
	Path    string
	State   map[string]string
	Replace bool
}

// ToLogin is the redirect used whenever a page needs a session; back is
// remembered so the login page can return there.
func ToLogin(back string) *Redirect {
	r := &Redirect{Path: "/login"}
	if back != "" {
		r.State = map[string]string{RedirectKey: back}
	}
	return r
}

type Match struct {
	Page     Page
	Pattern  string
	Params   map[string]string
	Redirect *Redirect
}

// Param returns a path parameter, "" when absent.
func (m Match) Param(key string) string { return m.Params[key] }

// IntParam parses a numeric path parameter.
func (m Match) IntParam(key string) (int64, bool) {
	n, err := strconv.ParseInt(m.Params[key], 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

type Router struct {
	mux   *chi.Mux
	pages map[string]Page
}

func New() *Router {
	r := &Router{mux: chi.NewRouter(), pages: make(map[string]Page)}

	r.handle("/", PageHome)
	r.handle("/login", PageLogin)
	r.handle("/my", PageMy)
	r.handle("/order", PageOrder)
	r.handle("/order/{id}", PageOrder)
	r.handle("/themes/{themeId}", PageTheme)

	return r
}

func (r *Router) handle(pattern string, page Page) {
	r.pages[pattern] = page
	r.mux.Get(pattern, func(http.ResponseWriter, *http.Request) {})
}

// Resolve matches path. /my without a session redirects to /login and
// remembers /my; a bare /order redirects home.
func (r *Router) Resolve(path string, loggedIn bool) Match {
	path = normalize(path)

	rctx := chi.NewRouteContext()
	if !r.mux.Match(rctx, http.MethodGet, path) {
		return Match{Page: PageNotFound}
	}

	pattern := rctx.RoutePattern()
	m := Match{
		Page:    r.pages[pattern],
		Pattern: pattern,
		Params:  make(map[string]string, len(rctx.URLParams.Keys)),
	}
	for i, k := range rctx.URLParams.Keys {
		m.Params[k] = rctx.URLParams.Values[i]
	}

	switch {
	case pattern == "/order":
		m.Redirect = &Redirect{Path: "/", Replace: true}
	case m.Page == PageMy && !loggedIn:
		m.Redirect = ToLogin("/my")
		m.Redirect.Replace = true
	}
	return m
}

// normalize strips query and fragment and makes the path absolute.
func normalize(p string) string {
	if u, err := url.Parse(p); err == nil {
		p = u.Path
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	if len(p) > 1 {
		p = strings.TrimSuffix(p, "/")
	}
	return p
}
