package router

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func TestResolve(t *testing.T) {
	r := New()

	tests := []struct {
		name     string
		path     string
		loggedIn bool
		want     Match
	}{
		{
			name: "home",
			path: "/",
			want: Match{Page: PageHome, Pattern: "/", Params: map[string]string{}},
		},
		{
			name: "login",
			path: "/login",
			want: Match{Page: PageLogin, Pattern: "/login", Params: map[string]string{}},
		},
		{
			name: "my page requires session",
			path: "/my",
			want: Match{
				Page: PageMy, Pattern: "/my", Params: map[string]string{},
				Redirect: &Redirect{Path: "/login", Replace: true, State: map[string]string{"redirect": "/my"}},
			},
		},
		{
			name:     "my page with session",
			path:     "/my",
			loggedIn: true,
			want:     Match{Page: PageMy, Pattern: "/my", Params: map[string]string{}},
		},
		{
			name: "bare order goes home",
			path: "/order",
			want: Match{
				Page: PageOrder, Pattern: "/order", Params: map[string]string{},
				Redirect: &Redirect{Path: "/", Replace: true},
			},
		},
		{
			name: "order with id",
			path: "/order/42",
			want: Match{Page: PageOrder, Pattern: "/order/{id}", Params: map[string]string{"id": "42"}},
		},
		{
			name: "theme with query and trailing slash",
			path: "/themes/7/?from=home",
			want: Match{Page: PageTheme, Pattern: "/themes/{themeId}", Params: map[string]string{"themeId": "7"}},
		},
		{
			name: "relative path",
			path: "login",
			want: Match{Page: PageLogin, Pattern: "/login", Params: map[string]string{}},
		},
		{
			name: "unknown",
			path: "/nowhere/at/all",
			want: Match{Page: PageNotFound},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := r.Resolve(tt.path, tt.loggedIn)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Resolve(%q) mismatch (-want +got):\n%s", tt.path, diff)
			}
		})
	}
}

func TestMatch_IntParam(t *testing.T) {
	r := New()

	id, ok := r.Resolve("/order/123", false).IntParam("id")
	assert.True(t, ok)
	assert.Equal(t, int64(123), id)

	_, ok = r.Resolve("/order/abc", false).IntParam("id")
	assert.False(t, ok)

	assert.Equal(t, "abc", r.Resolve("/order/abc", false).Param("id"))
}

func TestToLogin(t *testing.T) {
	assert.Equal(t, &Redirect{Path: "/login"}, ToLogin(""))
	assert.Equal(t, "/order/5", ToLogin("/order/5").State[RedirectKey])
}
