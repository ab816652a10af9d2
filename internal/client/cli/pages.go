package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/giftshop/internal/client/api"
	"github.com/dmitrijs2005/giftshop/internal/client/order"
	"github.com/dmitrijs2005/giftshop/internal/client/render"
	"github.com/dmitrijs2005/giftshop/internal/client/router"
	"github.com/dmitrijs2005/giftshop/internal/client/scroll"
)

// myPageLimit caps the orders listed on /my.
const myPageLimit = 20

// Navigate shows the page at path, following redirects.
func (a *App) Navigate(ctx context.Context, path string) error {
	return a.navigate(ctx, path, nil)
}

func (a *App) navigate(ctx context.Context, path string, state map[string]string) error {
	for i := 0; i < maxRedirects; i++ {
		m := a.router.Resolve(path, a.isLoggedIn())
		if m.Redirect != nil {
			a.logger.Debug(ctx, "redirect", "from", path, "to", m.Redirect.Path)
			path, state = m.Redirect.Path, m.Redirect.State
			continue
		}

		a.enter(m, path, state)

		rd, err := a.show(ctx, m)
		if rd == nil {
			return err
		}
		path, state = rd.Path, rd.State
	}
	return ErrTooManyRedirects
}

// enter makes m the current page. Leaving a theme page detaches its
// scroll trigger.
func (a *App) enter(m router.Match, path string, state map[string]string) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.trigger != nil && (m.Page != router.PageTheme || m.Param("themeId") != a.current.Param("themeId")) {
		a.trigger.Close()
		a.trigger = nil
	}
	a.current, a.path, a.navState = m, path, state
}

func (a *App) show(ctx context.Context, m router.Match) (*router.Redirect, error) {
	switch m.Page {
	case router.PageHome:
		return nil, a.showHome(ctx)
	case router.PageLogin:
		printlnFn("로그인: 'login' 을 입력하세요.")
		return nil, nil
	case router.PageMy:
		return nil, a.showMy(ctx)
	case router.PageOrder:
		return a.showOrder(ctx, m)
	case router.PageTheme:
		return a.showTheme(ctx, m)
	default:
		a.render.NotFound(a.path)
		return nil, nil
	}
}

func (a *App) showHome(ctx context.Context) error {
	rankErr := a.ranking.Load(ctx)
	if err := a.renderRanking(); err != nil {
		return err
	}

	printlnFn()
	st, themesErr := a.themes.Load(ctx, noUnit{})
	if err := a.render.Themes(st.Data, st.Loading, st.Err); err != nil {
		return err
	}
	return errors.Join(rankErr, themesErr)
}

func (a *App) renderRanking() error {
	p := a.ranking.Params()
	st := a.ranking.State()
	return a.render.Ranking(render.RankingView{
		Gender:    p.Gender,
		Type:      p.Type,
		Loading:   st.Loading,
		Products:  a.ranking.Visible(),
		Empty:     a.ranking.Empty(),
		CanToggle: a.ranking.CanToggle(),
		ShowAll:   a.ranking.ShowAll(),
	})
}

func (a *App) showMy(ctx context.Context) error {
	u := a.session.User()
	if u == nil {
		return nil
	}
	orders, err := a.history.ListByEmail(ctx, u.Email, myPageLimit)
	if err != nil {
		return fmt.Errorf("failed to load order history: %w", err)
	}
	return a.render.MyPage(*u, orders)
}

func (a *App) showTheme(ctx context.Context, m router.Match) (*router.Redirect, error) {
	id, ok := m.IntParam("themeId")
	if !ok {
		return &router.Redirect{Path: "/", Replace: true}, nil
	}

	printlnFn(render.ThemeLoading)
	st, err := a.themeDetail.Load(ctx, id)
	switch {
	case errors.Is(err, api.ErrThemeNotFound):
		return &router.Redirect{Path: "/", Replace: true}, nil
	case err != nil:
		printlnFn(render.NoThemeInfo)
		return nil, err
	}
	a.render.ThemeHeader(st.Data)

	if err := a.pager.SetTheme(ctx, id); err != nil {
		a.logger.Warn(ctx, "first theme page failed", "theme_id", id, "error", err)
	}
	a.attachTrigger()
	return nil, a.renderThemeProducts()
}

func (a *App) attachTrigger() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.trigger != nil {
		return
	}

	ctx := context.Background()
	status := func() scroll.Status {
		s := a.pager.State()
		return scroll.Status{HasMore: s.HasMore, Loading: s.Loading, Err: s.Err}
	}
	load := func() {
		if _, err := a.pager.LoadMore(ctx); err != nil {
			a.logger.Warn(ctx, "next theme page failed", "error", err)
		}
	}
	a.trigger = scroll.Attach(a.signal, scroll.DefaultOptions(), status, load)
}

func (a *App) renderThemeProducts() error {
	s := a.pager.State()
	return a.render.ThemeProducts(render.ThemeProductsView{
		Items:   s.Items,
		Loading: s.Loading,
		HasMore: s.HasMore,
		Err:     s.Err,
	})
}

// Scroll moves the view to the end of the list, which brings the sentinel
// into the viewport. It does nothing unless the list of the current theme
// is on screen.
func (a *App) Scroll(ctx context.Context) error {
	a.mu.Lock()
	page := a.current.Page
	themeID, _ := a.current.IntParam("themeId")
	attached := a.trigger != nil
	a.mu.Unlock()

	if page != router.PageTheme || !attached || a.pager.State().ThemeID != themeID {
		printlnFn("스크롤할 목록이 없습니다.")
		return nil
	}

	before := len(a.pager.State().Items)
	a.signal.Publish(scroll.Entry{Top: viewportHeight - 1, Height: 1, ViewportHeight: viewportHeight})

	s := a.pager.State()
	if len(s.Items) == before && !s.HasMore {
		printlnFn("마지막 상품입니다.")
		return nil
	}
	return a.render.ThemeProducts(render.ThemeProductsView{
		Items:   s.Items[before:],
		Loading: s.Loading,
		HasMore: s.HasMore,
		Err:     s.Err,
	})
}

func (a *App) showOrder(ctx context.Context, m router.Match) (*router.Redirect, error) {
	id, ok := m.IntParam("id")
	if !ok {
		return &router.Redirect{Path: "/", Replace: true}, nil
	}

	printlnFn(render.ProductLoading)
	_, err := a.summary.Load(ctx, id)
	if err != nil {
		a.showAPIError(err)
		var apiErr *api.Error
		if errors.As(err, &apiErr) && apiErr.IsClientError() {
			return &router.Redirect{Path: "/", Replace: true}, nil
		}
		printlnFn(render.NoProductInfo)
		return nil, err
	}

	sender := ""
	if u := a.session.User(); u != nil {
		sender = u.Name
	}

	a.mu.Lock()
	switch {
	case a.form == nil || a.formFor != id:
		a.form = order.NewForm(a.validate, sender)
		a.formFor = id
	case a.form.Values().Sender == "":
		a.form.SetSender(sender)
	}
	a.mu.Unlock()

	return nil, a.renderOrder()
}
