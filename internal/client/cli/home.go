package cli

import (
	"context"

	"github.com/dmitrijs2005/giftshop/internal/client/models"
	"github.com/dmitrijs2005/giftshop/internal/client/router"
)

// Rank changes the ranking section: "gender <all|male|female|teen>",
// "type <wanted|given|wished>" or "more" to expand/collapse.
func (a *App) Rank(ctx context.Context, args []string) error {
	if len(args) == 0 {
		printlnFn("Usage: rank gender <all|male|female|teen> | rank type <wanted|given|wished> | rank more")
		return nil
	}

	var err error
	switch args[0] {
	case "gender":
		if len(args) < 2 {
			printlnFn("Usage: rank gender <all|male|female|teen>")
			return nil
		}
		g, perr := models.ParseGenderFilter(args[1])
		if perr != nil {
			printlnFn(perr.Error())
			return perr
		}
		err = a.ranking.SetGender(ctx, g)

	case "type":
		if len(args) < 2 {
			printlnFn("Usage: rank type <wanted|given|wished>")
			return nil
		}
		t, perr := models.ParseRankingType(args[1])
		if perr != nil {
			printlnFn(perr.Error())
			return perr
		}
		err = a.ranking.SetType(ctx, t)

	case "more":
		if !a.ranking.Toggle() {
			printlnFn("더 볼 상품이 없습니다.")
			return nil
		}

	default:
		printlnFn("Unknown rank option:", args[0])
		return nil
	}

	if rerr := a.renderRanking(); rerr != nil {
		return rerr
	}
	return err
}

// Themes prints the theme list again, fetching it if needed.
func (a *App) Themes(ctx context.Context) error {
	st, err := a.themes.Load(ctx, noUnit{})
	if rerr := a.render.Themes(st.Data, st.Loading, st.Err); rerr != nil {
		return rerr
	}
	return err
}

// Refresh reloads the data of the current page.
func (a *App) Refresh(ctx context.Context) error {
	a.mu.Lock()
	m, path := a.current, a.path
	a.mu.Unlock()

	switch m.Page {
	case router.PageHome:
		_, _ = a.themes.Reload(ctx)
		_ = a.ranking.Reload(ctx)
	case router.PageOrder:
		_, _ = a.summary.Reload(ctx)
	case router.PageTheme:
		_, _ = a.themeDetail.Reload(ctx)
	}
	return a.Navigate(ctx, path)
}
