// Package pager accumulates the cursor-paginated product list of a theme.
//
// A Pager follows one theme at a time. SetTheme resets everything and issues
// the single initial page request; LoadMore appends the next page. Once a
// request fails, pagination stops until the theme changes.
package pager

import (
	"context"
	"slices"
	"sync"

	"github.com/dmitrijs2005/giftshop/internal/client/models"
	"github.com/dmitrijs2005/giftshop/internal/logging"
)

const DefaultPageSize = 10

// Fetcher returns the page of themeID starting at cursor.
type Fetcher func(ctx context.Context, themeID int64, cursor, limit int) (models.ThemeProductsPage, error)

type State struct {
	ThemeID     int64
	Items       []models.ThemeProduct
	Cursor      int
	HasMore     bool
	Loading     bool
	Err         error
	Initialized bool
}

type Pager struct {
	mu     sync.Mutex
	fetch  Fetcher
	limit  int
	logger logging.Logger

	st     State
	active bool
	// gen changes with the theme; responses of an older gen are dropped
	gen uint64
}

// New returns a pager requesting limit items per page (DefaultPageSize when
// limit is not positive).
func New(fetch Fetcher, limit int, logger logging.Logger) *Pager {
	if limit <= 0 {
		limit = DefaultPageSize
	}
	return &Pager{fetch: fetch, limit: limit, logger: logger}
}

// State returns a snapshot; Items is a copy.
func (p *Pager) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	s := p.st
	s.Items = slices.Clone(p.st.Items)
	return s
}

// SetTheme switches to themeID. Switching to a different theme discards all
// accumulated state and loads the first page; selecting the current theme
// again does nothing.
func (p *Pager) SetTheme(ctx context.Context, themeID int64) error {
	p.mu.Lock()
	if p.active && p.st.ThemeID == themeID {
		p.mu.Unlock()
		return nil
	}
	p.active = true
	p.gen++
	p.st = State{ThemeID: themeID, HasMore: true}
	p.mu.Unlock()

	_, err := p.LoadMore(ctx)
	return err
}

// LoadMore requests the next page. It reports false without a request when
// a request is already in flight, no more pages exist, a previous request
// failed or no theme is set.
func (p *Pager) LoadMore(ctx context.Context) (bool, error) {
	p.mu.Lock()
	if !p.active || p.st.Loading || !p.st.HasMore || p.st.Err != nil {
		p.mu.Unlock()
		return false, nil
	}
	p.st.Loading = true
	p.st.Initialized = true
	gen, themeID, cursor := p.gen, p.st.ThemeID, p.st.Cursor
	p.mu.Unlock()

	page, err := p.fetch(ctx, themeID, cursor, p.limit)

	p.mu.Lock()
	defer p.mu.Unlock()

	if gen != p.gen {
		p.logger.Debug(ctx, "dropping page of previous theme", "theme_id", themeID, "cursor", cursor)
		return false, nil
	}

	p.st.Loading = false
	if err != nil {
		p.st.Err = err
		p.logger.Warn(ctx, "theme products page failed", "theme_id", themeID, "cursor", cursor, "error", err)
		return true, err
	}

	p.st.Items = append(p.st.Items, page.List...)
	p.st.Cursor = page.Cursor
	p.st.HasMore = page.HasMoreList
	return true, nil
}
