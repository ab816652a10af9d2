// Package ranking drives the ranking section of the home page: two filter
// axes, the product list for the current combination and the collapsed /
// expanded view of that list.
package ranking

import (
	"context"
	"slices"
	"sync"

	"github.com/dmitrijs2005/giftshop/internal/client/models"
	"github.com/dmitrijs2005/giftshop/internal/client/resource"
)

// VisibleCount is how many products the collapsed section shows.
const VisibleCount = 6

// EmptyText is shown when a ranking has no products.
const EmptyText = "상품 목록이 없습니다"

type Fetcher interface {
	FetchRankingProducts(ctx context.Context, gender models.GenderFilter, rt models.RankingType) ([]models.Product, error)
}

// Params is the filter combination of one ranking list.
type Params struct {
	Gender models.GenderFilter
	Type   models.RankingType
}

type Section struct {
	res *resource.Resource[Params, []models.Product]

	mu      sync.Mutex
	params  Params
	showAll bool
}

func New(f Fetcher) *Section {
	fetch := func(ctx context.Context, p Params) ([]models.Product, error) {
		return f.FetchRankingProducts(ctx, p.Gender, p.Type)
	}
	return &Section{
		res:    resource.New(fetch),
		params: Params{Gender: models.GenderAll, Type: models.RankingWanted},
	}
}

func (s *Section) Params() Params {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.params
}

// Load fetches the list for the current filters unless it is already loaded.
func (s *Section) Load(ctx context.Context) error {
	_, err := s.res.Load(ctx, s.Params())
	return err
}

// Reload refetches the list for the current filters.
func (s *Section) Reload(ctx context.Context) error {
	p := s.Params()
	if s.res.State().Params != p {
		_, err := s.res.Load(ctx, p)
		return err
	}
	_, err := s.res.Reload(ctx)
	return err
}

// SetGender changes the audience filter, collapses the list and refetches.
func (s *Section) SetGender(ctx context.Context, g models.GenderFilter) error {
	return s.set(ctx, func(p *Params) { p.Gender = g })
}

// SetType changes the ranking type, collapses the list and refetches.
func (s *Section) SetType(ctx context.Context, t models.RankingType) error {
	return s.set(ctx, func(p *Params) { p.Type = t })
}

func (s *Section) set(ctx context.Context, change func(*Params)) error {
	s.mu.Lock()
	change(&s.params)
	s.showAll = false
	p := s.params
	s.mu.Unlock()

	_, err := s.res.Load(ctx, p)
	return err
}

// Toggle flips between the collapsed and the full list. It does nothing
// when the list fits in the collapsed view.
func (s *Section) Toggle() bool {
	if !s.CanToggle() {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.showAll = !s.showAll
	return true
}

func (s *Section) ShowAll() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.showAll
}

// State exposes loading and error of the underlying fetch.
func (s *Section) State() resource.State[Params, []models.Product] {
	return s.res.State()
}

func (s *Section) Products() []models.Product {
	return s.res.State().Data
}

// Visible returns the products to display, with their 1-based rank being
// index+1.
func (s *Section) Visible() []models.Product {
	all := s.Products()
	if s.ShowAll() || len(all) <= VisibleCount {
		return slices.Clone(all)
	}
	return slices.Clone(all[:VisibleCount])
}

// CanToggle reports whether the more/less control is shown.
func (s *Section) CanToggle() bool {
	return len(s.Products()) > VisibleCount
}

// Empty reports a settled fetch with no products (or a failed one).
func (s *Section) Empty() bool {
	st := s.res.State()
	if st.Loading {
		return false
	}
	return st.Err != nil || len(st.Data) == 0
}
