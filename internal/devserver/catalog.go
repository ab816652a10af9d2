package devserver

import (
	"errors"
	"fmt"
	"sort"

	"github.com/dmitrijs2005/giftshop/internal/client/models"
)

var (
	ErrUnknownFilter  = errors.New("unknown ranking filter")
	ErrThemeNotFound  = errors.New("theme not found")
	ErrProductMissing = errors.New("product not found")
)

type rankingKey struct {
	gender models.GenderFilter
	rank   models.RankingType
}

// Catalog is the read-only product data served by the dev server.
type Catalog struct {
	products      map[int64]models.Product
	themes        []models.Theme
	details       map[int64]models.ThemeDetail
	themeProducts map[int64][]models.ThemeProduct
	rankings      map[rankingKey][]int64
}

var brands = []models.BrandInfo{
	{ID: 1, Name: "스타벅스", ImageURL: "https://img.example/brand/1.png"},
	{ID: 2, Name: "투썸플레이스", ImageURL: "https://img.example/brand/2.png"},
	{ID: 3, Name: "배스킨라빈스", ImageURL: "https://img.example/brand/3.png"},
	{ID: 4, Name: "교촌치킨", ImageURL: "https://img.example/brand/4.png"},
	{ID: 5, Name: "올리브영", ImageURL: "https://img.example/brand/5.png"},
}

var themeSeeds = []models.ThemeDetail{
	{ThemeID: 1, Name: "생일", Title: "예슬님 생일 축하해요", Description: "특별한 날 마음을 전하세요", BackgroundColor: "#ff7b6b"},
	{ThemeID: 2, Name: "졸업선물", Title: "새로운 시작을 응원해요", Description: "", BackgroundColor: "#4684e9"},
	{ThemeID: 3, Name: "스몰럭셔리", Title: "작지만 확실한 행복", Description: "<b>나를 위한</b> 선물", BackgroundColor: "#222222"},
	{ThemeID: 4, Name: "명품선물", Title: "귀한 분께 드리는 선물", Description: "", BackgroundColor: "#b08c5a"},
	{ThemeID: 5, Name: "결혼/집들이", Title: "새 출발을 축하해요", Description: "", BackgroundColor: "#f3c9b2"},
}

// themeSizes fixes how many products each theme carries; theme 5 is empty.
var themeSizes = map[int64]int{1: 25, 2: 12, 3: 7, 4: 3, 5: 0}

const rankingProducts = 20

// NewCatalog builds the deterministic demo catalog.
func NewCatalog() *Catalog {
	c := &Catalog{
		products:      make(map[int64]models.Product),
		details:       make(map[int64]models.ThemeDetail),
		themeProducts: make(map[int64][]models.ThemeProduct),
		rankings:      make(map[rankingKey][]int64),
	}

	for i := 1; i <= rankingProducts; i++ {
		id := int64(i)
		b := brands[i%len(brands)]
		basic := 10000 + 1000*i
		p := models.Product{
			ID:        id,
			Name:      fmt.Sprintf("%s 선물세트 %d호", b.Name, i),
			ImageURL:  fmt.Sprintf("https://img.example/product/%d.png", i),
			BrandInfo: &models.BrandInfo{ID: b.ID, Name: b.Name, ImageURL: b.ImageURL},
			Price:     &models.Price{BasicPrice: basic, SellingPrice: basic},
		}
		if i%3 == 0 {
			p.Price.DiscountRate = 10
			p.Price.SellingPrice = basic * 9 / 10
		}
		c.products[id] = p
	}

	for _, d := range themeSeeds {
		c.details[d.ThemeID] = d
		c.themes = append(c.themes, models.Theme{
			ThemeID: d.ThemeID,
			Name:    d.Name,
			Image:   fmt.Sprintf("https://img.example/theme/%d.png", d.ThemeID),
		})

		items := make([]models.ThemeProduct, 0, themeSizes[d.ThemeID])
		for n := 1; n <= themeSizes[d.ThemeID]; n++ {
			id := d.ThemeID*1000 + int64(n)
			b := brands[n%len(brands)]
			basic := 5000 * (n%7 + 1)
			tp := models.ThemeProduct{
				ID:        id,
				Name:      fmt.Sprintf("%s %s 상품 %d", d.Name, b.Name, n),
				Price:     models.Price{BasicPrice: basic, SellingPrice: basic},
				ImageURL:  fmt.Sprintf("https://img.example/product/%d.png", id),
				BrandInfo: b,
			}
			if n%4 == 0 {
				tp.Price.DiscountRate = 20
				tp.Price.SellingPrice = basic * 8 / 10
			}
			items = append(items, tp)
			c.products[id] = models.Product{
				ID:        id,
				Name:      tp.Name,
				ImageURL:  tp.ImageURL,
				BrandInfo: &models.BrandInfo{ID: b.ID, Name: b.Name, ImageURL: b.ImageURL},
				Price:     &models.Price{BasicPrice: tp.Price.BasicPrice, SellingPrice: tp.Price.SellingPrice, DiscountRate: tp.Price.DiscountRate},
			}
		}
		c.themeProducts[d.ThemeID] = items
	}

	// Each filter combination gets its own stable ordering of the ranking
	// products. The teen "given" list is cut short.
	for gi, g := range models.GenderFilters {
		for ri, r := range models.RankingTypes {
			seed := int64(gi*len(models.RankingTypes) + ri + 1)
			key := func(id int64) int64 { return (id*7*seed + seed) % rankingProducts }

			ids := make([]int64, 0, rankingProducts)
			for i := int64(1); i <= rankingProducts; i++ {
				ids = append(ids, i)
			}
			sort.Slice(ids, func(a, b int) bool {
				ka, kb := key(ids[a]), key(ids[b])
				return ka < kb || ka == kb && ids[a] < ids[b]
			})
			if g == models.GenderTeen && r == models.RankingGiven {
				ids = ids[:4]
			}
			c.rankings[rankingKey{g, r}] = ids
		}
	}

	return c
}

func (c *Catalog) Themes() []models.Theme {
	out := make([]models.Theme, len(c.themes))
	copy(out, c.themes)
	return out
}

func (c *Catalog) ThemeDetail(id int64) (models.ThemeDetail, error) {
	d, ok := c.details[id]
	if !ok {
		return models.ThemeDetail{}, ErrThemeNotFound
	}
	return d, nil
}

// ThemeProducts returns up to limit products starting at cursor. The
// returned cursor is where the next page starts.
func (c *Catalog) ThemeProducts(id int64, cursor, limit int) (models.ThemeProductsPage, error) {
	items, ok := c.themeProducts[id]
	if !ok {
		return models.ThemeProductsPage{}, ErrThemeNotFound
	}

	if cursor < 0 {
		cursor = 0
	}
	if cursor > len(items) {
		cursor = len(items)
	}
	end := min(cursor+limit, len(items))

	list := make([]models.ThemeProduct, end-cursor)
	copy(list, items[cursor:end])

	return models.ThemeProductsPage{
		List:        list,
		Cursor:      end,
		HasMoreList: end < len(items),
	}, nil
}

// Ranking resolves the wire names of the filters ("ALL", "MANY_WISH", ...).
func (c *Catalog) Ranking(targetType, rankType string) ([]models.Product, error) {
	g, ok := genderByTarget(targetType)
	if !ok {
		return nil, fmt.Errorf("%w: targetType %q", ErrUnknownFilter, targetType)
	}
	r, ok := rankingByWire(rankType)
	if !ok {
		return nil, fmt.Errorf("%w: rankType %q", ErrUnknownFilter, rankType)
	}

	ids := c.rankings[rankingKey{g, r}]
	out := make([]models.Product, 0, len(ids))
	for _, id := range ids {
		p := c.products[id]
		p.RankingType = r
		out = append(out, p)
	}
	return out, nil
}

func (c *Catalog) Summary(id int64) (models.ProductSummary, error) {
	p, ok := c.products[id]
	if !ok {
		return models.ProductSummary{}, ErrProductMissing
	}

	s := models.ProductSummary{ID: p.ID, Name: p.Name, ImageURL: p.ImageURL}
	if p.BrandInfo != nil {
		s.BrandName = p.BrandInfo.Name
	}
	if p.Price != nil {
		s.Price = p.Price.SellingPrice
	}
	return s, nil
}

func genderByTarget(s string) (models.GenderFilter, bool) {
	for _, g := range models.GenderFilters {
		if g.TargetType() == s {
			return g, true
		}
	}
	return "", false
}

func rankingByWire(s string) (models.RankingType, bool) {
	for _, r := range models.RankingTypes {
		if r.RankType() == s {
			return r, true
		}
	}
	return "", false
}
