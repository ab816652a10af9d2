package models

// BrandInfo identifies the brand of a product. Ranking lists carry only the name.
type BrandInfo struct {
	ID       int64  `json:"id,omitempty"`
	Name     string `json:"name"`
	ImageURL string `json:"imageURL,omitempty"`
}

// Price holds won amounts. BasicPrice and DiscountRate are zero when the
// API omits them.
type Price struct {
	BasicPrice   int `json:"basicPrice,omitempty"`
	SellingPrice int `json:"sellingPrice"`
	DiscountRate int `json:"discountRate,omitempty"`
}

// Discounted reports whether a discount should be displayed.
func (p Price) Discounted() bool {
	return p.DiscountRate > 0 && p.BasicPrice > p.SellingPrice
}

// Product is an entry of a ranking list.
type Product struct {
	ID          int64       `json:"id"`
	Name        string      `json:"name"`
	ImageURL    string      `json:"imageURL"`
	BrandInfo   *BrandInfo  `json:"brandInfo,omitempty"`
	Price       *Price      `json:"price,omitempty"`
	RankingType RankingType `json:"rankingType,omitempty"`
}

// ThemeProduct is a product listed under a theme.
type ThemeProduct struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Price     Price     `json:"price"`
	ImageURL  string    `json:"imageURL"`
	BrandInfo BrandInfo `json:"brandInfo"`
}

// ThemeProductsPage is one page of GET /api/themes/{id}/products.
// Cursor is the offset to request next.
type ThemeProductsPage struct {
	List        []ThemeProduct `json:"list"`
	Cursor      int            `json:"cursor"`
	HasMoreList bool           `json:"hasMoreList"`
}

// ProductSummary is what the order page shows about the product being gifted.
type ProductSummary struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	ImageURL    string `json:"imageURL"`
	BrandName   string `json:"brandName"`
	Price       int    `json:"price"`
	Description string `json:"description,omitempty"`
}
