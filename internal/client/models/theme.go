package models

type Theme struct {
	ThemeID int64  `json:"themeId"`
	Name    string `json:"name"`
	Image   string `json:"image"`
}

// ThemeDetail is the header shown above a theme's product list.
type ThemeDetail struct {
	ThemeID         int64  `json:"themeId"`
	Name            string `json:"name"`
	Title           string `json:"title"`
	Description     string `json:"description"`
	BackgroundColor string `json:"backgroundColor"`
}
