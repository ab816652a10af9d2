package order

// CardTemplate is a message card the sender can attach to a gift.
type CardTemplate struct {
	ID             int
	DefaultMessage string
	ThumbURL       string
	ImageURL       string
}

// Templates lists the selectable cards; the first one is preselected.
var Templates = []CardTemplate{
	{
		ID:             901,
		DefaultMessage: "축하해요! 오늘 하루도 행복하세요.",
		ThumbURL:       "https://cdn.giftshop.example/cards/901_thumb.png",
		ImageURL:       "https://cdn.giftshop.example/cards/901.png",
	},
	{
		ID:             902,
		DefaultMessage: "생일 축하합니다! 늘 건강하세요.",
		ThumbURL:       "https://cdn.giftshop.example/cards/902_thumb.png",
		ImageURL:       "https://cdn.giftshop.example/cards/902.png",
	},
	{
		ID:             903,
		DefaultMessage: "고마운 마음을 담아 보내요.",
		ThumbURL:       "https://cdn.giftshop.example/cards/903_thumb.png",
		ImageURL:       "https://cdn.giftshop.example/cards/903.png",
	},
	{
		ID:             904,
		DefaultMessage: "응원합니다. 힘내세요!",
		ThumbURL:       "https://cdn.giftshop.example/cards/904_thumb.png",
		ImageURL:       "https://cdn.giftshop.example/cards/904.png",
	},
	{
		ID:             905,
		DefaultMessage: "사랑을 담아, 당신에게.",
		ThumbURL:       "https://cdn.giftshop.example/cards/905_thumb.png",
		ImageURL:       "https://cdn.giftshop.example/cards/905.png",
	},
}

func FindTemplate(id int) (CardTemplate, bool) {
	for _, t := range Templates {
		if t.ID == id {
			return t, true
		}
	}
	return CardTemplate{}, false
}
