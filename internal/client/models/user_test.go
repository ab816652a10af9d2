package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUserInfo_Valid(t *testing.T) {
	tests := []struct {
		name string
		in   UserInfo
		want bool
	}{
		{"complete", UserInfo{AuthToken: "tok", Email: "a@b.com", Name: "A"}, true},
		{"no token", UserInfo{Email: "a@b.com", Name: "A"}, false},
		{"blank email", UserInfo{AuthToken: "tok", Email: "  ", Name: "A"}, false},
		{"no name", UserInfo{AuthToken: "tok", Email: "a@b.com"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.in.Valid())
		})
	}
}

func TestRankingQueryValues(t *testing.T) {
	assert.Equal(t, "ALL", GenderAll.TargetType())
	assert.Equal(t, "MALE", GenderMale.TargetType())
	assert.Equal(t, "FEMALE", GenderFemale.TargetType())
	assert.Equal(t, "TEEN", GenderTeen.TargetType())

	assert.Equal(t, "MANY_WISH", RankingWanted.RankType())
	assert.Equal(t, "MANY_RECEIVE", RankingGiven.RankType())
	assert.Equal(t, "MANY_WISH_RECEIVE", RankingWished.RankType())
}

func TestParseFilters(t *testing.T) {
	g, err := ParseGenderFilter("teen")
	assert.NoError(t, err)
	assert.Equal(t, GenderTeen, g)

	_, err = ParseGenderFilter("kids")
	assert.Error(t, err)

	r, err := ParseRankingType("given")
	assert.NoError(t, err)
	assert.Equal(t, RankingGiven, r)

	_, err = ParseRankingType("MANY_WISH")
	assert.Error(t, err)
}

func TestPrice_Discounted(t *testing.T) {
	assert.True(t, Price{BasicPrice: 10000, SellingPrice: 8000, DiscountRate: 20}.Discounted())
	assert.False(t, Price{BasicPrice: 8000, SellingPrice: 8000, DiscountRate: 20}.Discounted())
	assert.False(t, Price{BasicPrice: 10000, SellingPrice: 8000}.Discounted())
}

func TestOrderRequest_TotalQuantity(t *testing.T) {
	r := OrderRequest{Receivers: []OrderReceiver{{Quantity: 2}, {Quantity: 3}}}
	assert.Equal(t, 5, r.TotalQuantity())
}
