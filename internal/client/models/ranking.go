package models

import "fmt"

// GenderFilter selects the audience segment of a ranking list.
type GenderFilter string

const (
	GenderAll    GenderFilter = "all"
	GenderMale   GenderFilter = "male"
	GenderFemale GenderFilter = "female"
	GenderTeen   GenderFilter = "teen"
)

// GenderFilters lists the filters in display order.
var GenderFilters = []GenderFilter{GenderAll, GenderMale, GenderFemale, GenderTeen}

var targetTypes = map[GenderFilter]string{
	GenderAll:    "ALL",
	GenderMale:   "MALE",
	GenderFemale: "FEMALE",
	GenderTeen:   "TEEN",
}

// TargetType returns the API query value for g.
func (g GenderFilter) TargetType() string {
	return targetTypes[g]
}

// Label is the segment label shown in the filter bar.
func (g GenderFilter) Label() string {
	switch g {
	case GenderMale:
		return "남성이"
	case GenderFemale:
		return "여성이"
	case GenderTeen:
		return "청소년이"
	default:
		return "전체"
	}
}

// ParseGenderFilter accepts the lower-case filter name.
func ParseGenderFilter(s string) (GenderFilter, error) {
	g := GenderFilter(s)
	if _, ok := targetTypes[g]; !ok {
		return "", fmt.Errorf("unknown gender filter %q", s)
	}
	return g, nil
}

// RankingType selects which ranking list is shown.
type RankingType string

const (
	RankingWanted RankingType = "wanted" // most wished
	RankingGiven  RankingType = "given"  // most gifted
	RankingWished RankingType = "wished" // most wish-list adds
)

// RankingTypes lists the types in display order.
var RankingTypes = []RankingType{RankingWanted, RankingGiven, RankingWished}

var rankTypes = map[RankingType]string{
	RankingWanted: "MANY_WISH",
	RankingGiven:  "MANY_RECEIVE",
	RankingWished: "MANY_WISH_RECEIVE",
}

// RankType returns the API query value for r.
func (r RankingType) RankType() string {
	return rankTypes[r]
}

func (r RankingType) Label() string {
	switch r {
	case RankingGiven:
		return "많이 선물한"
	case RankingWished:
		return "위시로 받은"
	default:
		return "받고 싶어한"
	}
}

// ParseRankingType accepts the lower-case type name.
func ParseRankingType(s string) (RankingType, error) {
	r := RankingType(s)
	if _, ok := rankTypes[r]; !ok {
		return "", fmt.Errorf("unknown ranking type %q", s)
	}
	return r, nil
}
