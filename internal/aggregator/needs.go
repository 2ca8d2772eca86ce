package aggregator

import "voice-trends-go/internal/types"

const (
	NeedBenefitDecision = "Benefit decision"
	NeedRoutineAdmin    = "Routine admin"
	NeedServiceFailure  = "Service failure"
	NeedOther           = "Other"
)

var needCategoryByIntent = map[string]string{
	"Address update":               NeedRoutineAdmin,
	"Tax form request":             NeedRoutineAdmin,
	"Pension balance inquiry":      NeedBenefitDecision,
	"Benefit start date":           NeedBenefitDecision,
	"Retirement estimate":          NeedBenefitDecision,
	"Spouse benefit":               NeedBenefitDecision,
	"Contribution change":          NeedBenefitDecision,
	"Transfer in/out":              NeedBenefitDecision,
	"Complaint - delay":            NeedServiceFailure,
	"Complaint - incorrect amount": NeedServiceFailure,
}

var needCategoryOrder = []string{NeedBenefitDecision, NeedRoutineAdmin, NeedServiceFailure, NeedOther}

// NeedCategory maps a primary intent to its strategic bucket.
func NeedCategory(intent string) string {
	if cat, ok := needCategoryByIntent[intent]; ok {
		return cat
	}
	return NeedOther
}

type NeedCategoryItem struct {
	Category           string   `json:"category"`
	Count              int      `json:"count"`
	Percentage         float64  `json:"percentage"`
	AvgMemberSentiment float64  `json:"avgMemberSentiment"`
	CallIDs            []string `json:"callIds"`
}

// NeedCategories breaks calls down by why members called. Categories with no
// calls are left out.
func NeedCategories(calls []types.CallRecord) []NeedCategoryItem {
	groups := GroupBy(calls, func(c types.CallRecord) string { return NeedCategory(c.PrimaryIntent) })
	byCat := make(map[string]Group, len(groups))
	for _, g := range groups {
		byCat[g.Key] = g
	}
	out := []NeedCategoryItem{}
	for _, cat := range needCategoryOrder {
		g, ok := byCat[cat]
		if !ok {
			continue
		}
		out = append(out, NeedCategoryItem{
			Category:           cat,
			Count:              g.Count(),
			Percentage:         RatePct(g.Count(), len(calls)),
			AvgMemberSentiment: Round1(Mean(g.Sum(memberSentiment), g.Count())),
			CallIDs:            g.CallIDs(),
		})
	}
	return out
}
