package metrics

// Tier is a subscription plan level.
type Tier string

const (
	TierFreemium Tier = "freemium"
	TierBasic    Tier = "basic"
	TierPremium  Tier = "premium"
)

// Tiers lists plan levels in display order.
var Tiers = []Tier{TierFreemium, TierBasic, TierPremium}

// SubscriptionBreakdown holds subscriber counts per tier.
type SubscriptionBreakdown struct {
	Freemium float64 `json:"freemium" yaml:"freemium"`
	Basic    float64 `json:"basic" yaml:"basic"`
	Premium  float64 `json:"premium" yaml:"premium"`
}

// Count returns the tier count, clamped to zero.
func (b SubscriptionBreakdown) Count(tier Tier) float64 {
	switch tier {
	case TierFreemium:
		return nonNegative(b.Freemium)
	case TierBasic:
		return nonNegative(b.Basic)
	case TierPremium:
		return nonNegative(b.Premium)
	}
	return 0
}

// Total sums every tier.
func (b SubscriptionBreakdown) Total() float64 {
	total := 0.0
	for _, tier := range Tiers {
		total += b.Count(tier)
	}
	return total
}

// TierShare is a tier count with its share of all subscribers.
type TierShare struct {
	Tier       Tier    `json:"tier" yaml:"tier"`
	Count      float64 `json:"count" yaml:"count"`
	Percentage float64 `json:"percentage" yaml:"percentage"`
}

// SubscriptionDistribution computes each tier's share independently. Shares
// are rounded one by one, so they may not add up to exactly 100.
func SubscriptionDistribution(breakdown SubscriptionBreakdown) map[Tier]TierShare {
	total := breakdown.Total()
	out := make(map[Tier]TierShare, len(Tiers))
	for _, tier := range Tiers {
		count := breakdown.Count(tier)
		out[tier] = TierShare{
			Tier:       tier,
			Count:      count,
			Percentage: PercentageOf(count, total, 1),
		}
	}
	return out
}

// DistributionList returns the distribution in display order.
func DistributionList(breakdown SubscriptionBreakdown) []TierShare {
	dist := SubscriptionDistribution(breakdown)
	list := make([]TierShare, 0, len(Tiers))
	for _, tier := range Tiers {
		list = append(list, dist[tier])
	}
	return list
}
