package metrics

// OverviewSnapshot is the backend's headline counters for the dashboard.
type OverviewSnapshot struct {
	TotalUsers              Number `json:"total_users"`
	ActiveSubscriptions     Number `json:"active_subscriptions"`
	TotalRevenue            Number `json:"total_revenue"`
	TotalViews              Number `json:"total_views"`
	TotalVideos             Number `json:"total_videos"`
	TotalCategories         Number `json:"total_categories"`
	UserGrowthPercentage    Number `json:"user_growth_percentage"`
	RevenueGrowthPercentage Number `json:"revenue_growth_percentage"`
}

// SubscriptionStats is the subscription-statistics payload.
type SubscriptionStats struct {
	Freemium             Number `json:"freemium"`
	Basic                Number `json:"basic"`
	Premium              Number `json:"premium"`
	TotalSubscriptions   Number `json:"total_subscriptions"`
	ActiveSubscriptions  Number `json:"active_subscriptions"`
	ExpiredSubscriptions Number `json:"expired_subscriptions"`
}

// Breakdown returns the per-tier counts.
func (s SubscriptionStats) Breakdown() SubscriptionBreakdown {
	return SubscriptionBreakdown{
		Freemium: s.Freemium.Float(),
		Basic:    s.Basic.Float(),
		Premium:  s.Premium.Float(),
	}
}

// ContentStat is one row of the top-content ranking.
type ContentStat struct {
	ID             string `json:"id" yaml:"id"`
	Title          string `json:"title" yaml:"title"`
	Views          Number `json:"views" yaml:"views"`
	Rating         Number `json:"rating" yaml:"rating"`
	CompletionRate Number `json:"completion_rate" yaml:"completion_rate"`
}

// Ratings collects the raw ratings of a ranking for AverageRating.
func Ratings(items []ContentStat) []any {
	out := make([]any, len(items))
	for i, item := range items {
		out[i] = item.Rating
	}
	return out
}
