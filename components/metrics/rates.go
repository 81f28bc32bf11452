package metrics

// ConversionRate is the share of users holding a paid plan.
func ConversionRate(totalUsers, paidUserCount float64) float64 {
	if !finite(totalUsers) || totalUsers <= 0 {
		return 0
	}
	return PercentageOf(paidUserCount, totalUsers, 1)
}

// ChurnRate is the share of subscriptions that have expired.
func ChurnRate(totalSubscriptions, expiredSubscriptions float64) float64 {
	if !finite(totalSubscriptions) || totalSubscriptions <= 0 {
		return 0
	}
	return PercentageOf(expiredSubscriptions, totalSubscriptions, 1)
}

// PaidUsers counts basic and premium subscribers.
func PaidUsers(breakdown SubscriptionBreakdown) float64 {
	return breakdown.Count(TierBasic) + breakdown.Count(TierPremium)
}
