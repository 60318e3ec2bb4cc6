package subscription

import (
	"sort"
	"time"

	"gymdesk_echo/internal/models"
)

// UpcomingRenewals returns the members whose subscription end date falls in
// the closed interval [now, now+windowDays], soonest first. Already-expired
// members are excluded; this is a renewing-soon view, not a needs-attention
// view. Members with equal end dates keep their input order.
func UpcomingRenewals(members []models.Member, windowDays int, now time.Time) []models.Member {
	cutoff := now.Add(time.Duration(windowDays) * 24 * time.Hour)

	var upcoming []models.Member
	for _, m := range members {
		end := m.SubscriptionEndDate
		if end.Before(now) || end.After(cutoff) {
			continue
		}
		upcoming = append(upcoming, m)
	}

	sort.SliceStable(upcoming, func(i, j int) bool {
		return upcoming[i].SubscriptionEndDate.Before(upcoming[j].SubscriptionEndDate)
	})
	return upcoming
}
