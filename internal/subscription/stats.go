package subscription

import (
	"time"

	"gymdesk_echo/internal/models"
)

// DashboardStats is the dashboard summary. It is recomputed on demand and
// never persisted.
type DashboardStats struct {
	TotalMembers   int     `json:"total_members"`
	ActiveMembers  int     `json:"active_members"`
	ExpiringSoon   int     `json:"expiring_soon"`
	Expired        int     `json:"expired"`
	MonthlyRevenue float64 `json:"monthly_revenue"`
}

// ComputeStats folds the member snapshot into dashboard statistics. The
// status counts trust the stored Status field; callers that need fresh
// counts run a status refresh first. MonthlyRevenue is month to date: every
// payment dated within [first of the current month, now] counts, across all
// members.
func ComputeStats(members []models.Member, now time.Time) DashboardStats {
	startOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	stats := DashboardStats{TotalMembers: len(members)}
	for _, m := range members {
		switch m.Status {
		case models.MemberStatusActive:
			stats.ActiveMembers++
		case models.MemberStatusExpiringSoon:
			stats.ExpiringSoon++
		case models.MemberStatusExpired:
			stats.Expired++
		}

		for _, p := range m.Payments {
			if p.Date.Before(startOfMonth) || p.Date.After(now) {
				continue
			}
			stats.MonthlyRevenue += p.Amount
		}
	}
	return stats
}
