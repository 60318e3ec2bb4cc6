package subscription

import (
	"testing"
	"time"

	"gymdesk_echo/internal/models"
)

func TestComputeStatsEmpty(t *testing.T) {
	stats := ComputeStats(nil, time.Now())

	if stats.TotalMembers != 0 || stats.ActiveMembers != 0 || stats.ExpiringSoon != 0 || stats.Expired != 0 {
		t.Errorf("counts = %+v; want all zero", stats)
	}
	if stats.MonthlyRevenue != 0 {
		t.Errorf("monthly revenue = %v; want 0", stats.MonthlyRevenue)
	}
}

func TestComputeStatsCountsByStoredStatus(t *testing.T) {
	members := []models.Member{
		{Status: models.MemberStatusActive},
		{Status: models.MemberStatusActive},
		{Status: models.MemberStatusExpiringSoon},
		{Status: models.MemberStatusExpired},
		{Status: models.MemberStatusPending},
	}

	stats := ComputeStats(members, time.Now())

	if stats.TotalMembers != 5 {
		t.Errorf("total = %d; want 5", stats.TotalMembers)
	}
	if stats.ActiveMembers != 2 {
		t.Errorf("active = %d; want 2", stats.ActiveMembers)
	}
	if stats.ExpiringSoon != 1 {
		t.Errorf("expiring soon = %d; want 1", stats.ExpiringSoon)
	}
	if stats.Expired != 1 {
		t.Errorf("expired = %d; want 1", stats.Expired)
	}
}

func TestComputeStatsMonthlyRevenue(t *testing.T) {
	now := date(2024, time.June, 15)

	members := []models.Member{
		{
			Status: models.MemberStatusActive,
			Payments: []models.Payment{
				{Amount: 1200, Date: date(2024, time.June, 1)}, // first of month, counts
				{Amount: 800, Date: date(2024, time.June, 10)}, // counts
				{Amount: 500, Date: date(2024, time.May, 31)},  // previous month
				{Amount: 999, Date: date(2024, time.June, 16)}, // after now
			},
		},
		{
			Status: models.MemberStatusExpired,
			Payments: []models.Payment{
				{Amount: 300, Date: now}, // exactly now, counts
			},
		},
	}

	stats := ComputeStats(members, now)

	if want := 1200.0 + 800.0 + 300.0; stats.MonthlyRevenue != want {
		t.Errorf("monthly revenue = %v; want %v", stats.MonthlyRevenue, want)
	}
}

func TestComputeStatsAfterMemberRemoval(t *testing.T) {
	now := date(2024, time.June, 15)

	members := []models.Member{
		{Status: models.MemberStatusActive, Payments: []models.Payment{{Amount: 1000, Date: date(2024, time.June, 2)}}},
		{Status: models.MemberStatusActive, Payments: []models.Payment{{Amount: 700, Date: date(2024, time.June, 3)}}},
	}

	before := ComputeStats(members, now)
	after := ComputeStats(members[:1], now)

	if before.MonthlyRevenue != 1700 {
		t.Errorf("revenue before removal = %v; want 1700", before.MonthlyRevenue)
	}
	if after.TotalMembers != 1 || after.MonthlyRevenue != 1000 {
		t.Errorf("after removal: total = %d, revenue = %v; want 1 and 1000", after.TotalMembers, after.MonthlyRevenue)
	}
}
