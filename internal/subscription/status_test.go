package subscription

import (
	"testing"
	"time"

	"gymdesk_echo/internal/models"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestAddMonths(t *testing.T) {
	tests := []struct {
		name     string
		start    time.Time
		months   int
		expected time.Time
	}{
		{
			name:     "plain month",
			start:    date(2024, time.March, 15),
			months:   1,
			expected: date(2024, time.April, 15),
		},
		{
			name:     "leap year clamp",
			start:    date(2024, time.January, 31),
			months:   1,
			expected: date(2024, time.February, 29),
		},
		{
			name:     "non-leap year clamp",
			start:    date(2023, time.January, 31),
			months:   1,
			expected: date(2023, time.February, 28),
		},
		{
			name:     "31st to 30-day month",
			start:    date(2024, time.March, 31),
			months:   1,
			expected: date(2024, time.April, 30),
		},
		{
			name:     "year rollover",
			start:    date(2024, time.November, 15),
			months:   3,
			expected: date(2025, time.February, 15),
		},
		{
			name:     "twelve months",
			start:    date(2024, time.February, 29),
			months:   12,
			expected: date(2025, time.February, 28),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := AddMonths(tt.start, tt.months)
			if !result.Equal(tt.expected) {
				t.Errorf("AddMonths(%v, %d) = %v; want %v", tt.start, tt.months, result, tt.expected)
			}
		})
	}
}

func TestClassify(t *testing.T) {
	now := date(2024, time.June, 15)

	tests := []struct {
		name     string
		endDate  time.Time
		expected models.MemberStatus
	}{
		{
			name:     "one day past",
			endDate:  now.Add(-24 * time.Hour),
			expected: models.MemberStatusExpired,
		},
		{
			name:     "exactly now counts as expired",
			endDate:  now,
			expected: models.MemberStatusExpired,
		},
		{
			name:     "six days left",
			endDate:  now.Add(6 * 24 * time.Hour),
			expected: models.MemberStatusExpiringSoon,
		},
		{
			name:     "just inside the soon window",
			endDate:  now.Add(7*24*time.Hour - time.Second),
			expected: models.MemberStatusExpiringSoon,
		},
		{
			name:     "exactly seven days is active",
			endDate:  now.Add(7 * 24 * time.Hour),
			expected: models.MemberStatusActive,
		},
		{
			name:     "eight days left",
			endDate:  now.Add(8 * 24 * time.Hour),
			expected: models.MemberStatusActive,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Classify(tt.endDate, now)
			if result != tt.expected {
				t.Errorf("Classify(%v, %v) = %q; want %q", tt.endDate, now, result, tt.expected)
			}

			// Classify is pure: a second call must agree with the first.
			if again := Classify(tt.endDate, now); again != result {
				t.Errorf("Classify not idempotent: first %q, second %q", result, again)
			}
		})
	}
}

func TestDerive(t *testing.T) {
	plan := models.MembershipPlan{Name: "Monthly", DurationMonths: 1, Amount: 1200}

	// Member joins 2024-01-01 on a 1-month plan; 27 days later the
	// subscription is about to lapse.
	now := date(2024, time.January, 28)
	endDate, status := Derive(date(2024, time.January, 1), plan, now)

	if !endDate.Equal(date(2024, time.February, 1)) {
		t.Errorf("end date = %v; want 2024-02-01", endDate)
	}
	if status != models.MemberStatusExpiringSoon {
		t.Errorf("status = %q; want %q", status, models.MemberStatusExpiringSoon)
	}

	// A renewal payment dated 2024-02-01 pushes the end date one plan
	// duration forward from the payment date.
	endDate, status = Derive(date(2024, time.February, 1), plan, now)
	if !endDate.Equal(date(2024, time.March, 1)) {
		t.Errorf("renewed end date = %v; want 2024-03-01", endDate)
	}
	if status != models.MemberStatusActive {
		t.Errorf("renewed status = %q; want %q", status, models.MemberStatusActive)
	}
}
