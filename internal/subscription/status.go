// Package subscription holds the pure calculation core of the system:
// subscription end-date derivation, lifecycle classification, renewal
// selection and dashboard aggregation. Every function takes its inputs
// (including the reference time) explicitly and mutates nothing, so the
// HTTP layer, the worker and the tests all call the same code.
package subscription

import (
	"time"

	"gymdesk_echo/internal/models"
)

// ExpiringSoonWindow is how close to the end date a member is flagged as
// expiring soon. The boundary is exclusive: exactly 7 days out is Active.
const ExpiringSoonWindow = 7 * 24 * time.Hour

// AddMonths adds n calendar months to t, preserving the day of month where
// valid and clamping to the last day of the target month on overflow
// (2024-01-31 plus one month is 2024-02-29). time.Time.AddDate is not used
// because it normalizes overflow into the following month instead.
func AddMonths(t time.Time, n int) time.Time {
	year, month, day := t.Date()
	hour, min, sec := t.Clock()

	firstOfTarget := time.Date(year, month+time.Month(n), 1, hour, min, sec, t.Nanosecond(), t.Location())
	lastDay := daysIn(firstOfTarget.Year(), firstOfTarget.Month())
	if day > lastDay {
		day = lastDay
	}
	return time.Date(firstOfTarget.Year(), firstOfTarget.Month(), day, hour, min, sec, t.Nanosecond(), t.Location())
}

func daysIn(year int, month time.Month) int {
	// Day 0 of the next month is the last day of this month.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// Derive computes the subscription end date and status for a plan anchored
// at the given date. The anchor is the join date on registration and the
// payment date on renewal.
func Derive(anchor time.Time, plan models.MembershipPlan, now time.Time) (time.Time, models.MemberStatus) {
	endDate := AddMonths(anchor, plan.DurationMonths)
	return endDate, Classify(endDate, now)
}

// Classify maps a subscription end date to a lifecycle status relative to
// now. An end date equal to now counts as already expired.
func Classify(endDate, now time.Time) models.MemberStatus {
	if !endDate.After(now) {
		return models.MemberStatusExpired
	}
	if endDate.Sub(now) < ExpiringSoonWindow {
		return models.MemberStatusExpiringSoon
	}
	return models.MemberStatusActive
}
