package subscription

import (
	"testing"
	"time"

	"gymdesk_echo/internal/models"
)

func memberEnding(name string, end time.Time) models.Member {
	return models.Member{Name: name, SubscriptionEndDate: end}
}

func TestUpcomingRenewals(t *testing.T) {
	now := date(2024, time.June, 1)

	members := []models.Member{
		memberEnding("expired yesterday", now.Add(-24*time.Hour)),
		memberEnding("ends in ten days", now.Add(10*24*time.Hour)),
		memberEnding("ends today", now),
		memberEnding("ends at far boundary", now.Add(14*24*time.Hour)),
		memberEnding("ends in three days", now.Add(3*24*time.Hour)),
		memberEnding("beyond window", now.Add(15*24*time.Hour)),
	}

	result := UpcomingRenewals(members, 14, now)

	expected := []string{
		"ends today",
		"ends in three days",
		"ends in ten days",
		"ends at far boundary",
	}
	if len(result) != len(expected) {
		t.Fatalf("got %d members; want %d", len(result), len(expected))
	}
	for i, name := range expected {
		if result[i].Name != name {
			t.Errorf("result[%d] = %q; want %q", i, result[i].Name, name)
		}
	}
}

func TestUpcomingRenewalsExcludesRecentlyExpired(t *testing.T) {
	now := date(2024, time.June, 1)

	// Expired two days ago: within 14 days in absolute terms, still excluded.
	members := []models.Member{
		memberEnding("lapsed", now.Add(-2*24*time.Hour)),
	}

	if result := UpcomingRenewals(members, 14, now); len(result) != 0 {
		t.Errorf("got %d members; want 0", len(result))
	}
}

func TestUpcomingRenewalsStableOnTies(t *testing.T) {
	now := date(2024, time.June, 1)
	sameDay := now.Add(5 * 24 * time.Hour)

	members := []models.Member{
		memberEnding("first", sameDay),
		memberEnding("second", sameDay),
		memberEnding("third", sameDay),
	}

	result := UpcomingRenewals(members, 7, now)
	if len(result) != 3 {
		t.Fatalf("got %d members; want 3", len(result))
	}
	for i, name := range []string{"first", "second", "third"} {
		if result[i].Name != name {
			t.Errorf("result[%d] = %q; want %q (input order must hold on equal dates)", i, result[i].Name, name)
		}
	}
}

func TestUpcomingRenewalsEmpty(t *testing.T) {
	if result := UpcomingRenewals(nil, 14, time.Now()); len(result) != 0 {
		t.Errorf("got %d members; want 0", len(result))
	}
}
