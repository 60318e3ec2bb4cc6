package services

import (
	"testing"
	"time"

	"gymdesk_echo/internal/models"
)

func snapshotMember(id uint, name string) models.Member {
	return models.Member{
		ID:     id,
		Name:   name,
		Status: models.MemberStatusActive,
	}
}

func TestApplyEventInsert(t *testing.T) {
	members := []models.Member{snapshotMember(1, "Asha")}

	result := applyEvent(members, MemberEvent{
		Action:   EventInsert,
		MemberID: 2,
		Member:   snapshotMember(2, "Ravi"),
	})

	if len(result) != 2 {
		t.Fatalf("got %d members; want 2", len(result))
	}
	if result[1].Name != "Ravi" {
		t.Errorf("result[1].Name = %q; want %q", result[1].Name, "Ravi")
	}

	// Duplicate delivery of the same insert must not add a second copy.
	result = applyEvent(result, MemberEvent{
		Action:   EventInsert,
		MemberID: 2,
		Member:   snapshotMember(2, "Ravi"),
	})
	if len(result) != 2 {
		t.Errorf("after duplicate insert: got %d members; want 2", len(result))
	}
}

func TestApplyEventUpdateKeepsPayments(t *testing.T) {
	existing := snapshotMember(1, "Asha")
	existing.Payments = []models.Payment{{ID: 10, MemberID: 1, Amount: 1200, Date: time.Now()}}
	existing.MembershipPlan = models.MembershipPlan{ID: 3, Name: "Monthly", DurationMonths: 1}

	updated := snapshotMember(1, "Asha Kumar")
	updated.Status = models.MemberStatusExpiringSoon

	result := applyEvent([]models.Member{existing}, MemberEvent{
		Action:   EventUpdate,
		MemberID: 1,
		Member:   updated,
	})

	if len(result) != 1 {
		t.Fatalf("got %d members; want 1", len(result))
	}
	if result[0].Name != "Asha Kumar" {
		t.Errorf("name = %q; want %q", result[0].Name, "Asha Kumar")
	}
	if result[0].Status != models.MemberStatusExpiringSoon {
		t.Errorf("status = %q; want %q", result[0].Status, models.MemberStatusExpiringSoon)
	}
	if len(result[0].Payments) != 1 {
		t.Errorf("payments dropped on update: got %d; want 1", len(result[0].Payments))
	}
	if result[0].MembershipPlan.Name != "Monthly" {
		t.Errorf("plan dropped on update: got %q; want %q", result[0].MembershipPlan.Name, "Monthly")
	}
}

func TestApplyEventUpdateUnknownMemberInserts(t *testing.T) {
	result := applyEvent(nil, MemberEvent{
		Action:   EventUpdate,
		MemberID: 7,
		Member:   snapshotMember(7, "Late arrival"),
	})

	if len(result) != 1 || result[0].ID != 7 {
		t.Errorf("update for unknown member should insert; got %v", result)
	}
}

func TestApplyEventDelete(t *testing.T) {
	members := []models.Member{
		snapshotMember(1, "Asha"),
		snapshotMember(2, "Ravi"),
		snapshotMember(3, "Meera"),
	}

	result := applyEvent(members, MemberEvent{Action: EventDelete, MemberID: 2})

	if len(result) != 2 {
		t.Fatalf("got %d members; want 2", len(result))
	}
	for _, m := range result {
		if m.ID == 2 {
			t.Errorf("member 2 still present after delete")
		}
	}

	// Deleting an unknown id is a no-op.
	result = applyEvent(result, MemberEvent{Action: EventDelete, MemberID: 99})
	if len(result) != 2 {
		t.Errorf("delete of unknown member changed the snapshot: %d members", len(result))
	}
}

func TestSnapshotStoreReturnsCopy(t *testing.T) {
	store := NewSnapshotStore()
	store.Prime([]models.Member{snapshotMember(1, "Asha")})

	first := store.Snapshot()
	first[0].Name = "mutated"

	second := store.Snapshot()
	if second[0].Name != "Asha" {
		t.Errorf("snapshot copy leaked a mutation: name = %q", second[0].Name)
	}
}
