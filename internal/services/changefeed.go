package services

import (
	"context"
	"encoding/json"
	"log"
	"sync"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"gymdesk_echo/internal/models"
)

// MemberChannel is the Redis pub/sub channel carrying member change events.
const MemberChannel = "gymdesk:members"

// StatsCacheKey is the cache key for the dashboard stats summary.
const StatsCacheKey = "gymdesk:dashboard:stats"

// EventAction identifies the kind of member change
type EventAction string

const (
	EventInsert EventAction = "insert"
	EventUpdate EventAction = "update"
	EventDelete EventAction = "delete"
)

// MemberEvent is one member change delivered over the feed. Delete events
// carry only the member id; insert and update carry the full member.
type MemberEvent struct {
	ID       string        `json:"id"`
	Action   EventAction   `json:"action"`
	MemberID uint          `json:"member_id"`
	Member   models.Member `json:"member"`
}

// ChangeFeed publishes member change events over Redis pub/sub so every
// running process (server, worker, future instances) can keep its snapshot
// live without polling.
type ChangeFeed struct {
	cache *RedisCache
}

// NewChangeFeed creates a ChangeFeed on top of an existing Redis connection
func NewChangeFeed(cache *RedisCache) *ChangeFeed {
	return &ChangeFeed{cache: cache}
}

// Publish sends one member change event. Failures are logged, not returned:
// a missed event only delays the snapshot until the next full load.
func (f *ChangeFeed) Publish(ctx context.Context, action EventAction, member models.Member) {
	event := MemberEvent{
		ID:       uuid.New().String(),
		Action:   action,
		MemberID: member.ID,
	}
	if action != EventDelete {
		event.Member = member
	}

	data, err := json.Marshal(event)
	if err != nil {
		log.Printf("change feed: failed to encode event: %v", err)
		return
	}
	if err := f.cache.Client().Publish(ctx, MemberChannel, data).Err(); err != nil {
		log.Printf("change feed: failed to publish %s for member %d: %v", action, member.ID, err)
	}
}

// SnapshotStore holds the in-memory member snapshot the calculation core
// reads from. It is primed with a full load and then patched by change
// events; readers always get a copy, so the snapshot may be swapped between
// their reads without harm.
type SnapshotStore struct {
	mu      sync.RWMutex
	members []models.Member
}

// NewSnapshotStore creates an empty SnapshotStore
func NewSnapshotStore() *SnapshotStore {
	return &SnapshotStore{}
}

// LoadSnapshot reads all members with their plans and payment histories
func LoadSnapshot(db *gorm.DB) ([]models.Member, error) {
	var members []models.Member
	err := db.Preload("MembershipPlan").
		Preload("Payments", func(tx *gorm.DB) *gorm.DB { return tx.Order("payments.id") }).
		Order("members.id").
		Find(&members).Error
	if err != nil {
		return nil, &StoreError{Op: "load snapshot", Err: err}
	}
	return members, nil
}

// Prime replaces the snapshot wholesale
func (s *SnapshotStore) Prime(members []models.Member) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.members = members
}

// Snapshot returns a copy of the current member snapshot
func (s *SnapshotStore) Snapshot() []models.Member {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Member, len(s.members))
	copy(out, s.members)
	return out
}

// Apply patches the snapshot with one change event
func (s *SnapshotStore) Apply(event MemberEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.members = applyEvent(s.members, event)
}

// applyEvent returns the member list with the event applied. An update that
// carries no payment history or plan keeps what is already in the snapshot;
// member-row updates do not touch those tables.
func applyEvent(members []models.Member, event MemberEvent) []models.Member {
	switch event.Action {
	case EventInsert:
		for _, m := range members {
			if m.ID == event.Member.ID {
				return members // duplicate delivery
			}
		}
		return append(members, event.Member)

	case EventUpdate:
		for i, m := range members {
			if m.ID != event.MemberID {
				continue
			}
			updated := event.Member
			if updated.Payments == nil {
				updated.Payments = m.Payments
			}
			if updated.MembershipPlan.ID == 0 {
				updated.MembershipPlan = m.MembershipPlan
			}
			members[i] = updated
			return members
		}
		// Unknown member: treat as insert so a missed insert event heals.
		return append(members, event.Member)

	case EventDelete:
		for i, m := range members {
			if m.ID == event.MemberID {
				return append(members[:i], members[i+1:]...)
			}
		}
	}
	return members
}

// Listen primes the snapshot from the database and then follows the change
// feed until ctx is cancelled. Undecodable events trigger a full reload.
func (s *SnapshotStore) Listen(ctx context.Context, db *gorm.DB, cache *RedisCache) error {
	members, err := LoadSnapshot(db)
	if err != nil {
		return err
	}
	s.Prime(members)
	log.Printf("snapshot primed with %d members", len(members))

	pubsub := cache.Client().Subscribe(ctx, MemberChannel)
	defer pubsub.Close()

	ch := pubsub.Channel()
	for {
		select {
		case msg, ok := <-ch:
			if !ok {
				return nil
			}
			var event MemberEvent
			if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
				log.Printf("change feed: undecodable event, reloading snapshot: %v", err)
				if members, err := LoadSnapshot(db); err == nil {
					s.Prime(members)
				}
				continue
			}
			s.Apply(event)
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}
