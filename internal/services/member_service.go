package services

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"gymdesk_echo/internal/models"
	"gymdesk_echo/internal/subscription"
)

// MemberService owns every mutation of the member collection: registration,
// contact edits, deletion and payment posting. Reads go straight to the
// database or the snapshot; writes funnel through here so the derived end
// date and status stay consistent with the payment history.
type MemberService struct {
	db    *gorm.DB
	feed  *ChangeFeed
	cache *RedisCache
}

// NewMemberService creates a MemberService. feed and cache may be nil; the
// service then skips event publishing and cache invalidation.
func NewMemberService(db *gorm.DB, feed *ChangeFeed, cache *RedisCache) *MemberService {
	return &MemberService{db: db, feed: feed, cache: cache}
}

// NewMemberInput carries the fields supplied at registration time. End date,
// status and the initial payment are derived, never supplied.
type NewMemberInput struct {
	Name             string               `json:"name"`
	Email            string               `json:"email"`
	Phone            string               `json:"phone"`
	Address          string               `json:"address"`
	Gender           string               `json:"gender"`
	Age              *int                 `json:"age"`
	JoinDate         time.Time            `json:"join_date"`
	MembershipPlanID uint                 `json:"membership_plan_id"`
	PreferredMethod  models.PaymentMethod `json:"preferred_method"`
	ReferredByID     *uint                `json:"referred_by_id"`
	ReferralCode     string               `json:"referral_code"`
}

// UpdateMemberInput carries the mutable contact and profile fields. Plan,
// end date, status and payment history are not editable through here.
type UpdateMemberInput struct {
	Name            string               `json:"name"`
	Email           string               `json:"email"`
	Phone           string               `json:"phone"`
	Address         string               `json:"address"`
	Gender          string               `json:"gender"`
	Age             *int                 `json:"age"`
	PreferredMethod models.PaymentMethod `json:"preferred_method"`
}

// PaymentInput carries a payment to post against a member.
type PaymentInput struct {
	MemberID uint                 `json:"member_id"`
	Amount   float64              `json:"amount"`
	Date     time.Time            `json:"date"`
	Method   models.PaymentMethod `json:"method"`
	Status   models.PaymentStatus `json:"status"`
	Notes    string               `json:"notes"`
}

func validMethod(m models.PaymentMethod) bool {
	for _, v := range models.ValidPaymentMethods {
		if v == m {
			return true
		}
	}
	return false
}

func validStatus(s models.PaymentStatus) bool {
	for _, v := range models.ValidPaymentStatuses {
		if v == s {
			return true
		}
	}
	return false
}

// AddMember registers a member: it derives the subscription end date and
// status from the join date and plan duration, inserts the member together
// with a synthetic initial Paid payment, and publishes an insert event.
func (s *MemberService) AddMember(ctx context.Context, input NewMemberInput) (*models.Member, error) {
	if input.Name == "" {
		return nil, &ValidationError{Field: "name", Reason: "required"}
	}
	if input.Email == "" {
		return nil, &ValidationError{Field: "email", Reason: "required"}
	}
	if input.MembershipPlanID == 0 {
		return nil, &ValidationError{Field: "membership_plan_id", Reason: "required"}
	}

	var plan models.MembershipPlan
	if err := s.db.WithContext(ctx).First(&plan, input.MembershipPlanID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Resource: "membership plan", ID: input.MembershipPlanID}
		}
		return nil, &StoreError{Op: "fetch plan", Err: err}
	}
	if plan.DurationMonths <= 0 {
		return nil, &ValidationError{Field: "duration_months", Reason: "must be positive"}
	}

	now := time.Now()
	joinDate := input.JoinDate
	if joinDate.IsZero() {
		joinDate = now
	}

	method := input.PreferredMethod
	if method == "" {
		method = models.PaymentMethodCash
	}
	if !validMethod(method) {
		return nil, &ValidationError{Field: "preferred_method", Reason: "unknown payment method"}
	}

	endDate, status := subscription.Derive(joinDate, plan, now)

	member := models.Member{
		Name:                input.Name,
		Email:               input.Email,
		Phone:               input.Phone,
		Address:             input.Address,
		Gender:              input.Gender,
		Age:                 input.Age,
		JoinDate:            joinDate,
		MembershipPlanID:    plan.ID,
		SubscriptionEndDate: endDate,
		Status:              status,
		PreferredMethod:     method,
		ReferredByID:        input.ReferredByID,
		ReferralCode:        input.ReferralCode,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&member).Error; err != nil {
			return err
		}

		initial := models.Payment{
			MemberID: member.ID,
			Amount:   plan.Amount,
			Date:     joinDate,
			Method:   method,
			Status:   models.PaymentStatusPaid,
			Notes:    "Initial membership payment",
		}
		return tx.Create(&initial).Error
	})
	if err != nil {
		return nil, &StoreError{Op: "insert member", Err: err}
	}

	member.MembershipPlan = plan
	s.afterWrite(ctx, EventInsert, member)
	return &member, nil
}

// PostPayment appends a payment to the member's history and re-derives the
// subscription end date anchored at the payment date. Posting early shortens
// effective coverage and posting late leaves a gap; that follows the renewal
// policy in use, not the previous end date.
func (s *MemberService) PostPayment(ctx context.Context, input PaymentInput) (*models.Member, error) {
	if input.Amount < 0 {
		return nil, &ValidationError{Field: "amount", Reason: "must not be negative"}
	}
	if !validMethod(input.Method) {
		return nil, &ValidationError{Field: "method", Reason: "unknown payment method"}
	}
	if !validStatus(input.Status) {
		return nil, &ValidationError{Field: "status", Reason: "unknown payment status"}
	}

	var member models.Member
	err := s.db.WithContext(ctx).Preload("MembershipPlan").First(&member, input.MemberID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Resource: "member", ID: input.MemberID}
		}
		return nil, &StoreError{Op: "fetch member", Err: err}
	}

	now := time.Now()
	paymentDate := input.Date
	if paymentDate.IsZero() {
		paymentDate = now
	}

	endDate, status := subscription.Derive(paymentDate, member.MembershipPlan, now)

	payment := models.Payment{
		MemberID: member.ID,
		Amount:   input.Amount,
		Date:     paymentDate,
		Method:   input.Method,
		Status:   input.Status,
		Notes:    input.Notes,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&payment).Error; err != nil {
			return err
		}
		return tx.Model(&member).Updates(map[string]interface{}{
			"subscription_end_date": endDate,
			"status":                status,
		}).Error
	})
	if err != nil {
		return nil, &StoreError{Op: "insert payment", Err: err}
	}

	member.SubscriptionEndDate = endDate
	member.Status = status

	if err := s.db.WithContext(ctx).Order("id").Where("member_id = ?", member.ID).Find(&member.Payments).Error; err != nil {
		// The write succeeded; serve the member without history rather
		// than failing the whole call.
		member.Payments = nil
	}

	s.afterWrite(ctx, EventUpdate, member)
	return &member, nil
}

// UpdateMember edits the mutable contact fields. Subscription fields are
// only ever changed by payment posting or a status refresh.
func (s *MemberService) UpdateMember(ctx context.Context, id uint, input UpdateMemberInput) (*models.Member, error) {
	if input.Name == "" {
		return nil, &ValidationError{Field: "name", Reason: "required"}
	}
	if input.Email == "" {
		return nil, &ValidationError{Field: "email", Reason: "required"}
	}

	var member models.Member
	err := s.db.WithContext(ctx).Preload("MembershipPlan").First(&member, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Resource: "member", ID: id}
		}
		return nil, &StoreError{Op: "fetch member", Err: err}
	}

	member.Name = input.Name
	member.Email = input.Email
	member.Phone = input.Phone
	member.Address = input.Address
	member.Gender = input.Gender
	member.Age = input.Age
	if input.PreferredMethod != "" {
		if !validMethod(input.PreferredMethod) {
			return nil, &ValidationError{Field: "preferred_method", Reason: "unknown payment method"}
		}
		member.PreferredMethod = input.PreferredMethod
	}

	if err := s.db.WithContext(ctx).Save(&member).Error; err != nil {
		return nil, &StoreError{Op: "update member", Err: err}
	}

	s.afterWrite(ctx, EventUpdate, member)
	return &member, nil
}

// DeleteMember removes a member and cascades its payments.
func (s *MemberService) DeleteMember(ctx context.Context, id uint) error {
	var member models.Member
	err := s.db.WithContext(ctx).First(&member, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &NotFoundError{Resource: "member", ID: id}
		}
		return &StoreError{Op: "fetch member", Err: err}
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("member_id = ?", id).Delete(&models.Payment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&member).Error
	})
	if err != nil {
		return &StoreError{Op: "delete member", Err: err}
	}

	s.afterWrite(ctx, EventDelete, member)
	return nil
}

// RefreshStatuses reclassifies every member's stored status from its stored
// end date and persists the ones that changed. Members set to Pending by an
// admin are left alone. Returns the number of members updated.
func (s *MemberService) RefreshStatuses(ctx context.Context, now time.Time) (int, error) {
	var members []models.Member
	if err := s.db.WithContext(ctx).Find(&members).Error; err != nil {
		return 0, &StoreError{Op: "list members", Err: err}
	}

	updated := 0
	for i := range members {
		m := &members[i]
		if m.Status == models.MemberStatusPending {
			continue
		}

		fresh := subscription.Classify(m.SubscriptionEndDate, now)
		if fresh == m.Status {
			continue
		}

		if err := s.db.WithContext(ctx).Model(m).Update("status", fresh).Error; err != nil {
			return updated, &StoreError{Op: "update status", Err: err}
		}
		m.Status = fresh
		updated++
		s.afterWrite(ctx, EventUpdate, *m)
	}
	return updated, nil
}

// afterWrite publishes the change event and drops the cached dashboard
// stats. Both are best effort; the database is the source of truth.
func (s *MemberService) afterWrite(ctx context.Context, action EventAction, member models.Member) {
	if s.feed != nil {
		s.feed.Publish(ctx, action, member)
	}
	if s.cache != nil {
		_ = s.cache.Delete(ctx, StatsCacheKey)
	}
}
