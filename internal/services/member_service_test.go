package services

import (
	"context"
	"errors"
	"testing"

	"gymdesk_echo/internal/models"
)

// Validation runs before any store access, so these paths are exercised
// with no database behind the service.
func TestAddMemberValidation(t *testing.T) {
	svc := NewMemberService(nil, nil, nil)

	tests := []struct {
		name  string
		input NewMemberInput
		field string
	}{
		{
			name:  "missing name",
			input: NewMemberInput{Email: "a@b.c", MembershipPlanID: 1},
			field: "name",
		},
		{
			name:  "missing email",
			input: NewMemberInput{Name: "Asha", MembershipPlanID: 1},
			field: "email",
		},
		{
			name:  "missing plan",
			input: NewMemberInput{Name: "Asha", Email: "a@b.c"},
			field: "membership_plan_id",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.AddMember(context.Background(), tt.input)

			var ve *ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("got %v; want ValidationError", err)
			}
			if ve.Field != tt.field {
				t.Errorf("field = %q; want %q", ve.Field, tt.field)
			}
		})
	}
}

func TestPostPaymentValidation(t *testing.T) {
	svc := NewMemberService(nil, nil, nil)

	tests := []struct {
		name  string
		input PaymentInput
		field string
	}{
		{
			name:  "negative amount",
			input: PaymentInput{MemberID: 1, Amount: -5, Method: models.PaymentMethodCash, Status: models.PaymentStatusPaid},
			field: "amount",
		},
		{
			name:  "unknown method",
			input: PaymentInput{MemberID: 1, Amount: 100, Method: "Cheque", Status: models.PaymentStatusPaid},
			field: "method",
		},
		{
			name:  "unknown status",
			input: PaymentInput{MemberID: 1, Amount: 100, Method: models.PaymentMethodCash, Status: "Settled"},
			field: "status",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.PostPayment(context.Background(), tt.input)

			var ve *ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("got %v; want ValidationError", err)
			}
			if ve.Field != tt.field {
				t.Errorf("field = %q; want %q", ve.Field, tt.field)
			}
		})
	}
}

func TestErrorTaxonomyHelpers(t *testing.T) {
	notFound := &NotFoundError{Resource: "member", ID: 42}
	if !IsNotFound(notFound) {
		t.Errorf("IsNotFound(%v) = false; want true", notFound)
	}
	if IsValidation(notFound) {
		t.Errorf("IsValidation(%v) = true; want false", notFound)
	}

	wrapped := &StoreError{Op: "fetch member", Err: errors.New("connection reset")}
	if IsNotFound(wrapped) || IsValidation(wrapped) {
		t.Errorf("StoreError misclassified")
	}
	if wrapped.Unwrap() == nil {
		t.Errorf("StoreError.Unwrap() = nil; want inner error")
	}

	if got := notFound.Error(); got != "member 42 not found" {
		t.Errorf("Error() = %q; want %q", got, "member 42 not found")
	}
}
