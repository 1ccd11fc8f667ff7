package domain_test

import (
	"testing"
	"time"

	"shiftware/internal/modules/billing/domain"
)

func TestPaidFollowsTimestampPresence(t *testing.T) {
	t.Parallel()
	unpaid := domain.Invoice{ID: 1}
	if unpaid.Paid() {
		t.Fatalf("invoice without paid timestamp reports paid")
	}
	paid := domain.Invoice{ID: 2, PaidAt: time.Date(2021, 9, 10, 12, 0, 0, 0, time.UTC)}
	if !paid.Paid() {
		t.Fatalf("invoice with paid timestamp reports unpaid")
	}
}

func TestCreateSpecValidate(t *testing.T) {
	t.Parallel()
	valid := domain.CreateSpec{ClientID: 10, ShiftIDs: []int64{1}}
	if err := valid.Validate(); err != nil {
		t.Fatalf("valid spec rejected: %v", err)
	}
	if err := (domain.CreateSpec{ShiftIDs: []int64{1}}).Validate(); err == nil {
		t.Fatalf("spec without client accepted")
	}
	if err := (domain.CreateSpec{ClientID: 10}).Validate(); err == nil {
		t.Fatalf("spec without shifts accepted")
	}
}
