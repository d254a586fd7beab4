package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/foremenchoice/chitledger/internal/models"
	"github.com/foremenchoice/chitledger/internal/storage"
	"github.com/foremenchoice/chitledger/internal/storage/sqlite"
)

func newTestStore(t *testing.T) storage.Store {
	t.Helper()

	tempDir, err := os.MkdirTemp("", "chitledger-svc-test-*")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(tempDir) })

	store, err := sqlite.New(filepath.Join(tempDir, "test.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	return store
}

func validGroupParams(name string) GroupParams {
	commission := 2.0
	return GroupParams{
		Name:                        name,
		Value:                       100000,
		NumberOfSubscribers:         4,
		Duration:                    4,
		StartDate:                   time.Date(2025, time.January, 31, 0, 0, 0, 0, time.UTC),
		ForemanCommissionPercentage: &commission,
	}
}

func TestGroupServiceValidation(t *testing.T) {
	svc := NewGroupService(newTestStore(t))
	ctx := context.Background()

	tests := []struct {
		name   string
		mutate func(*GroupParams)
	}{
		{"empty name", func(p *GroupParams) { p.Name = "" }},
		{"zero value", func(p *GroupParams) { p.Value = 0 }},
		{"negative value", func(p *GroupParams) { p.Value = -1 }},
		{"zero subscribers", func(p *GroupParams) { p.NumberOfSubscribers = 0 }},
		{"zero duration", func(p *GroupParams) { p.Duration = 0 }},
		{"zero start date", func(p *GroupParams) { p.StartDate = time.Time{} }},
		{"commission above cap", func(p *GroupParams) { c := 7.5; p.ForemanCommissionPercentage = &c }},
		{"negative commission", func(p *GroupParams) { c := -1.0; p.ForemanCommissionPercentage = &c }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params := validGroupParams("Validation Group")
			tt.mutate(&params)

			_, err := svc.Create(ctx, params)
			var ve *ValidationError
			if !errors.As(err, &ve) {
				t.Errorf("expected ValidationError, got %v", err)
			}
		})
	}
}

func TestGroupServiceCreateDerivesInstallment(t *testing.T) {
	svc := NewGroupService(newTestStore(t))
	ctx := context.Background()

	group, err := svc.Create(ctx, validGroupParams("Derived Group"))
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if group.InstallmentAmount != 25000 {
		t.Errorf("InstallmentAmount = %v, want 25000", group.InstallmentAmount)
	}
	if !group.IsActive {
		t.Error("expected new group to be active")
	}

	// update recomputes the derived amount
	params := validGroupParams("Derived Group")
	params.Duration = 5
	params.NumberOfSubscribers = 5
	updated, err := svc.Update(ctx, group.ID, params)
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if updated.InstallmentAmount != 20000 {
		t.Errorf("InstallmentAmount after update = %v, want 20000", updated.InstallmentAmount)
	}
}

func TestEnrollmentRules(t *testing.T) {
	store := newTestStore(t)
	groups := NewGroupService(store)
	subscribers := NewSubscriberService(store)
	enrollments := NewEnrollmentService(store)
	ctx := context.Background()

	group, err := groups.Create(ctx, validGroupParams("Enroll Rules"))
	if err != nil {
		t.Fatalf("Create group failed: %v", err)
	}
	sub, err := subscribers.Create(ctx, SubscriberParams{Name: "Meena", PhoneNumber: "9876700001"})
	if err != nil {
		t.Fatalf("Create subscriber failed: %v", err)
	}

	join := time.Date(2025, time.January, 5, 0, 0, 0, 0, time.UTC)

	if _, err := enrollments.Enroll(ctx, sub.ID, group.ID, 0, join); err == nil {
		t.Error("expected rejection of chit number below 1")
	}
	if _, err := enrollments.Enroll(ctx, sub.ID, "no-such-group", 1, join); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("expected ErrNotFound for unknown group, got %v", err)
	}
	if _, err := enrollments.Enroll(ctx, "no-such-subscriber", group.ID, 1, join); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("expected ErrNotFound for unknown subscriber, got %v", err)
	}

	if _, err := enrollments.Enroll(ctx, sub.ID, group.ID, 1, join); err != nil {
		t.Fatalf("Enroll failed: %v", err)
	}
	if _, err := enrollments.Enroll(ctx, sub.ID, group.ID, 2, join); !errors.Is(err, storage.ErrConflict) {
		t.Errorf("expected ErrConflict on double enrollment, got %v", err)
	}
}

// setupAuctionedGroup builds a group of three enrolled members with a full
// schedule and the first month's auction recorded.
func setupAuctionedGroup(t *testing.T, store storage.Store) (*models.Group, []*models.Subscriber, *models.Installment) {
	t.Helper()
	ctx := context.Background()

	groups := NewGroupService(store)
	subscribers := NewSubscriberService(store)
	enrollments := NewEnrollmentService(store)
	installments := NewInstallmentService(store)

	params := validGroupParams("Auctioned Group")
	params.NumberOfSubscribers = 3
	params.Duration = 3
	group, err := groups.Create(ctx, params)
	if err != nil {
		t.Fatalf("Create group failed: %v", err)
	}

	members := make([]*models.Subscriber, 0, 3)
	for i, name := range []string{"Ravi", "Meena", "Kumar"} {
		sub, err := subscribers.Create(ctx, SubscriberParams{
			Name:        name,
			PhoneNumber: fmt.Sprintf("98768%05d", i+1),
		})
		if err != nil {
			t.Fatalf("Create subscriber failed: %v", err)
		}
		if _, err := enrollments.Enroll(ctx, sub.ID, group.ID, i+1, group.StartDate); err != nil {
			t.Fatalf("Enroll failed: %v", err)
		}
		members = append(members, sub)
	}

	schedule, err := installments.Generate(ctx, group.ID)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if len(schedule) != 3 {
		t.Fatalf("expected 3 installments, got %d", len(schedule))
	}

	inst, err := installments.RecordAuction(ctx, schedule[0].ID, 95000, members[0].ID)
	if err != nil {
		t.Fatalf("RecordAuction failed: %v", err)
	}
	return group, members, inst
}

func TestInstallmentScheduleAndAuction(t *testing.T) {
	store := newTestStore(t)
	installments := NewInstallmentService(store)
	ctx := context.Background()

	group, members, inst := setupAuctionedGroup(t, store)

	// due dates clamp to month ends from the Jan 31 start
	schedule, err := installments.List(ctx, group.ID)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	wantDates := []time.Time{
		time.Date(2025, time.January, 31, 0, 0, 0, 0, time.UTC),
		time.Date(2025, time.February, 28, 0, 0, 0, 0, time.UTC),
		time.Date(2025, time.March, 31, 0, 0, 0, 0, time.UTC),
	}
	for i, want := range wantDates {
		if !schedule[i].DueDate.Equal(want) {
			t.Errorf("month %d due date = %v, want %v", i+1, schedule[i].DueDate, want)
		}
	}

	if _, err := installments.Generate(ctx, group.ID); !errors.Is(err, storage.ErrAlreadyGenerated) {
		t.Errorf("expected ErrAlreadyGenerated, got %v", err)
	}

	if _, err := installments.RecordAuction(ctx, inst.ID, 90000, members[0].ID); !errors.Is(err, storage.ErrAlreadyRecorded) {
		t.Errorf("expected ErrAlreadyRecorded, got %v", err)
	}

	// a subscriber outside the group cannot win
	outsider, err := NewSubscriberService(store).Create(ctx, SubscriberParams{Name: "Outsider", PhoneNumber: "9876809999"})
	if err != nil {
		t.Fatalf("Create subscriber failed: %v", err)
	}
	if _, err := installments.RecordAuction(ctx, schedule[1].ID, 90000, outsider.ID); !errors.Is(err, storage.ErrConflict) {
		t.Errorf("expected ErrConflict for non-member winner, got %v", err)
	}

	if _, err := installments.RecordAuction(ctx, schedule[1].ID, -1, members[1].ID); err == nil {
		t.Error("expected rejection of negative prize amount")
	}
}

func TestPaymentRules(t *testing.T) {
	store := newTestStore(t)
	payments := NewPaymentService(store)
	ctx := context.Background()

	group, members, inst := setupAuctionedGroup(t, store)

	if _, err := payments.Record(ctx, inst.ID, members[0].ID, 0, ""); err == nil {
		t.Error("expected rejection of zero amount")
	}
	if _, err := payments.Record(ctx, inst.ID, members[0].ID, -5, ""); err == nil {
		t.Error("expected rejection of negative amount")
	}

	// any positive amount is accepted, however small
	payment, err := payments.Record(ctx, inst.ID, members[0].ID, 0.01, "token amount")
	if err != nil {
		t.Fatalf("Record failed: %v", err)
	}
	if payment.PaymentDate == 0 {
		t.Error("expected payment date to be set")
	}

	statuses, err := payments.StatusForInstallment(ctx, group.ID, 1)
	if err != nil {
		t.Fatalf("StatusForInstallment failed: %v", err)
	}
	paid := 0
	for _, st := range statuses {
		if st.Status == "Paid" {
			paid++
		}
	}
	if paid != 1 {
		t.Errorf("expected exactly one Paid row, got %d of %d", paid, len(statuses))
	}
}

func TestDividendDistribution(t *testing.T) {
	store := newTestStore(t)
	dividends := NewDividendService(store)
	ctx := context.Background()

	group, members, _ := setupAuctionedGroup(t, store)

	// month 2 has no auction yet
	if _, err := dividends.Distribute(ctx, group.ID, 2, 5); !errors.Is(err, storage.ErrConflict) {
		t.Errorf("expected ErrConflict for unauctioned month, got %v", err)
	}

	rows, err := dividends.Distribute(ctx, group.ID, 1, 5)
	if err != nil {
		t.Fatalf("Distribute failed: %v", err)
	}

	// discount 5000 minus commission 2000 over the two non-winners
	if len(rows) != 2 {
		t.Fatalf("expected 2 dividend rows, got %d", len(rows))
	}
	for _, row := range rows {
		if math.Abs(row.DividendAmount-1500) > 0.0001 {
			t.Errorf("DividendAmount = %v, want 1500", row.DividendAmount)
		}
		if row.SubscriberID == members[0].ID {
			t.Error("winner must not receive a dividend")
		}
		if !row.AuctionDate.Equal(time.Date(2025, time.January, 31, 0, 0, 0, 0, time.UTC)) {
			t.Errorf("AuctionDate = %v, want the installment due date", row.AuctionDate)
		}
	}

	// a second distribution of the same month is refused
	if _, err := dividends.Distribute(ctx, group.ID, 1, 5); !errors.Is(err, storage.ErrConflict) {
		t.Errorf("expected ErrConflict on repeat distribution, got %v", err)
	}

	history, err := dividends.History(ctx, group.ID)
	if err != nil {
		t.Fatalf("History failed: %v", err)
	}
	if len(history) != 2 {
		t.Errorf("expected 2 history rows, got %d", len(history))
	}
}
