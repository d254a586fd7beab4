// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/foremenchoice/chitledger/internal/models"
)

// Error kinds surfaced by Store implementations. Callers distinguish them
// with errors.Is; anything else is an infrastructural persistence failure
// and should be treated as terminal for the request.
var (
	// ErrNotFound: the id does not resolve to a row. Distinct from bad
	// input so callers can tell "nothing to update" from a validation
	// failure.
	ErrNotFound = errors.New("record not found")

	// ErrDuplicate: a natural-key uniqueness violation (group name,
	// subscriber phone number, operator email).
	ErrDuplicate = errors.New("record already exists")

	// ErrConflict: a relationship uniqueness violation (subscriber already
	// enrolled, chit number already taken, winner not enrolled).
	ErrConflict = errors.New("conflicting record")

	// ErrReferential: a delete blocked by dependent rows while no cascade
	// policy is configured. Delete the dependents first or enable cascade.
	ErrReferential = errors.New("dependent records exist")

	// ErrAlreadyGenerated: the group already has its installment schedule.
	// Generation is intentionally not idempotent; repeat calls fail and
	// leave the original rows untouched.
	ErrAlreadyGenerated = errors.New("installments already generated")

	// ErrAlreadyRecorded: the installment's auction details were already
	// recorded. Re-recording fails rather than silently overwriting.
	ErrAlreadyRecorded = errors.New("auction already recorded")
)

// Store defines the persistence operations of the chit fund ledger. The
// abstraction keeps the service layer independent of the SQL dialect; every
// method runs as one atomic unit of work.
type Store interface {
	// Groups.
	CreateGroup(ctx context.Context, group *models.Group) error
	GetGroup(ctx context.Context, groupID string) (*models.Group, error)
	ListGroups(ctx context.Context) ([]*models.Group, error)
	UpdateGroup(ctx context.Context, group *models.Group) error
	// DeleteGroup removes the group and, when the store's cascade policy is
	// enabled, all owned enrollments, installments and payments in a single
	// transaction. Without cascade it fails with ErrReferential while owned
	// rows exist.
	DeleteGroup(ctx context.Context, groupID string) error

	// Subscribers.
	CreateSubscriber(ctx context.Context, sub *models.Subscriber) error
	GetSubscriber(ctx context.Context, subscriberID string) (*models.Subscriber, error)
	ListSubscribers(ctx context.Context) ([]*models.Subscriber, error)
	DeleteSubscriber(ctx context.Context, subscriberID string) error

	// Enrollments.
	CreateEnrollment(ctx context.Context, enr *models.Enrollment) error
	ListEnrollments(ctx context.Context, groupID string) ([]*models.EnrollmentDetail, error)
	IsEnrolled(ctx context.Context, groupID, subscriberID string) (bool, error)

	// Installments. CreateInstallments inserts the whole schedule in one
	// transaction: either every row is created or none is.
	CreateInstallments(ctx context.Context, installments []*models.Installment) error
	CountInstallments(ctx context.Context, groupID string) (int, error)
	ListInstallments(ctx context.Context, groupID string) ([]*models.Installment, error)
	GetInstallment(ctx context.Context, installmentID string) (*models.Installment, error)
	GetInstallmentByMonth(ctx context.Context, groupID string, monthNumber int) (*models.Installment, error)
	// RecordAuction sets the auction fields of an unconducted installment.
	RecordAuction(ctx context.Context, installmentID string, prizeAmount float64, winnerSubscriberID string) error

	// Payments.
	CreatePayment(ctx context.Context, payment *models.Payment) error
	ListPayments(ctx context.Context, installmentID string) ([]*models.PaymentDetail, error)
	// PaymentStatus sums payments per enrolled subscriber for the given
	// installment, ordered by assigned chit number.
	PaymentStatus(ctx context.Context, groupID, installmentID string) ([]*models.DuesStatus, error)

	// Dividends.
	CreateDividends(ctx context.Context, dividends []*models.Dividend) error
	ListDividends(ctx context.Context, groupID string) ([]*models.DividendDetail, error)

	// Operator accounts.
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)

	// Reporting.
	DashboardStats(ctx context.Context) (*models.DashboardStats, error)
	RecentPayments(ctx context.Context, limit int) ([]*models.RecentPayment, error)
	RecentAuctions(ctx context.Context, limit int) ([]*models.RecentAuction, error)
	ListDividendHistory(ctx context.Context) ([]*models.DividendDetail, error)

	// Close releases any resources held by the store.
	Close() error
}
