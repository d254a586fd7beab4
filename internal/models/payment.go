package models

// Payment records money collected from a subscriber against an installment.
// Multiple payments may target the same (installment, subscriber) pair; the
// amount paid for an installment is the sum across them. Over- and
// under-payment are permitted and left to reporting.
type Payment struct {
	// ID is the unique identifier for the payment (UUID format).
	ID string

	// InstallmentID references the installment being paid.
	InstallmentID string

	// SubscriberID references the paying subscriber.
	SubscriberID string

	// PaymentDate is the Unix timestamp when the payment was entered.
	PaymentDate int64

	// AmountPaid is the collected amount (> 0).
	AmountPaid float64

	// Notes is optional free text.
	Notes string
}

// PaymentDetail is a payment joined with the payer's name, as listed per
// installment.
type PaymentDetail struct {
	Payment
	SubscriberName string
}

// DuesStatus is one roster row of the per-installment dues report. Status is
// a binary classification: "Paid" when any amount has been collected for the
// installment, "Due" otherwise. There is no partial/overdue distinction.
type DuesStatus struct {
	EnrollmentID       string
	SubscriberID       string
	SubscriberName     string
	AssignedChitNumber int
	Status             string
	TotalPaid          float64
}
