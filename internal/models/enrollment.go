package models

import "time"

// Enrollment binds one Subscriber to one Group with an assigned chit number.
// A subscriber appears at most once per group, and a chit number is unique
// within a group; both constraints are enforced by the store at insert time.
type Enrollment struct {
	// ID is the unique identifier for the enrollment (UUID format).
	ID string

	// SubscriberID references the enrolled subscriber.
	SubscriberID string

	// GroupID references the group joined.
	GroupID string

	// AssignedChitNumber is the subscriber's slot within the group (>= 1).
	AssignedChitNumber int

	// JoinDate is the calendar date the subscriber joined.
	JoinDate time.Time
}

// EnrollmentDetail is an enrollment joined with its subscriber, as rendered
// on the group roster.
type EnrollmentDetail struct {
	Enrollment
	SubscriberName  string
	SubscriberPhone string
}
