package models

// Subscriber represents a person who can hold enrollments in chit groups.
// Subscribers exist independently of any group.
type Subscriber struct {
	// ID is the unique identifier for the subscriber (UUID format).
	ID string

	// Name is the subscriber's display name.
	Name string

	// PhoneNumber is unique across subscribers and doubles as the natural
	// lookup key.
	PhoneNumber string

	// Address is optional.
	Address string

	// CreatedDate is the Unix timestamp when the record was created.
	CreatedDate int64

	// IsActive marks the subscriber as live; listings only return active
	// rows so history survives removal.
	IsActive bool
}
