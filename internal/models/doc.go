// Package models defines the core domain records for the chit fund ledger.
//
// # Aggregates
//
//   - Group: a rotating savings pool with a fixed value and duration
//   - Subscriber: a person who can be enrolled in one or more groups
//   - Enrollment: the membership relation binding a Subscriber to a Group
//     with an assigned chit number
//   - Installment: one month's scheduled collection/auction event of a Group
//   - Payment: money collected from a Subscriber against an Installment
//   - Dividend: the redistributed auction discount, one row per non-winner
//
// A Group owns its Installments and Enrollments; an Installment owns its
// Payments. Subscribers and Groups are independent aggregates referenced by
// id. Identifiers are UUID strings generated by the storage layer.
//
// # Design principles
//
//  1. Relationships use id strings instead of pointers to avoid cycles.
//  2. Calendar dates (start, due, join, auction) are day-precision time.Time
//     values; event timestamps (created, payment) are Unix seconds.
//  3. Rows coming back from storage are fully typed - no map-shaped records.
package models
