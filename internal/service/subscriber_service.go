package service

import (
	"context"
	"log/slog"

	"github.com/foremenchoice/chitledger/internal/models"
	"github.com/foremenchoice/chitledger/internal/storage"
)

// SubscriberService manages the subscriber registry.
type SubscriberService struct {
	store storage.Store
}

// NewSubscriberService creates a new SubscriberService with the given
// storage backend.
func NewSubscriberService(store storage.Store) *SubscriberService {
	return &SubscriberService{store: store}
}

// SubscriberParams carries the caller-supplied fields for creating a
// subscriber.
type SubscriberParams struct {
	Name        string
	PhoneNumber string
	Address     string
}

// Create validates and persists a new subscriber. A phone number already on
// file fails with the duplicate error.
func (s *SubscriberService) Create(ctx context.Context, params SubscriberParams) (*models.Subscriber, error) {
	if params.Name == "" {
		return nil, invalid("name", "must not be empty")
	}
	if params.PhoneNumber == "" {
		return nil, invalid("phoneNumber", "must not be empty")
	}

	sub := &models.Subscriber{
		Name:        params.Name,
		PhoneNumber: params.PhoneNumber,
		Address:     params.Address,
		IsActive:    true,
	}
	if err := s.store.CreateSubscriber(ctx, sub); err != nil {
		slog.Error("CreateSubscriber failed", "phone", params.PhoneNumber, "error", err)
		return nil, err
	}

	slog.Info("Subscriber created", "subscriber_id", sub.ID, "name", sub.Name)
	return sub, nil
}

// Get retrieves a subscriber by ID.
func (s *SubscriberService) Get(ctx context.Context, subscriberID string) (*models.Subscriber, error) {
	if subscriberID == "" {
		return nil, invalid("subscriberId", "must not be empty")
	}
	return s.store.GetSubscriber(ctx, subscriberID)
}

// List retrieves all active subscribers.
func (s *SubscriberService) List(ctx context.Context) ([]*models.Subscriber, error) {
	return s.store.ListSubscribers(ctx)
}

// Delete removes a subscriber under the store's cascade policy.
func (s *SubscriberService) Delete(ctx context.Context, subscriberID string) error {
	if subscriberID == "" {
		return invalid("subscriberId", "must not be empty")
	}
	if err := s.store.DeleteSubscriber(ctx, subscriberID); err != nil {
		slog.Error("DeleteSubscriber failed", "subscriber_id", subscriberID, "error", err)
		return err
	}
	slog.Info("Subscriber deleted", "subscriber_id", subscriberID)
	return nil
}
