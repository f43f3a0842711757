// Package registry manages notification subscribers: who receives warnings
// for which location, and the matching subscriptions at the delivery gateway.
package registry

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/hurricanecontrol/bulletin-notifier/internal/domain"
)

var (
	// ErrUnknownLocation rejects registrations for a location that is not tracked.
	ErrUnknownLocation = errors.New("unknown location")
	// ErrDuplicateContact rejects a second registration of the same contact.
	ErrDuplicateContact = errors.New("contact already registered")
	// ErrContactNotFound reports an unsubscribe for a contact never registered.
	ErrContactNotFound = errors.New("contact not registered")
)

// SubscriberStore persists the subscriber records of this service.
type SubscriberStore interface {
	GetSubscriber(ctx context.Context, contact string) (domain.Subscriber, error)
	CreateSubscriber(ctx context.Context, sub domain.Subscriber) error
	DeleteSubscriber(ctx context.Context, contact string) error
}

// Subscription is a delivery endpoint registered at the gateway.
type Subscription struct {
	ID       string `json:"id"`
	Protocol string `json:"protocol"`
	Endpoint string `json:"endpoint"`
}

// SubscriptionGateway manages the delivery subscriptions that fan
// notifications out to email and SMS endpoints.
type SubscriptionGateway interface {
	Subscribe(ctx context.Context, topic, protocol, endpoint string) error
	ListSubscriptions(ctx context.Context, topic string) ([]Subscription, error)
	Unsubscribe(ctx context.Context, id string) error
}

// Service implements registration and unsubscription against a store and
// a gateway.
type Service struct {
	store   SubscriberStore
	gateway SubscriptionGateway
	logger  *slog.Logger
}

// NewService wires a registry Service.
func NewService(store SubscriberStore, gateway SubscriptionGateway, logger *slog.Logger) *Service {
	return &Service{store: store, gateway: gateway, logger: logger}
}

// Register records a new subscriber and creates the matching gateway
// subscription. The contact kind is inferred from its shape. Registering a
// contact twice returns ErrDuplicateContact; an untracked location returns
// ErrUnknownLocation.
func (s *Service) Register(ctx context.Context, contact, location string) (domain.Subscriber, error) {
	loc, ok := domain.LocationByName(location)
	if !ok {
		return domain.Subscriber{}, ErrUnknownLocation
	}

	if _, err := s.store.GetSubscriber(ctx, contact); err == nil {
		return domain.Subscriber{}, ErrDuplicateContact
	} else if !errors.Is(err, ErrContactNotFound) {
		return domain.Subscriber{}, fmt.Errorf("look up subscriber: %w", err)
	}

	sub := domain.Subscriber{
		Contact:   contact,
		Location:  loc.Name,
		Kind:      domain.KindOfContact(contact),
		CreatedAt: domain.Now(),
	}
	if err := s.store.CreateSubscriber(ctx, sub); err != nil {
		if errors.Is(err, ErrDuplicateContact) {
			return domain.Subscriber{}, ErrDuplicateContact
		}
		return domain.Subscriber{}, fmt.Errorf("create subscriber: %w", err)
	}

	if err := s.gateway.Subscribe(ctx, loc.Topic, sub.Kind.Protocol(), contact); err != nil {
		// The record is kept: a later unsubscribe still cleans it up, and
		// the operator can reconcile the gateway side.
		return domain.Subscriber{}, fmt.Errorf("gateway subscribe: %w", err)
	}

	s.logger.Info("subscriber registered",
		"location", loc.Name,
		"protocol", sub.Kind.Protocol())
	return sub, nil
}

// Unsubscribe removes a subscriber. The stored record is always deleted once
// the contact and its location check out; removal of the gateway subscription
// is best effort.
func (s *Service) Unsubscribe(ctx context.Context, contact string) error {
	sub, err := s.store.GetSubscriber(ctx, contact)
	if err != nil {
		if errors.Is(err, ErrContactNotFound) {
			return ErrContactNotFound
		}
		return fmt.Errorf("look up subscriber: %w", err)
	}

	loc, ok := domain.LocationByName(sub.Location)
	if !ok {
		return ErrUnknownLocation
	}

	s.removeGatewaySubscription(ctx, sub, loc)

	if err := s.store.DeleteSubscriber(ctx, contact); err != nil {
		return fmt.Errorf("delete subscriber: %w", err)
	}

	s.logger.Info("subscriber removed", "location", sub.Location)
	return nil
}

func (s *Service) removeGatewaySubscription(ctx context.Context, sub domain.Subscriber, loc domain.TrackedLocation) {
	subs, err := s.gateway.ListSubscriptions(ctx, loc.Topic)
	if err != nil {
		s.logger.Warn("list gateway subscriptions failed",
			"topic", loc.Topic,
			"error", err)
		return
	}

	id, found := findEndpoint(subs, sub)
	if !found {
		s.logger.Warn("no gateway subscription matched contact", "topic", loc.Topic)
		return
	}

	if err := s.gateway.Unsubscribe(ctx, id); err != nil {
		s.logger.Warn("gateway unsubscribe failed", "id", id, "error", err)
	}
}

// findEndpoint matches a stored contact against gateway endpoints. Email
// endpoints match exactly; phone endpoints match on digits only, so stored
// and gateway formatting may differ.
func findEndpoint(subs []Subscription, sub domain.Subscriber) (string, bool) {
	for _, gw := range subs {
		switch sub.Kind {
		case domain.ContactEmail:
			if gw.Protocol == "email" && gw.Endpoint == sub.Contact {
				return gw.ID, true
			}
		case domain.ContactPhone:
			if gw.Protocol == "sms" && domain.NormalizePhone(gw.Endpoint) == domain.NormalizePhone(sub.Contact) {
				return gw.ID, true
			}
		}
	}
	return "", false
}
