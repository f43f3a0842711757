package registry

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hurricanecontrol/bulletin-notifier/internal/domain"
)

type memoryStore struct {
	subs      map[string]domain.Subscriber
	createErr error
	deleteErr error
}

func newMemoryStore() *memoryStore {
	return &memoryStore{subs: map[string]domain.Subscriber{}}
}

func (m *memoryStore) GetSubscriber(_ context.Context, contact string) (domain.Subscriber, error) {
	sub, ok := m.subs[contact]
	if !ok {
		return domain.Subscriber{}, ErrContactNotFound
	}
	return sub, nil
}

func (m *memoryStore) CreateSubscriber(_ context.Context, sub domain.Subscriber) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.subs[sub.Contact] = sub
	return nil
}

func (m *memoryStore) DeleteSubscriber(_ context.Context, contact string) error {
	if m.deleteErr != nil {
		return m.deleteErr
	}
	delete(m.subs, contact)
	return nil
}

type fakeGateway struct {
	subscriptions []Subscription
	subscribeErr  error
	listErr       error
	unsubscribed  []string
	subscribed    []string
}

func (f *fakeGateway) Subscribe(_ context.Context, topic, protocol, endpoint string) error {
	if f.subscribeErr != nil {
		return f.subscribeErr
	}
	f.subscribed = append(f.subscribed, topic+"/"+protocol+"/"+endpoint)
	return nil
}

func (f *fakeGateway) ListSubscriptions(_ context.Context, _ string) ([]Subscription, error) {
	return f.subscriptions, f.listErr
}

func (f *fakeGateway) Unsubscribe(_ context.Context, id string) error {
	f.unsubscribed = append(f.unsubscribed, id)
	return nil
}

func newTestService(store SubscriberStore, gateway SubscriptionGateway) *Service {
	return NewService(store, gateway, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestService_Register(t *testing.T) {
	t.Run("email contact", func(t *testing.T) {
		store := newMemoryStore()
		gateway := &fakeGateway{}
		svc := newTestService(store, gateway)

		sub, err := svc.Register(context.Background(), "ana@example.com", "Florida")
		require.NoError(t, err)

		assert.Equal(t, domain.ContactEmail, sub.Kind)
		assert.Equal(t, "Florida", sub.Location)
		assert.Contains(t, store.subs, "ana@example.com")
		require.Len(t, gateway.subscribed, 1)
		assert.Equal(t, "Florida-topic/email/ana@example.com", gateway.subscribed[0])
	})

	t.Run("phone contact uses sms protocol", func(t *testing.T) {
		store := newMemoryStore()
		gateway := &fakeGateway{}
		svc := newTestService(store, gateway)

		sub, err := svc.Register(context.Background(), "+1 939-555-0101", "Puerto Rico")
		require.NoError(t, err)

		assert.Equal(t, domain.ContactPhone, sub.Kind)
		require.Len(t, gateway.subscribed, 1)
		assert.Equal(t, "PuertoRico-topic/sms/+1 939-555-0101", gateway.subscribed[0])
	})

	t.Run("unknown location rejected before any side effect", func(t *testing.T) {
		store := newMemoryStore()
		gateway := &fakeGateway{}
		svc := newTestService(store, gateway)

		_, err := svc.Register(context.Background(), "ana@example.com", "Atlantis")
		require.ErrorIs(t, err, ErrUnknownLocation)
		assert.Empty(t, store.subs)
		assert.Empty(t, gateway.subscribed)
	})

	t.Run("duplicate contact rejected", func(t *testing.T) {
		store := newMemoryStore()
		gateway := &fakeGateway{}
		svc := newTestService(store, gateway)

		_, err := svc.Register(context.Background(), "ana@example.com", "Florida")
		require.NoError(t, err)

		_, err = svc.Register(context.Background(), "ana@example.com", "Puerto Rico")
		require.ErrorIs(t, err, ErrDuplicateContact)
	})

	t.Run("gateway failure surfaces but record is kept", func(t *testing.T) {
		store := newMemoryStore()
		gateway := &fakeGateway{subscribeErr: errors.New("gateway down")}
		svc := newTestService(store, gateway)

		_, err := svc.Register(context.Background(), "ana@example.com", "Florida")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "gateway subscribe")
		assert.Contains(t, store.subs, "ana@example.com")
	})
}

func TestService_Unsubscribe(t *testing.T) {
	register := func(t *testing.T, svc *Service, contact, location string) {
		t.Helper()
		_, err := svc.Register(context.Background(), contact, location)
		require.NoError(t, err)
	}

	t.Run("removes record and gateway subscription", func(t *testing.T) {
		store := newMemoryStore()
		gateway := &fakeGateway{}
		svc := newTestService(store, gateway)
		register(t, svc, "ana@example.com", "Florida")
		gateway.subscriptions = []Subscription{
			{ID: "sub-1", Protocol: "email", Endpoint: "other@example.com"},
			{ID: "sub-2", Protocol: "email", Endpoint: "ana@example.com"},
		}

		err := svc.Unsubscribe(context.Background(), "ana@example.com")
		require.NoError(t, err)

		assert.NotContains(t, store.subs, "ana@example.com")
		assert.Equal(t, []string{"sub-2"}, gateway.unsubscribed)
	})

	t.Run("phone match ignores formatting", func(t *testing.T) {
		store := newMemoryStore()
		gateway := &fakeGateway{}
		svc := newTestService(store, gateway)
		register(t, svc, "+1 939-555-0101", "Puerto Rico")
		gateway.subscriptions = []Subscription{
			{ID: "sub-9", Protocol: "sms", Endpoint: "19395550101"},
		}

		err := svc.Unsubscribe(context.Background(), "+1 939-555-0101")
		require.NoError(t, err)
		assert.Equal(t, []string{"sub-9"}, gateway.unsubscribed)
	})

	t.Run("stored location no longer tracked", func(t *testing.T) {
		store := newMemoryStore()
		store.subs["ana@example.com"] = domain.Subscriber{
			Contact:  "ana@example.com",
			Location: "Atlantis",
			Kind:     domain.ContactEmail,
		}
		svc := newTestService(store, &fakeGateway{})

		err := svc.Unsubscribe(context.Background(), "ana@example.com")
		require.ErrorIs(t, err, ErrUnknownLocation)
		assert.Contains(t, store.subs, "ana@example.com")
	})

	t.Run("unknown contact", func(t *testing.T) {
		svc := newTestService(newMemoryStore(), &fakeGateway{})

		err := svc.Unsubscribe(context.Background(), "nobody@example.com")
		require.ErrorIs(t, err, ErrContactNotFound)
	})

	t.Run("gateway listing failure still deletes record", func(t *testing.T) {
		store := newMemoryStore()
		gateway := &fakeGateway{}
		svc := newTestService(store, gateway)
		register(t, svc, "ana@example.com", "Florida")
		gateway.listErr = errors.New("gateway down")

		err := svc.Unsubscribe(context.Background(), "ana@example.com")
		require.NoError(t, err)
		assert.NotContains(t, store.subs, "ana@example.com")
	})

	t.Run("no matching gateway endpoint still deletes record", func(t *testing.T) {
		store := newMemoryStore()
		gateway := &fakeGateway{}
		svc := newTestService(store, gateway)
		register(t, svc, "ana@example.com", "Florida")

		err := svc.Unsubscribe(context.Background(), "ana@example.com")
		require.NoError(t, err)
		assert.NotContains(t, store.subs, "ana@example.com")
		assert.Empty(t, gateway.unsubscribed)
	})
}
