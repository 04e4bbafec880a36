package outbox

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"rockalpatio/pkg/circuitbreaker"
	"rockalpatio/pkg/trace"
)

type fakeStore struct {
	pending []*Event
	sent    []int64
	failed  []int64
	getErr  error
}

func (s *fakeStore) GetPendingEvents(_ context.Context, limit int) ([]*Event, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	if len(s.pending) > limit {
		return s.pending[:limit], nil
	}
	return s.pending, nil
}

func (s *fakeStore) MarkAsSent(_ context.Context, id int64) error {
	s.sent = append(s.sent, id)
	return nil
}

func (s *fakeStore) MarkAsFailed(_ context.Context, id int64, _ int) error {
	s.failed = append(s.failed, id)
	return nil
}

type published struct {
	key     string
	body    string
	traceID string
}

type fakePublisher struct {
	failKeys map[string]bool
	out      []published
}

func (p *fakePublisher) Publish(ctx context.Context, key string, payload any) error {
	if p.failKeys[key] {
		return errors.New("broker down")
	}
	raw, _ := payload.(json.RawMessage)
	p.out = append(p.out, published{key: key, body: string(raw), traceID: trace.FromContext(ctx)})
	return nil
}

func TestProcessPendingPublishesAndMarks(t *testing.T) {
	store := &fakeStore{pending: []*Event{
		{ID: 1, RoutingKey: "clientes.created", Payload: json.RawMessage(`{"table":"clientes","id":7,"trace_id":"t-1"}`)},
		{ID: 2, RoutingKey: "tareas.updated", Payload: json.RawMessage(`{"table":"tareas","id":3}`)},
	}}
	pub := &fakePublisher{failKeys: map[string]bool{"tareas.updated": true}}

	d := NewDispatcher(store, pub, zap.NewNop())
	sent := d.ProcessPending(context.Background())

	assert.Equal(t, 1, sent)
	assert.Equal(t, []int64{1}, store.sent)
	assert.Equal(t, []int64{2}, store.failed)
	if assert.Len(t, pub.out, 1) {
		assert.Equal(t, "clientes.created", pub.out[0].key)
		assert.Equal(t, "t-1", pub.out[0].traceID)
		assert.JSONEq(t, `{"table":"clientes","id":7,"trace_id":"t-1"}`, pub.out[0].body)
	}
}

func TestProcessPendingInvalidPayloadIsFailed(t *testing.T) {
	store := &fakeStore{pending: []*Event{{ID: 9, RoutingKey: "objetivos.updated", Payload: json.RawMessage(`{broken`)}}}
	pub := &fakePublisher{}

	sent := NewDispatcher(store, pub, zap.NewNop()).ProcessPending(context.Background())

	assert.Zero(t, sent)
	assert.Equal(t, []int64{9}, store.failed)
	assert.Empty(t, pub.out)
}

func TestProcessPendingStoreError(t *testing.T) {
	store := &fakeStore{getErr: errors.New("db gone")}
	sent := NewDispatcher(store, &fakePublisher{}, zap.NewNop()).ProcessPending(context.Background())
	assert.Zero(t, sent)
}

func TestProcessPendingHonoursBatchSize(t *testing.T) {
	store := &fakeStore{pending: []*Event{
		{ID: 1, RoutingKey: "a", Payload: json.RawMessage(`{}`)},
		{ID: 2, RoutingKey: "b", Payload: json.RawMessage(`{}`)},
		{ID: 3, RoutingKey: "c", Payload: json.RawMessage(`{}`)},
	}}
	pub := &fakePublisher{}

	sent := NewDispatcher(store, pub, zap.NewNop()).WithBatchSize(2).ProcessPending(context.Background())

	assert.Equal(t, 2, sent)
	assert.Equal(t, []int64{1, 2}, store.sent)
}

func TestProcessPendingStopsWhenBrokerCircuitOpens(t *testing.T) {
	store := &fakeStore{pending: []*Event{
		{ID: 1, RoutingKey: "tareas.created", Payload: json.RawMessage(`{}`)},
		{ID: 2, RoutingKey: "tareas.created", Payload: json.RawMessage(`{}`)},
		{ID: 3, RoutingKey: "tareas.created", Payload: json.RawMessage(`{}`)},
	}}
	pub := &fakePublisher{failKeys: map[string]bool{"tareas.created": true}}
	breaker := circuitbreaker.New(circuitbreaker.Config{FailureThreshold: 1, SuccessThreshold: 1, Cooldown: time.Hour})

	sent := NewDispatcher(store, pub, zap.NewNop()).WithBreaker(breaker).ProcessPending(context.Background())

	assert.Zero(t, sent)
	assert.Equal(t, []int64{1}, store.failed, "only the event that reached the broker spends a retry")
	assert.Equal(t, circuitbreaker.StateOpen, breaker.State())
}

func TestRoutingKeys(t *testing.T) {
	assert.Equal(t, "clientes.created", CreatedKey("clientes"))
	assert.Equal(t, "tareas.updated", UpdatedKey("tareas"))
}
