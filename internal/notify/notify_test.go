package notify

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/go-redis/redis/v8"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/appointment-scheduler/internal/logging"
	"github.com/BruksfildServices01/appointment-scheduler/internal/observability/metrics"
)

var sample = Event{
	ID:            "ev1",
	Type:          EventCreated,
	AppointmentID: "ap1",
	RecipientID:   "c1",
	RecipientRole: "customer",
	BusinessID:    "b1",
	OccurredAt:    time.Date(2026, 11, 2, 9, 0, 0, 0, time.UTC),
}

type recordingSink struct {
	mu     sync.Mutex
	events []Event
	err    error
	block  chan struct{}
}

func (s *recordingSink) Name() string { return "recording" }

func (s *recordingSink) Send(_ context.Context, ev Event) error {
	if s.block != nil {
		<-s.block
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, ev)
	return s.err
}

func (s *recordingSink) received() []Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Event(nil), s.events...)
}

func TestDispatcher_FansOutToEverySink(t *testing.T) {
	ok := &recordingSink{}
	failing := &recordingSink{err: errors.New("smtp down")}
	d := NewDispatcher(DispatcherConfig{QueueSize: 4}, logging.Discard().Logger, nil, failing, ok)

	require.NoError(t, d.Notify(context.Background(), sample))
	d.Close()

	assert.Len(t, ok.received(), 1, "a failing sink does not stop the others")
	assert.Len(t, failing.received(), 1)
	assert.ErrorIs(t, d.Notify(context.Background(), sample), ErrClosed)
}

func TestDispatcher_DropsWhenFull(t *testing.T) {
	gate := make(chan struct{})
	slow := &recordingSink{block: gate}
	m := metrics.NewNotifyMetrics(prometheus.NewRegistry())
	d := NewDispatcher(DispatcherConfig{QueueSize: 1}, logging.Discard().Logger, m, slow)

	var dropped int
	for i := 0; i < 5; i++ {
		if errors.Is(d.Notify(context.Background(), sample), ErrQueueFull) {
			dropped++
		}
	}
	close(gate)
	d.Close()

	assert.GreaterOrEqual(t, dropped, 3)
	assert.Equal(t, 5-dropped, len(slow.received()))
}

func TestRedisSink_Publishes(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	ctx := context.Background()
	sub := client.Subscribe(ctx, "events")
	defer sub.Close()
	_, err := sub.Receive(ctx)
	require.NoError(t, err)

	require.NoError(t, NewRedisSink(client, "events").Send(ctx, sample))

	select {
	case msg := <-sub.Channel():
		var got Event
		require.NoError(t, json.Unmarshal([]byte(msg.Payload), &got))
		assert.Equal(t, "ap1", got.AppointmentID)
		assert.Equal(t, EventCreated, got.Type)
	case <-time.After(2 * time.Second):
		t.Fatal("no message published")
	}
}

type fakeWriter struct {
	msgs []kafka.Message
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func TestKafkaSink_KeysByAppointment(t *testing.T) {
	w := &fakeWriter{}
	require.NoError(t, NewKafkaSink(w).Send(context.Background(), sample))

	require.Len(t, w.msgs, 1)
	assert.Equal(t, "ap1", string(w.msgs[0].Key))
	assert.Equal(t, "event_type", w.msgs[0].Headers[0].Key)
	assert.Equal(t, string(EventCreated), string(w.msgs[0].Headers[0].Value))
}

func TestSplitBrokers(t *testing.T) {
	assert.Equal(t, []string{"a:9092", "b:9092"}, SplitBrokers(" a:9092, ,b:9092"))
	assert.Empty(t, SplitBrokers(""))
}

type fakeS3 struct {
	key  string
	body []byte
}

func (f *fakeS3) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.key = *in.Key
	f.body, _ = io.ReadAll(in.Body)
	return &s3.PutObjectOutput{}, nil
}

func TestS3Sink_ArchivesByDay(t *testing.T) {
	f := &fakeS3{}
	require.NoError(t, NewS3Sink(f, "bucket").Send(context.Background(), sample))

	assert.Equal(t, "appointment-events/2026/11/02/ev1.json", f.key)
	var got Event
	require.NoError(t, json.Unmarshal(f.body, &got))
	assert.Equal(t, "c1", got.RecipientID)
}
