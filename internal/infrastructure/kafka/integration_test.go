package kafka

import (
	"context"
	"net"
	"strconv"
	"testing"
	"time"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/farmcred/scoring/internal/domain/event"
	pkgkafka "github.com/farmcred/scoring/pkg/kafka"
	"github.com/farmcred/scoring/pkg/testutil"
)

func createTopic(t *testing.T, broker, topic string) {
	t.Helper()

	conn, err := kafkago.Dial("tcp", broker)
	require.NoError(t, err)
	defer conn.Close()

	controller, err := conn.Controller()
	require.NoError(t, err)
	ctrl, err := kafkago.Dial("tcp", net.JoinHostPort(controller.Host, strconv.Itoa(controller.Port)))
	require.NoError(t, err)
	defer ctrl.Close()

	require.NoError(t, ctrl.CreateTopics(kafkago.TopicConfig{
		Topic:             topic,
		NumPartitions:     1,
		ReplicationFactor: 1,
	}))
}

func TestEventPublisher_Integration(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	kc := testutil.NewKafkaContainer(ctx, t)
	const topic = "farmcred.credit-events"
	createTopic(t, kc.Brokers[0], topic)

	cfg := pkgkafka.Config{Brokers: kc.Brokers, ClientID: "scoring-test", ConsumerGroup: "scoring-test"}
	producer, err := pkgkafka.NewProducer(cfg)
	require.NoError(t, err)
	defer producer.Close()

	evt := completedEvent()
	require.NoError(t, NewEventPublisher(producer, topic, discardLogger()).Publish(ctx, evt))

	received := make(chan pkgkafka.Message, 1)
	consumeCtx, stop := context.WithCancel(ctx)
	consumer, err := pkgkafka.NewConsumer(cfg, topic, func(_ context.Context, msg pkgkafka.Message) error {
		received <- msg
		stop()
		return nil
	}, discardLogger())
	require.NoError(t, err)
	defer consumer.Close()

	done := make(chan error, 1)
	go func() { done <- consumer.Start(consumeCtx) }()

	select {
	case msg := <-received:
		assert.Equal(t, evt.AggregateID(), string(msg.Key))
		assert.Equal(t, event.EventTypeAssessmentCompleted, msg.Headers["event_type"])
	case <-ctx.Done():
		t.Fatal("timed out waiting for published event")
	}
	assert.NoError(t, <-done)
}
