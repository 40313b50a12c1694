// Package sink mirrors controller change events to Kafka so downstream
// consumers (analytics, projections) can follow the storefront without
// touching its state. Losing the mirror never affects the storefront core.
package sink

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/google/uuid"
	kafkaGo "github.com/segmentio/kafka-go"

	"github.com/egannguyen/go-storefront/internal/event"
)

// Envelope wraps a change event for the wire.
type Envelope struct {
	EventID    string      `json:"event_id"`
	Kind       event.Kind  `json:"kind"`
	OccurredAt time.Time   `json:"occurred_at"`
	Payload    event.Event `json:"payload"`
}

// Kafka forwards change events from the bus to a topic. The bus handler
// only enqueues; a background goroutine does the actual writes, so a slow
// broker never blocks a publish.
type Kafka struct {
	writer *kafkaGo.Writer
	queue  chan Envelope
	sub    event.Subscription
	bus    *event.Bus
	done   chan struct{}
}

// NewKafka attaches a mirror for all change kinds to the bus.
func NewKafka(bus *event.Bus, brokers []string, topic string) *Kafka {
	k := &Kafka{
		writer: &kafkaGo.Writer{
			Addr:     kafkaGo.TCP(brokers...),
			Topic:    topic,
			Balancer: &kafkaGo.LeastBytes{},
		},
		queue: make(chan Envelope, 256),
		bus:   bus,
		done:  make(chan struct{}),
	}

	k.sub = bus.SubscribeAll(func(ev event.Event) error {
		if !ev.Kind().IsChange() {
			return nil
		}
		env := Envelope{
			EventID:    uuid.New().String(),
			Kind:       ev.Kind(),
			OccurredAt: time.Now().UTC(),
			Payload:    ev,
		}
		select {
		case k.queue <- env:
		default:
			slog.Warn("Event mirror queue full, dropping event", "kind", ev.Kind())
		}
		return nil
	})

	go k.run()
	return k
}

func (k *Kafka) run() {
	defer close(k.done)
	for env := range k.queue {
		payload, err := json.Marshal(env)
		if err != nil {
			slog.Error("Failed to marshal event envelope", "kind", env.Kind, "err", err)
			continue
		}
		err = k.writer.WriteMessages(context.Background(), kafkaGo.Message{
			Key:   []byte(env.Kind),
			Value: payload,
		})
		if err != nil {
			slog.Error("Failed to mirror event", "kind", env.Kind, "err", err)
		}
	}
}

// Close detaches from the bus, drains the queue and closes the writer.
func (k *Kafka) Close() error {
	k.bus.Unsubscribe(k.sub)
	close(k.queue)
	<-k.done
	return k.writer.Close()
}
