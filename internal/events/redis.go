package events

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/redis/go-redis/v9"
)

type RedisBus struct {
	pub *redis.Client
	sub *redis.Client
}

var _ Bus = (*RedisBus)(nil)

// NewRedisBus publishes on pub and opens subscriptions on sub. The clients
// are owned by the caller and are not closed by Close.
func NewRedisBus(pub, sub *redis.Client) *RedisBus {
	return &RedisBus{pub: pub, sub: sub}
}

func (b *RedisBus) Publish(ctx context.Context, topic string, event any) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshaling event: %w", err)
	}
	return b.pub.Publish(ctx, topic, data).Err()
}

func (b *RedisBus) Subscribe(topic string) (<-chan []byte, func(), error) {
	ctx := context.Background()

	ps := b.sub.Subscribe(ctx, topic)
	if _, err := ps.Receive(ctx); err != nil {
		ps.Close()
		return nil, nil, fmt.Errorf("subscribing to %s: %w", topic, err)
	}

	ch := make(chan []byte, 64)
	done := make(chan struct{})

	go func() {
		defer close(ch)
		msgs := ps.Channel()
		for {
			select {
			case <-done:
				return
			case msg, ok := <-msgs:
				if !ok {
					return
				}
				select {
				case ch <- []byte(msg.Payload):
				default:
					// Slow consumer; drop.
				}
			}
		}
	}()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			close(done)
			ps.Close()
		})
	}

	return ch, cancel, nil
}

func (b *RedisBus) Close() error {
	return nil
}
