package events

import (
	"context"
	"sync"
)

// Noop drops everything it is given. Subscriptions never deliver and close on cancel.
type Noop struct{}

var _ Bus = Noop{}

func (Noop) Publish(ctx context.Context, topic string, event any) error { return nil }

func (Noop) Subscribe(topic string) (<-chan []byte, func(), error) {
	ch := make(chan []byte)
	var once sync.Once
	return ch, func() { once.Do(func() { close(ch) }) }, nil
}

func (Noop) Close() error { return nil }
