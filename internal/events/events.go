// Package events carries check-in change notifications between API instances
// and the websocket hub. Redis pub/sub is the default transport; NATS is used
// when configured.
package events

import (
	"context"

	"github.com/google/uuid"
)

const (
	TypeCheckInCreated   = "checkin.created"
	TypeCheckInCancelled = "checkin.cancelled"
)

// TenantTopic is the subject every change to a tenant's check-ins is published on.
func TenantTopic(tenantID uuid.UUID) string {
	return "checkins." + tenantID.String()
}

type Publisher interface {
	Publish(ctx context.Context, topic string, event any) error
	Close() error
}

type Subscriber interface {
	// Subscribe delivers raw event payloads on the returned channel.
	// Call the returned cancel function to unsubscribe and close the channel.
	Subscribe(topic string) (<-chan []byte, func(), error)
	Close() error
}

// Bus is a transport that can both publish and subscribe.
type Bus interface {
	Publisher
	Subscriber
}
