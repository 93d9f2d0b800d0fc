// Package mqtt publishes heating actions to a broker, with a fake for tests
// and a no-op for deployments without one.
package mqtt

import (
	"time"

	json "github.com/goccy/go-json"
)

// DefaultTopic carries one message per device command issued by the scheduler.
const DefaultTopic = "heating/scheduler/actions"

// Action is a device command that was applied successfully.
type Action struct {
	Timestamp time.Time
	EntityID  string
	Action    string // TURN_ON or TURN_OFF
	Desired   string // ON or OFF
}

// Publisher publishes actions. Publish errors must not stop the caller.
type Publisher interface {
	Publish(a Action) error
	Close() error
}

// Payload is the wire shape of an action message.
type Payload struct {
	Heating HeatingPayload `json:"heating"`
}

type HeatingPayload struct {
	Timestamp string `json:"timestamp"`
	EntityID  string `json:"entity_id"`
	Action    string `json:"action"`
	Desired   string `json:"desired"`
}

// FormatPayload renders a as JSON with an RFC 3339 UTC timestamp.
func FormatPayload(a Action) ([]byte, error) {
	return json.Marshal(Payload{
		Heating: HeatingPayload{
			Timestamp: a.Timestamp.UTC().Format(time.RFC3339),
			EntityID:  a.EntityID,
			Action:    a.Action,
			Desired:   a.Desired,
		},
	})
}

// NoopPublisher drops everything.
type NoopPublisher struct{}

func (NoopPublisher) Publish(Action) error { return nil }
func (NoopPublisher) Close() error         { return nil }
