package events

import "time"

// Event is the contract for everything published on the bus.
type Event interface {
	// EventType returns the unique code for this event (e.g., "CHAT_HANDOFF_REQUESTED").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// BaseEvent is the plain implementation the constructors below build on.
type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

const (
	TypeHandoffRequested = "CHAT_HANDOFF_REQUESTED"
	TypeMessageReceived  = "CHAT_MESSAGE_RECEIVED"
)

// NewHandoffRequested signals that a conversation was parked for a human
// agent. Support tooling consumes this to open a ticket.
func NewHandoffRequested(tenantId, userId, lastMessage string) Event {
	return BaseEvent{
		Type: TypeHandoffRequested,
		Data: map[string]interface{}{
			"tenant_id":    tenantId,
			"user_id":      userId,
			"last_message": lastMessage,
		},
		OccurredAt: time.Now(),
	}
}

// NewMessageReceived records an inbound message for conversation analytics.
func NewMessageReceived(tenantId, userId string) Event {
	return BaseEvent{
		Type: TypeMessageReceived,
		Data: map[string]interface{}{
			"tenant_id": tenantId,
			"user_id":   userId,
		},
		OccurredAt: time.Now(),
	}
}
