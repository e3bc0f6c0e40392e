package events

import "time"

// BaseEvent is the default Event carrier for ad-hoc publishes that do not
// go through the outbox.
type BaseEvent struct {
	Name     string
	DateTime time.Time
	Payload  interface{}
}

func NewBaseEvent(name string) *BaseEvent {
	return &BaseEvent{
		Name:     name,
		DateTime: time.Now(),
	}
}

func (e *BaseEvent) GetName() string                { return e.Name }
func (e *BaseEvent) GetDateTime() time.Time         { return e.DateTime }
func (e *BaseEvent) GetPayload() interface{}        { return e.Payload }
func (e *BaseEvent) SetPayload(payload interface{}) { e.Payload = payload }
