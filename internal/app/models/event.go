package models

import "time"

type DomainEvent struct {
	ID            string                 `json:"id"`
	Type          string                 `json:"type"`
	AppointmentID string                 `json:"appointment_id,omitempty"`
	ActorID       string                 `json:"actor_id,omitempty"`
	OccurredAt    time.Time              `json:"occurred_at"`
	Payload       map[string]interface{} `json:"payload,omitempty"`
}
