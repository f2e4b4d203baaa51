package models

const (
	EventApplicationCreated = "application.created"
	EventContactCreated     = "contact.created"
)

// LeadCreatedEvent is published after a lead is stored so that notifications can be
// sent out of process. Exactly one of Application and ContactMessage is set.
type LeadCreatedEvent struct {
	Type           string          `json:"type"`
	Application    *Application    `json:"application,omitempty"`
	ContactMessage *ContactMessage `json:"contact_message,omitempty"`
	Timestamp      int64           `json:"timestamp"`
}
