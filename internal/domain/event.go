package domain

import "time"

type EventType string

const (
	EventOfficeAdded   EventType = "office.added"
	EventOfficeRemoved EventType = "office.removed"
	EventOrderRecorded EventType = "order.recorded"
	EventInvoiceIssued EventType = "invoice.issued"
)

// Event é publicado depois que uma alteração foi gravada com sucesso
type Event struct {
	Type       EventType `json:"type"`
	OccurredAt time.Time `json:"occurred_at"`
	Payload    any       `json:"payload"`
}

func NewEvent(eventType EventType, payload any) Event {
	return Event{
		Type:       eventType,
		OccurredAt: time.Now().UTC(),
		Payload:    payload,
	}
}
