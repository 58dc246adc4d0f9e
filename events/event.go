// Package events carries the lifecycle notifications the facade emits on
// successful execute calls. Hosts subscribe to react (fulfil orders, send
// receipts) without polling the gateway.
package events

type Type string

const (
	AgreementCreated Type = "agreement.created"
	PaymentCompleted Type = "payment.completed"
	PaymentFailed    Type = "payment.failed"
)

type Event struct {
	Type    Type
	Payload any
}

type Bus interface {
	Publish(Event) error
}
