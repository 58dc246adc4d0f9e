// Package storage defines the transaction log sink. Writes are
// best-effort from the facade's point of view: a failing store never
// fails the business call.
package storage

import "time"

type TransactionLog struct {
	ID            int64
	Type          string
	PaymentID     string
	TrxID         string
	Amount        float64
	Status        string
	StatusCode    string
	StatusMessage string
	Response      []byte
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

type TransactionStore interface {
	Save(entry *TransactionLog) error
	FindByPaymentID(paymentID string) ([]*TransactionLog, error)
	FindByTrxID(trxID string) ([]*TransactionLog, error)
	Successful(limit int) ([]*TransactionLog, error)
	Recent(limit int) ([]*TransactionLog, error)
}

// Statuses a log entry can carry when the gateway reports no transaction
// status of its own.
const (
	StatusSuccess = "success"
	StatusFailed  = "failed"
)
