package inmemory

import (
	"sync"

	"github.com/sabitahmadumid/bkash-go/storage"
)

// TransactionRepository keeps the log in memory. Useful for tests and for
// hosts that want the logging hook without a database.
type TransactionRepository struct {
	mu      sync.RWMutex
	entries []*storage.TransactionLog
	nextID  int64
}

func NewTransactionRepository() *TransactionRepository {
	return &TransactionRepository{}
}

func (r *TransactionRepository) Save(entry *storage.TransactionLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	entry.ID = r.nextID
	r.entries = append(r.entries, entry)
	return nil
}

func (r *TransactionRepository) FindByPaymentID(paymentID string) ([]*storage.TransactionLog, error) {
	return r.filter(func(e *storage.TransactionLog) bool {
		return e.PaymentID == paymentID
	}, 0), nil
}

func (r *TransactionRepository) FindByTrxID(trxID string) ([]*storage.TransactionLog, error) {
	return r.filter(func(e *storage.TransactionLog) bool {
		return e.TrxID == trxID
	}, 0), nil
}

func (r *TransactionRepository) Successful(limit int) ([]*storage.TransactionLog, error) {
	return r.filter(func(e *storage.TransactionLog) bool {
		return e.Status == storage.StatusSuccess || e.Status == "Completed"
	}, limit), nil
}

func (r *TransactionRepository) Recent(limit int) ([]*storage.TransactionLog, error) {
	return r.filter(func(*storage.TransactionLog) bool { return true }, limit), nil
}

// filter walks entries newest-first.
func (r *TransactionRepository) filter(keep func(*storage.TransactionLog) bool, limit int) []*storage.TransactionLog {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*storage.TransactionLog
	for i := len(r.entries) - 1; i >= 0; i-- {
		if keep(r.entries[i]) {
			out = append(out, r.entries[i])
			if limit > 0 && len(out) == limit {
				break
			}
		}
	}
	return out
}
