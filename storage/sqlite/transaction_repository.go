package sqlite

import (
	"database/sql"

	"github.com/sabitahmadumid/bkash-go/storage"
)

type TransactionRepository struct {
	db *sql.DB
}

func NewTransactionRepository(db *sql.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

func (r *TransactionRepository) Save(entry *storage.TransactionLog) error {
	res, err := r.db.Exec(
		`INSERT INTO bkash_transactions
		 (type, payment_id, trx_id, amount, status, status_code, status_message, response, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		entry.Type,
		entry.PaymentID,
		entry.TrxID,
		entry.Amount,
		entry.Status,
		entry.StatusCode,
		entry.StatusMessage,
		string(entry.Response),
		entry.CreatedAt,
		entry.UpdatedAt,
	)
	if err != nil {
		return err
	}

	id, err := res.LastInsertId()
	if err == nil {
		entry.ID = id
	}
	return nil
}

func (r *TransactionRepository) FindByPaymentID(paymentID string) ([]*storage.TransactionLog, error) {
	return r.query(
		`SELECT id, type, payment_id, trx_id, amount, status, status_code, status_message, response, created_at, updated_at
		 FROM bkash_transactions
		 WHERE payment_id = ?
		 ORDER BY created_at DESC`,
		paymentID,
	)
}

func (r *TransactionRepository) FindByTrxID(trxID string) ([]*storage.TransactionLog, error) {
	return r.query(
		`SELECT id, type, payment_id, trx_id, amount, status, status_code, status_message, response, created_at, updated_at
		 FROM bkash_transactions
		 WHERE trx_id = ?
		 ORDER BY created_at DESC`,
		trxID,
	)
}

func (r *TransactionRepository) Successful(limit int) ([]*storage.TransactionLog, error) {
	return r.query(
		`SELECT id, type, payment_id, trx_id, amount, status, status_code, status_message, response, created_at, updated_at
		 FROM bkash_transactions
		 WHERE status IN (?, ?)
		 ORDER BY created_at DESC
		 LIMIT ?`,
		storage.StatusSuccess, "Completed", limitOrAll(limit),
	)
}

func (r *TransactionRepository) Recent(limit int) ([]*storage.TransactionLog, error) {
	return r.query(
		`SELECT id, type, payment_id, trx_id, amount, status, status_code, status_message, response, created_at, updated_at
		 FROM bkash_transactions
		 ORDER BY created_at DESC
		 LIMIT ?`,
		limitOrAll(limit),
	)
}

// sqlite treats a negative LIMIT as unlimited.
func limitOrAll(limit int) int {
	if limit <= 0 {
		return -1
	}
	return limit
}

func (r *TransactionRepository) query(stmt string, args ...any) ([]*storage.TransactionLog, error) {
	rows, err := r.db.Query(stmt, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []*storage.TransactionLog
	for rows.Next() {
		var entry storage.TransactionLog
		var response string

		if err := rows.Scan(
			&entry.ID,
			&entry.Type,
			&entry.PaymentID,
			&entry.TrxID,
			&entry.Amount,
			&entry.Status,
			&entry.StatusCode,
			&entry.StatusMessage,
			&response,
			&entry.CreatedAt,
			&entry.UpdatedAt,
		); err != nil {
			return nil, err
		}

		entry.Response = []byte(response)
		entries = append(entries, &entry)
	}

	return entries, rows.Err()
}
