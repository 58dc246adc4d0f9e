package sqlite

import "database/sql"

func RunMigrations(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS bkash_transactions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			type TEXT NOT NULL,
			payment_id TEXT,
			trx_id TEXT,
			amount REAL,
			status TEXT,
			status_code TEXT,
			status_message TEXT,
			response TEXT,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL
		);`,

		`CREATE INDEX IF NOT EXISTS idx_bkash_transactions_payment_id
			ON bkash_transactions (payment_id);`,

		`CREATE INDEX IF NOT EXISTS idx_bkash_transactions_trx_id
			ON bkash_transactions (trx_id);`,
	}

	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}

	return nil
}
