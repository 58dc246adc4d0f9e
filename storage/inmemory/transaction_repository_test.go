package inmemory_test

import (
	"sync"
	"testing"
	"time"

	"github.com/sabitahmadumid/bkash-go/storage"
	"github.com/sabitahmadumid/bkash-go/storage/inmemory"
)

func entry(typ, paymentID, trxID, status string) *storage.TransactionLog {
	now := time.Now().UTC()
	return &storage.TransactionLog{
		Type:      typ,
		PaymentID: paymentID,
		TrxID:     trxID,
		Status:    status,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestTransactionRepository_SaveAndFind(t *testing.T) {
	repo := inmemory.NewTransactionRepository()

	e := entry("create_payment", "PAY1", "", storage.StatusSuccess)
	if err := repo.Save(e); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if e.ID == 0 {
		t.Error("expected Save to assign an id")
	}

	repo.Save(entry("execute_payment", "PAY1", "TRX1", "Completed"))
	repo.Save(entry("create_payment", "PAY2", "", storage.StatusFailed))

	byPayment, _ := repo.FindByPaymentID("PAY1")
	if len(byPayment) != 2 {
		t.Fatalf("expected 2 entries for PAY1, got %d", len(byPayment))
	}

	byTrx, _ := repo.FindByTrxID("TRX1")
	if len(byTrx) != 1 {
		t.Fatalf("expected 1 entry for TRX1, got %d", len(byTrx))
	}
}

func TestTransactionRepository_SuccessfulAndRecent(t *testing.T) {
	repo := inmemory.NewTransactionRepository()

	repo.Save(entry("create_payment", "PAY1", "", storage.StatusSuccess))
	repo.Save(entry("execute_payment", "PAY1", "TRX1", "Completed"))
	repo.Save(entry("create_payment", "PAY2", "", storage.StatusFailed))

	successful, _ := repo.Successful(0)
	if len(successful) != 2 {
		t.Fatalf("expected 2 successful entries, got %d", len(successful))
	}

	recent, _ := repo.Recent(2)
	if len(recent) != 2 {
		t.Fatalf("expected 2 recent entries, got %d", len(recent))
	}
	// newest first
	if recent[0].PaymentID != "PAY2" {
		t.Errorf("expected newest entry first, got %s", recent[0].PaymentID)
	}
}

func TestTransactionRepository_ConcurrentWrites(t *testing.T) {
	repo := inmemory.NewTransactionRepository()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			repo.Save(entry("create_payment", "PAY", "", storage.StatusSuccess))
		}()
	}
	wg.Wait()

	all, _ := repo.Recent(0)
	if len(all) != 10 {
		t.Fatalf("expected 10 entries, got %d", len(all))
	}
}
