package token_test

import (
	"sync"
	"testing"
	"time"

	"github.com/sabitahmadumid/bkash-go/token"
)

func TestMemoryCache_SetGetDelete(t *testing.T) {
	c := token.NewMemoryCache()

	c.Set("k", "v", time.Minute)

	got, ok := c.Get("k")
	if !ok || got != "v" {
		t.Fatalf("expected (v, true), got (%s, %v)", got, ok)
	}

	c.Delete("k")
	if _, ok := c.Get("k"); ok {
		t.Fatal("expected key to be gone after delete")
	}

	// delete is idempotent
	c.Delete("k")
}

func TestMemoryCache_ExpiredValueIsAbsent(t *testing.T) {
	c := token.NewMemoryCache()

	c.Set("k", "v", 5*time.Millisecond)
	time.Sleep(20 * time.Millisecond)

	if _, ok := c.Get("k"); ok {
		t.Fatal("expected expired value to be treated as absent")
	}
}

func TestMemoryCache_ConcurrentAccess(t *testing.T) {
	c := token.NewMemoryCache()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.Set("k", "v", time.Minute)
			c.Get("k")
			c.Delete("k")
		}()
	}
	wg.Wait()
}
