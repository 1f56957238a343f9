package db

import (
	"context"
	"sync"
	"testing"
)

func TestClientBadURI(t *testing.T) {
	conn := New("not-a-mongodb-uri")
	ctx := context.Background()

	if _, err := conn.Client(ctx); err == nil {
		t.Fatal("expected error for malformed URI")
	}

	// The failed attempt must not be cached; a later call retries and
	// fails the same way instead of returning a stale nil client.
	if _, err := conn.Client(ctx); err == nil {
		t.Fatal("expected error on retry")
	}
}

func TestClientConcurrentFailures(t *testing.T) {
	conn := New("not-a-mongodb-uri")
	ctx := context.Background()

	var wg sync.WaitGroup
	errs := make([]error, 8)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = conn.Client(ctx)
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		if err == nil {
			t.Fatalf("goroutine %d: expected error", i)
		}
	}
}

func TestCloseWithoutConnect(t *testing.T) {
	conn := New("mongodb://localhost:27017/bored")

	if err := conn.Close(context.Background()); err != nil {
		t.Fatalf("close on unconnected handle should be a no-op: %v", err)
	}
}
