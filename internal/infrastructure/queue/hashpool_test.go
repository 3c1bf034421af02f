package queue

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/rs/zerolog"

	"github.com/acquisitions/identity-api/internal/core/service"
)

func TestHashPool_RoundTrip(t *testing.T) {
	pool := NewHashPool(2, service.NewBcryptHasher(), zerolog.Nop())
	defer pool.Close()

	hash, err := pool.Hash(context.Background(), "Secret123")
	if err != nil {
		t.Fatalf("Hash returned error: %v", err)
	}

	ok, err := pool.Compare(context.Background(), "Secret123", hash)
	if err != nil {
		t.Fatalf("Compare returned error: %v", err)
	}
	if !ok {
		t.Fatalf("expected match")
	}

	ok, err = pool.Compare(context.Background(), "wrong", hash)
	if err != nil {
		t.Fatalf("Compare returned error: %v", err)
	}
	if ok {
		t.Fatalf("expected mismatch")
	}
}

func TestHashPool_ConcurrentCallers(t *testing.T) {
	pool := NewHashPool(4, service.NewBcryptHasher(), zerolog.Nop())
	defer pool.Close()

	var wg sync.WaitGroup
	errs := make(chan error, 8)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			hash, err := pool.Hash(context.Background(), "Secret123")
			if err != nil {
				errs <- err
				return
			}
			ok, err := pool.Compare(context.Background(), "Secret123", hash)
			if err != nil {
				errs <- err
				return
			}
			if !ok {
				errs <- errors.New("hash did not verify")
			}
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Fatalf("concurrent hashing failed: %v", err)
	}
}

func TestHashPool_CancelledContext(t *testing.T) {
	pool := NewHashPool(1, service.NewBcryptHasher(), zerolog.Nop())
	defer pool.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := pool.Hash(ctx, "Secret123"); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestHashPool_DefaultWorkerCount(t *testing.T) {
	pool := NewHashPool(0, service.NewBcryptHasher(), zerolog.Nop())
	defer pool.Close()

	if _, err := pool.Hash(context.Background(), "Secret123"); err != nil {
		t.Fatalf("pool with default workers failed: %v", err)
	}
}
