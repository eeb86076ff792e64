package scheduling

import (
	"context"
	"sync"
	"testing"
)

func TestGetOrCreateCustomer_ConcurrentSamePhone(t *testing.T) {
	repo := newFakeRepo()
	repo.seedSalon(1, "UTC")

	var wg sync.WaitGroup
	ids := make([]uint, 4)
	errs := make([]error, 4)

	for i := range ids {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			c, err := repo.GetOrCreateCustomer(context.Background(), 1, "Dana", "555-0101", "dana@example.com")
			if err != nil {
				errs[i] = err
				return
			}
			ids[i] = c.ID
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			t.Fatalf("get-or-create failed: %v", err)
		}
	}
	for _, id := range ids[1:] {
		if id != ids[0] {
			t.Fatalf("expected every caller to land on one customer, got ids %v", ids)
		}
	}
	if len(repo.customers) != 1 {
		t.Fatalf("expected one customer row, got %d", len(repo.customers))
	}
}

func TestGetOrCreateCustomer_ScopedToSalon(t *testing.T) {
	repo := newFakeRepo()
	repo.seedSalon(1, "UTC")
	repo.seedSalon(2, "UTC")

	a, err := repo.GetOrCreateCustomer(context.Background(), 1, "Dana", "555-0101", "")
	if err != nil {
		t.Fatalf("get-or-create failed: %v", err)
	}
	b, err := repo.GetOrCreateCustomer(context.Background(), 2, "Dana", "555-0101", "")
	if err != nil {
		t.Fatalf("get-or-create failed: %v", err)
	}
	if a.ID == b.ID {
		t.Fatal("expected phone dedupe to be scoped per salon")
	}
}
