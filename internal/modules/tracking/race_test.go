// README: Concurrency tests; assignment races must resolve to exactly one winner.
package tracking

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"annadaan/internal/types"
)

// Two donations racing for the same volunteer: the second must observe
// isAvailable=false and fail, never double-book.
func TestConcurrentAssign_SameVolunteer(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	extra, err := svc.AddDonation(ctx, NewDonation{
		DonorName:    "Anand Bhavan",
		FoodQuantity: "10-25 people",
		Location:     types.Point{Lat: 28.64, Lng: 77.24},
		ExpiryTime:   time.Now().Add(2 * time.Hour),
	})
	if err != nil {
		t.Fatalf("add donation: %v", err)
	}

	donationIDs := []types.ID{"3", extra.ID}
	errs := make(chan error, len(donationIDs))
	start := make(chan struct{})
	var wg sync.WaitGroup

	for _, id := range donationIDs {
		wg.Add(1)
		go func(donationID types.ID) {
			defer wg.Done()
			<-start
			_, err := svc.AssignVolunteer(ctx, donationID, "v4")
			errs <- err
		}(id)
	}

	close(start)
	wg.Wait()
	close(errs)

	success := 0
	for err := range errs {
		if err == nil {
			success++
			continue
		}
		if !errors.Is(err, ErrVolunteerNotAvailable) {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if success != 1 {
		t.Fatalf("expected exactly 1 successful assignment, got %d", success)
	}

	v, err := svc.Volunteer("v4")
	if err != nil {
		t.Fatalf("get volunteer: %v", err)
	}
	if v.IsAvailable || v.ActiveDeliveries != 1 {
		t.Errorf("volunteer after race: available=%v deliveries=%d, want false/1", v.IsAvailable, v.ActiveDeliveries)
	}
	assertInvariants(t, svc)
}

// Several volunteers racing for the same pending donation.
func TestConcurrentAssign_SameDonation(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	volunteerIDs := []types.ID{"v3", "v4", "v5"}
	errs := make(chan error, len(volunteerIDs))
	start := make(chan struct{})
	var wg sync.WaitGroup

	for _, id := range volunteerIDs {
		wg.Add(1)
		go func(volunteerID types.ID) {
			defer wg.Done()
			<-start
			_, err := svc.AssignVolunteer(ctx, "3", volunteerID)
			errs <- err
		}(id)
	}

	close(start)
	wg.Wait()
	close(errs)

	success := 0
	for err := range errs {
		if err == nil {
			success++
			continue
		}
		if !errors.Is(err, ErrDonationNotPending) {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if success != 1 {
		t.Fatalf("expected exactly 1 successful assignment, got %d", success)
	}
	assertDonationStatus(t, svc, "3", StatusAssigned)
	assertInvariants(t, svc)
}

// Status writes racing with an assignment still leave a consistent state.
func TestConcurrentStatusAndLocationWrites(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			switch n % 4 {
			case 0:
				_, _ = svc.AssignVolunteer(ctx, "3", "v4")
			case 1:
				_, _ = svc.UpdateStatus(ctx, "1", StatusInTransit)
			case 2:
				_, _ = svc.UpdateVolunteerLocation(ctx, "v2", types.Point{Lat: 28.55, Lng: 77.38})
			case 3:
				_ = svc.Refresh(ctx)
			}
		}(i)
	}
	wg.Wait()

	assertInvariants(t, svc)
}
