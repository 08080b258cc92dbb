// README: Tracking service tests (state machine, atomicity, invariants).
package tracking

import (
	"context"
	"errors"
	"testing"
	"time"

	"annadaan/internal/types"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	store := NewStore()
	donations, volunteers := SeedData(time.Now())
	store.Seed(donations, volunteers, time.Now())
	return NewService(store, nil, Config{})
}

func assertDonationStatus(t *testing.T, svc *Service, id types.ID, want Status) {
	t.Helper()
	d, err := svc.Donation(id)
	if err != nil {
		t.Fatalf("get donation %s: %v", id, err)
	}
	if d.Status != want {
		t.Fatalf("donation %s status = %s, want %s", id, d.Status, want)
	}
}

// assertInvariants checks the two cross-entity invariants: a volunteer
// snapshot is embedded iff the donation left pending, and a volunteer is
// unavailable iff they carry at least one active delivery.
func assertInvariants(t *testing.T, svc *Service) {
	t.Helper()
	snap := svc.Snapshot()
	for _, d := range snap.Donations {
		hasVolunteer := d.Volunteer != nil
		if hasVolunteer == (d.Status == StatusPending) {
			t.Errorf("donation %s: volunteer=%v with status %s", d.ID, hasVolunteer, d.Status)
		}
	}
	for _, v := range snap.Volunteers {
		if (v.ActiveDeliveries > 0) == v.IsAvailable {
			t.Errorf("volunteer %s: activeDeliveries=%d but isAvailable=%v", v.ID, v.ActiveDeliveries, v.IsAvailable)
		}
	}
}

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from, to Status
		want     bool
	}{
		{StatusPending, StatusAssigned, true},
		{StatusAssigned, StatusInTransit, true},
		{StatusInTransit, StatusDelivered, true},
		// no skipping
		{StatusPending, StatusInTransit, false},
		{StatusPending, StatusDelivered, false},
		{StatusAssigned, StatusDelivered, false},
		// no backward moves
		{StatusAssigned, StatusPending, false},
		{StatusInTransit, StatusAssigned, false},
		{StatusDelivered, StatusInTransit, false},
		// terminal
		{StatusDelivered, StatusPending, false},
		{StatusDelivered, StatusAssigned, false},
	}
	for _, tc := range cases {
		if got := CanTransition(tc.from, tc.to); got != tc.want {
			t.Errorf("CanTransition(%s, %s) = %v, want %v", tc.from, tc.to, got, tc.want)
		}
	}
}

func TestSeedDataSatisfiesInvariants(t *testing.T) {
	assertInvariants(t, newTestService(t))
}

func TestAssignVolunteer_HappyPath(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	before := time.Now()

	d, err := svc.AssignVolunteer(ctx, "3", "v4")
	if err != nil {
		t.Fatalf("assign: %v", err)
	}
	if d.Status != StatusAssigned {
		t.Fatalf("status = %s, want assigned", d.Status)
	}
	if d.Volunteer == nil {
		t.Fatal("volunteer snapshot missing after assignment")
	}
	if d.Volunteer.ID != "v4" || d.Volunteer.Name != "Sunita Devi" || d.Volunteer.Phone == "" {
		t.Errorf("snapshot = %+v, want v4 identity with phone", d.Volunteer)
	}
	if d.Volunteer.EstimatedArrival == nil {
		t.Fatal("estimated arrival missing")
	}
	eta := d.Volunteer.EstimatedArrival.Sub(before)
	if eta < 29*time.Minute || eta > 31*time.Minute {
		t.Errorf("estimated arrival %s from now, want ~30m", eta)
	}
	v, err := svc.Volunteer("v4")
	if err != nil {
		t.Fatalf("get volunteer: %v", err)
	}
	if d.Volunteer.CurrentLocation == nil || *d.Volunteer.CurrentLocation != v.Location {
		t.Errorf("current location = %v, want volunteer idle location %v", d.Volunteer.CurrentLocation, v.Location)
	}
	if v.IsAvailable || v.ActiveDeliveries != 1 {
		t.Errorf("volunteer after assign: available=%v deliveries=%d, want false/1", v.IsAvailable, v.ActiveDeliveries)
	}
	assertInvariants(t, svc)
}

func TestAssignVolunteer_FailureModes(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	cases := []struct {
		name                   string
		donationID, volunteerID types.ID
		want                   error
	}{
		{"unknown donation", "nope", "v4", ErrDonationNotFound},
		{"unknown volunteer", "3", "nope", ErrVolunteerNotFound},
		{"donation already assigned", "1", "v4", ErrDonationNotPending},
		{"volunteer busy", "3", "v1", ErrVolunteerNotAvailable},
	}

	before := svc.Snapshot()
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.AssignVolunteer(ctx, tc.donationID, tc.volunteerID); !errors.Is(err, tc.want) {
				t.Fatalf("got %v, want %v", err, tc.want)
			}
		})
	}

	// No partial mutation on any failure path.
	after := svc.Snapshot()
	assertDonationStatus(t, svc, "3", StatusPending)
	if len(after.Donations) != len(before.Donations) {
		t.Fatal("donation count changed by failed assigns")
	}
	for i := range before.Volunteers {
		b, a := before.Volunteers[i], after.Volunteers[i]
		if b.IsAvailable != a.IsAvailable || b.ActiveDeliveries != a.ActiveDeliveries {
			t.Errorf("volunteer %s mutated by failed assign: %+v -> %+v", b.ID, b, a)
		}
	}
}

func TestUpdateStatus_ForwardFlow(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	if _, err := svc.UpdateStatus(ctx, "1", StatusInTransit); err != nil {
		t.Fatalf("assigned -> in_transit: %v", err)
	}
	assertDonationStatus(t, svc, "1", StatusInTransit)

	if _, err := svc.UpdateStatus(ctx, "1", StatusDelivered); err != nil {
		t.Fatalf("in_transit -> delivered: %v", err)
	}
	assertDonationStatus(t, svc, "1", StatusDelivered)

	// Delivery releases the volunteer.
	v, err := svc.Volunteer("v1")
	if err != nil {
		t.Fatalf("get volunteer: %v", err)
	}
	if !v.IsAvailable || v.ActiveDeliveries != 0 {
		t.Errorf("volunteer after delivery: available=%v deliveries=%d, want true/0", v.IsAvailable, v.ActiveDeliveries)
	}

	// Terminal state rejects any further write.
	if _, err := svc.UpdateStatus(ctx, "1", StatusAssigned); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("delivered -> assigned: got %v, want ErrInvalidTransition", err)
	}
	assertInvariants(t, svc)
}

func TestUpdateStatus_Rejections(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	cases := []struct {
		name string
		id   types.ID
		to   Status
		want error
	}{
		{"unknown donation", "nope", StatusInTransit, ErrDonationNotFound},
		{"pending cannot skip to in_transit", "3", StatusInTransit, ErrInvalidTransition},
		{"pending cannot skip to delivered", "3", StatusDelivered, ErrInvalidTransition},
		{"assignment only via AssignVolunteer", "3", StatusAssigned, ErrInvalidTransition},
		{"no backward to pending", "1", StatusPending, ErrInvalidTransition},
		{"assigned cannot skip to delivered", "1", StatusDelivered, ErrInvalidTransition},
		{"unknown status", "1", Status("lost"), ErrBadRequest},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.UpdateStatus(ctx, tc.id, tc.to); !errors.Is(err, tc.want) {
				t.Fatalf("got %v, want %v", err, tc.want)
			}
		})
	}
	assertInvariants(t, svc)
}

func TestUpdateVolunteerLocation_DualWrite(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	target := types.Point{Lat: 28.55, Lng: 77.39}

	v, err := svc.UpdateVolunteerLocation(ctx, "v2", target)
	if err != nil {
		t.Fatalf("update location: %v", err)
	}
	if v.Location != target {
		t.Errorf("volunteer location = %v, want %v", v.Location, target)
	}

	// v2 carries donation 2 (in_transit): its live position moves too.
	d, err := svc.Donation("2")
	if err != nil {
		t.Fatalf("get donation: %v", err)
	}
	if d.Volunteer.CurrentLocation == nil || *d.Volunteer.CurrentLocation != target {
		t.Errorf("donation live position = %v, want %v", d.Volunteer.CurrentLocation, target)
	}
}

func TestUpdateVolunteerLocation_DeliveredUntouched(t *testing.T) {
	svc := newTestService(t)
	target := types.Point{Lat: 28.7, Lng: 77.1}

	if _, err := svc.UpdateVolunteerLocation(context.Background(), "v3", target); err != nil {
		t.Fatalf("update location: %v", err)
	}
	// Donation 4 is delivered; its snapshot must stay frozen.
	d, _ := svc.Donation("4")
	if d.Volunteer.CurrentLocation != nil {
		t.Errorf("delivered donation gained a live position: %v", d.Volunteer.CurrentLocation)
	}
}

func TestUpdateDeliveryPosition(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	target := types.Point{Lat: 28.542, Lng: 77.386}

	d, err := svc.UpdateDeliveryPosition(ctx, "2", target)
	if err != nil {
		t.Fatalf("update delivery position: %v", err)
	}
	if *d.Volunteer.CurrentLocation != target {
		t.Errorf("live position = %v, want %v", d.Volunteer.CurrentLocation, target)
	}
	// The volunteer's idle location must not move.
	v, _ := svc.Volunteer("v2")
	if v.Location == target {
		t.Error("idle location moved with the delivery position")
	}

	if _, err := svc.UpdateDeliveryPosition(ctx, "1", target); !errors.Is(err, ErrDonationNotInTransit) {
		t.Fatalf("assigned donation: got %v, want ErrDonationNotInTransit", err)
	}
}

func TestAddDonation(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	d, err := svc.AddDonation(ctx, NewDonation{
		DonorName:    "Sarvodaya Kitchen",
		FoodQuantity: "25-50 people",
		EventType:    "community",
		Location:     types.Point{Lat: 28.65, Lng: 77.23},
		Address:      "Civil Lines, Delhi",
		ExpiryTime:   time.Now().Add(3 * time.Hour),
	})
	if err != nil {
		t.Fatalf("add donation: %v", err)
	}
	if d.ID == "" || d.Status != StatusPending || d.Volunteer != nil {
		t.Errorf("new donation = %+v, want pending with generated id and no volunteer", d)
	}
	if d.CreatedAt.IsZero() {
		t.Error("created_at not set")
	}

	d2, err := svc.AddDonation(ctx, NewDonation{
		DonorName:    "Sarvodaya Kitchen",
		FoodQuantity: "25-50 people",
		Location:     types.Point{Lat: 28.65, Lng: 77.23},
	})
	if err != nil {
		t.Fatalf("second add: %v", err)
	}
	if d.ID == d2.ID {
		t.Error("generated IDs collide")
	}

	if _, err := svc.AddDonation(ctx, NewDonation{FoodQuantity: "x", Location: types.Point{Lat: 1, Lng: 1}}); !errors.Is(err, ErrBadRequest) {
		t.Fatalf("missing donor: got %v, want ErrBadRequest", err)
	}
	assertInvariants(t, svc)
}

func TestSelectDonation(t *testing.T) {
	svc := newTestService(t)

	id := types.ID("2")
	if err := svc.SelectDonation(&id); err != nil {
		t.Fatalf("select: %v", err)
	}
	snap := svc.Snapshot()
	if snap.Selected == nil || *snap.Selected != id {
		t.Fatalf("selected = %v, want %s", snap.Selected, id)
	}

	unknown := types.ID("nope")
	if err := svc.SelectDonation(&unknown); !errors.Is(err, ErrDonationNotFound) {
		t.Fatalf("select unknown: got %v, want ErrDonationNotFound", err)
	}

	if err := svc.SelectDonation(nil); err != nil {
		t.Fatalf("clear selection: %v", err)
	}
	if svc.Snapshot().Selected != nil {
		t.Error("selection not cleared")
	}
}

func TestRefresh_DoesNotClobberLocalEdits(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	before := svc.Snapshot().LastUpdated
	if _, err := svc.AssignVolunteer(ctx, "3", "v4"); err != nil {
		t.Fatalf("assign: %v", err)
	}
	if err := svc.Refresh(ctx); err != nil {
		t.Fatalf("refresh: %v", err)
	}

	// The local assignment survives the refresh; only the marker moved.
	assertDonationStatus(t, svc, "3", StatusAssigned)
	if !svc.Snapshot().LastUpdated.After(before) {
		t.Error("last_updated did not advance")
	}
}

func TestAssignVolunteer_CancelledContext(t *testing.T) {
	store := NewStore()
	donations, volunteers := SeedData(time.Now())
	store.Seed(donations, volunteers, time.Now())
	svc := NewService(store, nil, Config{AssignLatency: 100 * time.Millisecond})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := svc.AssignVolunteer(ctx, "3", "v4"); !errors.Is(err, context.Canceled) {
		t.Fatalf("got %v, want context.Canceled", err)
	}
	assertDonationStatus(t, svc, "3", StatusPending)
}

func TestSnapshotIsDefensiveCopy(t *testing.T) {
	svc := newTestService(t)

	snap := svc.Snapshot()
	for i := range snap.Donations {
		snap.Donations[i].Status = StatusDelivered
		if snap.Donations[i].Volunteer != nil {
			snap.Donations[i].Volunteer.Name = "mutated"
		}
	}
	for i := range snap.Volunteers {
		snap.Volunteers[i].IsAvailable = false
	}

	fresh := svc.Snapshot()
	assertDonationStatus(t, svc, "3", StatusPending)
	if d := fresh.Donations[0]; d.Volunteer.Name == "mutated" {
		t.Error("snapshot mutation leaked into the store")
	}
	if v := fresh.Volunteers[2]; !v.IsAvailable {
		t.Error("volunteer availability mutated through a snapshot")
	}
}
