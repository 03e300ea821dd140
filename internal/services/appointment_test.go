package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"petmatch-backend/internal/models"
)

func newAppointmentFixture() (*AppointmentService, *fakeAppointmentStore) {
	owner := user("u-alex", "alex")
	vet := user("u-vera", "vera")
	vet.Role = models.RoleVet
	users := newFakeUserStore(owner, vet)

	ownerSummary := owner.Summary()
	pets := newFakePetStore(feedPet("p-max", "u-alex", &ownerSummary))

	appointments := newFakeAppointmentStore()
	svc := NewAppointmentService(appointments, pets, users)
	svc.now = func() time.Time { return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC) }
	return svc, appointments
}

func appointmentInput() AppointmentInput {
	date := time.Date(2026, 4, 10, 0, 0, 0, 0, time.UTC)
	return AppointmentInput{
		VetUsername: "vera",
		PetID:       "p-max",
		Date:        &date,
		TimeSlot:    "10:00",
		Reason:      "annual checkup",
	}
}

func TestSchedule(t *testing.T) {
	svc, _ := newAppointmentFixture()

	a, err := svc.Schedule(context.Background(), "u-alex", appointmentInput())
	if err != nil {
		t.Fatalf("Schedule error: %v", err)
	}
	if a.Status != models.AppointmentRequested {
		t.Fatalf("status = %s, want REQUESTED", a.Status)
	}
	if a.VetID != "u-vera" {
		t.Fatalf("vet = %s", a.VetID)
	}
}

func TestSchedule_EmergencySkipsSlotChecks(t *testing.T) {
	svc, _ := newAppointmentFixture()

	a, err := svc.Schedule(context.Background(), "u-alex", AppointmentInput{
		VetUsername: "vera",
		PetID:       "p-max",
		Reason:      "swallowed a sock",
		Emergency:   true,
	})
	if err != nil {
		t.Fatalf("Schedule error: %v", err)
	}
	if !a.Emergency {
		t.Fatal("emergency flag lost")
	}
}

func TestSchedule_Validation(t *testing.T) {
	svc, _ := newAppointmentFixture()
	ctx := context.Background()

	in := appointmentInput()
	in.Date = nil
	if _, err := svc.Schedule(ctx, "u-alex", in); !errors.Is(err, ErrValidation) {
		t.Errorf("missing date: got %v", err)
	}

	in = appointmentInput()
	in.TimeSlot = ""
	if _, err := svc.Schedule(ctx, "u-alex", in); !errors.Is(err, ErrValidation) {
		t.Errorf("missing time slot: got %v", err)
	}

	in = appointmentInput()
	in.Reason = "  "
	if _, err := svc.Schedule(ctx, "u-alex", in); !errors.Is(err, ErrValidation) {
		t.Errorf("missing reason: got %v", err)
	}

	in = appointmentInput()
	in.VetUsername = "alex" // not a vet
	if _, err := svc.Schedule(ctx, "u-alex", in); !errors.Is(err, ErrValidation) {
		t.Errorf("non-vet target: got %v", err)
	}
}

func TestSchedule_RejectsSelfBooking(t *testing.T) {
	// A vet who owns a pet cannot book an appointment with themself.
	vet := user("u-vera", "vera")
	vet.Role = models.RoleVet
	users := newFakeUserStore(vet)

	vetSummary := vet.Summary()
	pets := newFakePetStore(feedPet("p-fido", "u-vera", &vetSummary))

	appointments := newFakeAppointmentStore()
	svc := NewAppointmentService(appointments, pets, users)

	in := appointmentInput()
	in.PetID = "p-fido"
	if _, err := svc.Schedule(context.Background(), "u-vera", in); !errors.Is(err, ErrValidation) {
		t.Errorf("self booking: got %v, want ErrValidation", err)
	}
	if len(appointments.byID) != 0 {
		t.Error("no appointment should be persisted")
	}
}

func TestAppointment_RespondLifecycle(t *testing.T) {
	svc, _ := newAppointmentFixture()
	ctx := context.Background()

	a, err := svc.Schedule(ctx, "u-alex", appointmentInput())
	if err != nil {
		t.Fatalf("Schedule error: %v", err)
	}

	if _, err := svc.Respond(ctx, a.ID, "u-alex", true); !errors.Is(err, ErrForbidden) {
		t.Fatalf("owner respond: got %v", err)
	}

	confirmed, err := svc.Respond(ctx, a.ID, "u-vera", true)
	if err != nil {
		t.Fatalf("Respond error: %v", err)
	}
	if confirmed.Status != models.AppointmentConfirmed {
		t.Fatalf("status = %s", confirmed.Status)
	}

	if _, err := svc.Respond(ctx, a.ID, "u-vera", false); !errors.Is(err, ErrBadState) {
		t.Fatalf("double respond: got %v", err)
	}

	// confirmed appointments stay cancellable by the owner
	cancelled, err := svc.Cancel(ctx, a.ID, "u-alex")
	if err != nil {
		t.Fatalf("Cancel error: %v", err)
	}
	if cancelled.Status != models.AppointmentCancelled {
		t.Fatalf("status = %s", cancelled.Status)
	}

	if _, err := svc.Cancel(ctx, a.ID, "u-alex"); !errors.Is(err, ErrBadState) {
		t.Fatalf("double cancel: got %v", err)
	}
}

func TestAppointment_Listings(t *testing.T) {
	svc, _ := newAppointmentFixture()
	ctx := context.Background()

	a1, err := svc.Schedule(ctx, "u-alex", appointmentInput())
	if err != nil {
		t.Fatalf("Schedule error: %v", err)
	}
	if _, err := svc.Respond(ctx, a1.ID, "u-vera", false); err != nil {
		t.Fatalf("Respond error: %v", err)
	}
	if _, err := svc.Schedule(ctx, "u-alex", appointmentInput()); err != nil {
		t.Fatalf("Schedule error: %v", err)
	}

	requested, err := svc.VetAppointments(ctx, "u-vera", "REQUESTED")
	if err != nil {
		t.Fatalf("VetAppointments error: %v", err)
	}
	if len(requested) != 1 {
		t.Fatalf("requested = %d", len(requested))
	}
	if requested[0].Pet == nil || requested[0].Owner == nil {
		t.Fatal("expected hydrated appointment")
	}

	owned, err := svc.OwnedAppointments(ctx, "u-alex", "")
	if err != nil {
		t.Fatalf("OwnedAppointments error: %v", err)
	}
	if len(owned) != 2 {
		t.Fatalf("owned = %d", len(owned))
	}
}
