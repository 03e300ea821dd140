package models

import "testing"

func TestNormalizeGender(t *testing.T) {
	cases := []struct {
		in   string
		want Gender
	}{
		{"MALE", GenderMale},
		{"male", GenderMale},
		{"Male", GenderMale},
		{" Male ", GenderMale},
		{"FEMALE", GenderFemale},
		{"female", GenderFemale},
		{"Female", GenderFemale},
		{"", GenderUnknown},
		{"   ", GenderUnknown},
		{"unknown", GenderUnknown},
		{"hembra", GenderUnknown},
	}
	for _, c := range cases {
		if got := NormalizeGender(c.in); got != c.want {
			t.Errorf("NormalizeGender(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestNormalizeGender_Idempotent(t *testing.T) {
	for _, in := range []string{"Male", "FEMALE", "something", ""} {
		once := NormalizeGender(in)
		twice := NormalizeGender(string(once))
		if once != twice {
			t.Errorf("NormalizeGender not idempotent for %q: %q then %q", in, once, twice)
		}
	}
}

func TestGenderOpposite(t *testing.T) {
	if GenderMale.Opposite() != GenderFemale {
		t.Errorf("Opposite(MALE) = %q", GenderMale.Opposite())
	}
	if GenderFemale.Opposite() != GenderMale {
		t.Errorf("Opposite(FEMALE) = %q", GenderFemale.Opposite())
	}
	if GenderUnknown.Opposite() != GenderUnknown {
		t.Errorf("Opposite(unknown) = %q", GenderUnknown.Opposite())
	}
}

func TestParseAnimalType(t *testing.T) {
	cases := []struct {
		in   string
		want AnimalType
	}{
		{"dog", AnimalDog},
		{"DOG", AnimalDog},
		{" Cat ", AnimalCat},
		{"reptile", AnimalReptile},
		{"dinosaur", ""},
		{"", ""},
	}
	for _, c := range cases {
		if got := ParseAnimalType(c.in); got != c.want {
			t.Errorf("ParseAnimalType(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestParseRole_DefaultsToOwner(t *testing.T) {
	if got := ParseRole("vet"); got != RoleVet {
		t.Errorf("ParseRole(vet) = %q", got)
	}
	if got := ParseRole("astronaut"); got != RoleOwner {
		t.Errorf("ParseRole(astronaut) = %q, want OWNER", got)
	}
	if got := ParseRole(""); got != RoleOwner {
		t.Errorf("ParseRole(empty) = %q, want OWNER", got)
	}
}

func TestMatchStatusTransitions(t *testing.T) {
	if !MatchPending.CanRespond() {
		t.Error("PENDING should accept a response")
	}
	if MatchPending.IsTerminal() {
		t.Error("PENDING should not be terminal")
	}
	for _, s := range []MatchStatus{MatchApproved, MatchRejected} {
		if s.CanRespond() {
			t.Errorf("%s should not accept a response", s)
		}
		if !s.IsTerminal() {
			t.Errorf("%s should be terminal", s)
		}
	}
}

func TestParseMatchStatus(t *testing.T) {
	if got := ParseMatchStatus("pending"); got != MatchPending {
		t.Errorf("ParseMatchStatus(pending) = %q", got)
	}
	if got := ParseMatchStatus("nonsense"); got != "" {
		t.Errorf("ParseMatchStatus(nonsense) = %q, want empty", got)
	}
	if got := ParseMatchStatus(""); got != "" {
		t.Errorf("ParseMatchStatus(empty) = %q, want empty", got)
	}
}

func TestBookingStatusTransitions(t *testing.T) {
	if !BookingPending.CanRespond() || !BookingPending.CanCancel() {
		t.Error("PENDING bookings should allow respond and cancel")
	}
	for _, s := range []BookingStatus{BookingAccepted, BookingDeclined, BookingCancelled} {
		if s.CanRespond() {
			t.Errorf("%s should not accept a response", s)
		}
	}
}

func TestAppointmentStatusTransitions(t *testing.T) {
	if !AppointmentRequested.CanRespond() {
		t.Error("REQUESTED appointments should accept a response")
	}
	if !AppointmentRequested.CanCancel() || !AppointmentConfirmed.CanCancel() {
		t.Error("REQUESTED and CONFIRMED appointments should allow cancel")
	}
	if AppointmentDeclined.CanCancel() || AppointmentCancelled.CanCancel() {
		t.Error("terminal appointments should not allow cancel")
	}
}
