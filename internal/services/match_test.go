package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"petmatch-backend/internal/models"
)

func ownedPet(id, ownerID, name string, animal models.AnimalType, gender string) *models.Pet {
	return &models.Pet{
		ID:                id,
		OwnerID:           ownerID,
		Name:              name,
		Animal:            animal,
		Gender:            models.NormalizeGender(gender),
		AvailableForMatch: true,
	}
}

func user(id, username string) *models.User {
	return &models.User{ID: id, Username: username, Name: username, DisplayName: username}
}

func newMatchFixture() (*MatchService, *fakeMatchStore, *fakePetStore, *fakeUserStore) {
	users := newFakeUserStore(user("u-alex", "alex"), user("u-sara", "sara"))
	pets := newFakePetStore(
		ownedPet("p-max", "u-alex", "Max", models.AnimalDog, "MALE"),
		ownedPet("p-whiskers", "u-alex", "Whiskers", models.AnimalCat, "MALE"),
		ownedPet("p-luna", "u-sara", "Luna", models.AnimalDog, "FEMALE"),
		ownedPet("p-rocky", "u-sara", "Rocky", models.AnimalDog, "MALE"),
	)
	matches := newFakeMatchStore()
	svc := NewMatchService(matches, pets, users)
	svc.now = func() time.Time { return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC) }
	return svc, matches, pets, users
}

func TestCreateMatchRequest_EligiblePair(t *testing.T) {
	svc, matches, _, _ := newMatchFixture()

	m, err := svc.CreateMatchRequest(context.Background(), "u-alex", CreateMatchInput{
		RequesterPetID: "p-max",
		RecipientPetID: "p-luna",
		Message:        "Max would love to meet Luna",
	})
	if err != nil {
		t.Fatalf("CreateMatchRequest error: %v", err)
	}
	if m.Status != models.MatchPending {
		t.Fatalf("status = %s, want PENDING", m.Status)
	}
	if m.RecipientID != "u-sara" {
		t.Fatalf("recipient = %s, want u-sara", m.RecipientID)
	}
	if _, err := matches.GetByID(context.Background(), m.ID); err != nil {
		t.Fatalf("request not persisted: %v", err)
	}
}

func TestCreateMatchRequest_IneligiblePairWritesNothing(t *testing.T) {
	svc, matches, _, _ := newMatchFixture()

	_, err := svc.CreateMatchRequest(context.Background(), "u-alex", CreateMatchInput{
		RequesterPetID: "p-max",
		RecipientPetID: "p-rocky",
		Message:        "hello",
	})
	if err == nil {
		t.Fatal("expected error for same-gender pair")
	}
	var ie *IneligibleError
	if !errors.As(err, &ie) {
		t.Fatalf("expected IneligibleError, got %T: %v", err, err)
	}
	if ie.Reason != ReasonSameGender {
		t.Fatalf("reason = %q, want %q", ie.Reason, ReasonSameGender)
	}
	if !errors.Is(err, ErrValidation) {
		t.Fatal("ineligibility should classify as a validation error")
	}
	if matches.writes != 0 {
		t.Fatalf("ineligible request reached the store: %d writes", matches.writes)
	}
}

func TestCreateMatchRequest_RequiresMessage(t *testing.T) {
	svc, matches, _, _ := newMatchFixture()

	_, err := svc.CreateMatchRequest(context.Background(), "u-alex", CreateMatchInput{
		RequesterPetID: "p-max",
		RecipientPetID: "p-luna",
		Message:        "   ",
	})
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
	if matches.writes != 0 {
		t.Fatal("invalid request reached the store")
	}
}

func TestCreateMatchRequest_ForeignPetForbidden(t *testing.T) {
	svc, _, _, _ := newMatchFixture()

	_, err := svc.CreateMatchRequest(context.Background(), "u-alex", CreateMatchInput{
		RequesterPetID: "p-luna", // sara's pet
		RecipientPetID: "p-max",
		Message:        "hi",
	})
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestCreateMatchRequest_OwnPetRejected(t *testing.T) {
	svc, _, _, _ := newMatchFixture()

	_, err := svc.CreateMatchRequest(context.Background(), "u-alex", CreateMatchInput{
		RequesterPetID: "p-max",
		RecipientPetID: "p-whiskers",
		Message:        "hi",
	})
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation for self-match, got %v", err)
	}
}

func TestRespond_ApproveThenLocked(t *testing.T) {
	svc, matches, _, _ := newMatchFixture()
	ctx := context.Background()

	m, err := svc.CreateMatchRequest(ctx, "u-alex", CreateMatchInput{
		RequesterPetID: "p-max",
		RecipientPetID: "p-luna",
		Message:        "hi",
	})
	if err != nil {
		t.Fatalf("CreateMatchRequest error: %v", err)
	}

	approved, err := svc.Respond(ctx, m.ID, "u-sara", true)
	if err != nil {
		t.Fatalf("Respond error: %v", err)
	}
	if approved.Status != models.MatchApproved {
		t.Fatalf("status = %s, want APPROVED", approved.Status)
	}

	// second response must fail without touching the stored request
	writesBefore := matches.writes
	_, err = svc.Respond(ctx, m.ID, "u-sara", false)
	if !errors.Is(err, ErrBadState) {
		t.Fatalf("expected ErrBadState on double respond, got %v", err)
	}
	if matches.writes != writesBefore {
		t.Fatal("double respond mutated the store")
	}
	stored, _ := matches.GetByID(ctx, m.ID)
	if stored.Status != models.MatchApproved {
		t.Fatalf("stored status = %s after rejected double respond", stored.Status)
	}
}

func TestRespond_OnlyRecipient(t *testing.T) {
	svc, _, _, _ := newMatchFixture()
	ctx := context.Background()

	m, err := svc.CreateMatchRequest(ctx, "u-alex", CreateMatchInput{
		RequesterPetID: "p-max",
		RecipientPetID: "p-luna",
		Message:        "hi",
	})
	if err != nil {
		t.Fatalf("CreateMatchRequest error: %v", err)
	}

	if _, err := svc.Respond(ctx, m.ID, "u-alex", true); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden for requester response, got %v", err)
	}
}

func TestRespond_UnknownRequest(t *testing.T) {
	svc, _, _, _ := newMatchFixture()

	_, err := svc.Respond(context.Background(), "missing", "u-sara", true)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestReceivedRequests_StatusFilter(t *testing.T) {
	svc, _, _, _ := newMatchFixture()
	ctx := context.Background()

	m1, err := svc.CreateMatchRequest(ctx, "u-alex", CreateMatchInput{
		RequesterPetID: "p-max", RecipientPetID: "p-luna", Message: "first",
	})
	if err != nil {
		t.Fatalf("CreateMatchRequest error: %v", err)
	}
	if _, err := svc.Respond(ctx, m1.ID, "u-sara", false); err != nil {
		t.Fatalf("Respond error: %v", err)
	}
	if _, err := svc.CreateMatchRequest(ctx, "u-alex", CreateMatchInput{
		RequesterPetID: "p-max", RecipientPetID: "p-luna", Message: "second",
	}); err != nil {
		t.Fatalf("CreateMatchRequest error: %v", err)
	}

	pending, err := svc.ReceivedRequests(ctx, "u-sara", "PENDING")
	if err != nil {
		t.Fatalf("ReceivedRequests error: %v", err)
	}
	if len(pending) != 1 || pending[0].Message != "second" {
		t.Fatalf("pending filter wrong: %d entries", len(pending))
	}

	all, err := svc.ReceivedRequests(ctx, "u-sara", "")
	if err != nil {
		t.Fatalf("ReceivedRequests error: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 requests without filter, got %d", len(all))
	}
	if all[0].RequesterPet == nil || all[0].Requester == nil {
		t.Fatal("expected hydrated requester info")
	}
}

func TestOptionsFor_PartitionAndHint(t *testing.T) {
	svc, _, pets, _ := newMatchFixture()
	ctx := context.Background()

	opts, err := svc.OptionsFor(ctx, "u-alex", "p-luna")
	if err != nil {
		t.Fatalf("OptionsFor error: %v", err)
	}
	if len(opts.Compatible) != 1 || opts.Compatible[0].ID != "p-max" {
		t.Fatalf("compatible = %+v", opts.Compatible)
	}
	if len(opts.Incompatible) != 1 || opts.Incompatible[0].Reason != ReasonDifferentSpecies {
		t.Fatalf("incompatible = %+v", opts.Incompatible)
	}
	if opts.Hint != "" {
		t.Fatalf("hint should be empty when a compatible pet exists, got %q", opts.Hint)
	}

	// remove the compatible option; hint should appear
	pets.byID["p-max"].Gender = models.GenderFemale
	opts, err = svc.OptionsFor(ctx, "u-alex", "p-luna")
	if err != nil {
		t.Fatalf("OptionsFor error: %v", err)
	}
	if len(opts.Compatible) != 0 {
		t.Fatalf("expected no compatible pets, got %d", len(opts.Compatible))
	}
	if opts.Hint != "You need a MALE DOG to request this match." {
		t.Fatalf("hint = %q", opts.Hint)
	}
}

func TestOptionsFor_OwnTargetRejected(t *testing.T) {
	svc, _, _, _ := newMatchFixture()

	_, err := svc.OptionsFor(context.Background(), "u-alex", "p-max")
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}
