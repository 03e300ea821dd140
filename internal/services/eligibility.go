package services

import (
	"fmt"

	"petmatch-backend/internal/models"
)

// Ineligibility reasons surfaced verbatim to the user.
const (
	ReasonMissingGender    = "Missing gender info"
	ReasonDifferentSpecies = "Different species"
	ReasonSameGender       = "Same gender"
)

// Compatibility is the result of evaluating two pets for breeding.
// Reason is empty when the pair is eligible.
type Compatibility struct {
	Eligible bool   `json:"eligible"`
	Reason   string `json:"reason,omitempty"`
}

// EvaluateCompatibility decides whether two pets may be proposed as a
// breeding match. It is pure and total: any two pet records with a
// species and a gender field (possibly empty) produce a result.
//
// Checks run in a fixed order: unknown gender on either side wins over
// a species mismatch, which wins over a same-gender pair.
func EvaluateCompatibility(myPet, targetPet *models.Pet) Compatibility {
	mine := models.NormalizeGender(string(myPet.Gender))
	theirs := models.NormalizeGender(string(targetPet.Gender))

	if !mine.Known() || !theirs.Known() {
		return Compatibility{Reason: ReasonMissingGender}
	}
	if myPet.Animal != targetPet.Animal {
		return Compatibility{Reason: ReasonDifferentSpecies}
	}
	if mine == theirs {
		return Compatibility{Reason: ReasonSameGender}
	}
	return Compatibility{Eligible: true}
}

// IncompatiblePet annotates a pet with the reason it cannot be matched
type IncompatiblePet struct {
	Pet    *models.Pet `json:"pet"`
	Reason string      `json:"reason"`
}

// PartitionByCompatibility splits the caller's pets into compatible and
// incompatible subsets against a target pet, preserving input order
// within each subset. The selection UI presents compatible entries
// first and renders incompatible ones non-selectable with their reason.
func PartitionByCompatibility(myPets []*models.Pet, targetPet *models.Pet) ([]*models.Pet, []IncompatiblePet) {
	compatible := make([]*models.Pet, 0, len(myPets))
	incompatible := make([]IncompatiblePet, 0)

	for _, p := range myPets {
		c := EvaluateCompatibility(p, targetPet)
		if c.Eligible {
			compatible = append(compatible, p)
		} else {
			incompatible = append(incompatible, IncompatiblePet{Pet: p, Reason: c.Reason})
		}
	}
	return compatible, incompatible
}

// CompatibilityHint names the kind of pet required to match the target,
// for the case where none of the caller's pets is compatible. Returns
// an empty string when the target's gender is unknown, since no
// requirement can be derived.
func CompatibilityHint(targetPet *models.Pet) string {
	opposite := models.NormalizeGender(string(targetPet.Gender)).Opposite()
	if !opposite.Known() {
		return ""
	}
	return fmt.Sprintf("You need a %s %s to request this match.", opposite, targetPet.Animal)
}
