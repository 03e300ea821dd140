package models

import (
	"strings"
	"time"
)

// Role represents a user's role in the marketplace
type Role string

const (
	RoleOwner  Role = "OWNER"
	RoleSitter Role = "SITTER"
	RoleVet    Role = "VET"
)

// IsValid checks whether the role is a recognized value
func (r Role) IsValid() bool {
	switch r {
	case RoleOwner, RoleSitter, RoleVet:
		return true
	}
	return false
}

// ParseRole normalizes a role string, defaulting to OWNER
func ParseRole(s string) Role {
	r := Role(strings.ToUpper(strings.TrimSpace(s)))
	if !r.IsValid() {
		return RoleOwner
	}
	return r
}

// User represents an account in the system
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Username     string    `json:"username"`
	DisplayName  string    `json:"displayName"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	Phone        string    `json:"phone,omitempty"`
	Location     string    `json:"location,omitempty"`
	Bio          string    `json:"bio,omitempty"`
	ProfileImage string    `json:"profileImage,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// OwnerSummary is the embedded owner block returned with pets
type OwnerSummary struct {
	ID          string `json:"id"`
	Username    string `json:"username"`
	DisplayName string `json:"displayName"`
	Name        string `json:"name,omitempty"`
}

// Summary returns the embeddable identity block for a user
func (u *User) Summary() OwnerSummary {
	return OwnerSummary{
		ID:          u.ID,
		Username:    u.Username,
		DisplayName: u.DisplayName,
		Name:        u.Name,
	}
}

// AnimalType enumerates the supported species
type AnimalType string

const (
	AnimalDog     AnimalType = "DOG"
	AnimalCat     AnimalType = "CAT"
	AnimalBird    AnimalType = "BIRD"
	AnimalRabbit  AnimalType = "RABBIT"
	AnimalHamster AnimalType = "HAMSTER"
	AnimalFish    AnimalType = "FISH"
	AnimalReptile AnimalType = "REPTILE"
	AnimalOther   AnimalType = "OTHER"
)

// IsValid checks whether the animal type is a recognized value
func (a AnimalType) IsValid() bool {
	switch a {
	case AnimalDog, AnimalCat, AnimalBird, AnimalRabbit,
		AnimalHamster, AnimalFish, AnimalReptile, AnimalOther:
		return true
	}
	return false
}

// ParseAnimalType normalizes a species string to the canonical enum.
// Unrecognized values map to the zero value so callers can reject them.
func ParseAnimalType(s string) AnimalType {
	a := AnimalType(strings.ToUpper(strings.TrimSpace(s)))
	if !a.IsValid() {
		return ""
	}
	return a
}

// Gender is the canonical two-value gender domain.
// Upstream records carry it in varying casings ("Male", "MALE", "male"),
// so every inbound value goes through NormalizeGender exactly once at
// the boundary; comparison logic only ever sees canonical values.
type Gender string

const (
	GenderMale    Gender = "MALE"
	GenderFemale  Gender = "FEMALE"
	GenderUnknown Gender = ""
)

// NormalizeGender canonicalizes a gender string case-insensitively.
// Anything that is not male/female normalizes to GenderUnknown.
// Normalizing an already-canonical value is a no-op.
func NormalizeGender(s string) Gender {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "MALE":
		return GenderMale
	case "FEMALE":
		return GenderFemale
	}
	return GenderUnknown
}

// Known reports whether the gender carries a usable value
func (g Gender) Known() bool {
	return g == GenderMale || g == GenderFemale
}

// Opposite returns the inverted gender, or GenderUnknown for unknown input
func (g Gender) Opposite() Gender {
	switch g {
	case GenderMale:
		return GenderFemale
	case GenderFemale:
		return GenderMale
	}
	return GenderUnknown
}

// Pet represents an animal profile owned by exactly one user
type Pet struct {
	ID                   string        `json:"id"`
	OwnerID              string        `json:"ownerId"`
	Name                 string        `json:"name"`
	Animal               AnimalType    `json:"animal"`
	Breed                string        `json:"breed"`
	Age                  int           `json:"age"`
	Gender               Gender        `json:"gender"`
	Vaccinated           bool          `json:"vaccinated"`
	Description          string        `json:"description"`
	Location             string        `json:"location,omitempty"`
	ImageURL             string        `json:"imageUrl,omitempty"`
	AvailableForMatch    bool          `json:"isAvailableForMatch"`
	AvailableForBoarding bool          `json:"isAvailableForBoarding"`
	Owner                *OwnerSummary `json:"owner,omitempty"`
	CreatedAt            time.Time     `json:"createdAt"`
	UpdatedAt            time.Time     `json:"updatedAt"`
}
