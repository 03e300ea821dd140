package models

import (
	"strings"
	"time"
)

// MatchStatus is the lifecycle state of a breeding match request.
// PENDING is the only non-terminal state: it may move to APPROVED or
// REJECTED exactly once, and neither terminal state may transition again.
type MatchStatus string

const (
	MatchPending  MatchStatus = "PENDING"
	MatchApproved MatchStatus = "APPROVED"
	MatchRejected MatchStatus = "REJECTED"
)

// IsValid checks whether the status is a recognized value
func (s MatchStatus) IsValid() bool {
	switch s {
	case MatchPending, MatchApproved, MatchRejected:
		return true
	}
	return false
}

// IsTerminal reports whether the status permits no further transitions
func (s MatchStatus) IsTerminal() bool {
	return s == MatchApproved || s == MatchRejected
}

// CanRespond reports whether a respond transition is valid from this status
func (s MatchStatus) CanRespond() bool {
	return s == MatchPending
}

// ParseMatchStatus normalizes a status string; unrecognized values map
// to the zero value so filters can treat them as "no filter".
func ParseMatchStatus(s string) MatchStatus {
	st := MatchStatus(strings.ToUpper(strings.TrimSpace(s)))
	if !st.IsValid() {
		return ""
	}
	return st
}

// MatchRequest represents a breeding proposal between two pets.
// Either party may read it; only the recipient may transition its status.
type MatchRequest struct {
	ID             string        `json:"id"`
	RequesterID    string        `json:"requesterId"`
	RecipientID    string        `json:"recipientId"`
	RequesterPetID string        `json:"requesterPetId"`
	RecipientPetID string        `json:"recipientPetId"`
	Message        string        `json:"message"`
	Status         MatchStatus   `json:"status"`
	Requester      *OwnerSummary `json:"requester,omitempty"`
	Recipient      *OwnerSummary `json:"recipient,omitempty"`
	RequesterPet   *Pet          `json:"requesterPet,omitempty"`
	RecipientPet   *Pet          `json:"recipientPet,omitempty"`
	CreatedAt      time.Time     `json:"createdAt"`
	UpdatedAt      time.Time     `json:"updatedAt"`
}
