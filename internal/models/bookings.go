package models

import (
	"strings"
	"time"
)

// SittingService enumerates the sitting service types
type SittingService string

const (
	SittingBoarding  SittingService = "boarding"
	SittingDaycare   SittingService = "daycare"
	SittingHomeVisit SittingService = "home-visit"
)

// IsValid checks whether the service type is a recognized value
func (s SittingService) IsValid() bool {
	switch s {
	case SittingBoarding, SittingDaycare, SittingHomeVisit:
		return true
	}
	return false
}

// ParseSittingService normalizes a service type string
func ParseSittingService(s string) SittingService {
	v := SittingService(strings.ToLower(strings.TrimSpace(s)))
	if !v.IsValid() {
		return ""
	}
	return v
}

// BookingStatus is the lifecycle state of a sitting booking
type BookingStatus string

const (
	BookingPending   BookingStatus = "PENDING"
	BookingAccepted  BookingStatus = "ACCEPTED"
	BookingDeclined  BookingStatus = "DECLINED"
	BookingCancelled BookingStatus = "CANCELLED"
)

// IsValid checks whether the status is a recognized value
func (s BookingStatus) IsValid() bool {
	switch s {
	case BookingPending, BookingAccepted, BookingDeclined, BookingCancelled:
		return true
	}
	return false
}

// CanRespond reports whether the sitter may still accept or decline
func (s BookingStatus) CanRespond() bool {
	return s == BookingPending
}

// CanCancel reports whether the owner may still cancel
func (s BookingStatus) CanCancel() bool {
	return s == BookingPending
}

// ParseBookingStatus normalizes a status string; unrecognized values
// map to the zero value so filters can treat them as "no filter".
func ParseBookingStatus(s string) BookingStatus {
	st := BookingStatus(strings.ToUpper(strings.TrimSpace(s)))
	if !st.IsValid() {
		return ""
	}
	return st
}

// SittingBooking represents a pet sitting request from an owner to a sitter
type SittingBooking struct {
	ID          string         `json:"id"`
	OwnerID     string         `json:"ownerId"`
	SitterID    string         `json:"sitterId"`
	PetID       string         `json:"petId"`
	ServiceType SittingService `json:"serviceType"`
	StartDate   time.Time      `json:"startDate"`
	EndDate     *time.Time     `json:"endDate,omitempty"`
	Notes       string         `json:"notes,omitempty"`
	Status      BookingStatus  `json:"status"`
	Owner       *OwnerSummary  `json:"owner,omitempty"`
	Sitter      *OwnerSummary  `json:"sitter,omitempty"`
	Pet         *Pet           `json:"pet,omitempty"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
}

// AppointmentStatus is the lifecycle state of a vet appointment
type AppointmentStatus string

const (
	AppointmentRequested AppointmentStatus = "REQUESTED"
	AppointmentConfirmed AppointmentStatus = "CONFIRMED"
	AppointmentDeclined  AppointmentStatus = "DECLINED"
	AppointmentCancelled AppointmentStatus = "CANCELLED"
)

// IsValid checks whether the status is a recognized value
func (s AppointmentStatus) IsValid() bool {
	switch s {
	case AppointmentRequested, AppointmentConfirmed,
		AppointmentDeclined, AppointmentCancelled:
		return true
	}
	return false
}

// CanRespond reports whether the vet may still confirm or decline
func (s AppointmentStatus) CanRespond() bool {
	return s == AppointmentRequested
}

// CanCancel reports whether the owner may still cancel.
// Confirmed appointments stay cancellable; declined ones do not.
func (s AppointmentStatus) CanCancel() bool {
	return s == AppointmentRequested || s == AppointmentConfirmed
}

// ParseAppointmentStatus normalizes a status string
func ParseAppointmentStatus(s string) AppointmentStatus {
	st := AppointmentStatus(strings.ToUpper(strings.TrimSpace(s)))
	if !st.IsValid() {
		return ""
	}
	return st
}

// VetAppointment represents a veterinary appointment request
type VetAppointment struct {
	ID        string            `json:"id"`
	OwnerID   string            `json:"ownerId"`
	VetID     string            `json:"vetId"`
	PetID     string            `json:"petId"`
	Date      *time.Time        `json:"date,omitempty"`
	TimeSlot  string            `json:"timeSlot,omitempty"`
	Reason    string            `json:"reason"`
	Emergency bool              `json:"emergency"`
	Notes     string            `json:"notes,omitempty"`
	Status    AppointmentStatus `json:"status"`
	Owner     *OwnerSummary     `json:"owner,omitempty"`
	Vet       *OwnerSummary     `json:"vet,omitempty"`
	Pet       *Pet              `json:"pet,omitempty"`
	CreatedAt time.Time         `json:"createdAt"`
	UpdatedAt time.Time         `json:"updatedAt"`
}
