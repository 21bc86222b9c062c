// Package booking owns the canonical booking-request ledger: lifecycle
// transitions, facility-scoped queries and the persistence boundary.
package booking

import (
	"fmt"
	"strings"
	"time"
)

// Status represents the lifecycle state of a booking request.
type Status string

const (
	StatusPending   Status = "pending"
	StatusAccepted  Status = "accepted"
	StatusDeclined  Status = "declined"
	StatusCancelled Status = "cancelled"
	StatusCompleted Status = "completed"
)

// IsValid checks if the status belongs to the closed enumeration.
func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusAccepted, StatusDeclined, StatusCancelled, StatusCompleted:
		return true
	default:
		return false
	}
}

// Terminal reports whether no transition may leave the status.
func (s Status) Terminal() bool {
	switch s {
	case StatusDeclined, StatusCancelled, StatusCompleted:
		return true
	default:
		return false
	}
}

// transitions is the complete lifecycle table. pending is the only legal
// initial state and never appears as a target.
var transitions = map[Status][]Status{
	StatusPending:  {StatusAccepted, StatusDeclined, StatusCancelled},
	StatusAccepted: {StatusCompleted, StatusCancelled},
}

// CanTransition reports whether moving from s to target is legal.
func (s Status) CanTransition(target Status) bool {
	for _, next := range transitions[s] {
		if next == target {
			return true
		}
	}
	return false
}

// BookingRequest is a grooming appointment request. Each request belongs
// to exactly one facility for its entire lifetime; ID and FacilityID are
// immutable after creation.
type BookingRequest struct {
	ID            string    `json:"id"`
	FacilityID    int64     `json:"facility_id"`
	ClientID      int64     `json:"client_id"`
	ClientName    string    `json:"client_name"`
	ClientContact string    `json:"client_contact"`
	PetID         int64     `json:"pet_id"`
	PetName       string    `json:"pet_name"`
	Services      []string  `json:"services"`
	Status        Status    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
	AppointmentAt time.Time `json:"appointment_at"`
}

// Validate checks the structural invariants enforced on insert.
func (r BookingRequest) Validate() error {
	if strings.TrimSpace(r.ID) == "" {
		return fmt.Errorf("%w: id is required", ErrInvalidRecord)
	}
	if r.FacilityID <= 0 {
		return fmt.Errorf("%w: facility id must be positive", ErrInvalidRecord)
	}
	if r.ClientID <= 0 {
		return fmt.Errorf("%w: client id must be positive", ErrInvalidRecord)
	}
	if r.PetID <= 0 {
		return fmt.Errorf("%w: pet id must be positive", ErrInvalidRecord)
	}
	if len(r.Services) == 0 {
		return fmt.Errorf("%w: at least one service is required", ErrInvalidRecord)
	}
	if r.CreatedAt.IsZero() {
		return fmt.Errorf("%w: created timestamp is required", ErrInvalidRecord)
	}
	if r.AppointmentAt.Before(r.CreatedAt) {
		return fmt.Errorf("%w: appointment precedes creation", ErrInvalidRecord)
	}
	return nil
}

// Clone returns a deep copy safe to hand outside the ledger.
func (r BookingRequest) Clone() BookingRequest {
	out := r
	out.Services = append([]string(nil), r.Services...)
	return out
}
