package booking

import "time"

// DefaultSeed is the dataset the ledger falls back to when persisted
// content is missing or corrupt. It keeps a fresh install usable without
// requiring the intake collaborator to run first.
func DefaultSeed(now time.Time) []BookingRequest {
	now = now.UTC()
	return []BookingRequest{
		{
			ID:            "BR-seed-0001",
			FacilityID:    1,
			ClientID:      1001,
			ClientName:    "Dana Whitfield",
			ClientContact: "dana.whitfield@example.com",
			PetID:         5001,
			PetName:       "Biscuit",
			Services:      []string{"bath", "nail-trim"},
			Status:        StatusPending,
			CreatedAt:     now.Add(-48 * time.Hour),
			AppointmentAt: now.Add(24 * time.Hour),
		},
		{
			ID:            "BR-seed-0002",
			FacilityID:    1,
			ClientID:      1002,
			ClientName:    "Marcus Oyelaran",
			ClientContact: "+1-555-0142",
			PetID:         5002,
			PetName:       "Juniper",
			Services:      []string{"full-groom"},
			Status:        StatusPending,
			CreatedAt:     now.Add(-24 * time.Hour),
			AppointmentAt: now.Add(72 * time.Hour),
		},
	}
}
