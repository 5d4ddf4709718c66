package models

// Tab is a group of participants sharing expenses.
type Tab struct {
	// ID is the unique identifier for the tab (UUID format).
	ID string

	// Name is the display name of the tab (e.g., "Lisbon trip", "Flat 4B").
	Name string

	// Participants are the tab's members, ordered by creation.
	Participants []Participant

	// CreatedAt is the Unix timestamp when the tab was created.
	CreatedAt int64
}

// ParticipantIDs returns the ids of all participants in order.
func (t *Tab) ParticipantIDs() []string {
	ids := make([]string, len(t.Participants))
	for i, p := range t.Participants {
		ids[i] = p.ID
	}
	return ids
}

// HasParticipant reports whether id belongs to the tab.
func (t *Tab) HasParticipant(id string) bool {
	for _, p := range t.Participants {
		if p.ID == id {
			return true
		}
	}
	return false
}

// Participant is a person added to a tab. It is referenced by splits and never
// mutated by the split calculation.
type Participant struct {
	// ID is the unique identifier for the participant (UUID format).
	ID string

	// TabID is the tab this participant belongs to.
	TabID string

	// DisplayName is the name shown in the UI. Unique within a tab.
	DisplayName string

	// CreatedAt is the Unix timestamp when the participant was added.
	CreatedAt int64
}
