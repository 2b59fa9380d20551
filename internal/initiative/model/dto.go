package model

// CreateInitiativeRequest represents the request to create an initiative.
// Required-field and date validation happens in the service layer so the
// error messages stay uniform.
type CreateInitiativeRequest struct {
	Title           string  `json:"title"`
	Description     string  `json:"description"`
	Location        string  `json:"location"`
	EventDate       string  `json:"event_date"`
	DurationHours   float64 `json:"duration_hours"`
	MaxParticipants *int    `json:"max_participants"`
	Requirements    *string `json:"requirements"`
	ContactInfo     *string `json:"contact_info"`
	ImageURL        *string `json:"image_url"`
}

// UpdateInitiativeRequest represents a partial update. Only non-nil fields
// are applied; the event date is immutable and deliberately absent.
type UpdateInitiativeRequest struct {
	Title        *string `json:"title"`
	Description  *string `json:"description"`
	Requirements *string `json:"requirements"`
	ContactInfo  *string `json:"contact_info"`
	Status       *string `json:"status"`
}

// InitiativeResponse wraps a single initiative with a human-readable message.
type InitiativeResponse struct {
	Message    string     `json:"message,omitempty"`
	Initiative Initiative `json:"initiative"`
}

// ListInitiativesResponse represents the response for listing initiatives.
type ListInitiativesResponse struct {
	Initiatives []Initiative `json:"initiatives"`
}

// JoinResponse wraps the created participant row.
type JoinResponse struct {
	Message     string                `json:"message"`
	Participant InitiativeParticipant `json:"participant"`
}

// ListParticipantsResponse represents the response for listing participants.
type ListParticipantsResponse struct {
	Participants []InitiativeParticipant `json:"participants"`
}
