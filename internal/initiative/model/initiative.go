package model

import "time"

// Initiative status values. The set is closed: update requests carrying
// anything else are rejected.
const (
	StatusUpcoming  = "upcoming"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

// StatusAll is the list filter value that disables status filtering.
const StatusAll = "all"

// ParticipantJoined is the status of an active participant row.
const ParticipantJoined = "joined"

// ValidStatus reports whether s is a member of the closed status set.
func ValidStatus(s string) bool {
	switch s {
	case StatusUpcoming, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// Initiative represents a community event with a fixed date, location and
// optional capacity. Matches the initiatives table schema.
type Initiative struct {
	ID              uint      `gorm:"primaryKey;column:id"                                                    json:"id"`
	Title           string    `gorm:"column:title;type:varchar(255);not null"                                 json:"title"`
	Description     string    `gorm:"column:description;type:text;not null"                                   json:"description"`
	Location        string    `gorm:"column:location;type:varchar(255);not null;index:idx_initiatives_location" json:"location"`
	EventDate       time.Time `gorm:"column:event_date;not null"                                              json:"event_date"`
	DurationHours   float64   `gorm:"column:duration_hours;not null"                                          json:"duration_hours"`
	MaxParticipants *int      `gorm:"column:max_participants"                                                 json:"max_participants"`
	Requirements    *string   `gorm:"column:requirements;type:text"                                           json:"requirements"`
	ContactInfo     *string   `gorm:"column:contact_info;type:text"                                           json:"contact_info"`
	ImageURL        *string   `gorm:"column:image_url;type:text"                                              json:"image_url"`
	Status          string    `gorm:"column:status;type:varchar(32);not null;index:idx_initiatives_status"    json:"status"`
	CreatedBy       uint      `gorm:"column:created_by;not null"                                              json:"created_by"`
	CreatedAt       time.Time `gorm:"column:created_at;not null"                                              json:"created_at"`
}

// TableName specifies the table name for GORM.
func (Initiative) TableName() string {
	return "initiatives"
}

// InitiativeParticipant links a user to an initiative they joined.
// Matches the initiative_participants table schema. At most one row with
// status "joined" exists per (initiative, user) pair.
type InitiativeParticipant struct {
	ID           uint      `gorm:"primaryKey;column:id"                                                       json:"id"`
	InitiativeID uint      `gorm:"column:initiative_id;not null;index:idx_participants_initiative_id"         json:"initiative_id"`
	UserID       uint      `gorm:"column:user_id;not null"                                                    json:"user_id"`
	Status       string    `gorm:"column:status;type:varchar(32);not null"                                    json:"status"`
	JoinedAt     time.Time `gorm:"column:joined_at;not null;autoCreateTime"                                   json:"joined_at"`
}

// TableName specifies the table name for GORM.
func (InitiativeParticipant) TableName() string {
	return "initiative_participants"
}
