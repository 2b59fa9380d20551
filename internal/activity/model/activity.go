package model

import "time"

// Kinds of activity entries recorded by the service.
const (
	KindInitiativeCreated = "initiative_created"
	KindInitiativeJoined  = "initiative_joined"
)

// Activity represents an activity feed entry.
// Matches the activities table schema.
type Activity struct {
	ID           uint      `gorm:"primaryKey;column:id"                                        json:"id"`
	UserID       uint      `gorm:"column:user_id;not null;index:idx_activities_user_id"        json:"user_id"`
	ActivityType string    `gorm:"column:activity_type;type:varchar(64);not null"              json:"activity_type"`
	Message      string    `gorm:"column:message;type:text;not null"                           json:"message"`
	RelatedID    *uint     `gorm:"column:related_id"                                           json:"related_id"`
	CreatedAt    time.Time `gorm:"column:created_at;not null;index:idx_activities_created_at"  json:"created_at"`
}

// TableName specifies the table name for GORM.
func (Activity) TableName() string {
	return "activities"
}

// ListActivitiesResponse represents the response for the activity feed.
type ListActivitiesResponse struct {
	Activities []Activity `json:"activities"`
}
