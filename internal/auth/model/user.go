package model

import "time"

// User represents a registered community member.
// Matches the users table schema.
type User struct {
	ID           uint      `gorm:"primaryKey;column:id"                                   json:"id"`
	Username     string    `gorm:"column:username;type:varchar(80);not null;uniqueIndex"  json:"username"`
	Email        string    `gorm:"column:email;type:varchar(255);not null;uniqueIndex"    json:"email"`
	PasswordHash string    `gorm:"column:password_hash;type:varchar(255);not null"        json:"-"`
	CreatedAt    time.Time `gorm:"column:created_at;not null"                             json:"created_at"`
}

// TableName specifies the table name for GORM.
func (User) TableName() string {
	return "users"
}
