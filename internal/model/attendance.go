package model

import (
	"time"

	"github.com/google/uuid"
)

// AttendanceRecord is one staff working day: check-in at arrival, check-out
// at close. CheckOut stays nil while the shift is open.
type AttendanceRecord struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_attendance_user_date,priority:1"`
	// BusinessDate is the calendar day of the shift (YYYY-MM-DD). One record
	// per user per day.
	BusinessDate string    `gorm:"type:varchar(10);not null;uniqueIndex:idx_attendance_user_date,priority:2"`
	CheckIn      time.Time `gorm:"not null"`
	CheckOut     *time.Time
	CreatedAt    time.Time

	User *User `gorm:"foreignKey:UserID"`
}

// TableName overrides GORM's default pluralization.
func (AttendanceRecord) TableName() string { return "attendance_records" }
