package models

import "time"

const (
	IntervalWork  = "work"
	IntervalBreak = "break"
)

// WorkingHours is one interval of a weekday. Rows with a nil StaffID form the
// business calendar; rows with a StaffID form that staff member's override.
type WorkingHours struct {
	ID         uint    `gorm:"primaryKey" json:"id"`
	BusinessID string  `gorm:"type:uuid;index;not null" json:"business_id"`
	StaffID    *string `gorm:"type:uuid;index" json:"staff_id"`

	Weekday int    `json:"weekday"`
	Kind    string `gorm:"size:10;default:'work'" json:"kind"`

	StartMinute int  `json:"start_minute"`
	EndMinute   int  `json:"end_minute"`
	Active      bool `json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
