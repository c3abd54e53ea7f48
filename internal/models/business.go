package models

import (
	"time"

	"github.com/BruksfildServices01/appointment-scheduler/internal/domain/calendar"
)

type Business struct {
	ID       string `gorm:"type:uuid;primaryKey" json:"id"`
	Name     string `gorm:"size:100;not null" json:"name"`
	Slug     string `gorm:"size:100;uniqueIndex;not null" json:"slug"`
	Timezone string `gorm:"size:64" json:"timezone"`
	Active   bool   `gorm:"default:true" json:"active"`

	MinAdvanceHours              int  `gorm:"default:2" json:"min_advance_hours"`
	MaxAdvanceDays               int  `gorm:"default:60" json:"max_advance_days"`
	CancellationWindowHours      int  `gorm:"default:24" json:"cancellation_window_hours"`
	RescheduleWindowHours        int  `gorm:"default:24" json:"reschedule_window_hours"`
	MaxReschedulesPerAppointment int  `gorm:"default:3" json:"max_reschedules_per_appointment"`
	RequiresApproval             bool `gorm:"default:false" json:"requires_approval"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Holiday closes the whole business, or one staff member when StaffID is set.
type Holiday struct {
	ID         uint          `gorm:"primaryKey" json:"id"`
	BusinessID string        `gorm:"type:uuid;index;not null" json:"business_id"`
	StaffID    *string       `gorm:"type:uuid;index" json:"staff_id"`
	Date       calendar.Date `gorm:"type:date;not null" json:"date"`
	Name       string        `gorm:"size:100" json:"name"`

	CreatedAt time.Time `json:"created_at"`
}
