package models

import (
	"time"

	"github.com/BruksfildServices01/appointment-scheduler/internal/domain/calendar"
)

type Appointment struct {
	ID string `gorm:"type:uuid;primaryKey" json:"id"`

	BusinessID string `gorm:"type:uuid;not null;index:idx_appointments_staff_day" json:"business_id"`
	CustomerID string `gorm:"size:64;not null;index" json:"customer_id"`
	ServiceID  string `gorm:"type:uuid;not null" json:"service_id"`
	StaffID    string `gorm:"type:uuid;not null;index:idx_appointments_staff_day" json:"staff_id"`

	Date        calendar.Date   `gorm:"type:date;not null;index:idx_appointments_staff_day" json:"date"`
	StartMinute calendar.Minute `gorm:"not null" json:"start_time"`
	EndMinute   calendar.Minute `gorm:"not null" json:"end_time"`

	// BufferMinutes is the service buffer at booking time.
	BufferMinutes int `gorm:"not null" json:"buffer_minutes"`

	Status    string `gorm:"size:20;not null" json:"status"`
	Confirmed bool   `gorm:"not null" json:"confirmed"`

	RescheduleCount int     `gorm:"not null" json:"reschedule_count"`
	RescheduledFrom *string `gorm:"type:uuid" json:"rescheduled_from,omitempty"`
	RescheduledTo   *string `gorm:"type:uuid" json:"rescheduled_to,omitempty"`

	CancelledBy        *string `gorm:"size:64" json:"cancelled_by,omitempty"`
	CancellationReason string  `gorm:"size:255" json:"cancellation_reason,omitempty"`
	Notes              string  `gorm:"size:255" json:"notes,omitempty"`

	ConfirmedAt   *time.Time `json:"confirmed_at,omitempty"`
	CancelledAt   *time.Time `json:"cancelled_at,omitempty"`
	CompletedAt   *time.Time `json:"completed_at,omitempty"`
	NoShowAt      *time.Time `json:"no_show_at,omitempty"`
	RescheduledAt *time.Time `json:"rescheduled_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (a *Appointment) Window() calendar.Interval {
	return calendar.Interval{Start: a.StartMinute, End: a.EndMinute}
}
