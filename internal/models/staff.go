package models

import (
	"time"

	"github.com/BruksfildServices01/appointment-scheduler/internal/domain/calendar"
)

type Staff struct {
	ID         string   `gorm:"type:uuid;primaryKey" json:"id"`
	BusinessID string   `gorm:"type:uuid;index;not null" json:"business_id"`
	Business   Business `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	Name   string `gorm:"size:100;not null" json:"name"`
	Email  string `gorm:"size:100" json:"email"`
	Active bool   `gorm:"default:true" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type StaffUnavailableDate struct {
	ID      uint          `gorm:"primaryKey" json:"id"`
	StaffID string        `gorm:"type:uuid;uniqueIndex:idx_staff_unavailable;not null" json:"staff_id"`
	Date    calendar.Date `gorm:"type:date;uniqueIndex:idx_staff_unavailable;not null" json:"date"`
	Reason  string        `gorm:"size:255" json:"reason"`

	CreatedAt time.Time `json:"created_at"`
}
