package dto

import (
	"github.com/BruksfildServices01/appointment-scheduler/internal/domain/calendar"
	"github.com/BruksfildServices01/appointment-scheduler/internal/models"
)

type AppointmentListDTO struct {
	ID              string          `json:"id"`
	Date            calendar.Date   `json:"date"`
	StartTime       calendar.Minute `json:"start_time"`
	EndTime         calendar.Minute `json:"end_time"`
	Status          string          `json:"status"`
	Confirmed       bool            `json:"confirmed"`
	CustomerID      string          `json:"customer_id"`
	ServiceID       string          `json:"service_id"`
	RescheduledFrom *string         `json:"rescheduled_from,omitempty"`
	RescheduledTo   *string         `json:"rescheduled_to,omitempty"`
}

func FromAppointments(aps []models.Appointment) []AppointmentListDTO {
	out := make([]AppointmentListDTO, 0, len(aps))
	for _, ap := range aps {
		out = append(out, AppointmentListDTO{
			ID:              ap.ID,
			Date:            ap.Date,
			StartTime:       ap.StartMinute,
			EndTime:         ap.EndMinute,
			Status:          ap.Status,
			Confirmed:       ap.Confirmed,
			CustomerID:      ap.CustomerID,
			ServiceID:       ap.ServiceID,
			RescheduledFrom: ap.RescheduledFrom,
			RescheduledTo:   ap.RescheduledTo,
		})
	}
	return out
}
