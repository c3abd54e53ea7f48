package appointment

import "github.com/BruksfildServices01/appointment-scheduler/internal/httperr"

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusScheduled   Status = "scheduled"
	StatusCompleted   Status = "completed"
	StatusCancelled   Status = "cancelled"
	StatusNoShow      Status = "no-show"
	StatusRescheduled Status = "rescheduled"
)

// transitions lists the legal edges. Every target is terminal.
var transitions = map[Status]map[Status]bool{
	StatusScheduled: {
		StatusCompleted:   true,
		StatusCancelled:   true,
		StatusNoShow:      true,
		StatusRescheduled: true,
	},
}

func (s Status) IsTerminal() bool {
	return s != StatusScheduled
}

// Occupies reports whether a record in status s blocks its window. A
// completed visit keeps its window even when it ended early.
func (s Status) Occupies() bool {
	return s == StatusScheduled || s == StatusCompleted
}

func (s Status) Valid() bool {
	switch s {
	case StatusScheduled, StatusCompleted, StatusCancelled, StatusNoShow, StatusRescheduled:
		return true
	}
	return false
}

// ===============================
// Validations
// ===============================

// CanTransition fails with invalid_transition for self-edges and for any
// edge leaving a terminal state.
func CanTransition(from, to Status) error {
	if from.IsTerminal() {
		return httperr.InvalidTransitionErr("terminal_state")
	}
	if !transitions[from][to] {
		return httperr.InvalidTransitionErr("invalid_state")
	}
	return nil
}

func InitialStatus() Status {
	return StatusScheduled
}
