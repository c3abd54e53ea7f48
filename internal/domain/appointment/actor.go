package appointment

import (
	"github.com/BruksfildServices01/appointment-scheduler/internal/httperr"
	"github.com/BruksfildServices01/appointment-scheduler/internal/models"
)

type Role string

const (
	RoleCustomer Role = "customer"
	RoleStaff    Role = "staff"
	RoleAdmin    Role = "admin"
)

func (r Role) Valid() bool {
	switch r {
	case RoleCustomer, RoleStaff, RoleAdmin:
		return true
	}
	return false
}

// Actor is the authenticated caller of a transition.
type Actor struct {
	ID         string
	Role       Role
	BusinessID string
}

func (a Actor) IsAdminOf(businessID string) bool {
	return a.Role == RoleAdmin && a.ID != "" && a.BusinessID == businessID
}

func (a Actor) IsCustomerOf(ap *models.Appointment) bool {
	return a.Role == RoleCustomer && a.ID != "" && a.ID == ap.CustomerID
}

func (a Actor) IsAssignedStaff(ap *models.Appointment) bool {
	return a.Role == RoleStaff && a.ID != "" && a.ID == ap.StaffID && a.BusinessID == ap.BusinessID
}

// AuthorizeCreate lets customers book for themselves and the business's
// staff or admins book on a customer's behalf.
func AuthorizeCreate(a Actor, businessID, customerID string) error {
	switch a.Role {
	case RoleCustomer:
		if a.ID == "" || a.ID != customerID {
			return httperr.UnauthorizedErr("customer_mismatch")
		}
		return nil
	case RoleStaff, RoleAdmin:
		if a.BusinessID != businessID {
			return httperr.UnauthorizedErr("foreign_business")
		}
		return nil
	}
	return httperr.UnauthorizedErr("unknown_role")
}
