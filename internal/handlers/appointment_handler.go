package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/appointment-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/appointment-scheduler/internal/dto"
	"github.com/BruksfildServices01/appointment-scheduler/internal/httperr"
	"github.com/BruksfildServices01/appointment-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/appointment-scheduler/internal/middleware"
	ucAppointment "github.com/BruksfildServices01/appointment-scheduler/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	engine *ucAppointment.Engine
}

func NewAppointmentHandler(engine *ucAppointment.Engine) *AppointmentHandler {
	return &AppointmentHandler{engine: engine}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateAppointmentRequest struct {
	ServiceID  string `json:"service_id" binding:"required"`
	StaffID    string `json:"staff_id" binding:"required"`
	CustomerID string `json:"customer_id"`
	Date       string `json:"date" binding:"required"`
	StartTime  string `json:"start_time" binding:"required"`
	Notes      string `json:"notes"`
}

type RescheduleAppointmentRequest struct {
	Date      string `json:"date" binding:"required"`
	StartTime string `json:"start_time" binding:"required"`
	StaffID   string `json:"staff_id"`
}

type CancelAppointmentRequest struct {
	Reason string `json:"reason"`
}

func actorOrAbort(c *gin.Context) (domain.Actor, bool) {
	actor, ok := middleware.ActorFrom(c)
	if !ok {
		httperr.Unauthorized(c, "actor_not_in_context", "Not authenticated.")
	}
	return actor, ok
}

// ======================================================
// AVAILABILITY
// ======================================================

func (h *AppointmentHandler) Availability(c *gin.Context) {
	serviceID := c.Query("service_id")
	if serviceID == "" {
		httperr.BadRequest(c, "missing_service_id", "service_id is required.")
		return
	}
	date, ok := parseDate(c, c.Query("date"))
	if !ok {
		return
	}

	slots, err := h.engine.ListAvailability(c.Request.Context(), ucAppointment.AvailabilityInput{
		BusinessID: c.Param("businessId"),
		ServiceID:  serviceID,
		Date:       date,
		StaffID:    c.Query("staff_id"),
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.List(c, slots)
}

// ======================================================
// CREATE
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}

	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}
	date, ok := parseDate(c, req.Date)
	if !ok {
		return
	}
	start, ok := parseStartTime(c, req.StartTime)
	if !ok {
		return
	}

	ap, err := h.engine.CommitTransition(c.Request.Context(), ucAppointment.Transition{
		Kind:       ucAppointment.TransitionCreate,
		Actor:      actor,
		BusinessID: c.Param("businessId"),
		ServiceID:  req.ServiceID,
		StaffID:    req.StaffID,
		CustomerID: req.CustomerID,
		Date:       date,
		Start:      start,
		Notes:      req.Notes,
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.Created(c, ap)
}

// ======================================================
// TRANSITIONS
// ======================================================

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	var req CancelAppointmentRequest
	// the body is optional
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			httperr.BadRequest(c, "invalid_request", "Invalid request body.")
			return
		}
	}
	h.commit(c, ucAppointment.Transition{
		Kind:   ucAppointment.TransitionCancel,
		Reason: req.Reason,
	})
}

func (h *AppointmentHandler) Reschedule(c *gin.Context) {
	var req RescheduleAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}
	date, ok := parseDate(c, req.Date)
	if !ok {
		return
	}
	start, ok := parseStartTime(c, req.StartTime)
	if !ok {
		return
	}

	h.commit(c, ucAppointment.Transition{
		Kind:    ucAppointment.TransitionReschedule,
		Date:    date,
		Start:   start,
		StaffID: req.StaffID,
	})
}

func (h *AppointmentHandler) Complete(c *gin.Context) {
	h.commit(c, ucAppointment.Transition{Kind: ucAppointment.TransitionComplete})
}

func (h *AppointmentHandler) NoShow(c *gin.Context) {
	h.commit(c, ucAppointment.Transition{Kind: ucAppointment.TransitionNoShow})
}

func (h *AppointmentHandler) Confirm(c *gin.Context) {
	h.commit(c, ucAppointment.Transition{Kind: ucAppointment.TransitionConfirm})
}

func (h *AppointmentHandler) commit(c *gin.Context, t ucAppointment.Transition) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	t.Actor = actor
	t.AppointmentID = c.Param("id")

	ap, err := h.engine.CommitTransition(c.Request.Context(), t)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.OK(c, ap)
}

// ======================================================
// READ
// ======================================================

func (h *AppointmentHandler) Get(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}

	ap, err := h.engine.GetAppointment(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.OK(c, ap)
}

func (h *AppointmentHandler) Chain(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}

	chain, err := h.engine.Chain(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.List(c, dto.FromAppointments(chain))
}

func (h *AppointmentHandler) ListByDate(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	date, ok := parseDate(c, c.Query("date"))
	if !ok {
		return
	}

	list, err := h.engine.ListByDate(c.Request.Context(), actor, c.Param("staffId"), date)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.List(c, list)
}

func (h *AppointmentHandler) ListByMonth(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}

	year, err1 := strconv.Atoi(c.Query("year"))
	month, err2 := strconv.Atoi(c.Query("month"))
	if err1 != nil || err2 != nil {
		httperr.BadRequest(c, "invalid_month", "year and month are required.")
		return
	}

	list, err := h.engine.ListByMonth(c.Request.Context(), actor, c.Param("staffId"), year, month)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.List(c, list)
}
