package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/salonworks/salon-scheduler/internal/domain/schedule"
	"github.com/salonworks/salon-scheduler/internal/dto"
	"github.com/salonworks/salon-scheduler/internal/httperr"
	"github.com/salonworks/salon-scheduler/internal/middleware"
	usecase "github.com/salonworks/salon-scheduler/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	createBooking    *usecase.CreateBooking
	previewConflicts *usecase.PreviewConflicts
	listByDate       *usecase.ListAppointmentsByDate
	listByMonth      *usecase.ListAppointmentsByMonth
	cancel           *usecase.CancelAppointment
	complete         *usecase.CompleteAppointment
	cancelGroup      *usecase.CancelGroup
}

func NewAppointmentHandler(
	createBooking *usecase.CreateBooking,
	previewConflicts *usecase.PreviewConflicts,
	listByDate *usecase.ListAppointmentsByDate,
	listByMonth *usecase.ListAppointmentsByMonth,
	cancel *usecase.CancelAppointment,
	complete *usecase.CompleteAppointment,
	cancelGroup *usecase.CancelGroup,
) *AppointmentHandler {
	return &AppointmentHandler{
		createBooking:    createBooking,
		previewConflicts: previewConflicts,
		listByDate:       listByDate,
		listByMonth:      listByMonth,
		cancel:           cancel,
		complete:         complete,
		cancelGroup:      cancelGroup,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type recurrenceRequest struct {
	DurationValue  int    `json:"duration_value" binding:"required,min=1"`
	DurationUnit   string `json:"duration_unit" binding:"required,oneof=days weeks months"`
	FrequencyValue int    `json:"frequency_value" binding:"required,min=1"`
	FrequencyUnit  string `json:"frequency_unit" binding:"required,oneof=days weeks"`
}

type bookingRequestBody struct {
	EmployeeID uint   `json:"employee_id" binding:"required"`
	Date       string `json:"date" binding:"required"`
	Time       string `json:"time" binding:"required"`

	Services []usecase.ServiceRequest `json:"services" binding:"required"`

	Recurrence *recurrenceRequest `json:"recurrence"`
}

type createAppointmentBody struct {
	bookingRequestBody

	CustomerName  string `json:"customer_name" binding:"required"`
	CustomerPhone string `json:"customer_phone"`
	CustomerEmail string `json:"customer_email"`

	Notes string `json:"notes"`

	// confirma a criação mesmo com conflitos reportados no preview
	Force bool `json:"force"`
}

func (b bookingRequestBody) toBookingRequest(salonID uint) usecase.BookingRequest {
	req := usecase.BookingRequest{
		SalonID:    salonID,
		EmployeeID: b.EmployeeID,
		Date:       b.Date,
		Time:       b.Time,
		Items:      b.Services,
	}

	if b.Recurrence != nil {
		req.Recurring = true
		req.Duration = schedule.RecurringDuration{
			Value: b.Recurrence.DurationValue,
			Unit:  schedule.DurationUnit(b.Recurrence.DurationUnit),
		}
		req.Frequency = schedule.RecurringFrequency{
			Value: b.Recurrence.FrequencyValue,
			Unit:  schedule.DurationUnit(b.Recurrence.FrequencyUnit),
		}
	}

	return req
}

// ======================================================
// PREVIEW DE CONFLITOS
// ======================================================

func (h *AppointmentHandler) PreviewConflicts(c *gin.Context) {
	salonID := c.MustGet(middleware.ContextSalonID).(uint)

	var body bookingRequestBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	result, err := h.previewConflicts.Execute(c.Request.Context(), body.toBookingRequest(salonID))
	if err != nil {
		if code, ok := httperr.BusinessCode(err); ok {
			httperr.BadRequest(c, code, code)
			return
		}
		httperr.Internal(c, "preview_failed", "failed to check conflicts")
		return
	}

	c.JSON(http.StatusOK, result)
}

// ======================================================
// CRIAÇÃO (simples ou recorrente)
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	salonID := c.MustGet(middleware.ContextSalonID).(uint)

	var body createAppointmentBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	input := usecase.CreateBookingInput{
		BookingRequest: body.toBookingRequest(salonID),
		CustomerName:   body.CustomerName,
		CustomerPhone:  body.CustomerPhone,
		CustomerEmail:  body.CustomerEmail,
		Notes:          body.Notes,
		Force:          body.Force,
	}

	result, err := h.createBooking.Execute(c.Request.Context(), input)
	if err != nil {
		if httperr.IsBusiness(err, "schedule_conflict") {
			// 409 com os conflitos no corpo: o front reapresenta com force
			c.JSON(http.StatusConflict, gin.H{
				"error":     "schedule_conflict",
				"conflicts": result.Conflicts,
			})
			return
		}
		if code, ok := httperr.BusinessCode(err); ok {
			httperr.BadRequest(c, code, code)
			return
		}
		if result != nil && result.Created > 0 {
			// fan-out parcial: reporta o que foi criado junto do erro
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":    "partial_booking",
				"expected": result.Expected,
				"created":  result.Created,
			})
			return
		}
		httperr.Internal(c, "booking_failed", "failed to create appointment")
		return
	}

	c.JSON(http.StatusCreated, result)
}

// ======================================================
// LISTAGENS
// ======================================================

func (h *AppointmentHandler) ListByDate(c *gin.Context) {
	salonID := c.MustGet(middleware.ContextSalonID).(uint)
	userID := c.MustGet(middleware.ContextUserID).(uint)

	dateStr := c.Query("date")
	if dateStr == "" {
		httperr.BadRequest(c, "missing_date", "date query param is required")
		return
	}

	date, err := parseQueryDate(dateStr)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "date must be YYYY-MM-DD")
		return
	}

	out, err := h.listByDate.Execute(c.Request.Context(), userID, salonID, date)
	if err != nil {
		httperr.Internal(c, "list_failed", "failed to list appointments")
		return
	}

	if out == nil {
		out = []dto.AppointmentListDTO{}
	}
	c.JSON(http.StatusOK, out)
}

func (h *AppointmentHandler) ListByMonth(c *gin.Context) {
	salonID := c.MustGet(middleware.ContextSalonID).(uint)
	userID := c.MustGet(middleware.ContextUserID).(uint)

	year, errY := strconv.Atoi(c.Query("year"))
	month, errM := strconv.Atoi(c.Query("month"))
	if errY != nil || errM != nil || month < 1 || month > 12 {
		httperr.BadRequest(c, "invalid_period", "year and month query params are required")
		return
	}

	out, err := h.listByMonth.Execute(c.Request.Context(), userID, salonID, year, month)
	if err != nil {
		httperr.Internal(c, "list_failed", "failed to list appointments")
		return
	}

	if out == nil {
		out = []dto.AppointmentListDTO{}
	}
	c.JSON(http.StatusOK, out)
}

// ======================================================
// TRANSIÇÕES DE STATUS
// ======================================================

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	salonID := c.MustGet(middleware.ContextSalonID).(uint)
	userID := c.MustGet(middleware.ContextUserID).(uint)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "invalid appointment id")
		return
	}

	ap, err := h.cancel.Execute(c.Request.Context(), salonID, userID, uint(id))
	if err != nil {
		if code, ok := httperr.BusinessCode(err); ok {
			if code == "appointment_not_found" {
				httperr.NotFound(c, code, code)
				return
			}
			httperr.BadRequest(c, code, code)
			return
		}
		httperr.Internal(c, "cancel_failed", "failed to cancel appointment")
		return
	}

	c.JSON(http.StatusOK, ap)
}

func (h *AppointmentHandler) Complete(c *gin.Context) {
	salonID := c.MustGet(middleware.ContextSalonID).(uint)
	userID := c.MustGet(middleware.ContextUserID).(uint)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "invalid appointment id")
		return
	}

	ap, err := h.complete.Execute(c.Request.Context(), salonID, userID, uint(id))
	if err != nil {
		if code, ok := httperr.BusinessCode(err); ok {
			if code == "appointment_not_found" {
				httperr.NotFound(c, code, code)
				return
			}
			httperr.BadRequest(c, code, code)
			return
		}
		httperr.Internal(c, "complete_failed", "failed to complete appointment")
		return
	}

	c.JSON(http.StatusOK, ap)
}

// ======================================================
// CANCELAMENTO DE GRUPO
// ======================================================

func (h *AppointmentHandler) CancelGroup(c *gin.Context) {
	salonID := c.MustGet(middleware.ContextSalonID).(uint)
	userID := c.MustGet(middleware.ContextUserID).(uint)

	groupID := c.Param("groupId")
	if groupID == "" {
		httperr.BadRequest(c, "missing_group_id", "group id is required")
		return
	}

	result, err := h.cancelGroup.Execute(c.Request.Context(), salonID, userID, groupID)
	if err != nil {
		if httperr.IsBusiness(err, "group_not_found") {
			httperr.NotFound(c, "group_not_found", "recurring group not found")
			return
		}
		httperr.Internal(c, "cancel_group_failed", "failed to cancel group")
		return
	}

	status := http.StatusOK
	if result.Partial() {
		// 207: parte dos irmãos não pôde ser cancelada
		status = http.StatusMultiStatus
	}

	c.JSON(status, result)
}
