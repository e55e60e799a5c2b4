package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	domain "github.com/salonworks/salon-scheduler/internal/domain/appointment"
	"github.com/salonworks/salon-scheduler/internal/httperr"
	"github.com/salonworks/salon-scheduler/internal/models"
	usecase "github.com/salonworks/salon-scheduler/internal/usecase/appointment"
)

////////////////////////////////////////////////////////
// HANDLER
////////////////////////////////////////////////////////

type PublicHandler struct {
	db            *gorm.DB
	createBooking *usecase.CreateBooking
	availability  *usecase.GetAvailability
}

func NewPublicHandler(
	db *gorm.DB,
	createBooking *usecase.CreateBooking,
	availability *usecase.GetAvailability,
) *PublicHandler {
	return &PublicHandler{
		db:            db,
		createBooking: createBooking,
		availability:  availability,
	}
}

////////////////////////////////////////////////////////
// DTOs
////////////////////////////////////////////////////////

type PublicCreateAppointmentRequest struct {
	CustomerName  string `json:"customer_name" binding:"required"`
	CustomerPhone string `json:"customer_phone" binding:"required"`
	CustomerEmail string `json:"customer_email"`
	EmployeeID    uint   `json:"employee_id"`
	ServiceID     uint   `json:"service_id" binding:"required"`
	Date          string `json:"date" binding:"required"` // YYYY-MM-DD
	Time          string `json:"time" binding:"required"` // HH:mm
	Notes         string `json:"notes"`
}

func (h *PublicHandler) salonBySlug(c *gin.Context) (*models.Salon, bool) {
	slug := c.Param("slug")

	var salon models.Salon
	if err := h.db.Where("slug = ?", slug).First(&salon).Error; err != nil {
		httperr.NotFound(c, "salon_not_found", "salon not found")
		return nil, false
	}
	return &salon, true
}

// quando o cliente não escolhe profissional, cai no dono
func (h *PublicHandler) resolveEmployee(c *gin.Context, salon *models.Salon, employeeID uint) (*models.User, bool) {
	var employee models.User

	q := h.db.Where("salon_id = ?", salon.ID)
	if employeeID > 0 {
		q = q.Where("id = ?", employeeID)
	} else {
		q = q.Where("role = ?", "owner")
	}

	if err := q.First(&employee).Error; err != nil {
		httperr.BadRequest(c, "employee_not_found", "employee not found")
		return nil, false
	}
	return &employee, true
}

////////////////////////////////////////////////////////
// SERVICES
////////////////////////////////////////////////////////

func (h *PublicHandler) ListServices(c *gin.Context) {
	salon, ok := h.salonBySlug(c)
	if !ok {
		return
	}

	category := strings.TrimSpace(strings.ToLower(c.Query("category")))
	query := strings.TrimSpace(strings.ToLower(c.Query("query")))

	q := h.db.
		Where("salon_id = ? AND active = true", salon.ID)

	if category != "" {
		q = q.Where("LOWER(category) = ?", category)
	}

	if query != "" {
		like := "%" + query + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", like, like)
	}

	var services []models.Service
	if err := q.Order("id ASC").Find(&services).Error; err != nil {
		httperr.Internal(c, "failed_to_list_services", "failed to list services")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"salon":    salon,
		"services": services,
	})
}

////////////////////////////////////////////////////////
// AVAILABILITY (REUSO TOTAL DO USE CASE)
////////////////////////////////////////////////////////

func (h *PublicHandler) AvailabilityForClient(c *gin.Context) {
	dateStr := c.Query("date")
	serviceIDStr := c.Query("service_id")

	if dateStr == "" || serviceIDStr == "" {
		httperr.BadRequest(c, "missing_params", "date and service_id are required")
		return
	}

	serviceID, err := strconv.ParseUint(serviceIDStr, 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_service_id", "invalid service")
		return
	}

	salon, ok := h.salonBySlug(c)
	if !ok {
		return
	}

	employeeIDStr := c.DefaultQuery("employee_id", "0")
	employeeID, _ := strconv.ParseUint(employeeIDStr, 10, 64)

	employee, ok := h.resolveEmployee(c, salon, uint(employeeID))
	if !ok {
		return
	}

	date, err := parseDateInSalon(salon, dateStr)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "invalid date")
		return
	}

	slots, err := h.availability.Execute(
		c.Request.Context(),
		domain.AvailabilityInput{
			SalonID:    salon.ID,
			EmployeeID: employee.ID,
			ServiceID:  uint(serviceID),
			Date:       date,
		},
	)

	if err != nil {
		if httperr.IsBusiness(err, "service_not_found") {
			httperr.BadRequest(c, "service_not_found", "invalid service")
			return
		}
		if httperr.IsBusiness(err, "employee_not_found") {
			httperr.BadRequest(c, "employee_not_found", "employee not found")
			return
		}

		httperr.Internal(c, "availability_failed", "failed to compute availability")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"date":  dateStr,
		"slots": slots,
	})
}

////////////////////////////////////////////////////////
// CREATE APPOINTMENT (PUBLIC → REUSA PRIVATE)
////////////////////////////////////////////////////////

func (h *PublicHandler) CreateAppointment(c *gin.Context) {
	salon, ok := h.salonBySlug(c)
	if !ok {
		return
	}

	var req PublicCreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "invalid request body")
		return
	}

	employee, ok := h.resolveEmployee(c, salon, req.EmployeeID)
	if !ok {
		return
	}

	// reserva pública é sempre simples: sem recorrência e sem force
	input := usecase.CreateBookingInput{
		BookingRequest: usecase.BookingRequest{
			SalonID:    salon.ID,
			EmployeeID: employee.ID,
			Date:       req.Date,
			Time:       req.Time,
			Items: []usecase.ServiceRequest{
				{ServiceID: req.ServiceID, Quantity: 1},
			},
		},
		CustomerName:  req.CustomerName,
		CustomerPhone: req.CustomerPhone,
		CustomerEmail: req.CustomerEmail,
		Notes:         req.Notes,
	}

	result, err := h.createBooking.Execute(c.Request.Context(), input)
	if err != nil {
		if httperr.IsBusiness(err, "schedule_conflict") {
			c.JSON(http.StatusConflict, gin.H{
				"error":     "schedule_conflict",
				"conflicts": result.Conflicts,
			})
			return
		}
		if code, okCode := httperr.BusinessCode(err); okCode {
			httperr.BadRequest(c, code, code)
			return
		}
		httperr.Internal(c, "booking_failed", "failed to create appointment")
		return
	}

	c.JSON(http.StatusCreated, result)
}
