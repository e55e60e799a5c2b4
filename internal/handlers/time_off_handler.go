package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/salonworks/salon-scheduler/internal/httpresp"
	"github.com/salonworks/salon-scheduler/internal/middleware"
	"github.com/salonworks/salon-scheduler/internal/models"
	"github.com/salonworks/salon-scheduler/internal/timezone"
)

// ======================================================
// HANDLER
// ======================================================

type TimeOffHandler struct {
	db *gorm.DB
}

func NewTimeOffHandler(db *gorm.DB) *TimeOffHandler {
	return &TimeOffHandler{db: db}
}

// ======================================================
// REQUESTS
// ======================================================

type TimeOffRuleRequest struct {
	Period string `json:"period" binding:"required,oneof=exact daily weekly monthly"`

	FromTime string `json:"from_time" binding:"required"`
	ToTime   string `json:"to_time" binding:"required"`
	Reason   string `json:"reason"`

	// exact
	Date string `json:"date"`

	// weekly: dias ISO 1..7 / monthly: dias 1..31
	DaysOfWeek  []int `json:"days_of_week"`
	DaysOfMonth []int `json:"days_of_month"`
}

type SalonTimeOffRequest struct {
	EmployeeID uint `json:"employee_id"`

	Date string `json:"date" binding:"required"`
	Time string `json:"time" binding:"required"`

	DurationMin int  `json:"duration_min"`
	ToClose     bool `json:"to_close"`

	Reason string `json:"reason"`

	Recurring      bool   `json:"recurring"`
	DurationValue  int    `json:"duration_value"`
	DurationUnit   string `json:"duration_unit"`
	FrequencyValue int    `json:"frequency_value"`
	FrequencyUnit  string `json:"frequency_unit"`
}

// ======================================================
// REGRAS DO FUNCIONÁRIO
// ======================================================

func (h *TimeOffHandler) ListRules(c *gin.Context) {
	employeeID := c.MustGet(middleware.ContextUserID).(uint)

	var rules []models.TimeOffRule
	if err := h.db.
		Where("employee_id = ?", employeeID).
		Order("position ASC, id ASC").
		Find(&rules).Error; err != nil {

		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_list_time_off"})
		return
	}

	httpresp.List(c, rules)
}

func (h *TimeOffHandler) CreateRule(c *gin.Context) {
	employeeID := c.MustGet(middleware.ContextUserID).(uint)
	salonID := c.MustGet(middleware.ContextSalonID).(uint)

	var req TimeOffRuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	// quem valida o formato é a escrita; os resolvers assumem dado bom
	if code := validateRuleRequest(&req); code != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": code})
		return
	}

	rule := models.TimeOffRule{
		EmployeeID: employeeID,
		Period:     req.Period,
		FromTime:   req.FromTime,
		ToTime:     req.ToTime,
		Reason:     req.Reason,
	}

	if req.Period == models.TimeOffPeriodExact {
		var salon models.Salon
		if err := h.db.First(&salon, salonID).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "salon_not_found"})
			return
		}
		date, err := parseDateInSalon(&salon, req.Date)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_date"})
			return
		}
		rule.Date = &date
	}

	rule.DaysOfWeek = joinDayList(req.DaysOfWeek)
	rule.DaysOfMonth = joinDayList(req.DaysOfMonth)

	var maxPos int64
	h.db.Model(&models.TimeOffRule{}).
		Where("employee_id = ?", employeeID).
		Count(&maxPos)
	rule.Position = int(maxPos)

	if err := h.db.Create(&rule).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_create_time_off"})
		return
	}

	c.JSON(http.StatusCreated, rule)
}

func (h *TimeOffHandler) DeleteRule(c *gin.Context) {
	employeeID := c.MustGet(middleware.ContextUserID).(uint)
	id := c.Param("id")

	res := h.db.
		Where("id = ? AND employee_id = ?", id, employeeID).
		Delete(&models.TimeOffRule{})

	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_delete_time_off"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "time_off_not_found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func validateRuleRequest(req *TimeOffRuleRequest) string {
	if _, _, err := timezone.ParseClock(req.FromTime); err != nil {
		return "invalid_time_format"
	}
	if _, _, err := timezone.ParseClock(req.ToTime); err != nil {
		return "invalid_time_format"
	}

	switch req.Period {
	case models.TimeOffPeriodExact:
		if req.Date == "" {
			return "missing_date"
		}
	case models.TimeOffPeriodWeekly:
		if len(req.DaysOfWeek) == 0 {
			return "missing_days_of_week"
		}
		for _, d := range req.DaysOfWeek {
			if d < 1 || d > 7 {
				return "invalid_day_of_week"
			}
		}
	case models.TimeOffPeriodMonthly:
		if len(req.DaysOfMonth) == 0 {
			return "missing_days_of_month"
		}
		for _, d := range req.DaysOfMonth {
			if d < 1 || d > 31 {
				return "invalid_day_of_month"
			}
		}
	}

	return ""
}

func joinDayList(days []int) string {
	if len(days) == 0 {
		return ""
	}

	parts := make([]string, 0, len(days))
	for _, d := range days {
		parts = append(parts, strconv.Itoa(d))
	}
	return strings.Join(parts, ",")
}

// ======================================================
// BLOQUEIOS DO SALÃO
// ======================================================

func (h *TimeOffHandler) ListSalonTimeOff(c *gin.Context) {
	salonID := c.MustGet(middleware.ContextSalonID).(uint)

	var rows []models.AppointmentTimeOff
	if err := h.db.
		Where("salon_id = ?", salonID).
		Order("start_time ASC").
		Find(&rows).Error; err != nil {

		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_list_salon_time_off"})
		return
	}

	httpresp.List(c, rows)
}

func (h *TimeOffHandler) CreateSalonTimeOff(c *gin.Context) {
	salonID := c.MustGet(middleware.ContextSalonID).(uint)

	var salon models.Salon
	if err := h.db.First(&salon, salonID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "salon_not_found"})
		return
	}

	var req SalonTimeOffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	start, err := parseDateTimeInSalon(&salon, req.Date, req.Time)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_date_or_time"})
		return
	}

	if !req.ToClose && req.DurationMin <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing_duration"})
		return
	}

	row := models.AppointmentTimeOff{
		SalonID:        salonID,
		EmployeeID:     req.EmployeeID,
		StartTime:      start,
		DurationMin:    req.DurationMin,
		ToClose:        req.ToClose,
		Reason:         req.Reason,
		Recurring:      req.Recurring,
		DurationValue:  req.DurationValue,
		DurationUnit:   req.DurationUnit,
		FrequencyValue: req.FrequencyValue,
		FrequencyUnit:  req.FrequencyUnit,
	}

	if err := h.db.Create(&row).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_create_salon_time_off"})
		return
	}

	c.JSON(http.StatusCreated, row)
}

func (h *TimeOffHandler) DeleteSalonTimeOff(c *gin.Context) {
	salonID := c.MustGet(middleware.ContextSalonID).(uint)
	id := c.Param("id")

	res := h.db.
		Where("id = ? AND salon_id = ?", id, salonID).
		Delete(&models.AppointmentTimeOff{})

	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_delete_salon_time_off"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "salon_time_off_not_found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
