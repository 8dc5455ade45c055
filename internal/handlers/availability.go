package handlers

import (
	"strconv"
	"time"

	"optical-booking-server/internal/config"
	"optical-booking-server/internal/middleware"
	"optical-booking-server/internal/models"
	"optical-booking-server/internal/scheduling"
	"optical-booking-server/internal/services"
	"optical-booking-server/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AvailabilityHandler serves computed appointment slots. Slots are
// derived on every request from weekly templates and current bookings,
// never persisted.
type AvailabilityHandler struct {
	DB  *gorm.DB
	Cfg *config.Config
}

// NewAvailabilityHandler creates a new AvailabilityHandler.
func NewAvailabilityHandler(db *gorm.DB, cfg *config.Config) *AvailabilityHandler {
	return &AvailabilityHandler{DB: db, Cfg: cfg}
}

// policyForCaller maps the caller's role onto a booking policy. Staff,
// doctors and admins may book same-day; patients get the configured
// minimum notice.
func (h *AvailabilityHandler) policyForCaller(c *gin.Context) scheduling.BookingPolicy {
	userRole, _ := middleware.GetUserRoleFromContext(c)
	policy := scheduling.BookingPolicy{
		AllowSameDay: userRole.IsPrivileged(),
		Now:          time.Now(),
	}
	if !userRole.IsPrivileged() {
		policy.MinNoticeDays = h.Cfg.Booking.PatientMinNoticeDays
	}
	return policy
}

// GetDoctorAvailability handles fetching slots for one doctor on a
// single date or an inclusive date range.
// Query params: date (required), endDate (optional), duration (optional minutes).
func (h *AvailabilityHandler) GetDoctorAvailability(c *gin.Context) {
	doctorIDStr := c.Param("doctorId")
	if _, err := uuid.Parse(doctorIDStr); err != nil {
		utils.BadRequest(c, "Invalid Doctor ID format")
		return
	}

	date := c.Query("date")
	if date == "" {
		utils.BadRequest(c, "Query parameter 'date' is required (YYYY-MM-DD)")
		return
	}
	endDate := c.Query("endDate")

	organizationID, _ := middleware.GetOrganizationIDFromContext(c)

	var profile models.DoctorProfile
	if err := h.DB.Preload("User").Where("user_id = ? AND organization_id = ?", doctorIDStr, organizationID).First(&profile).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Doctor not found in this organization")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	duration := profile.SlotDurationMinutes
	if duration <= 0 {
		duration = h.Cfg.Booking.DefaultSlotMinutes
	}
	if raw := c.Query("duration"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			utils.BadRequest(c, "Query parameter 'duration' must be a positive number of minutes")
			return
		}
		duration = parsed
	}

	var entries []models.ScheduleEntry
	if err := h.DB.Where("doctor_id = ?", doctorIDStr).Find(&entries).Error; err != nil {
		utils.InternalServerError(c, "Failed to load schedule: "+err.Error())
		return
	}

	apptQuery := h.DB.Where("doctor_id = ? AND status <> ?", doctorIDStr, models.StatusCancelled)
	if endDate != "" {
		apptQuery = apptQuery.Where("date BETWEEN ? AND ?", date, endDate)
	} else {
		apptQuery = apptQuery.Where("date = ?", date)
	}
	var appointments []models.Appointment
	if err := apptQuery.Find(&appointments).Error; err != nil {
		utils.InternalServerError(c, "Failed to load appointments: "+err.Error())
		return
	}

	doctor := scheduling.DoctorInfo{
		ID:              profile.UserID,
		Name:            profile.User.FullName(),
		Specialization:  profile.Specialization,
		ConsultationFee: profile.ConsultationFee,
	}
	policy := h.policyForCaller(c)

	if endDate != "" {
		days, err := scheduling.ComputeAvailabilityRange(
			models.ScheduleEntriesToEngine(entries), doctor, date, endDate, duration,
			models.AppointmentsToEngine(appointments), policy)
		if err != nil {
			respondSchedulingError(c, err)
			return
		}
		utils.Success(c, "Availability fetched successfully", days)
		return
	}

	slots, err := scheduling.ComputeAvailability(
		models.ScheduleEntriesToEngine(entries), doctor, date, duration,
		models.AppointmentsToEngine(appointments), policy)
	if err != nil {
		respondSchedulingError(c, err)
		return
	}
	utils.Success(c, "Availability fetched successfully", scheduling.DayAvailability{Date: date, Slots: slots})
}

// SearchAvailability handles fetching merged slots across every doctor
// of a specialty on one date.
// Query params: date (required), specialty (optional).
func (h *AvailabilityHandler) SearchAvailability(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		utils.BadRequest(c, "Query parameter 'date' is required (YYYY-MM-DD)")
		return
	}
	if _, err := scheduling.ParseDate(date); err != nil {
		utils.BadRequest(c, "Invalid date: "+err.Error())
		return
	}

	organizationID, _ := middleware.GetOrganizationIDFromContext(c)

	finder := services.NewGormSlotFinder(h.DB)
	slots, err := finder.FindSlots(organizationID, c.Query("specialty"), date, h.policyForCaller(c))
	if err != nil {
		respondSchedulingError(c, err)
		return
	}

	utils.Success(c, "Availability fetched successfully", scheduling.DayAvailability{Date: date, Slots: slots})
}
