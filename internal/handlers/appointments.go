package handlers

import (
	"optical-booking-server/internal/config"
	"optical-booking-server/internal/middleware"
	"optical-booking-server/internal/models"
	"optical-booking-server/internal/scheduling"
	"optical-booking-server/internal/utils"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AppointmentHandler handles appointment related requests.
type AppointmentHandler struct {
	DB  *gorm.DB
	Cfg *config.Config
}

// NewAppointmentHandler creates a new AppointmentHandler.
func NewAppointmentHandler(db *gorm.DB, cfg *config.Config) *AppointmentHandler {
	return &AppointmentHandler{DB: db, Cfg: cfg}
}

// CreateAppointmentRequest represents the request body for creating an appointment.
type CreateAppointmentRequest struct {
	DoctorID    string `json:"doctorId" binding:"required,uuid"`
	PatientID   string `json:"patientId" binding:"omitempty,uuid"` // Defaults to the authenticated user
	Date        string `json:"date" binding:"required"`
	StartTime   string `json:"startTime" binding:"required"`
	ServiceType string `json:"serviceType"`
	Reason      string `json:"reason" binding:"required"`
	Notes       string `json:"notes"`
	Channel     string `json:"channel" binding:"omitempty,oneof=web whatsapp assistant"`
}

// CreateAppointment handles booking a new appointment. The requested slot
// is re-validated against the doctor's weekly schedule and existing
// bookings before anything is written, so a slot that was taken between
// the availability query and this call comes back as a conflict.
func (h *AppointmentHandler) CreateAppointment(c *gin.Context) {
	var req CreateAppointmentRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	userIDStr, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}
	organizationID, _ := middleware.GetOrganizationIDFromContext(c)
	userRole, _ := middleware.GetUserRoleFromContext(c)

	patientIDStr := req.PatientID
	if patientIDStr == "" {
		patientIDStr = userIDStr
	}
	// Patients can only book for themselves; staff book on behalf of patients
	if !userRole.IsPrivileged() && patientIDStr != userIDStr {
		utils.Forbidden(c, "Patients can only book appointments for themselves.")
		return
	}

	if _, err := scheduling.ParseDate(req.Date); err != nil {
		utils.BadRequest(c, "Invalid date: "+err.Error())
		return
	}
	if !scheduling.ValidTime(req.StartTime) {
		utils.BadRequest(c, "Invalid start time, expected HH:MM")
		return
	}

	doctorID, err := uuid.Parse(req.DoctorID)
	if err != nil {
		utils.BadRequest(c, "Invalid Doctor ID format")
		return
	}

	// Verify the doctor exists in this organization and has a profile
	var profile models.DoctorProfile
	if err := h.DB.Preload("User").Where("user_id = ? AND organization_id = ?", doctorID.String(), organizationID).First(&profile).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Doctor not found in this organization")
		} else {
			utils.InternalServerError(c, "Database error verifying doctor: "+err.Error())
		}
		return
	}

	// Verify the patient exists in this organization
	var patient models.User
	if err := h.DB.Where("id = ? AND organization_id = ?", patientIDStr, organizationID).First(&patient).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Patient not found")
		} else {
			utils.InternalServerError(c, "Database error verifying patient: "+err.Error())
		}
		return
	}

	slot, err := h.resolveSlot(&profile, req.Date, req.StartTime, userRole, "")
	if err != nil {
		respondSchedulingError(c, err)
		return
	}
	if slot == nil {
		utils.BadRequest(c, "Requested time is outside the doctor's schedule")
		return
	}
	if !slot.Available {
		utils.Conflict(c, "The requested slot is no longer available")
		return
	}

	channel := req.Channel
	if channel == "" {
		channel = "web"
	}

	appointment := models.Appointment{
		OrganizationID: organizationID,
		PatientID:      patientIDStr,
		DoctorID:       req.DoctorID,
		Date:           req.Date,
		StartTime:      slot.StartTime,
		EndTime:        slot.EndTime,
		Status:         models.StatusPending,
		ServiceType:    req.ServiceType,
		Reason:         req.Reason,
		Notes:          req.Notes,
		Channel:        channel,
	}

	if err := h.DB.Create(&appointment).Error; err != nil {
		utils.InternalServerError(c, "Failed to create appointment: "+err.Error())
		return
	}

	utils.Created(c, "Appointment created successfully", appointment)
}

// GetAppointmentsForUser handles fetching appointments for the logged-in user.
// Patients see their own, doctors see their calendar, staff and admins see
// the whole organization.
func (h *AppointmentHandler) GetAppointmentsForUser(c *gin.Context) {
	userIDStr, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	userRole, _ := middleware.GetUserRoleFromContext(c)
	organizationID, _ := middleware.GetOrganizationIDFromContext(c)

	var appointments []models.Appointment
	var err error

	query := h.DB.Preload("Patient").Preload("Doctor").Order("date asc, start_time asc")
	if date := c.Query("date"); date != "" {
		query = query.Where("date = ?", date)
	}
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	switch userRole {
	case models.RolePatient:
		err = query.Where("patient_id = ?", userIDStr).Find(&appointments).Error
	case models.RoleDoctor:
		err = query.Where("doctor_id = ?", userIDStr).Find(&appointments).Error
	case models.RoleStaff, models.RoleAdmin, models.RoleSuperAdmin:
		err = query.Where("organization_id = ?", organizationID).Find(&appointments).Error
	default:
		utils.Forbidden(c, "User role not permitted to view appointments this way. Role: "+string(userRole))
		return
	}

	if err != nil {
		utils.InternalServerError(c, "Failed to fetch appointments: "+err.Error())
		return
	}

	utils.Success(c, "Appointments fetched successfully", appointments)
}

// GetAppointmentByID handles fetching a single appointment by its ID.
// Accessible by the involved patient or doctor, or privileged staff of
// the same organization.
func (h *AppointmentHandler) GetAppointmentByID(c *gin.Context) {
	appointmentIDStr := c.Param("id")
	appointmentID, err := uuid.Parse(appointmentIDStr)
	if err != nil {
		utils.BadRequest(c, "Invalid Appointment ID format")
		return
	}

	var appointment models.Appointment
	if err := h.DB.Preload("Patient").Preload("Doctor").First(&appointment, "id = ?", appointmentID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Appointment not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	userIDStr, _ := middleware.GetUserIDFromContext(c)
	userRole, _ := middleware.GetUserRoleFromContext(c)
	organizationID, _ := middleware.GetOrganizationIDFromContext(c)

	isPatientInvolved := userIDStr == appointment.PatientID
	isDoctorInvolved := userIDStr == appointment.DoctorID
	isSameOrgStaff := userRole.IsPrivileged() && organizationID == appointment.OrganizationID

	if !isPatientInvolved && !isDoctorInvolved && !isSameOrgStaff {
		utils.Forbidden(c, "You are not authorized to view this appointment")
		return
	}

	utils.Success(c, "Appointment fetched successfully", appointment)
}

// UpdateAppointmentStatusRequest represents the request body for updating an appointment's status.
type UpdateAppointmentStatusRequest struct {
	Status models.AppointmentStatus `json:"status" binding:"required,oneof=pending confirmed cancelled completed no_show"`
	Notes  string                   `json:"notes"` // Optional notes for status change (e.g., cancellation reason)
}

// UpdateAppointmentStatus handles updating the status of an appointment.
// Patients may only cancel; doctors and staff may apply any transition,
// including marking a no-show.
func (h *AppointmentHandler) UpdateAppointmentStatus(c *gin.Context) {
	appointmentIDStr := c.Param("id")
	appointmentID, err := uuid.Parse(appointmentIDStr)
	if err != nil {
		utils.BadRequest(c, "Invalid Appointment ID format")
		return
	}

	var req UpdateAppointmentStatusRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	var appointment models.Appointment
	if err := h.DB.First(&appointment, "id = ?", appointmentID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Appointment not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	userIDStr, _ := middleware.GetUserIDFromContext(c)
	userRole, _ := middleware.GetUserRoleFromContext(c)
	organizationID, _ := middleware.GetOrganizationIDFromContext(c)

	canUpdate := false
	if userRole.IsPrivileged() && organizationID == appointment.OrganizationID {
		canUpdate = true
	} else if userRole == models.RoleDoctor && userIDStr == appointment.DoctorID {
		canUpdate = true
	} else if userRole == models.RolePatient && userIDStr == appointment.PatientID {
		// Patients can only cancel, and only while the booking is still active
		if req.Status == models.StatusCancelled &&
			(appointment.Status == models.StatusPending || appointment.Status == models.StatusConfirmed) {
			canUpdate = true
		} else if req.Status != models.StatusCancelled {
			utils.Forbidden(c, "Patients can only cancel appointments.")
			return
		}
	}

	if !canUpdate {
		utils.Forbidden(c, "You are not authorized to update this appointment's status or perform this status transition.")
		return
	}

	appointment.Status = req.Status
	if req.Notes != "" {
		appointment.Notes = req.Notes
	}

	if err := h.DB.Save(&appointment).Error; err != nil {
		utils.InternalServerError(c, "Failed to update appointment status: "+err.Error())
		return
	}

	utils.Success(c, "Appointment status updated successfully", appointment)
}

// RescheduleAppointmentRequest represents the request body for rescheduling an appointment.
type RescheduleAppointmentRequest struct {
	NewDate      string `json:"newDate" binding:"required"`
	NewStartTime string `json:"newStartTime" binding:"required"`
	Notes        string `json:"notes"` // Optional notes for rescheduling
}

// RescheduleAppointment moves an appointment to a new slot. The target
// slot goes through the same schedule and conflict validation as a fresh
// booking, with the appointment being moved excluded from conflicts.
func (h *AppointmentHandler) RescheduleAppointment(c *gin.Context) {
	appointmentIDStr := c.Param("id")
	appointmentID, err := uuid.Parse(appointmentIDStr)
	if err != nil {
		utils.BadRequest(c, "Invalid Appointment ID format")
		return
	}

	var req RescheduleAppointmentRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	if _, err := scheduling.ParseDate(req.NewDate); err != nil {
		utils.BadRequest(c, "Invalid date: "+err.Error())
		return
	}
	if !scheduling.ValidTime(req.NewStartTime) {
		utils.BadRequest(c, "Invalid start time, expected HH:MM")
		return
	}

	var appointment models.Appointment
	if err := h.DB.First(&appointment, "id = ?", appointmentID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Appointment not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	userIDStr, _ := middleware.GetUserIDFromContext(c)
	userRole, _ := middleware.GetUserRoleFromContext(c)
	organizationID, _ := middleware.GetOrganizationIDFromContext(c)

	canReschedule := false
	if userRole.IsPrivileged() && organizationID == appointment.OrganizationID {
		canReschedule = true
	} else if userRole == models.RoleDoctor && userIDStr == appointment.DoctorID {
		canReschedule = true
	} else if userRole == models.RolePatient && userIDStr == appointment.PatientID {
		if appointment.Status == models.StatusPending || appointment.Status == models.StatusConfirmed {
			canReschedule = true
		}
	}

	if !canReschedule {
		utils.Forbidden(c, "You are not authorized to reschedule this appointment.")
		return
	}

	var profile models.DoctorProfile
	if err := h.DB.Preload("User").Where("user_id = ?", appointment.DoctorID).First(&profile).Error; err != nil {
		utils.InternalServerError(c, "Failed to load doctor profile: "+err.Error())
		return
	}

	slot, err := h.resolveSlot(&profile, req.NewDate, req.NewStartTime, userRole, appointment.ID)
	if err != nil {
		respondSchedulingError(c, err)
		return
	}
	if slot == nil {
		utils.BadRequest(c, "Requested time is outside the doctor's schedule")
		return
	}
	if !slot.Available {
		utils.Conflict(c, "The requested slot is no longer available")
		return
	}

	appointment.Date = req.NewDate
	appointment.StartTime = slot.StartTime
	appointment.EndTime = slot.EndTime
	appointment.Status = models.StatusPending
	if req.Notes != "" {
		appointment.Notes = req.Notes
	}

	if err := h.DB.Save(&appointment).Error; err != nil {
		utils.InternalServerError(c, "Failed to reschedule appointment: "+err.Error())
		return
	}

	utils.Success(c, "Appointment rescheduled successfully", appointment)
}

// resolveSlot recomputes the doctor's slots for the date and returns the
// one starting at startTime, or nil when the time falls outside every
// schedule window. excludeID drops one appointment from conflict checks,
// used when that appointment is the one being moved.
func (h *AppointmentHandler) resolveSlot(profile *models.DoctorProfile, date, startTime string, role models.Role, excludeID string) (*scheduling.AppointmentSlot, error) {
	var entries []models.ScheduleEntry
	if err := h.DB.Where("doctor_id = ?", profile.UserID).Find(&entries).Error; err != nil {
		return nil, err
	}

	var booked []models.Appointment
	query := h.DB.Where("doctor_id = ? AND date = ? AND status <> ?", profile.UserID, date, models.StatusCancelled)
	if excludeID != "" {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Find(&booked).Error; err != nil {
		return nil, err
	}

	duration := profile.SlotDurationMinutes
	if duration <= 0 {
		duration = h.Cfg.Booking.DefaultSlotMinutes
	}

	policy := scheduling.BookingPolicy{
		AllowSameDay: role.IsPrivileged(),
		Now:          time.Now(),
	}
	if !role.IsPrivileged() {
		policy.MinNoticeDays = h.Cfg.Booking.PatientMinNoticeDays
	}

	doctor := scheduling.DoctorInfo{
		ID:              profile.UserID,
		Name:            profile.User.FullName(),
		Specialization:  profile.Specialization,
		ConsultationFee: profile.ConsultationFee,
	}

	slots, err := scheduling.ComputeAvailability(
		models.ScheduleEntriesToEngine(entries),
		doctor,
		date,
		duration,
		models.AppointmentsToEngine(booked),
		policy,
	)
	if err != nil {
		return nil, err
	}

	for i := range slots {
		if slots[i].StartTime == startTime {
			return &slots[i], nil
		}
	}
	return nil, nil
}
