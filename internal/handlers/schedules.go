package handlers

import (
	"optical-booking-server/internal/middleware"
	"optical-booking-server/internal/models"
	"optical-booking-server/internal/scheduling"
	"optical-booking-server/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ScheduleHandler handles weekly schedule template requests.
type ScheduleHandler struct {
	DB *gorm.DB
}

// NewScheduleHandler creates a new ScheduleHandler.
func NewScheduleHandler(db *gorm.DB) *ScheduleHandler {
	return &ScheduleHandler{DB: db}
}

// ScheduleEntryRequest represents the request body for creating or
// updating a weekly schedule entry.
type ScheduleEntryRequest struct {
	DoctorID    string `json:"doctorId" binding:"required,uuid"`
	DayOfWeek   *int   `json:"dayOfWeek" binding:"required,min=0,max=6"`
	StartTime   string `json:"startTime" binding:"required"`
	EndTime     string `json:"endTime" binding:"required"`
	IsAvailable *bool  `json:"isAvailable"`
	Notes       string `json:"notes"`
}

// canManageSchedule reports whether the caller may edit the given
// doctor's schedule: the doctor themselves, or privileged staff.
func canManageSchedule(c *gin.Context, doctorID string) bool {
	userIDStr, _ := middleware.GetUserIDFromContext(c)
	userRole, _ := middleware.GetUserRoleFromContext(c)
	if userRole.IsPrivileged() {
		return true
	}
	return userRole == models.RoleDoctor && userIDStr == doctorID
}

// CreateScheduleEntry handles adding a window to a doctor's weekly template.
func (h *ScheduleHandler) CreateScheduleEntry(c *gin.Context) {
	var req ScheduleEntryRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	if !canManageSchedule(c, req.DoctorID) {
		utils.Forbidden(c, "You are not authorized to manage this doctor's schedule.")
		return
	}

	organizationID, _ := middleware.GetOrganizationIDFromContext(c)

	// Verify the doctor exists in this organization
	var doctor models.User
	if err := h.DB.Where("id = ? AND organization_id = ? AND role = ?", req.DoctorID, organizationID, models.RoleDoctor).First(&doctor).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Doctor not found in this organization")
		} else {
			utils.InternalServerError(c, "Database error verifying doctor: "+err.Error())
		}
		return
	}

	var existing []models.ScheduleEntry
	if err := h.DB.Where("doctor_id = ?", req.DoctorID).Find(&existing).Error; err != nil {
		utils.InternalServerError(c, "Failed to load existing schedule: "+err.Error())
		return
	}

	isAvailable := true
	if req.IsAvailable != nil {
		isAvailable = *req.IsAvailable
	}

	entry := models.ScheduleEntry{
		DoctorID:       req.DoctorID,
		OrganizationID: organizationID,
		DayOfWeek:      *req.DayOfWeek,
		StartTime:      req.StartTime,
		EndTime:        req.EndTime,
		IsAvailable:    isAvailable,
		Notes:          req.Notes,
	}

	if err := scheduling.ValidateScheduleEntry(entry.ToEngine(), models.ScheduleEntriesToEngine(existing)); err != nil {
		respondSchedulingError(c, err)
		return
	}

	if err := h.DB.Create(&entry).Error; err != nil {
		utils.InternalServerError(c, "Failed to create schedule entry: "+err.Error())
		return
	}

	utils.Created(c, "Schedule entry created successfully", entry)
}

// GetDoctorSchedule handles fetching a doctor's full weekly template
// along with the total available hours per week.
func (h *ScheduleHandler) GetDoctorSchedule(c *gin.Context) {
	doctorIDStr := c.Param("doctorId")
	if _, err := uuid.Parse(doctorIDStr); err != nil {
		utils.BadRequest(c, "Invalid Doctor ID format")
		return
	}

	var entries []models.ScheduleEntry
	if err := h.DB.Where("doctor_id = ?", doctorIDStr).Order("day_of_week asc, start_time asc").Find(&entries).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch schedule: "+err.Error())
		return
	}

	weeklyHours := scheduling.ComputeWeeklyHours(models.ScheduleEntriesToEngine(entries))

	utils.Success(c, "Schedule fetched successfully", gin.H{
		"entries":     entries,
		"weeklyHours": weeklyHours,
	})
}

// UpdateScheduleEntry handles editing one window of a weekly template.
func (h *ScheduleHandler) UpdateScheduleEntry(c *gin.Context) {
	entryIDStr := c.Param("id")
	entryID, err := uuid.Parse(entryIDStr)
	if err != nil {
		utils.BadRequest(c, "Invalid schedule entry ID format")
		return
	}

	var req ScheduleEntryRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	var entry models.ScheduleEntry
	if err := h.DB.First(&entry, "id = ?", entryID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Schedule entry not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	if !canManageSchedule(c, entry.DoctorID) {
		utils.Forbidden(c, "You are not authorized to manage this doctor's schedule.")
		return
	}
	if req.DoctorID != entry.DoctorID {
		utils.BadRequest(c, "Schedule entries cannot be moved between doctors")
		return
	}

	entry.DayOfWeek = *req.DayOfWeek
	entry.StartTime = req.StartTime
	entry.EndTime = req.EndTime
	if req.IsAvailable != nil {
		entry.IsAvailable = *req.IsAvailable
	}
	entry.Notes = req.Notes

	var existing []models.ScheduleEntry
	if err := h.DB.Where("doctor_id = ?", entry.DoctorID).Find(&existing).Error; err != nil {
		utils.InternalServerError(c, "Failed to load existing schedule: "+err.Error())
		return
	}

	// The entry's own row is matched by ID inside validation, so an edit
	// never conflicts with itself.
	if err := scheduling.ValidateScheduleEntry(entry.ToEngine(), models.ScheduleEntriesToEngine(existing)); err != nil {
		respondSchedulingError(c, err)
		return
	}

	if err := h.DB.Save(&entry).Error; err != nil {
		utils.InternalServerError(c, "Failed to update schedule entry: "+err.Error())
		return
	}

	utils.Success(c, "Schedule entry updated successfully", entry)
}

// DeleteScheduleEntry handles removing one window from a weekly template.
func (h *ScheduleHandler) DeleteScheduleEntry(c *gin.Context) {
	entryIDStr := c.Param("id")
	entryID, err := uuid.Parse(entryIDStr)
	if err != nil {
		utils.BadRequest(c, "Invalid schedule entry ID format")
		return
	}

	var entry models.ScheduleEntry
	if err := h.DB.First(&entry, "id = ?", entryID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Schedule entry not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	if !canManageSchedule(c, entry.DoctorID) {
		utils.Forbidden(c, "You are not authorized to manage this doctor's schedule.")
		return
	}

	if err := h.DB.Delete(&entry).Error; err != nil {
		utils.InternalServerError(c, "Failed to delete schedule entry: "+err.Error())
		return
	}

	utils.Success(c, "Schedule entry deleted successfully", nil)
}
