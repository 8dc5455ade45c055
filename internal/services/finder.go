package services

import (
	"sort"

	"optical-booking-server/internal/models"
	"optical-booking-server/internal/scheduling"

	"gorm.io/gorm"
)

// GormSlotFinder computes availability across every doctor of a
// specialty inside one organization, backed by the application database.
type GormSlotFinder struct {
	DB *gorm.DB
}

// NewGormSlotFinder creates a database-backed AvailabilityFinder.
func NewGormSlotFinder(db *gorm.DB) *GormSlotFinder {
	return &GormSlotFinder{DB: db}
}

// FindSlots loads the schedules and existing appointments of every
// matching doctor and merges their computed slots, ordered by start time.
func (f *GormSlotFinder) FindSlots(organizationID, specialty, date string, policy scheduling.BookingPolicy) ([]scheduling.AppointmentSlot, error) {
	var profiles []models.DoctorProfile
	query := f.DB.Preload("User").Where("organization_id = ?", organizationID)
	if specialty != "" {
		query = query.Where("specialization = ?", specialty)
	}
	if err := query.Find(&profiles).Error; err != nil {
		return nil, err
	}

	merged := make([]scheduling.AppointmentSlot, 0)
	for _, profile := range profiles {
		var entries []models.ScheduleEntry
		if err := f.DB.Where("doctor_id = ? AND organization_id = ?", profile.UserID, organizationID).Find(&entries).Error; err != nil {
			return nil, err
		}

		var appointments []models.Appointment
		if err := f.DB.Where("doctor_id = ? AND date = ? AND status <> ?", profile.UserID, date, models.StatusCancelled).Find(&appointments).Error; err != nil {
			return nil, err
		}

		duration := profile.SlotDurationMinutes
		if duration <= 0 {
			duration = 30
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
			models.AppointmentsToEngine(appointments),
			policy,
		)
		if err != nil {
			return nil, err
		}
		merged = append(merged, slots...)
	}

	sort.Slice(merged, func(i, j int) bool {
		if merged[i].StartTime != merged[j].StartTime {
			return merged[i].StartTime < merged[j].StartTime
		}
		return merged[i].DoctorID < merged[j].DoctorID
	})
	return merged, nil
}
