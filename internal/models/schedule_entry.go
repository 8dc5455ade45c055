package models

import "optical-booking-server/internal/scheduling"

// ScheduleEntry is a recurring weekly availability window for a doctor.
// Times are stored as HH:MM strings; slot generation works in minutes
// since midnight inside the scheduling package.
type ScheduleEntry struct {
	BaseModel
	DoctorID       string `gorm:"size:36;index" json:"doctorId"`
	OrganizationID string `gorm:"size:36;index" json:"organizationId"`
	DayOfWeek      int    `gorm:"index" json:"dayOfWeek"` // 0 = Sunday ... 6 = Saturday
	StartTime      string `gorm:"size:5;not null" json:"startTime"`
	EndTime        string `gorm:"size:5;not null" json:"endTime"`
	IsAvailable    bool   `gorm:"default:true" json:"isAvailable"`
	Notes          string `gorm:"size:255" json:"notes,omitempty"`

	// Relations
	Doctor User `gorm:"foreignKey:DoctorID" json:"-"`
}

// ToEngine converts the persisted record into the scheduling engine's
// plain value type.
func (e *ScheduleEntry) ToEngine() scheduling.ScheduleEntry {
	return scheduling.ScheduleEntry{
		ID:             e.ID,
		DoctorID:       e.DoctorID,
		OrganizationID: e.OrganizationID,
		DayOfWeek:      e.DayOfWeek,
		StartTime:      e.StartTime,
		EndTime:        e.EndTime,
		IsAvailable:    e.IsAvailable,
		Notes:          e.Notes,
	}
}

// ScheduleEntriesToEngine converts a slice of persisted entries.
func ScheduleEntriesToEngine(entries []ScheduleEntry) []scheduling.ScheduleEntry {
	result := make([]scheduling.ScheduleEntry, 0, len(entries))
	for i := range entries {
		result = append(result, entries[i].ToEngine())
	}
	return result
}
