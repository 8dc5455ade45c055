package models

import "optical-booking-server/internal/scheduling"

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	StatusPending   AppointmentStatus = "pending"
	StatusConfirmed AppointmentStatus = "confirmed"
	StatusCancelled AppointmentStatus = "cancelled"
	StatusCompleted AppointmentStatus = "completed"
	StatusNoShow    AppointmentStatus = "no_show"
)

// Appointment represents a scheduled clinic appointment. Date and times
// are stored the way the scheduling engine consumes them: a YYYY-MM-DD
// date plus HH:MM wall-clock times.
type Appointment struct {
	BaseModel
	OrganizationID string            `gorm:"size:36;index" json:"organizationId"`
	PatientID      string            `gorm:"size:36;index" json:"patientId"`
	DoctorID       string            `gorm:"size:36;index" json:"doctorId"`
	Date           string            `gorm:"size:10;index" json:"date"`
	StartTime      string            `gorm:"size:5" json:"startTime"`
	EndTime        string            `gorm:"size:5" json:"endTime"`
	Status         AppointmentStatus `gorm:"size:20;default:'pending'" json:"status"`
	ServiceType    string            `gorm:"size:100" json:"serviceType,omitempty"`
	Reason         string            `gorm:"size:255" json:"reason"`
	Notes          string            `gorm:"type:text" json:"notes"`
	Channel        string            `gorm:"size:20;default:'web'" json:"channel"` // web, whatsapp, assistant

	// Relations
	Patient User `gorm:"foreignKey:PatientID" json:"-"`
	Doctor  User `gorm:"foreignKey:DoctorID" json:"-"`
}

// ToEngine converts the record into the scheduling engine's conflict view.
func (a *Appointment) ToEngine() scheduling.Appointment {
	return scheduling.Appointment{
		DoctorID:  a.DoctorID,
		Date:      a.Date,
		StartTime: a.StartTime,
		EndTime:   a.EndTime,
		Cancelled: a.Status == StatusCancelled,
	}
}

// AppointmentsToEngine converts a slice of persisted appointments.
func AppointmentsToEngine(appointments []Appointment) []scheduling.Appointment {
	result := make([]scheduling.Appointment, 0, len(appointments))
	for i := range appointments {
		result = append(result, appointments[i].ToEngine())
	}
	return result
}
