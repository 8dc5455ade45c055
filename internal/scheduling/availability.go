package scheduling

import (
	"fmt"
	"sort"
	"time"
)

// Appointment is the engine's read-only view of a booked appointment,
// used for conflict filtering. Cancelled appointments never conflict.
type Appointment struct {
	DoctorID  string
	Date      string // YYYY-MM-DD
	StartTime string // HH:MM
	EndTime   string // HH:MM
	Cancelled bool
}

// DoctorInfo carries the doctor identity attached to generated slots.
type DoctorInfo struct {
	ID              string
	Name            string
	Specialization  string
	ConsultationFee float64
	ServiceID       string
	LocationID      string
}

// BookingPolicy is the caller-supplied booking-window rule set. The engine
// is policy-agnostic: mapping roles to policies belongs to the caller.
// Now anchors "today" so repeated calls with the same inputs are
// deterministic.
type BookingPolicy struct {
	// AllowSameDay permits booking slots on the current calendar date.
	// Patients typically get false; privileged roles get true.
	AllowSameDay bool
	// MinNoticeDays rejects slots closer than this many days from Now.
	// Zero means no prior-notice requirement beyond AllowSameDay.
	MinNoticeDays int
	Now           time.Time
}

// allows reports whether the policy permits booking on the given date.
func (p BookingPolicy) allows(date time.Time) bool {
	today := time.Date(p.Now.Year(), p.Now.Month(), p.Now.Day(), 0, 0, 0, 0, time.UTC)
	if !p.AllowSameDay && date.Equal(today) {
		return false
	}
	if p.MinNoticeDays > 0 && date.Before(today.AddDate(0, 0, p.MinNoticeDays)) {
		return false
	}
	return true
}

// AppointmentSlot is one concrete bookable time unit on a specific date.
// Slots are derived per query and never persisted.
type AppointmentSlot struct {
	ID              string  `json:"id"`
	Date            string  `json:"date"`
	StartTime       string  `json:"startTime"`
	EndTime         string  `json:"endTime"`
	DoctorID        string  `json:"doctorId"`
	DoctorName      string  `json:"doctorName"`
	Specialization  string  `json:"specialization"`
	ConsultationFee float64 `json:"consultationFee"`
	Available       bool    `json:"available"`
	ServiceID       string  `json:"serviceId,omitempty"`
	LocationID      string  `json:"locationId,omitempty"`
	DurationMinutes int     `json:"durationMinutes"`
}

// DayAvailability is the slot list for one calendar date.
type DayAvailability struct {
	Date  string            `json:"date"`
	Slots []AppointmentSlot `json:"slots"`
}

// ComputeAvailability produces the bookable slots for one doctor on one
// date. Entries whose day of week does not match the date, or which are
// flagged unavailable, are skipped. Each matching entry is sliced into
// durationMinutes slots; a slot is marked unavailable when it overlaps a
// non-cancelled appointment for the doctor on that date, or when the
// booking policy rejects the date. A date with no matching entries yields
// an empty list, not an error.
func ComputeAvailability(entries []ScheduleEntry, doctor DoctorInfo, date string, durationMinutes int, appointments []Appointment, policy BookingPolicy) ([]AppointmentSlot, error) {
	day, err := ParseDate(date)
	if err != nil {
		return nil, err
	}
	if durationMinutes <= 0 {
		return nil, NewValidationError("durationMinutes", "must be a positive number of minutes")
	}

	dayOfWeek := int(day.Weekday())
	policyAllows := policy.allows(day)

	slots := make([]AppointmentSlot, 0)
	for _, entry := range entries {
		if entry.DayOfWeek != dayOfWeek || !entry.IsAvailable {
			continue
		}
		if entry.DoctorID != "" && doctor.ID != "" && entry.DoctorID != doctor.ID {
			continue
		}
		windows, err := GenerateTimeSlots(entry.StartTime, entry.EndTime, durationMinutes)
		if err != nil {
			return nil, err
		}
		for _, window := range windows {
			available := policyAllows && !slotConflicts(doctor.ID, date, window, appointments)
			slots = append(slots, AppointmentSlot{
				ID:              fmt.Sprintf("%s-%s-%s", doctor.ID, date, window.StartTime),
				Date:            date,
				StartTime:       window.StartTime,
				EndTime:         window.EndTime,
				DoctorID:        doctor.ID,
				DoctorName:      doctor.Name,
				Specialization:  doctor.Specialization,
				ConsultationFee: doctor.ConsultationFee,
				Available:       available,
				ServiceID:       doctor.ServiceID,
				LocationID:      doctor.LocationID,
				DurationMinutes: durationMinutes,
			})
		}
	}
	sortSlots(slots)
	return slots, nil
}

// ComputeAvailabilityRange produces one DayAvailability per calendar date
// in [startDate, endDate] inclusive.
func ComputeAvailabilityRange(entries []ScheduleEntry, doctor DoctorInfo, startDate, endDate string, durationMinutes int, appointments []Appointment, policy BookingPolicy) ([]DayAvailability, error) {
	start, err := ParseDate(startDate)
	if err != nil {
		return nil, NewValidationError("startDate", err.Error())
	}
	end, err := ParseDate(endDate)
	if err != nil {
		return nil, NewValidationError("endDate", err.Error())
	}
	if end.Before(start) {
		return nil, NewValidationError("endDate", "end date must not be before start date")
	}

	days := make([]DayAvailability, 0)
	for current := start; !current.After(end); current = current.AddDate(0, 0, 1) {
		date := current.Format(DateLayout)
		slots, err := ComputeAvailability(entries, doctor, date, durationMinutes, appointments, policy)
		if err != nil {
			return nil, err
		}
		days = append(days, DayAvailability{Date: date, Slots: slots})
	}
	return days, nil
}

// slotConflicts reports whether a slot overlaps any non-cancelled
// appointment for the same doctor on the same date.
func slotConflicts(doctorID, date string, window TimeSlot, appointments []Appointment) bool {
	slotStart, err := TimeToMinutes(window.StartTime)
	if err != nil {
		return false
	}
	slotEnd, err := TimeToMinutes(window.EndTime)
	if err != nil {
		return false
	}
	for _, appt := range appointments {
		if appt.Cancelled || appt.Date != date {
			continue
		}
		if appt.DoctorID != "" && doctorID != "" && appt.DoctorID != doctorID {
			continue
		}
		apptStart, err := TimeToMinutes(appt.StartTime)
		if err != nil {
			continue
		}
		apptEnd, err := TimeToMinutes(appt.EndTime)
		if err != nil {
			continue
		}
		if Overlaps(slotStart, slotEnd, apptStart, apptEnd) {
			return true
		}
	}
	return false
}

// sortSlots orders slots by start time ascending. Entries arrive in
// arbitrary storage order, so slots from multiple windows need an
// explicit sort.
func sortSlots(slots []AppointmentSlot) {
	sort.Slice(slots, func(i, j int) bool {
		return slots[i].StartTime < slots[j].StartTime
	})
}
