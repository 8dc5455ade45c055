package models

// DoctorProfile carries the clinical attributes of a doctor user:
// specialization, consultation fee and the default slot length used when
// an availability query does not specify a duration.
type DoctorProfile struct {
	BaseModel
	UserID              string  `gorm:"size:36;uniqueIndex" json:"userId"`
	OrganizationID      string  `gorm:"size:36;index" json:"organizationId"`
	Specialization      string  `gorm:"size:100" json:"specialization"`
	LicenseNumber       string  `gorm:"size:50" json:"licenseNumber,omitempty"`
	ConsultationFee     float64 `json:"consultationFee"`
	SlotDurationMinutes int     `gorm:"default:30" json:"slotDurationMinutes"`
	Bio                 string  `gorm:"type:text" json:"bio,omitempty"`

	// Relations
	User User `gorm:"foreignKey:UserID" json:"-"`
}
