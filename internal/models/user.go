package models

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

// Role enum
type Role string

const (
	RoleSuperAdmin Role = "superadmin"
	RoleAdmin      Role = "admin"
	RoleStaff      Role = "staff"
	RoleDoctor     Role = "doctor"
	RolePatient    Role = "patient"
)

// PrivilegedRoles are the roles allowed to book same-day appointments.
// Patients follow the standard booking window instead.
var PrivilegedRoles = []Role{RoleSuperAdmin, RoleAdmin, RoleStaff, RoleDoctor}

// IsPrivileged reports whether the role bypasses the standard booking window.
func (r Role) IsPrivileged() bool {
	for _, role := range PrivilegedRoles {
		if r == role {
			return true
		}
	}
	return false
}

// User represents a user in the system
type User struct {
	BaseModel
	OrganizationID string     `gorm:"size:36;index" json:"organizationId"`
	Email          string     `gorm:"uniqueIndex;size:255;not null" json:"email"`
	Password       string     `gorm:"size:255;not null" json:"-"` // Never send password in JSON
	FirstName      string     `gorm:"size:100" json:"firstName"`
	LastName       string     `gorm:"size:100" json:"lastName"`
	Role           Role       `gorm:"size:20;default:'patient'" json:"role"`
	DateOfBirth    *time.Time `json:"dateOfBirth,omitempty"`
	PhoneNumber    string     `gorm:"size:30;index" json:"phoneNumber,omitempty"`
	WhatsAppNumber string     `gorm:"size:30;index" json:"whatsappNumber,omitempty"`
	Address        string     `json:"address,omitempty"`
	IsVerified     bool       `gorm:"default:false" json:"isVerified"`

	// Relations (not always preloaded)
	Organization        Organization   `gorm:"foreignKey:OrganizationID" json:"-"`
	RefreshTokens       []RefreshToken `gorm:"foreignKey:UserID" json:"-"`
	DoctorProfile       *DoctorProfile `gorm:"foreignKey:UserID" json:"doctorProfile,omitempty"`
	DoctorAppointments  []Appointment  `gorm:"foreignKey:DoctorID" json:"-"`
	PatientAppointments []Appointment  `gorm:"foreignKey:PatientID" json:"-"`
	ChatMessages        []ChatMessage  `gorm:"foreignKey:UserID" json:"-"`
}

// UserSanitized represents the user data that is safe to send in API responses.
type UserSanitized struct {
	ID             string     `json:"id"`
	OrganizationID string     `json:"organizationId"`
	Email          string     `json:"email"`
	FirstName      string     `json:"firstName"`
	LastName       string     `json:"lastName"`
	Role           Role       `json:"role"`
	DateOfBirth    *time.Time `json:"dateOfBirth,omitempty"`
	PhoneNumber    string     `json:"phoneNumber,omitempty"`
	WhatsAppNumber string     `json:"whatsappNumber,omitempty"`
	Address        string     `json:"address,omitempty"`
	IsVerified     bool       `json:"isVerified"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
}

// SetPassword hashes a password and sets it on the user
func (u *User) SetPassword(password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.Password = string(hashedPassword)
	return nil
}

// CheckPassword compares a password with the user's hashed password
func (u *User) CheckPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password))
	return err == nil
}

// FullName returns the user's display name.
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}

// Sanitize creates a UserSanitized struct from a User model, excluding sensitive data.
func (u *User) Sanitize() UserSanitized {
	return UserSanitized{
		ID:             u.ID,
		OrganizationID: u.OrganizationID,
		Email:          u.Email,
		FirstName:      u.FirstName,
		LastName:       u.LastName,
		Role:           u.Role,
		DateOfBirth:    u.DateOfBirth,
		PhoneNumber:    u.PhoneNumber,
		WhatsAppNumber: u.WhatsAppNumber,
		Address:        u.Address,
		IsVerified:     u.IsVerified,
		CreatedAt:      u.CreatedAt,
		UpdatedAt:      u.UpdatedAt,
	}
}
