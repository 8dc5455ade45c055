package models

// Organization represents one clinic tenant. Every domain record belongs
// to exactly one organization.
type Organization struct {
	BaseModel
	Name     string `gorm:"size:255;not null" json:"name"`
	Slug     string `gorm:"uniqueIndex;size:100;not null" json:"slug"`
	Phone    string `gorm:"size:30" json:"phone,omitempty"`
	Address  string `gorm:"size:255" json:"address,omitempty"`
	Timezone string `gorm:"size:64;default:'America/Mexico_City'" json:"timezone"`
	IsActive bool   `gorm:"default:true" json:"isActive"`

	// Relations (not always preloaded)
	Users []User `gorm:"foreignKey:OrganizationID" json:"-"`
}
