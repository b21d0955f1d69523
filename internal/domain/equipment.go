package domain

import "time"

// EquipmentType is a catalog template describing a class of tool.
// Catalog rows are reference data: created by admin action, never
// deleted in the normal flow.
type EquipmentType struct {
	ID                      uint      `json:"id" gorm:"primaryKey"`
	Name                    string    `json:"name" gorm:"uniqueIndex;not null"`
	Description             string    `json:"description"`
	Width                   float64   `json:"width" gorm:"not null"`
	Height                  float64   `json:"height" gorm:"not null"`
	Depth                   float64   `json:"depth" gorm:"not null"`
	MaintenanceIntervalDays int       `json:"maintenance_interval_days" gorm:"not null"`
	Color                   string    `json:"color" gorm:"default:'#aaa'"`
	Manufacturer            string    `json:"manufacturer"`
	Model                   string    `json:"model"`
	ImagePath               string    `json:"image_path"`
	CreatedAt               time.Time `json:"created_at"`
}

// EquipmentInstance is a user-owned purchased unit of an EquipmentType
// with its own maintenance timeline. UserID references the identity
// store and is deliberately not a database foreign key; ownership is
// validated in application code.
type EquipmentInstance struct {
	ID                  uint       `json:"id" gorm:"primaryKey"`
	EquipmentTypeID     uint       `json:"equipment_type_id" gorm:"index;not null"`
	UserID              uint       `json:"user_id" gorm:"index;not null"`
	DatePurchased       time.Time  `json:"date_purchased" gorm:"not null"`
	LastMaintenanceDate *time.Time `json:"last_maintenance_date"`
	NextMaintenanceDate *time.Time `json:"next_maintenance_date"`
	Notes               string     `json:"notes"`
	CreatedAt           time.Time  `json:"created_at"`

	// Relations (same store, so a real association is fine here)
	EquipmentType *EquipmentType `json:"equipment_type,omitempty" gorm:"foreignKey:EquipmentTypeID"`
}
