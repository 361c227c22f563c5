package entity

import "github.com/google/uuid"

// Medic is the doctor-specific profile, keyed by the user id.
type Medic struct {
	MedicID          uuid.UUID `gorm:"column:medic_id;type:uuid;primaryKey" json:"medic_id"`
	SpecializationID int       `gorm:"not null;index" json:"specialization_id"`

	User           User           `gorm:"foreignKey:MedicID;references:ID" json:"user,omitempty"`
	Specialization Specialization `gorm:"foreignKey:SpecializationID;references:ID" json:"specialization,omitempty"`
}

func (Medic) TableName() string {
	return "medics"
}

// Pacient is the patient-specific profile, keyed by the user id.
type Pacient struct {
	PacientID uuid.UUID `gorm:"column:pacient_id;type:uuid;primaryKey" json:"pacient_id"`

	User User `gorm:"foreignKey:PacientID;references:ID" json:"user,omitempty"`
}

func (Pacient) TableName() string {
	return "pacients"
}

// Specialization is static reference data.
type Specialization struct {
	ID   int    `gorm:"column:specialization_id;primaryKey" json:"id"`
	Name string `gorm:"column:specialization_name;type:varchar(100);not null" json:"name"`
}

func (Specialization) TableName() string {
	return "specializations"
}

// DoctorListing is the flattened doctor row used by the directory views.
type DoctorListing struct {
	MedicID            uuid.UUID
	Username           string
	SpecializationID   int
	SpecializationName string
}
