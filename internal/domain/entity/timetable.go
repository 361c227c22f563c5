package entity

import "github.com/google/uuid"

// TimeTable is a doctor's weekly working hours. Each day holds an
// "HH:MM-HH:MM" interval or an empty string for Unavailable.
type TimeTable struct {
	MedicID uuid.UUID `gorm:"type:uuid;primaryKey" json:"medic_id"`
	Mon     string    `gorm:"type:varchar(20);not null;default:''" json:"mon"`
	Tue     string    `gorm:"type:varchar(20);not null;default:''" json:"tue"`
	Wed     string    `gorm:"type:varchar(20);not null;default:''" json:"wed"`
	Thu     string    `gorm:"type:varchar(20);not null;default:''" json:"thu"`
	Fri     string    `gorm:"type:varchar(20);not null;default:''" json:"fri"`
	Sat     string    `gorm:"type:varchar(20);not null;default:''" json:"sat"`
	Sun     string    `gorm:"type:varchar(20);not null;default:''" json:"sun"`
}

func (TimeTable) TableName() string {
	return "time_tables"
}

// Days returns the intervals keyed by lowercase day abbreviation, Monday first.
func (t *TimeTable) Days() [][2]string {
	return [][2]string{
		{"mon", t.Mon},
		{"tue", t.Tue},
		{"wed", t.Wed},
		{"thu", t.Thu},
		{"fri", t.Fri},
		{"sat", t.Sat},
		{"sun", t.Sun},
	}
}
