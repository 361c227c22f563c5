package entity

import "github.com/shopspring/decimal"

// Service is a billable consultation type.
type Service struct {
	ID    int             `gorm:"column:service_id;primaryKey" json:"id"`
	Name  string          `gorm:"type:varchar(255);not null" json:"name"`
	Price decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
}

func (Service) TableName() string {
	return "services"
}
