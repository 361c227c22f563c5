package entity

import "github.com/google/uuid"

// User is the account row shared by patients, doctors and staff.
// Accounts are provisioned by the identity service; this service only reads them.
type User struct {
	ID       uuid.UUID `gorm:"column:user_id;type:uuid;primaryKey" json:"id"`
	Username string    `gorm:"type:varchar(255);not null" json:"username"`
	RoleID   int       `gorm:"not null;index" json:"role_id"`

	Role Role `gorm:"foreignKey:RoleID;references:ID" json:"role,omitempty"`
}

func (User) TableName() string {
	return "users"
}
