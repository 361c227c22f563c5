package entity

// Role represents a user role in the system
type Role struct {
	ID       int    `gorm:"column:role_id;primaryKey" json:"id"`
	RoleName string `gorm:"type:varchar(50);uniqueIndex;not null" json:"role_name"`
}

func (Role) TableName() string {
	return "roles"
}

// Role ID constants
const (
	RoleIDAdmin   = 1
	RoleIDPatient = 2
	RoleIDDoctor  = 3
)

// RoleLabel returns the human label used in notifications ("Doctor", "Patient").
func RoleLabel(roleID int) string {
	switch roleID {
	case RoleIDDoctor:
		return "Doctor"
	case RoleIDPatient:
		return "Patient"
	case RoleIDAdmin:
		return "Admin"
	default:
		return "User"
	}
}
