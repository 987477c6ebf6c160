package model

import (
	"time"

	"github.com/countryclub/pkg/dal"
)

// Employee 员工
type Employee struct {
	dal.Model
	FirstName             string    `gorm:"size:100;not null" json:"first_name"`
	LastName              string    `gorm:"size:100;not null" json:"last_name"`
	DNI                   int64     `gorm:"column:dni;uniqueIndex;not null" json:"DNI"`
	HireDate              time.Time `json:"hire_date"`
	Position              string    `gorm:"size:100;index" json:"position"`
	Salary                float64   `json:"salary"`
	EmergencyContactName  string    `gorm:"size:100" json:"emergency_contact_name"`
	EmergencyContactPhone string    `gorm:"size:20" json:"emergency_contact_phone"`
	Phone                 string    `gorm:"size:20" json:"phone"`
	Schedule              string    `gorm:"type:text" json:"schedule"`
}

// TableName 表名
func (Employee) TableName() string {
	return "employees"
}
