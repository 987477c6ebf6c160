package model

import (
	"time"

	"github.com/countryclub/pkg/dal"
)

// 会员状态
const (
	MemberActive    = "active"
	MemberInactive  = "inactive"
	MemberSuspended = "suspended"
)

// Member 俱乐部会员
type Member struct {
	dal.Model
	RegistratorID    int64     `gorm:"index" json:"registrator_id"`
	DNI              int64     `gorm:"column:dni;uniqueIndex;not null" json:"DNI"`
	FirstName        string    `gorm:"size:100;not null" json:"first_name"`
	LastName         string    `gorm:"size:100;not null" json:"last_name"`
	Phone            string    `gorm:"size:20" json:"phone"`
	Email            string    `gorm:"size:150" json:"email"`
	MembershipNumber string    `gorm:"size:50;uniqueIndex" json:"membership_number"`
	Status           string    `gorm:"size:20;default:active;index" json:"status"`
	StartDate        time.Time `json:"start_date"`
	EndDate          time.Time `json:"end_date"`
}

// TableName 表名
func (Member) TableName() string {
	return "members"
}

// MembershipActive 状态为 active 且未过期
func (m *Member) MembershipActive(now time.Time) bool {
	return m.Status == MemberActive && !now.After(m.EndDate)
}
