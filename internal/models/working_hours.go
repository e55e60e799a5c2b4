package models

import "time"

// No máximo uma linha por funcionário + weekday
type WorkingHours struct {
	ID         uint `gorm:"primaryKey" json:"id"`
	EmployeeID uint `gorm:"index:idx_wh_employee_weekday,unique" json:"employee_id"`

	// 0=Domingo ... 6=Sábado (time.Weekday)
	Weekday int `gorm:"index:idx_wh_employee_weekday,unique" json:"weekday"`

	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Active    bool   `json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
