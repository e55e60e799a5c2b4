package models

import "time"

type Salon struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	Name    string `gorm:"size:100;not null" json:"name"`
	Slug    string `gorm:"size:100;uniqueIndex;not null" json:"slug"`
	Phone   string `gorm:"size:20" json:"phone"`
	Address string `gorm:"size:255" json:"address"`

	// Timezone IANA do salão (ex: America/Sao_Paulo)
	Timezone string `gorm:"size:64" json:"timezone"`

	// Janela padrão de funcionamento (HH:mm)
	OpenTime  string `gorm:"size:8;default:'08:00'" json:"open_time"`
	CloseTime string `gorm:"size:8;default:'20:00'" json:"close_time"`

	MinAdvanceMinutes int `gorm:"default:120" json:"min_advance_minutes"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
