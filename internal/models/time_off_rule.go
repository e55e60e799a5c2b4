package models

import "time"

// Períodos suportados de folga recorrente
const (
	TimeOffPeriodExact   = "exact"
	TimeOffPeriodDaily   = "daily"
	TimeOffPeriodWeekly  = "weekly"
	TimeOffPeriodMonthly = "monthly"
)

// Linha persistida de uma regra de folga do funcionário.
// O discriminador Period decide quais campos são relevantes;
// o repositório converte para a variante de domínio correspondente.
type TimeOffRule struct {
	ID         uint `gorm:"primaryKey" json:"id"`
	EmployeeID uint `gorm:"index" json:"employee_id"`

	Period string `gorm:"size:10;not null" json:"period"`

	FromTime string `gorm:"size:10" json:"from_time"`
	ToTime   string `gorm:"size:10" json:"to_time"`
	Reason   string `gorm:"size:100" json:"reason"`

	// Apenas para period=exact
	Date *time.Time `json:"date"`

	// Apenas para period=weekly — dias ISO (1=Seg ... 7=Dom), CSV "1,3,5"
	DaysOfWeek string `gorm:"size:30" json:"days_of_week"`

	// Apenas para period=monthly — dias do mês, CSV "1,15,31"
	DaysOfMonth string `gorm:"size:120" json:"days_of_month"`

	// Ordem de exibição na lista de regras
	Position int `json:"position"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
