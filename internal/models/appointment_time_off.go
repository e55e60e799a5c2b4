package models

import "time"

// Bloqueio de agenda em nível de salão (feriado, manutenção, evento).
// Diferente das TimeOffRule do funcionário, carrega um instante de início
// próprio; a recorrência é ancorada no CreatedAt do registro.
type AppointmentTimeOff struct {
	ID      uint `gorm:"primaryKey" json:"id"`
	SalonID uint `gorm:"index" json:"salon_id"`

	EmployeeID uint `gorm:"index" json:"employee_id"`

	StartTime time.Time `json:"start_time"`

	// Duração em minutos; ToClose=true bloqueia até o fechamento do salão
	DurationMin int  `json:"duration_min"`
	ToClose     bool `json:"to_close"`

	Reason string `gorm:"size:100" json:"reason"`

	// Recorrência opcional (mesmas fórmulas de span/frequência dos
	// agendamentos recorrentes, em granularidade de dia)
	Recurring      bool   `json:"recurring"`
	DurationValue  int    `json:"duration_value"`
	DurationUnit   string `gorm:"size:10" json:"duration_unit"`
	FrequencyValue int    `json:"frequency_value"`
	FrequencyUnit  string `gorm:"size:10" json:"frequency_unit"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
