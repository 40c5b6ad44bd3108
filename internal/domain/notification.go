package domain

import "time"

// DispatchStatus é o estado de entrega de uma notificação em um canal
type DispatchStatus string

const (
	DispatchStatusPending DispatchStatus = "pending"
	DispatchStatusSent    DispatchStatus = "sent"
	DispatchStatusFailed  DispatchStatus = "failed"
)

// DispatchResult registra o resultado de entrega por (evento, canal).
// Falhas permanentes ficam registradas aqui e são consultáveis; nunca
// voltam a subir para quem disparou o alerta.
type DispatchResult struct {
	EventID   string         `json:"event_id"`
	Channel   ChannelType    `json:"channel"`
	Status    DispatchStatus `json:"status"`
	Attempts  int            `json:"attempts"`
	LastError string         `json:"last_error,omitempty"`
	UpdatedAt time.Time      `json:"updated_at"`
}
