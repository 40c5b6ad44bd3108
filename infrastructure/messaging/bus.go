// Package messaging abstrai o barramento de mensagens entre serviços para
// que o transporte (Redis, broker, memória) seja trocável sem tocar na
// lógica de negócio.
package messaging

import (
	"context"
	"time"
)

// Tópicos lógicos do motor
const (
	// TopicEngineEvents carrega eventos originados pelo motor
	// (anomalias, recomendações, alertas)
	TopicEngineEvents = "engine.events"
	// TopicStrategySelection carrega seleções de estratégia originadas
	// pelo usuário no dashboard
	TopicStrategySelection = "engine.strategy"
	// TopicNotifications carrega cartões de notificação in-app consumidos
	// pelo dashboard
	TopicNotifications = "engine.notifications"
)

// Tipos de mensagem trafegados nos tópicos
const (
	MessageTypeAnomaly           = "anomaly"
	MessageTypeRecommendation    = "recommendation"
	MessageTypeAlert             = "alert"
	MessageTypeStrategySelection = "user_strategy_selection"
)

// Message é o envelope JSON comum de coordenação entre serviços
type Message struct {
	Type      string                 `json:"type"`
	Timestamp time.Time              `json:"timestamp"`
	Details   map[string]interface{} `json:"details"`
}

// Handler processa uma mensagem recebida de um tópico
type Handler func(ctx context.Context, msg *Message)

// Bus é o barramento de publicação/assinatura
type Bus interface {
	Publish(ctx context.Context, topic string, msg *Message) error
	Subscribe(ctx context.Context, topic string, handler Handler) error
	Close() error
}
