package domain

import (
	"fmt"
	"time"
)

// Severity classifica a criticidade de uma regra e dos eventos que ela gera
type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// ValidSeverity indica se o valor pertence ao conjunto suportado
func ValidSeverity(s Severity) bool {
	switch s {
	case SeverityLow, SeverityMedium, SeverityHigh, SeverityCritical:
		return true
	}
	return false
}

// ChannelType identifica um canal de notificação configurável por regra
type ChannelType string

const (
	ChannelEmail   ChannelType = "email"
	ChannelWebhook ChannelType = "webhook"
	ChannelInApp   ChannelType = "in_app"
)

// ValidChannel indica se o canal pertence ao conjunto suportado
func ValidChannel(c ChannelType) bool {
	switch c {
	case ChannelEmail, ChannelWebhook, ChannelInApp:
		return true
	}
	return false
}

// AlertRule é uma regra de limite configurada pelo operador da conta.
// Comparador e métrica são validados na criação, nunca na avaliação.
type AlertRule struct {
	ID              string        `json:"id"`
	AccountID       string        `json:"account_id"`
	Name            string        `json:"name"`
	Metric          MetricName    `json:"metric"`
	Condition       Comparator    `json:"condition"`
	Threshold       float64       `json:"threshold"`
	Severity        Severity      `json:"severity"`
	Channels        []ChannelType `json:"channels"`
	CooldownMinutes int           `json:"cooldown_minutes"`
	Enabled         bool          `json:"enabled"`
	LastTriggeredAt *time.Time    `json:"last_triggered_at,omitempty"`
	CreatedAt       time.Time     `json:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at"`
}

// Cooldown retorna a janela de silêncio da regra como duração
func (r *AlertRule) Cooldown() time.Duration {
	return time.Duration(r.CooldownMinutes) * time.Minute
}

// CooldownExpired indica se a regra pode disparar de novo no instante dado:
// nunca disparou, ou o último disparo está a pelo menos um cooldown inteiro
// no passado (last_triggered_at <= now - cooldown). É a mesma comparação que
// o check-and-set do repositório faz no banco.
func (r *AlertRule) CooldownExpired(now time.Time) bool {
	if r.LastTriggeredAt == nil {
		return true
	}
	return !r.LastTriggeredAt.After(now.Add(-r.Cooldown()))
}

// AlertState é o estado do ciclo de vida de um evento de alerta
type AlertState string

const (
	AlertStateTriggered    AlertState = "triggered"
	AlertStateAcknowledged AlertState = "acknowledged"
	AlertStateResolved     AlertState = "resolved"
)

// CanTransition valida uma transição de ciclo de vida. A ordem é
// triggered → acknowledged (opcional) → resolved; resolved é terminal.
func (s AlertState) CanTransition(to AlertState) bool {
	switch to {
	case AlertStateAcknowledged:
		return s == AlertStateTriggered
	case AlertStateResolved:
		return s == AlertStateTriggered || s == AlertStateAcknowledged
	}
	return false
}

// AlertEvent é um disparo concreto de uma regra. Depois de resolvido o
// registro nunca mais é alterado (histórico append-only).
type AlertEvent struct {
	ID             string     `json:"id"`
	RuleID         string     `json:"rule_id"`
	AccountID      string     `json:"account_id"`
	Metric         MetricName `json:"metric"`
	ActualValue    float64    `json:"actual_value"`
	Threshold      float64    `json:"threshold"`
	Severity       Severity   `json:"severity"`
	Message        string     `json:"message"`
	State          AlertState `json:"state"`
	CreatedAt      time.Time  `json:"created_at"`
	AcknowledgedAt *time.Time `json:"acknowledged_at,omitempty"`
	ResolvedAt     *time.Time `json:"resolved_at,omitempty"`
}

// BuildAlertMessage monta a mensagem legível de um disparo, por exemplo
// "ACOS 18.50% acima do limite 15.00%"
func BuildAlertMessage(rule *AlertRule, value float64) string {
	var relation string
	switch rule.Condition {
	case ComparatorGT, ComparatorGTE:
		relation = "acima do limite"
	case ComparatorLT, ComparatorLTE:
		relation = "abaixo do limite"
	default:
		relation = "violou o limite"
	}

	return fmt.Sprintf("%s %.2f %s %.2f (regra %q)",
		metricLabel(rule.Metric), value, relation, rule.Threshold, rule.Name)
}

func metricLabel(m MetricName) string {
	switch m {
	case MetricACOS:
		return "ACOS"
	case MetricMargin:
		return "Margem"
	case MetricSpend:
		return "Investimento"
	case MetricROI:
		return "ROI"
	case MetricCPC:
		return "CPC"
	case MetricConversionRate:
		return "Taxa de conversão"
	}
	return string(m)
}
