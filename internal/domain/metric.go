package domain

import (
	"fmt"
	"time"
)

// MetricName é o conjunto fechado de métricas aceitas pelo motor.
// Nomes fora desse conjunto são ignorados na avaliação (não são erro).
type MetricName string

const (
	MetricACOS           MetricName = "acos"
	MetricMargin         MetricName = "margin"
	MetricSpend          MetricName = "spend"
	MetricROI            MetricName = "roi"
	MetricCPC            MetricName = "cpc"
	MetricConversionRate MetricName = "conversion_rate"
)

var knownMetrics = map[MetricName]struct{}{
	MetricACOS:           {},
	MetricMargin:         {},
	MetricSpend:          {},
	MetricROI:            {},
	MetricCPC:            {},
	MetricConversionRate: {},
}

// IsKnownMetric indica se o nome de métrica pertence ao conjunto suportado
func IsKnownMetric(name MetricName) bool {
	_, ok := knownMetrics[name]
	return ok
}

// MetricSample é uma amostra de métrica recebida de um produtor.
// Imutável: é consumida na avaliação e descartada.
type MetricSample struct {
	AccountID  string     `json:"account_id"`
	Metric     MetricName `json:"metric"`
	Value      float64    `json:"value"`
	CampaignID string     `json:"campaign_id,omitempty"`
	Timestamp  time.Time  `json:"timestamp"`
}

// Comparator é o conjunto fechado de comparadores de regra de alerta
type Comparator string

const (
	ComparatorGT  Comparator = "gt"
	ComparatorLT  Comparator = "lt"
	ComparatorGTE Comparator = "gte"
	ComparatorLTE Comparator = "lte"
)

// ParseComparator converte a forma simbólica (">", "<", ">=", "<=") ou a
// forma textual para o comparador fechado
func ParseComparator(raw string) (Comparator, error) {
	switch raw {
	case ">", "gt":
		return ComparatorGT, nil
	case "<", "lt":
		return ComparatorLT, nil
	case ">=", "gte":
		return ComparatorGTE, nil
	case "<=", "lte":
		return ComparatorLTE, nil
	}
	return "", fmt.Errorf("comparador inválido: %q", raw)
}

// Evaluate aplica o comparador entre o valor da amostra e o limite da regra
func (c Comparator) Evaluate(value, threshold float64) bool {
	switch c {
	case ComparatorGT:
		return value > threshold
	case ComparatorLT:
		return value < threshold
	case ComparatorGTE:
		return value >= threshold
	case ComparatorLTE:
		return value <= threshold
	}
	return false
}

// Symbol retorna a forma simbólica do comparador para mensagens legíveis
func (c Comparator) Symbol() string {
	switch c {
	case ComparatorGT:
		return ">"
	case ComparatorLT:
		return "<"
	case ComparatorGTE:
		return ">="
	case ComparatorLTE:
		return "<="
	}
	return "?"
}
