package domain

import "time"

// Strategy é uma definição imutável de estratégia de anúncios. Várias
// estratégias existem no catálogo; exatamente uma fica ativa por conta.
type Strategy struct {
	ID                 string    `json:"id"`
	Name               string    `json:"name"`
	ACOSMin            float64   `json:"acos_min"`
	ACOSMax            float64   `json:"acos_max"`
	BudgetMultiplier   float64   `json:"budget_multiplier"`
	BidAdjustmentPct   float64   `json:"bid_adjustment_pct"`
	MarginThresholdPct float64   `json:"margin_threshold_pct"`
	Advantages         []string  `json:"advantages"`
	CreatedAt          time.Time `json:"created_at"`
}

// AccountStrategy registra qual estratégia está ativa para a conta.
// A troca é um swap atômico com versão incrementada a cada aplicação.
type AccountStrategy struct {
	AccountID  string    `json:"account_id"`
	StrategyID string    `json:"strategy_id"`
	Version    int64     `json:"version"`
	AppliedAt  time.Time `json:"applied_at"`
}

// EffectiveParams é o resultado da combinação da estratégia ativa com os
// overlays de data especial vigentes no instante consultado.
type EffectiveParams struct {
	AccountID          string    `json:"account_id"`
	StrategyID         string    `json:"strategy_id"`
	StrategyName       string    `json:"strategy_name"`
	ACOSMin            float64   `json:"acos_min"`
	ACOSMax            float64   `json:"acos_max"`
	BudgetMultiplier   float64   `json:"budget_multiplier"`
	BidAdjustmentPct   float64   `json:"bid_adjustment_pct"`
	MarginThresholdPct float64   `json:"margin_threshold_pct"`
	OverlayIDs         []string  `json:"overlay_ids,omitempty"`
	ComputedAt         time.Time `json:"computed_at"`
}
