package domain

import (
	"sort"
	"time"
)

// SpecialDateOverlay é um ajuste multiplicativo/aditivo com janela de datas
// (Black Friday, Dia das Mães etc.) que se combina com a estratégia ativa.
type SpecialDateOverlay struct {
	ID                 string    `json:"id"`
	Name               string    `json:"name"`
	StartDate          time.Time `json:"start_date"`
	EndDate            time.Time `json:"end_date"`
	BudgetMultiplier   float64   `json:"budget_multiplier"`
	ACOSAdjustmentPct  float64   `json:"acos_adjustment_pct"`
	PriorityCategories []string  `json:"priority_categories,omitempty"`
	PeakHours          []int     `json:"peak_hours,omitempty"`
	CreatedAt          time.Time `json:"created_at"`
}

// InRange indica se o instante está dentro da janela [StartDate, EndDate]
func (o *SpecialDateOverlay) InRange(at time.Time) bool {
	return !at.Before(o.StartDate) && !at.After(o.EndDate)
}

// CombineOverlays calcula os parâmetros efetivos a partir da estratégia
// ativa e dos overlays vigentes. Os multiplicadores de orçamento são
// multiplicados entre si (comutativo); os ajustes de ACOS são somados à
// faixa da estratégia, aplicados em ordem crescente de ID de overlay para
// garantir resultado determinístico quando há sobreposição simultânea.
// O desempate por ID é uma escolha deliberada deste motor.
func CombineOverlays(strategy *Strategy, overlays []*SpecialDateOverlay, at time.Time) *EffectiveParams {
	params := &EffectiveParams{
		StrategyID:         strategy.ID,
		StrategyName:       strategy.Name,
		ACOSMin:            strategy.ACOSMin,
		ACOSMax:            strategy.ACOSMax,
		BudgetMultiplier:   strategy.BudgetMultiplier,
		BidAdjustmentPct:   strategy.BidAdjustmentPct,
		MarginThresholdPct: strategy.MarginThresholdPct,
		ComputedAt:         at,
	}

	active := make([]*SpecialDateOverlay, 0, len(overlays))
	for _, overlay := range overlays {
		if overlay.InRange(at) {
			active = append(active, overlay)
		}
	}

	sort.Slice(active, func(i, j int) bool {
		return active[i].ID < active[j].ID
	})

	for _, overlay := range active {
		params.BudgetMultiplier *= overlay.BudgetMultiplier
		params.ACOSMin += overlay.ACOSAdjustmentPct
		params.ACOSMax += overlay.ACOSAdjustmentPct
		params.OverlayIDs = append(params.OverlayIDs, overlay.ID)
	}

	return params
}
