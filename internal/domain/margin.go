package domain

// MarginStatus é o veredito de segurança de margem
type MarginStatus string

const (
	MarginStatusSafe    MarginStatus = "safe"
	MarginStatusWarning MarginStatus = "warning"
	MarginStatusDanger  MarginStatus = "danger"
)

// MarginValidationInput são os parâmetros da validação de margem
type MarginValidationInput struct {
	ProductCost      float64 `json:"product_cost"`
	ProductPrice     float64 `json:"product_price"`
	CurrentMarkupPct float64 `json:"current_markup_pct"`
	SafetyMarginPct  float64 `json:"safety_margin_pct"`
}

// MarginValidationResult é efêmero: calculado sob demanda, nunca persistido
type MarginValidationResult struct {
	Status          MarginStatus `json:"status"`
	Severity        Severity     `json:"severity"`
	ProfitMargin    float64      `json:"profit_margin"`
	RemainingMargin float64      `json:"remaining_margin"`
	MaxSafeMarkup   float64      `json:"max_safe_markup"`
	Recommendations []string     `json:"recommendations"`
}
