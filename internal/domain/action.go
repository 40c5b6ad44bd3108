package domain

import "time"

// ActionType é o tipo de ação corretiva proposta pelo coordenador
type ActionType string

const (
	ActionAdjustBid    ActionType = "adjust_bid"
	ActionAdjustBudget ActionType = "adjust_budget"
	ActionPause        ActionType = "pause"
	ActionResume       ActionType = "resume"
)

// ActionTrigger indica a origem de uma proposta de ação
type ActionTrigger string

const (
	TriggerStrategyChange ActionTrigger = "strategy_change"
	TriggerAlert          ActionTrigger = "alert"
	TriggerSpecialDate    ActionTrigger = "special_date"
)

// ActionStatus é o estado de despacho de uma ação. pending e dispatched são
// estados em andamento; acknowledged e failed são terminais.
type ActionStatus string

const (
	ActionStatusPending      ActionStatus = "pending"
	ActionStatusDispatched   ActionStatus = "dispatched"
	ActionStatusAcknowledged ActionStatus = "acknowledged"
	ActionStatusFailed       ActionStatus = "failed"
)

// Terminal indica se o estado encerra o ciclo de vida da ação
func (s ActionStatus) Terminal() bool {
	return s == ActionStatusAcknowledged || s == ActionStatusFailed
}

// TargetKind classifica o alvo da ação
type TargetKind string

const (
	TargetCampaign TargetKind = "campaign"
	TargetKeyword  TargetKind = "keyword"
	TargetAccount  TargetKind = "account"
)

// ActionTarget identifica o alvo de uma ação dentro da conta
type ActionTarget struct {
	Kind TargetKind `json:"kind"`
	ID   string     `json:"id"`
}

// Key serializa o alvo para a chave de exclusividade (account, target)
func (t ActionTarget) Key() string {
	return string(t.Kind) + ":" + t.ID
}

// AutomationAction é uma intenção de ajuste calculada pelo motor. A mutação
// real no marketplace é responsabilidade do colaborador externo de execução.
type AutomationAction struct {
	ID            string        `json:"id"`
	AccountID     string        `json:"account_id"`
	Target        ActionTarget  `json:"target"`
	ActionType    ActionType    `json:"action_type"`
	ComputedValue float64       `json:"computed_value"`
	TriggeredBy   ActionTrigger `json:"triggered_by"`
	Reason        string        `json:"reason,omitempty"`
	Status        ActionStatus  `json:"dispatch_status"`
	CreatedAt     time.Time     `json:"created_at"`
	DispatchedAt  *time.Time    `json:"dispatched_at,omitempty"`
	CompletedAt   *time.Time    `json:"completed_at,omitempty"`
}

// Campaign é a visão mínima de campanha que o motor precisa conhecer para
// propor ações; o catálogo completo vive no colaborador externo.
type Campaign struct {
	ID          string  `json:"id"`
	AccountID   string  `json:"account_id"`
	Name        string  `json:"name"`
	DailyBudget float64 `json:"daily_budget"`
	Active      bool    `json:"active"`
}
