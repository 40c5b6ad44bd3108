package strategy

import "errors"

// Erros específicos do catálogo de estratégias e datas especiais
var (
	ErrStrategyNotFound    = errors.New("estratégia não encontrada")
	ErrNoActiveStrategy    = errors.New("conta não possui estratégia ativa")
	ErrAccountIDRequired   = errors.New("account ID é obrigatório")
	ErrInvalidDateRange    = errors.New("data final deve ser posterior à data inicial")
	ErrInvalidMultiplier   = errors.New("multiplicador de orçamento deve ser maior que zero")
	ErrSpecialDateNotFound = errors.New("data especial não encontrada")
)
