package alerting

import (
	"errors"
	"fmt"
)

// Erros específicos do contexto de alertas
var (
	// Erros de validação de regra (rejeitados na criação, nunca na avaliação)
	ErrInvalidMetric    = errors.New("métrica desconhecida")
	ErrInvalidCondition = errors.New("comparador inválido")
	ErrInvalidSeverity  = errors.New("severidade inválida")
	ErrInvalidChannel   = errors.New("canal de notificação inválido")
	ErrInvalidThreshold = errors.New("limite inválido")
	ErrInvalidCooldown  = errors.New("cooldown não pode ser negativo")

	// Erros de ciclo de vida
	ErrRuleNotFound           = errors.New("regra de alerta não encontrada")
	ErrEventNotFound          = errors.New("evento de alerta não encontrado")
	ErrInvalidStateTransition = errors.New("transição de estado de alerta ilegal")

	// Erros de banco de dados
	ErrDatabaseOperation = errors.New("erro de operação de banco de dados")
)

// RuleValidationError agrega o campo que falhou na validação da regra
type RuleValidationError struct {
	Err   error  // Erro base
	Field string // Campo da regra que falhou
	Value string // Valor rejeitado
}

// Error implementa a interface error
func (e *RuleValidationError) Error() string {
	if e.Value != "" {
		return fmt.Sprintf("%s: campo %q com valor %q", e.Err.Error(), e.Field, e.Value)
	}
	return fmt.Sprintf("%s: campo %q", e.Err.Error(), e.Field)
}

// Unwrap retorna o erro subjacente
func (e *RuleValidationError) Unwrap() error {
	return e.Err
}

func newRuleValidationError(err error, field, value string) *RuleValidationError {
	return &RuleValidationError{
		Err:   err,
		Field: field,
		Value: value,
	}
}
