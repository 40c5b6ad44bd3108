package automation

import "errors"

// Erros específicos da coordenação de ações
var (
	// ErrActionInFlight indica que já existe uma ação não terminal para o
	// par (conta, alvo). O chamador deve tentar de novo depois que a ação
	// em andamento terminar; nada é enfileirado silenciosamente.
	ErrActionInFlight = errors.New("já existe ação em andamento para este alvo")

	ErrActionNotFound  = errors.New("ação não encontrada")
	ErrUnknownTrigger  = errors.New("origem de proposta desconhecida")
	ErrNothingToDo     = errors.New("nenhuma ação necessária para o gatilho")
	ErrTargetRequired  = errors.New("alvo da ação é obrigatório")
	ErrAccountRequired = errors.New("account ID é obrigatório")
)
