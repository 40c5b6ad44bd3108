package margin

import "errors"

// Erros de validação dos parâmetros de margem. São rejeitados na borda da
// API; a conta em si nunca roda com entrada inválida.
var (
	ErrInvalidPrice = errors.New("preço do produto deve ser maior que zero")
	ErrInvalidCost  = errors.New("custo do produto não pode ser negativo")
)
