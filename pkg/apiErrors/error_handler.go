package apiErrors

import (
	"encoding/json"
	"net/http"
)

// Códigos de erro estáveis expostos pela API do motor
const (
	// Erros de validação (VAL)
	ErrInvalidRequest      = "VAL_001" // Requisição malformada
	ErrMissingRequiredData = "VAL_002" // Dados obrigatórios ausentes
	ErrInvalidFormat       = "VAL_003" // Formato de dados inválido
	ErrInvalidRule         = "VAL_004" // Regra de alerta inválida (métrica/comparador/severidade)
	ErrInvalidMargin       = "VAL_005" // Parâmetros de margem inválidos (preço/custo)

	// Erros de ciclo de vida e coordenação (ALR/ACT)
	ErrAlertNotFound          = "ALR_001" // Evento ou regra de alerta não encontrado
	ErrInvalidStateTransition = "ALR_002" // Transição de ciclo de vida ilegal
	ErrActionInFlight         = "ACT_001" // Já existe ação não terminal para o alvo
	ErrActionNotFound         = "ACT_002" // Ação não encontrada

	// Erros de catálogo (STR)
	ErrStrategyNotFound = "STR_001" // Estratégia não encontrada
	ErrNoActiveStrategy = "STR_002" // Conta sem estratégia ativa

	// Erros de autenticação de serviço (AUTH)
	ErrInvalidServiceToken = "AUTH_001" // Token de serviço inválido

	// Erros do servidor (SRV)
	ErrInternalServer    = "SRV_001" // Erro interno do servidor
	ErrDatabaseOperation = "SRV_002" // Erro de operação de banco de dados
	ErrExternalService   = "SRV_003" // Erro em colaborador externo
)

// Mapeamento de códigos de erro para status HTTP
var httpStatusMap = map[string]int{
	ErrInvalidRequest:         http.StatusBadRequest,
	ErrMissingRequiredData:    http.StatusBadRequest,
	ErrInvalidFormat:          http.StatusBadRequest,
	ErrInvalidRule:            http.StatusBadRequest,
	ErrInvalidMargin:          http.StatusBadRequest,
	ErrAlertNotFound:          http.StatusNotFound,
	ErrInvalidStateTransition: http.StatusConflict,
	ErrActionInFlight:         http.StatusConflict,
	ErrActionNotFound:         http.StatusNotFound,
	ErrStrategyNotFound:       http.StatusNotFound,
	ErrNoActiveStrategy:       http.StatusPreconditionFailed,
	ErrInvalidServiceToken:    http.StatusUnauthorized,
	ErrInternalServer:         http.StatusInternalServerError,
	ErrDatabaseOperation:      http.StatusInternalServerError,
	ErrExternalService:        http.StatusBadGateway,
}

// APIError representa um erro de API padronizado
type APIError struct {
	Code    string `json:"code"`              // Código de erro para o cliente
	Message string `json:"message,omitempty"` // Mensagem descritiva (opcional)
	Details any    `json:"details,omitempty"` // Detalhes adicionais (opcional)
}

// WriteError escreve o erro padronizado para a resposta HTTP
func WriteError(w http.ResponseWriter, code string, message string, details any) {
	status, exists := httpStatusMap[code]
	if !exists {
		status = http.StatusInternalServerError
	}

	apiErr := APIError{
		Code:    code,
		Message: message,
		Details: details,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(apiErr)
}

// FromError cria um erro de API a partir de um erro Go
func FromError(err error, code string) APIError {
	if err == nil {
		return APIError{
			Code:    ErrInternalServer,
			Message: "Erro desconhecido",
		}
	}

	return APIError{
		Code:    code,
		Message: err.Error(),
	}
}
