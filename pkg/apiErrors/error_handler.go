package apiErrors

import (
	"errors"
	"net/http"

	jsoniter "github.com/json-iterator/go"
	"github.com/vfg2006/chai-ledger/internal/domain"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	// Erros de autenticação
	ErrInvalidCredentials = "AUTH_001" // Credenciais inválidas
	ErrUserNotFound       = "AUTH_003" // Usuário não encontrado
	ErrInvalidToken       = "AUTH_006" // Token inválido
	ErrExpiredToken       = "AUTH_007" // Token expirado

	// Erros de validação
	ErrInvalidRequest      = "VAL_001" // Requisição inválida
	ErrMissingRequiredData = "VAL_002" // Dados obrigatórios ausentes ou inválidos
	ErrInvalidFormat       = "VAL_003" // Formato de dados inválido
	ErrRouteNotFound       = "VAL_004" // Rota inexistente
	ErrMethodNotAllowed    = "VAL_005" // Método não aceito pela rota

	// Erros de negócio
	ErrOfficeNotFound    = "LED_001" // Escritório não encontrado
	ErrUnsupportedFormat = "LED_002" // Formato de fatura não suportado
	ErrJobAlreadyRunning = "LED_003" // Job já em execução
	ErrUnknownJob        = "LED_004" // Job desconhecido

	// Erros do servidor
	ErrInternalServer   = "SRV_001" // Erro interno do servidor
	ErrStorageOperation = "SRV_002" // Erro ao gravar ou ler os registros
	ErrExternalService  = "SRV_003" // Erro em serviço externo
)

var httpStatusMap = map[string]int{
	ErrInvalidCredentials:  http.StatusUnauthorized,
	ErrUserNotFound:        http.StatusUnauthorized,
	ErrInvalidToken:        http.StatusUnauthorized,
	ErrExpiredToken:        http.StatusUnauthorized,
	ErrInvalidRequest:      http.StatusBadRequest,
	ErrMissingRequiredData: http.StatusBadRequest,
	ErrInvalidFormat:       http.StatusBadRequest,
	ErrRouteNotFound:       http.StatusNotFound,
	ErrMethodNotAllowed:    http.StatusMethodNotAllowed,
	ErrOfficeNotFound:      http.StatusNotFound,
	ErrUnsupportedFormat:   http.StatusBadRequest,
	ErrJobAlreadyRunning:   http.StatusConflict,
	ErrUnknownJob:          http.StatusNotFound,
	ErrInternalServer:      http.StatusInternalServerError,
	ErrStorageOperation:    http.StatusInternalServerError,
	ErrExternalService:     http.StatusBadGateway,
}

// APIError representa um erro de API padronizado
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message,omitempty"`
	Details any    `json:"details,omitempty"`
}

// StatusFor retorna o status HTTP de um código de erro
func StatusFor(code string) int {
	status, exists := httpStatusMap[code]
	if !exists {
		return http.StatusInternalServerError
	}
	return status
}

// WriteError escreve o erro padronizado para a resposta HTTP
func WriteError(w http.ResponseWriter, code string, message string, details any) {
	apiErr := APIError{
		Code:    code,
		Message: message,
		Details: details,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(StatusFor(code))
	json.NewEncoder(w).Encode(apiErr)
}

// FromError converte os erros do domínio no código de API correspondente
func FromError(err error) APIError {
	if err == nil {
		return APIError{Code: ErrInternalServer, Message: "Erro desconhecido"}
	}

	var validationErr *domain.ValidationError
	switch {
	case errors.As(err, &validationErr):
		return APIError{
			Code:    ErrMissingRequiredData,
			Message: validationErr.Reason,
			Details: map[string]string{"field": validationErr.Field},
		}
	case errors.Is(err, domain.ErrOfficeNotFound):
		return APIError{Code: ErrOfficeNotFound, Message: err.Error()}
	case errors.Is(err, domain.ErrPersistence):
		return APIError{Code: ErrStorageOperation, Message: "Erro ao gravar os registros"}
	default:
		return APIError{Code: ErrInternalServer, Message: "Erro interno do servidor"}
	}
}

// WriteFromError escreve a resposta correspondente a um erro do domínio
func WriteFromError(w http.ResponseWriter, err error) {
	apiErr := FromError(err)
	WriteError(w, apiErr.Code, apiErr.Message, apiErr.Details)
}
