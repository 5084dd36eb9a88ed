package veiculo

import (
	"errors"
	"fmt"
)

var (
	// ErrPlacaInvalida é retornado quando a placa não segue o padrão antigo nem o Mercosul.
	ErrPlacaInvalida = errors.New("placa inválida")
	// ErrNaoAutenticado é retornado quando não há identidade do chamador.
	ErrNaoAutenticado = errors.New("usuário não autenticado")
	// ErrConfiguracao indica credencial da api de placas ausente.
	ErrConfiguracao = errors.New("api de placas não configurada")
	// ErrTimeoutConsulta indica que a api de placas não respondeu dentro do prazo.
	ErrTimeoutConsulta = errors.New("tempo limite da consulta de placa excedido")
	// ErrCacheMiss é o resultado "sem registro" do cache, distinto de falha.
	ErrCacheMiss = errors.New("placa não encontrada no cache")
)

// APIError carrega status e mensagem devolvidos pela api de placas.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api de placas: status %d: %s", e.Status, e.Message)
}
