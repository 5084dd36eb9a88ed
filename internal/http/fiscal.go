package http

import (
	"net/http"
	"strings"

	"github.com/corretora/backoffice/internal/fiscal"
	"github.com/corretora/backoffice/internal/veiculo"
)

// ValidateDocument valida CPF ou CNPJ e devolve o número mascarado.
func (h *Handler) ValidateDocument(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Tipo   string `json:"tipo"`
		Numero string `json:"numero"`
	}

	if !decodeJSON(w, r, &payload) {
		return
	}

	formatado, err := fiscal.FormatDocument(payload.Tipo, payload.Numero)
	if err != nil {
		WriteError(w, http.StatusBadRequest, "VALIDATION", "tipo deve ser cpf ou cnpj", nil)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{
		"tipo":      strings.ToLower(strings.TrimSpace(payload.Tipo)),
		"valido":    fiscal.ValidateDocument(payload.Tipo, payload.Numero) == nil,
		"formatado": formatado,
	})
}

// Format aplica as máscaras de entrada usadas pelos formulários do painel.
func (h *Handler) Format(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Tipo  string `json:"tipo"`
		Valor string `json:"valor"`
	}

	if !decodeJSON(w, r, &payload) {
		return
	}

	resp := map[string]any{}
	switch strings.ToLower(strings.TrimSpace(payload.Tipo)) {
	case fiscal.TipoCPF:
		resp["formatado"] = fiscal.FormatCPF(payload.Valor)
	case fiscal.TipoCNPJ:
		resp["formatado"] = fiscal.FormatCNPJ(payload.Valor)
	case "telefone":
		resp["formatado"] = fiscal.FormatPhone(payload.Valor)
	case "moeda":
		formatado := fiscal.FormatCurrencyInput(payload.Valor)
		resp["formatado"] = formatado
		resp["valor"] = fiscal.ParseCurrencyToFloat(formatado)
	case "placa":
		formatado := veiculo.FormatPlate(payload.Valor)
		resp["formatado"] = formatado
		resp["valida"] = veiculo.IsValidPlateFormat(formatado)
	default:
		WriteError(w, http.StatusBadRequest, "VALIDATION", "tipo deve ser cpf, cnpj, telefone, moeda ou placa", nil)
		return
	}

	WriteJSON(w, http.StatusOK, resp)
}
