package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
)

// maxBodyBytes limita o corpo aceito pelos endpoints de formatação.
const maxBodyBytes = 64 << 10

type responseEnvelope struct {
	Data  any        `json:"data"`
	Error *ErrorBody `json:"error"`
}

// ErrorBody descreve falhas normalizadas.
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// WriteJSON escreve envelope de sucesso.
func WriteJSON(w http.ResponseWriter, status int, data any) {
	writeEnvelope(w, status, responseEnvelope{Data: data})
}

// WriteError escreve envelope de erro e mantém formato consistente.
func WriteError(w http.ResponseWriter, status int, code, message string, details any) {
	writeEnvelope(w, status, responseEnvelope{Error: &ErrorBody{Code: code, Message: message, Details: details}})
}

func writeEnvelope(w http.ResponseWriter, status int, body responseEnvelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// decodeJSON lê o corpo da requisição em dst e responde 400 quando inválido.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		var tooLarge *http.MaxBytesError
		switch {
		case errors.As(err, &tooLarge):
			WriteError(w, http.StatusRequestEntityTooLarge, "VALIDATION", "corpo da requisição muito grande", nil)
		case errors.Is(err, io.EOF):
			WriteError(w, http.StatusBadRequest, "VALIDATION", "corpo da requisição vazio", nil)
		default:
			WriteError(w, http.StatusBadRequest, "VALIDATION", "JSON inválido", nil)
		}
		return false
	}
	return true
}
