package http

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	httpmiddleware "github.com/corretora/backoffice/internal/http/middleware"
	"github.com/corretora/backoffice/internal/veiculo"
)

// LookupPlate consulta os dados do veículo pela placa, usando o cache do usuário.
func (h *Handler) LookupPlate(w http.ResponseWriter, r *http.Request) {
	subject := httpmiddleware.GetSubject(r.Context())
	logger := log.With().
		Str("subject", subject).
		Strs("roles", httpmiddleware.GetRoles(r.Context())).
		Str("placa", chi.URLParam(r, "placa")).
		Logger()

	resultado, err := h.veiculos.LookupPlate(r.Context(), chi.URLParam(r, "placa"), subject)
	if err != nil {
		var apiErr *veiculo.APIError
		switch {
		case errors.Is(err, veiculo.ErrPlacaInvalida):
			WriteError(w, http.StatusBadRequest, "VALIDATION", "placa inválida", nil)
		case errors.Is(err, veiculo.ErrNaoAutenticado):
			WriteError(w, http.StatusUnauthorized, "AUTH", "usuário não autenticado", nil)
		case errors.Is(err, veiculo.ErrConfiguracao):
			logger.Error().Err(err).Msg("consulta de placa sem configuração")
			WriteError(w, http.StatusServiceUnavailable, "CONFIG", "consulta de placas indisponível", nil)
		case errors.Is(err, veiculo.ErrTimeoutConsulta):
			WriteError(w, http.StatusGatewayTimeout, "TIMEOUT", "a consulta demorou demais, tente novamente", nil)
		case errors.As(err, &apiErr):
			logger.Error().Err(err).Int("upstream_status", apiErr.Status).Msg("api de placas recusou a consulta")
			WriteError(w, http.StatusBadGateway, "UPSTREAM", apiErr.Message, map[string]any{"status": apiErr.Status})
		default:
			logger.Error().Err(err).Msg("falha na consulta de placa")
			WriteError(w, http.StatusInternalServerError, "INTERNAL", "não foi possível consultar a placa", nil)
		}
		return
	}

	if resultado == nil {
		WriteError(w, http.StatusNotFound, "NOT_FOUND", "veículo não encontrado", nil)
		return
	}

	WriteJSON(w, http.StatusOK, resultado)
}
