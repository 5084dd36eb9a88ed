package placaapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/corretora/backoffice/internal/veiculo"
)

const (
	defaultTimeout = 120 * time.Second
	maxErrorBody   = 64 << 10
)

// Client consulta a api externa de placas.
type Client struct {
	httpClient *http.Client
	apiToken   string
	endpoint   string
	timeout    time.Duration
}

// Config descreve credencial e endpoint da api.
type Config struct {
	APIToken   string
	Endpoint   string
	Timeout    time.Duration
	HTTPClient *http.Client
}

// New cria o cliente. Token e endpoint podem estar vazios: a falta deles é reportada
// em cada consulta como veiculo.ErrConfiguracao, antes de qualquer requisição.
func New(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{}
	}

	return &Client{
		httpClient: client,
		apiToken:   strings.TrimSpace(cfg.APIToken),
		endpoint:   strings.TrimSpace(cfg.Endpoint),
		timeout:    timeout,
	}
}

type lookupRequest struct {
	Tipo    string `json:"tipo"`
	Placa   string `json:"placa"`
	Homolog bool   `json:"homolog"`
}

// FetchPlate faz uma única tentativa, sem retry. Devolve nil, nil quando a resposta
// não traz dados do veículo.
func (c *Client) FetchPlate(ctx context.Context, placa string) (*veiculo.ResultadoConsulta, error) {
	if c.apiToken == "" || c.endpoint == "" {
		return nil, veiculo.ErrConfiguracao
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	payload, err := json.Marshal(lookupRequest{Tipo: "fipe", Placa: placa, Homolog: false})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, c.wrapErr(ctx, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &veiculo.APIError{Status: resp.StatusCode, Message: errorMessage(resp, body)}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, c.wrapErr(ctx, err)
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, nil
	}

	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("placaapi: resposta inválida: %w", err)
	}

	data, err := decodeData(envelope.Data)
	if err != nil {
		return nil, fmt.Errorf("placaapi: resposta inválida: %w", err)
	}
	if len(data) == 0 {
		return nil, nil
	}

	resultado := mapVehicle(placa, data)
	if semDados(resultado) {
		return nil, nil
	}
	return resultado, nil
}

func (c *Client) wrapErr(ctx context.Context, err error) error {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return fmt.Errorf("%w (%s)", veiculo.ErrTimeoutConsulta, c.timeout)
	}
	return fmt.Errorf("placaapi: %w", err)
}

func decodeData(raw json.RawMessage) (map[string]any, error) {
	trimmed := bytes.TrimSpace(raw)
	// "", [], false, 0 e null também significam veículo não encontrado
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, nil
	}

	dec := json.NewDecoder(bytes.NewReader(trimmed))
	dec.UseNumber()
	var data map[string]any
	if err := dec.Decode(&data); err != nil {
		return nil, err
	}
	return data, nil
}

func errorMessage(resp *http.Response, body []byte) string {
	var payload struct {
		Message string `json:"message"`
		Error   any    `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		if msg := strings.TrimSpace(payload.Message); msg != "" {
			return msg
		}
		if msg, ok := payload.Error.(string); ok && strings.TrimSpace(msg) != "" {
			return strings.TrimSpace(msg)
		}
	}
	if text := http.StatusText(resp.StatusCode); text != "" {
		return text
	}
	return "status " + strconv.Itoa(resp.StatusCode)
}
