package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/corretora/backoffice/internal/auth"
	"github.com/corretora/backoffice/internal/config"
	"github.com/corretora/backoffice/internal/veiculo"
)

const testSecret = "0123456789abcdef0123456789abcdef"

type stubLookup struct {
	result  *veiculo.ResultadoConsulta
	err     error
	subject string
	placa   string
}

func (s *stubLookup) LookupPlate(ctx context.Context, rawPlate, ownerID string) (*veiculo.ResultadoConsulta, error) {
	s.placa = rawPlate
	s.subject = ownerID
	return s.result, s.err
}

type envelope struct {
	Data  map[string]any `json:"data"`
	Error *struct {
		Code    string         `json:"code"`
		Message string         `json:"message"`
		Details map[string]any `json:"details"`
	} `json:"error"`
}

func newTestRouter(t *testing.T, lookup veiculo.Lookup, checks map[string]HealthCheck) (http.Handler, string) {
	t.Helper()
	cfg := &config.Config{
		AllowOrigins:    []string{"http://localhost:5173"},
		RateLimitPublic: config.RateLimitConfig{RequestsPerSecond: 100, Burst: 100},
		RateLimitAuth:   config.RateLimitConfig{RequestsPerSecond: 100, Burst: 100},
	}
	jwtManager := auth.NewJWTManager(testSecret, time.Minute)
	token, _, err := jwtManager.GenerateAccessToken("user-42", []string{"CORRETOR"})
	if err != nil {
		t.Fatalf("token: %v", err)
	}
	return NewRouter(cfg, Deps{JWT: jwtManager, Veiculo: lookup, Checks: checks}), token
}

func do(t *testing.T, h http.Handler, method, path, token string, body any) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var env envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("resposta inválida %q: %v", rec.Body.String(), err)
	}
	return rec, env
}

func TestLookupPlateUsesTokenSubject(t *testing.T) {
	lookup := &stubLookup{result: &veiculo.ResultadoConsulta{Placa: "ABC1234", Marca: "FIAT"}}
	h, token := newTestRouter(t, lookup, nil)

	rec, env := do(t, h, http.MethodGet, "/v1/veiculos/placa/abc1234", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status inesperado: %d %s", rec.Code, rec.Body.String())
	}
	if lookup.subject != "user-42" || lookup.placa != "abc1234" {
		t.Fatalf("chamada inesperada: subject=%q placa=%q", lookup.subject, lookup.placa)
	}
	if env.Data["marca"] != "FIAT" {
		t.Fatalf("dados inesperados: %v", env.Data)
	}
}

func TestLookupPlateRequiresToken(t *testing.T) {
	lookup := &stubLookup{}
	h, _ := newTestRouter(t, lookup, nil)

	rec, env := do(t, h, http.MethodGet, "/v1/veiculos/placa/ABC1234", "", nil)
	if rec.Code != http.StatusUnauthorized || env.Error == nil || env.Error.Code != "AUTH" {
		t.Fatalf("esperava 401 AUTH, obtido %d %s", rec.Code, rec.Body.String())
	}
	if lookup.placa != "" {
		t.Fatal("serviço não deveria ser chamado sem token")
	}
}

func TestLookupPlateErrorMapping(t *testing.T) {
	cases := []struct {
		name   string
		result *veiculo.ResultadoConsulta
		err    error
		status int
		code   string
	}{
		{"nao encontrado", nil, nil, http.StatusNotFound, "NOT_FOUND"},
		{"placa invalida", nil, veiculo.ErrPlacaInvalida, http.StatusBadRequest, "VALIDATION"},
		{"sem identidade", nil, veiculo.ErrNaoAutenticado, http.StatusUnauthorized, "AUTH"},
		{"sem token da api", nil, veiculo.ErrConfiguracao, http.StatusServiceUnavailable, "CONFIG"},
		{"timeout", nil, veiculo.ErrTimeoutConsulta, http.StatusGatewayTimeout, "TIMEOUT"},
		{"upstream", nil, &veiculo.APIError{Status: 429, Message: "limite diário"}, http.StatusBadGateway, "UPSTREAM"},
		{"inesperado", nil, errors.New("boom"), http.StatusInternalServerError, "INTERNAL"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h, token := newTestRouter(t, &stubLookup{result: tc.result, err: tc.err}, nil)
			rec, env := do(t, h, http.MethodGet, "/v1/veiculos/placa/ABC1234", token, nil)
			if rec.Code != tc.status || env.Error == nil || env.Error.Code != tc.code {
				t.Fatalf("esperava %d %s, obtido %d %s", tc.status, tc.code, rec.Code, rec.Body.String())
			}
		})
	}
}

func TestLookupPlateUpstreamDetails(t *testing.T) {
	h, token := newTestRouter(t, &stubLookup{err: &veiculo.APIError{Status: 429, Message: "limite diário"}}, nil)
	_, env := do(t, h, http.MethodGet, "/v1/veiculos/placa/ABC1234", token, nil)
	if env.Error.Message != "limite diário" || env.Error.Details["status"] != float64(429) {
		t.Fatalf("detalhes inesperados: %+v", env.Error)
	}
}

func TestValidateDocument(t *testing.T) {
	h, token := newTestRouter(t, &stubLookup{}, nil)

	rec, env := do(t, h, http.MethodPost, "/v1/fiscal/validar", token, map[string]string{"tipo": "CNPJ", "numero": "11222333000181"})
	if rec.Code != http.StatusOK {
		t.Fatalf("status inesperado: %d", rec.Code)
	}
	if env.Data["valido"] != true || env.Data["formatado"] != "11.222.333/0001-81" || env.Data["tipo"] != "cnpj" {
		t.Fatalf("dados inesperados: %v", env.Data)
	}

	_, env = do(t, h, http.MethodPost, "/v1/fiscal/validar", token, map[string]string{"tipo": "cpf", "numero": "111.111.111-11"})
	if env.Data["valido"] != false {
		t.Fatalf("esperava CPF inválido: %v", env.Data)
	}

	rec, _ = do(t, h, http.MethodPost, "/v1/fiscal/validar", token, map[string]string{"tipo": "rg", "numero": "123"})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("esperava 400, obtido %d", rec.Code)
	}
}

func TestFormat(t *testing.T) {
	h, token := newTestRouter(t, &stubLookup{}, nil)

	cases := []struct {
		tipo, valor, want string
	}{
		{"cpf", "52998224725", "529.982.247-25"},
		{"cnpj", "1122", "11.22"},
		{"telefone", "11999998888", "(11) 99999-8888"},
		{"moeda", "123456", "1.234,56"},
		{"placa", "abc-1d23", "ABC1D23"},
	}
	for _, tc := range cases {
		rec, env := do(t, h, http.MethodPost, "/v1/formatar", token, map[string]string{"tipo": tc.tipo, "valor": tc.valor})
		if rec.Code != http.StatusOK || env.Data["formatado"] != tc.want {
			t.Errorf("%s: esperava %q, obtido %d %v", tc.tipo, tc.want, rec.Code, env.Data)
		}
	}

	_, env := do(t, h, http.MethodPost, "/v1/formatar", token, map[string]string{"tipo": "moeda", "valor": "123456"})
	if env.Data["valor"] != 1234.56 {
		t.Fatalf("esperava valor 1234.56, obtido %v", env.Data["valor"])
	}
	_, env = do(t, h, http.MethodPost, "/v1/formatar", token, map[string]string{"tipo": "placa", "valor": "abc-1d23"})
	if env.Data["valida"] != true {
		t.Fatalf("esperava placa válida: %v", env.Data)
	}

	rec, _ := do(t, h, http.MethodPost, "/v1/formatar", token, map[string]string{"tipo": "cep", "valor": "1"})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("esperava 400, obtido %d", rec.Code)
	}
}

func TestReady(t *testing.T) {
	h, _ := newTestRouter(t, &stubLookup{}, map[string]HealthCheck{
		"db":    func(ctx context.Context) error { return nil },
		"redis": func(ctx context.Context) error { return errors.New("conexão recusada") },
	})

	rec, env := do(t, h, http.MethodGet, "/ready", "", nil)
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("esperava 503, obtido %d", rec.Code)
	}
	if env.Error.Details["redis"] != "conexão recusada" {
		t.Fatalf("detalhes inesperados: %v", env.Error.Details)
	}
	if _, ok := env.Error.Details["db"]; ok {
		t.Fatalf("db saudável não deveria aparecer: %v", env.Error.Details)
	}

	h, _ = newTestRouter(t, &stubLookup{}, nil)
	if rec, _ := do(t, h, http.MethodGet, "/health", "", nil); rec.Code != http.StatusOK {
		t.Fatalf("esperava 200, obtido %d", rec.Code)
	}
}

func TestFormatRejectsEmptyBody(t *testing.T) {
	h, token := newTestRouter(t, &stubLookup{}, nil)

	rec, env := do(t, h, http.MethodPost, "/v1/formatar", token, nil)
	if rec.Code != http.StatusBadRequest || env.Error == nil || env.Error.Message != "corpo da requisição vazio" {
		t.Fatalf("esperava 400 por corpo vazio, obtido %d %s", rec.Code, rec.Body.String())
	}
}

func TestLookupPlateLogsCallerRoles(t *testing.T) {
	var buf bytes.Buffer
	previous := log.Logger
	log.Logger = zerolog.New(&buf)
	t.Cleanup(func() { log.Logger = previous })

	h, token := newTestRouter(t, &stubLookup{err: &veiculo.APIError{Status: 429, Message: "limite diário"}}, nil)
	rec, _ := do(t, h, http.MethodGet, "/v1/veiculos/placa/ABC1234", token, nil)
	if rec.Code != http.StatusBadGateway {
		t.Fatalf("esperava 502, obtido %d", rec.Code)
	}

	var linha string
	for _, l := range strings.Split(buf.String(), "\n") {
		if strings.Contains(l, "api de placas recusou a consulta") {
			linha = l
		}
	}
	if linha == "" {
		t.Fatalf("log de falha ausente: %s", buf.String())
	}
	if !strings.Contains(linha, `"roles":["CORRETOR"]`) || !strings.Contains(linha, `"subject":"user-42"`) {
		t.Fatalf("log sem identidade do chamador: %s", linha)
	}
}
