package veiculo

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// DefaultCacheTTL é o prazo em que um registro de cache é considerado atual.
const DefaultCacheTTL = 30 * 24 * time.Hour

// Cache guarda consultas por (dono, placa). Get devolve ErrCacheMiss quando não há registro.
type Cache interface {
	Get(ctx context.Context, ownerID, placa string) (*PlacaCache, error)
	Upsert(ctx context.Context, registro PlacaCache) error
}

// Fetcher consulta a api externa de placas. Devolve nil, nil quando o veículo não é conhecido.
type Fetcher interface {
	FetchPlate(ctx context.Context, placa string) (*ResultadoConsulta, error)
}

// Lookup é o contrato consumido pela camada HTTP.
type Lookup interface {
	LookupPlate(ctx context.Context, rawPlate, ownerID string) (*ResultadoConsulta, error)
}

// Config ajusta o serviço de consulta.
type Config struct {
	CacheTTL time.Duration
	Now      func() time.Time
}

// Service resolve placas consultando primeiro o cache do usuário e depois a api externa.
//
// Nenhum lock é mantido entre leitura do cache, consulta e gravação: duas consultas
// simultâneas da mesma placa podem ir à api e a última gravação prevalece.
type Service struct {
	cache   Cache
	fetcher Fetcher
	ttl     time.Duration
	now     func() time.Time
	logger  zerolog.Logger
}

// NewService cria o serviço com as dependências injetadas.
func NewService(cache Cache, fetcher Fetcher, cfg Config, logger zerolog.Logger) *Service {
	ttl := cfg.CacheTTL
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &Service{
		cache:   cache,
		fetcher: fetcher,
		ttl:     ttl,
		now:     now,
		logger:  logger,
	}
}

// LookupPlate devolve os dados do veículo da placa informada. Retorna nil, nil quando a
// api não conhece o veículo; nesse caso nada é gravado no cache.
func (s *Service) LookupPlate(ctx context.Context, rawPlate, ownerID string) (*ResultadoConsulta, error) {
	placa, err := NormalizePlate(rawPlate)
	if err != nil {
		return nil, err
	}

	ownerID = strings.TrimSpace(ownerID)
	if ownerID == "" {
		return nil, ErrNaoAutenticado
	}

	logger := s.logger.With().Str("placa", placa).Str("owner_id", ownerID).Logger()

	cached, err := s.cache.Get(ctx, ownerID, placa)
	switch {
	case err == nil && cached != nil:
		if s.isFresh(*cached) {
			return cached.Resultado(), nil
		}
		logger.Debug().Time("cached_at", cached.CachedAt).Msg("cache de placa expirado")
	case err == nil, errors.Is(err, ErrCacheMiss):
	default:
		logger.Warn().Err(err).Msg("falha ao ler cache de placa, consultando api")
	}

	resultado, err := s.fetcher.FetchPlate(ctx, placa)
	if err != nil {
		return nil, err
	}
	if resultado == nil {
		return nil, nil
	}
	resultado.Placa = placa

	// o cache é só otimização: falha de gravação não invalida a consulta
	registro := NewPlacaCache(ownerID, *resultado, s.now())
	if err := s.cache.Upsert(ctx, registro); err != nil {
		logger.Warn().Err(err).Msg("falha ao gravar cache de placa")
	}

	return resultado, nil
}

func (s *Service) isFresh(p PlacaCache) bool {
	return s.now().Sub(p.CachedAt) < s.ttl
}
