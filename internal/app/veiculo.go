package app

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/corretora/backoffice/internal/config"
	"github.com/corretora/backoffice/internal/placaapi"
	"github.com/corretora/backoffice/internal/veiculo"
)

// NewVehicleCache escolhe o backend do cache de placas conforme VEHICLE_CACHE_BACKEND.
func NewVehicleCache(cfg *config.Config, pool *pgxpool.Pool, redisClient *redis.Client) veiculo.Cache {
	if cfg.VehicleCache.Backend == config.CacheBackendRedis {
		return veiculo.NewRedisCache(redisClient)
	}
	return veiculo.NewPostgresCache(pool)
}

// NewVehicleService monta o serviço de consulta de placas com cache e cliente da api.
func NewVehicleService(cfg *config.Config, pool *pgxpool.Pool, redisClient *redis.Client, logger zerolog.Logger) *veiculo.Service {
	client := placaapi.New(placaapi.Config{
		APIToken: cfg.PlacaAPI.Token,
		Endpoint: cfg.PlacaAPI.URL,
		Timeout:  cfg.PlacaAPI.Timeout,
	})

	if cfg.PlacaAPI.Token == "" || cfg.PlacaAPI.URL == "" {
		logger.Warn().Msg("PLACA_API_URL ou PLACA_API_TOKEN ausente: consultas de placa vão falhar até a configuração ser corrigida")
	}

	return veiculo.NewService(
		NewVehicleCache(cfg, pool, redisClient),
		client,
		veiculo.Config{CacheTTL: cfg.VehicleCache.TTL},
		logger.With().Str("component", "veiculo").Logger(),
	)
}
