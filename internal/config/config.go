package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	CacheBackendPostgres = "postgres"
	CacheBackendRedis    = "redis"
)

// Config centraliza a configuração carregada do ambiente.
type Config struct {
	Port            int
	DBDSN           string
	RedisURL        string
	JWTAccessTTL    time.Duration
	JWTSecret       string
	AllowOrigins    []string
	RateLimitPublic RateLimitConfig
	RateLimitAuth   RateLimitConfig
	PlacaAPI        PlacaAPIConfig
	VehicleCache    VehicleCacheConfig
}

// RateLimitConfig representa limites simples para throttling.
type RateLimitConfig struct {
	RequestsPerSecond float64
	Burst             int
}

// PlacaAPIConfig descreve a api externa de consulta de placas.
// Token vazio não impede a subida: cada consulta falha com erro de configuração.
type PlacaAPIConfig struct {
	URL     string
	Token   string
	Timeout time.Duration
}

// VehicleCacheConfig define onde e por quanto tempo as consultas ficam em cache.
type VehicleCacheConfig struct {
	Backend string
	TTL     time.Duration
}

// Load carrega variáveis de ambiente e aplica defaults seguros.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}

	portStr := getEnv("PORT", "8080")
	port, err := strconv.Atoi(portStr)
	if err != nil || port <= 0 {
		return nil, errors.New("PORT inválida")
	}
	cfg.Port = port

	cfg.DBDSN = getEnv("DB_DSN", "")
	if cfg.DBDSN == "" {
		return nil, errors.New("DB_DSN obrigatório")
	}

	cfg.RedisURL = getEnv("REDIS_URL", "")
	if cfg.RedisURL == "" {
		return nil, errors.New("REDIS_URL obrigatório")
	}

	cfg.JWTSecret = strings.TrimSpace(getEnv("JWT_SECRET", ""))
	if len(cfg.JWTSecret) < 32 {
		return nil, errors.New("JWT_SECRET deve ter pelo menos 32 caracteres")
	}

	accessTTL, err := parseDurationEnv("JWT_ACCESS_TTL", 15*time.Minute)
	if err != nil {
		return nil, err
	}
	cfg.JWTAccessTTL = accessTTL

	allowOrigins := strings.Split(getEnv("ALLOW_ORIGINS", ""), ",")
	cfg.AllowOrigins = nil
	for _, origin := range allowOrigins {
		origin = strings.TrimSpace(origin)
		if origin != "" {
			cfg.AllowOrigins = append(cfg.AllowOrigins, origin)
		}
	}

	cfg.RateLimitPublic = RateLimitConfig{RequestsPerSecond: 10, Burst: 20}
	cfg.RateLimitAuth = RateLimitConfig{RequestsPerSecond: 5, Burst: 20}

	cfg.PlacaAPI.URL = strings.TrimSpace(getEnv("PLACA_API_URL", ""))
	cfg.PlacaAPI.Token = strings.TrimSpace(getEnv("PLACA_API_TOKEN", ""))
	apiTimeout, err := parseDurationEnv("PLACA_API_TIMEOUT", 120*time.Second)
	if err != nil {
		return nil, err
	}
	cfg.PlacaAPI.Timeout = apiTimeout

	cacheTTL, err := parseDurationEnv("VEHICLE_CACHE_TTL", 30*24*time.Hour)
	if err != nil {
		return nil, err
	}
	cfg.VehicleCache.TTL = cacheTTL

	cfg.VehicleCache.Backend = strings.ToLower(strings.TrimSpace(getEnv("VEHICLE_CACHE_BACKEND", CacheBackendPostgres)))
	switch cfg.VehicleCache.Backend {
	case CacheBackendPostgres, CacheBackendRedis:
	default:
		return nil, errors.New("VEHICLE_CACHE_BACKEND deve ser postgres ou redis")
	}

	return cfg, nil
}

func getEnv(key, def string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return def
}

func parseDurationEnv(key string, def time.Duration) (time.Duration, error) {
	val := getEnv(key, "")
	if val == "" {
		return def, nil
	}
	dur, err := time.ParseDuration(val)
	if err != nil || dur <= 0 {
		return 0, errors.New(key + " inválido")
	}
	return dur, nil
}
