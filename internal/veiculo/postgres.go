package veiculo

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type queryer interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// PostgresCache persiste consultas na tabela vehicle_cache.
type PostgresCache struct {
	db queryer
}

// NewPostgresCache cria o cache sobre um pool (ou transação) pgx.
func NewPostgresCache(db queryer) *PostgresCache {
	return &PostgresCache{db: db}
}

// Get busca o registro do dono para a placa.
func (c *PostgresCache) Get(ctx context.Context, ownerID, placa string) (*PlacaCache, error) {
	const query = `
        SELECT owner_id, plate, brand, model, year, color, chassis_number, registration_number, fipe_code, fipe_value, cached_at
        FROM vehicle_cache
        WHERE owner_id = $1 AND plate = $2
        LIMIT 1
    `

	var p PlacaCache
	err := c.db.QueryRow(ctx, query, ownerID, placa).Scan(
		&p.OwnerID,
		&p.Placa,
		&p.Marca,
		&p.Modelo,
		&p.Ano,
		&p.Cor,
		&p.Chassi,
		&p.Renavam,
		&p.CodigoFipe,
		&p.ValorFipe,
		&p.CachedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrCacheMiss
		}
		return nil, err
	}
	return &p, nil
}

// Upsert insere ou substitui o registro de (owner_id, plate).
func (c *PostgresCache) Upsert(ctx context.Context, p PlacaCache) error {
	const query = `
        INSERT INTO vehicle_cache (owner_id, plate, brand, model, year, color, chassis_number, registration_number, fipe_code, fipe_value, cached_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
        ON CONFLICT (owner_id, plate) DO UPDATE SET
            brand = EXCLUDED.brand,
            model = EXCLUDED.model,
            year = EXCLUDED.year,
            color = EXCLUDED.color,
            chassis_number = EXCLUDED.chassis_number,
            registration_number = EXCLUDED.registration_number,
            fipe_code = EXCLUDED.fipe_code,
            fipe_value = EXCLUDED.fipe_value,
            cached_at = EXCLUDED.cached_at
    `

	_, err := c.db.Exec(ctx, query,
		p.OwnerID,
		p.Placa,
		p.Marca,
		p.Modelo,
		p.Ano,
		p.Cor,
		p.Chassi,
		p.Renavam,
		p.CodigoFipe,
		p.ValorFipe,
		p.CachedAt,
	)
	return err
}
