package veiculo

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type stubRow struct {
	record *PlacaCache
	err    error
}

func (r stubRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	p := r.record
	*dest[0].(*string) = p.OwnerID
	*dest[1].(*string) = p.Placa
	*dest[2].(*string) = p.Marca
	*dest[3].(*string) = p.Modelo
	*dest[4].(**int) = p.Ano
	*dest[5].(*string) = p.Cor
	*dest[6].(*string) = p.Chassi
	*dest[7].(*string) = p.Renavam
	*dest[8].(*string) = p.CodigoFipe
	*dest[9].(*string) = p.ValorFipe
	*dest[10].(*time.Time) = p.CachedAt
	return nil
}

type stubDB struct {
	row      stubRow
	execSQL  string
	execArgs []any
	execErr  error
	getArgs  []any
}

func (d *stubDB) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	d.getArgs = args
	return d.row
}

func (d *stubDB) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	d.execSQL = sql
	d.execArgs = args
	return pgconn.NewCommandTag("INSERT 0 1"), d.execErr
}

func TestPostgresCacheGet(t *testing.T) {
	rec := cachedRecord(time.Hour)
	db := &stubDB{row: stubRow{record: &rec}}

	got, err := NewPostgresCache(db).Get(context.Background(), "user-1", "ABC1234")
	if err != nil {
		t.Fatalf("erro inesperado: %v", err)
	}
	if got.Marca != "FIAT" || got.Ano == nil || *got.Ano != 2019 {
		t.Fatalf("registro inesperado: %+v", got)
	}
	if len(db.getArgs) != 2 || db.getArgs[0] != "user-1" || db.getArgs[1] != "ABC1234" {
		t.Fatalf("argumentos inesperados: %v", db.getArgs)
	}
}

func TestPostgresCacheGetNoRowsIsMiss(t *testing.T) {
	db := &stubDB{row: stubRow{err: pgx.ErrNoRows}}
	if _, err := NewPostgresCache(db).Get(context.Background(), "user-1", "ABC1234"); !errors.Is(err, ErrCacheMiss) {
		t.Fatalf("esperava ErrCacheMiss, obtido %v", err)
	}

	db = &stubDB{row: stubRow{err: errors.New("conexão perdida")}}
	_, err := NewPostgresCache(db).Get(context.Background(), "user-1", "ABC1234")
	if err == nil || errors.Is(err, ErrCacheMiss) {
		t.Fatalf("falha do banco não deveria virar miss: %v", err)
	}
}

func TestPostgresCacheUpsertUsesConflictKey(t *testing.T) {
	db := &stubDB{}
	rec := cachedRecord(0)
	if err := NewPostgresCache(db).Upsert(context.Background(), rec); err != nil {
		t.Fatalf("erro inesperado: %v", err)
	}
	if !strings.Contains(db.execSQL, "ON CONFLICT (owner_id, plate) DO UPDATE") {
		t.Fatalf("upsert sem chave de conflito: %s", db.execSQL)
	}
	if len(db.execArgs) != 11 || db.execArgs[10] != rec.CachedAt {
		t.Fatalf("argumentos inesperados: %v", db.execArgs)
	}
}
