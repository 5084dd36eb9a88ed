package veiculo

import (
	"strconv"
	"strings"
	"time"
)

// PlacaCache é o registro persistido por (dono, placa).
type PlacaCache struct {
	OwnerID    string    `json:"owner_id"`
	Placa      string    `json:"plate"`
	Marca      string    `json:"brand"`
	Modelo     string    `json:"model"`
	Ano        *int      `json:"year,omitempty"`
	Cor        string    `json:"color"`
	Chassi     string    `json:"chassis_number"`
	Renavam    string    `json:"registration_number"`
	CodigoFipe string    `json:"fipe_code"`
	ValorFipe  string    `json:"fipe_value"`
	CachedAt   time.Time `json:"cached_at"`
}

// ResultadoConsulta descreve o veículo devolvido ao chamador.
type ResultadoConsulta struct {
	Placa         string `json:"placa"`
	Marca         string `json:"marca"`
	Modelo        string `json:"modelo"`
	AnoFabricacao string `json:"ano_fabricacao"`
	AnoModelo     string `json:"ano_modelo"`
	Cor           string `json:"cor"`
	Combustivel   string `json:"combustivel"`
	Categoria     string `json:"categoria"`
	Chassi        string `json:"chassi"`
	Renavam       string `json:"renavam"`
	Municipio     string `json:"municipio"`
	UF            string `json:"uf"`
	CodigoFipe    string `json:"codigo_fipe"`
	ValorFipe     string `json:"valor_fipe"`
}

// NewPlacaCache monta o registro de cache a partir de uma consulta nova.
func NewPlacaCache(ownerID string, r ResultadoConsulta, cachedAt time.Time) PlacaCache {
	ano := parseAno(r.AnoModelo)
	if ano == nil {
		ano = parseAno(r.AnoFabricacao)
	}
	return PlacaCache{
		OwnerID:    ownerID,
		Placa:      r.Placa,
		Marca:      r.Marca,
		Modelo:     r.Modelo,
		Ano:        ano,
		Cor:        r.Cor,
		Chassi:     r.Chassi,
		Renavam:    r.Renavam,
		CodigoFipe: r.CodigoFipe,
		ValorFipe:  r.ValorFipe,
		CachedAt:   cachedAt,
	}
}

// Resultado converte o registro em cache. Campos que o cache não guarda
// (combustível, categoria, município, UF) voltam vazios.
func (p PlacaCache) Resultado() *ResultadoConsulta {
	var ano string
	if p.Ano != nil {
		ano = strconv.Itoa(*p.Ano)
	}
	return &ResultadoConsulta{
		Placa:         p.Placa,
		Marca:         p.Marca,
		Modelo:        p.Modelo,
		AnoFabricacao: ano,
		AnoModelo:     ano,
		Cor:           p.Cor,
		Chassi:        p.Chassi,
		Renavam:       p.Renavam,
		CodigoFipe:    p.CodigoFipe,
		ValorFipe:     p.ValorFipe,
	}
}

// parseAno aceita "2020" ou "2019/2020" (usa o primeiro ano).
func parseAno(raw string) *int {
	raw = strings.TrimSpace(raw)
	if len(raw) > 4 {
		raw = raw[:4]
	}
	ano, err := strconv.Atoi(raw)
	if err != nil || ano <= 0 {
		return nil
	}
	return &ano
}
