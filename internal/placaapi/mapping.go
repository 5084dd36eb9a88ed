package placaapi

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/corretora/backoffice/internal/veiculo"
)

// A api mudou os nomes dos campos ao longo das versões; vale o primeiro presente.
var (
	keysMarca         = []string{"marca", "MARCA", "brand"}
	keysModelo        = []string{"modelo", "MODELO", "model"}
	keysAnoFabricacao = []string{"ano", "anoFabricacao", "ano_fabricacao"}
	keysAnoModelo     = []string{"anoModelo", "ano_modelo", "ANO_MODELO"}
	keysCor           = []string{"cor", "COR", "color"}
	keysCombustivel   = []string{"combustivel", "COMBUSTIVEL", "fuel"}
	keysCategoria     = []string{"categoria", "especie", "ESPECIE"}
	keysChassi        = []string{"chassi", "CHASSI"}
	keysRenavam       = []string{"renavam", "RENAVAM"}
	keysMunicipio     = []string{"municipio", "MUNICIPIO", "cidade"}
	keysUF            = []string{"uf", "UF", "estado"}
	keysCodigoFipe    = []string{"codigoFipe", "codigo_fipe", "fipe_codigo"}
	keysValorFipe     = []string{"valorFipe", "valor_fipe", "valor"}
)

func mapVehicle(placa string, data map[string]any) *veiculo.ResultadoConsulta {
	return &veiculo.ResultadoConsulta{
		Placa:         placa,
		Marca:         pick(data, keysMarca...),
		Modelo:        pick(data, keysModelo...),
		AnoFabricacao: pick(data, keysAnoFabricacao...),
		AnoModelo:     pick(data, keysAnoModelo...),
		Cor:           pick(data, keysCor...),
		Combustivel:   pick(data, keysCombustivel...),
		Categoria:     pick(data, keysCategoria...),
		Chassi:        pick(data, keysChassi...),
		Renavam:       pick(data, keysRenavam...),
		Municipio:     pick(data, keysMunicipio...),
		UF:            pick(data, keysUF...),
		CodigoFipe:    pick(data, keysCodigoFipe...),
		ValorFipe:     pick(data, keysValorFipe...),
	}
}

func pick(data map[string]any, keys ...string) string {
	for _, key := range keys {
		if s := stringify(data[key]); s != "" {
			return s
		}
	}
	return ""
}

func stringify(v any) string {
	switch val := v.(type) {
	case string:
		return strings.TrimSpace(val)
	case json.Number:
		return val.String()
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	default:
		return ""
	}
}

// semDados indica que nenhum campo do veículo foi reconhecido na resposta.
func semDados(r *veiculo.ResultadoConsulta) bool {
	for _, campo := range []string{
		r.Marca, r.Modelo, r.AnoFabricacao, r.AnoModelo, r.Cor, r.Combustivel, r.Categoria,
		r.Chassi, r.Renavam, r.Municipio, r.UF, r.CodigoFipe, r.ValorFipe,
	} {
		if campo != "" {
			return false
		}
	}
	return true
}
