package veiculo

import (
	"regexp"
	"strings"
)

var (
	placaAntiga   = regexp.MustCompile(`^[A-Z]{3}[0-9]{4}$`)
	placaMercosul = regexp.MustCompile(`^[A-Z]{3}[0-9][A-Z][0-9]{2}$`)
)

// FormatPlate remove caracteres não alfanuméricos, limita a 7 e converte para maiúsculas.
// Não valida.
func FormatPlate(raw string) string {
	placa := strings.ToUpper(stripPlate(raw))
	if len(placa) > 7 {
		placa = placa[:7]
	}
	return placa
}

// IsValidPlateFormat aceita LLLNNNN (padrão antigo) ou LLLNLNN (Mercosul).
func IsValidPlateFormat(placa string) bool {
	placa = strings.ToUpper(placa)
	return placaAntiga.MatchString(placa) || placaMercosul.MatchString(placa)
}

// NormalizePlate limpa a entrada e exige exatamente uma placa válida, sem truncar.
func NormalizePlate(raw string) (string, error) {
	placa := strings.ToUpper(stripPlate(raw))
	if !IsValidPlateFormat(placa) {
		return "", ErrPlacaInvalida
	}
	return placa, nil
}

func stripPlate(raw string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		}
		return -1
	}, raw)
}
