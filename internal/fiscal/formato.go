package fiscal

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FormatPhone mascara telefones brasileiros: (NN) NNNN-NNNN até 10 dígitos,
// (NN) NNNNN-NNNN com 11. Grupos parciais são mantidos durante a digitação.
func FormatPhone(raw string) string {
	digits := OnlyDigits(raw)
	if len(digits) > 11 {
		digits = digits[:11]
	}

	switch n := len(digits); {
	case n == 0:
		return ""
	case n <= 2:
		return "(" + digits
	case n <= 6:
		return "(" + digits[:2] + ") " + digits[2:]
	case n <= 10:
		return "(" + digits[:2] + ") " + digits[2:6] + "-" + digits[6:]
	default:
		return "(" + digits[:2] + ") " + digits[2:7] + "-" + digits[7:]
	}
}

// FormatCurrencyInput trata a entrada como centavos digitados da esquerda para a direita
// e devolve o valor no formato 1.234,56. Entrada vazia ou só com vírgula volta intacta.
func FormatCurrencyInput(raw string) string {
	value := strings.Map(func(r rune) rune {
		if (r >= '0' && r <= '9') || r == ',' {
			return r
		}
		return -1
	}, raw)

	// vírgulas extras são absorvidas pela parte fracionária
	if idx := strings.Index(value, ","); idx >= 0 {
		value = value[:idx+1] + strings.ReplaceAll(value[idx+1:], ",", "")
	}

	// um único zero à esquerda é descartado; "0" sozinho limpa o campo
	if strings.HasPrefix(value, "0") && !strings.HasPrefix(value, "0,") {
		value = value[1:]
	}

	if value == "" || value == "," {
		return value
	}

	cents, err := decimal.NewFromString(strings.ReplaceAll(value, ",", ""))
	if err != nil {
		return value
	}

	fixed := cents.Shift(-2).StringFixed(2)
	intPart, fracPart, _ := strings.Cut(fixed, ".")
	return groupThousands(intPart) + "," + fracPart
}

// ParseCurrencyToFloat lê um valor literal no formato brasileiro (R$ 1.234,56).
// Retorna 0 quando não for possível interpretar.
func ParseCurrencyToFloat(formatted string) float64 {
	value := strings.ReplaceAll(formatted, "R$", "")
	value = strings.Join(strings.Fields(value), "")
	value = strings.ReplaceAll(value, ".", "")
	value = strings.Replace(value, ",", ".", 1)

	parsed, err := decimal.NewFromString(value)
	if err != nil {
		return 0
	}
	f, _ := parsed.Float64()
	return f
}

func groupThousands(intPart string) string {
	if len(intPart) <= 3 {
		return intPart
	}
	var b strings.Builder
	head := len(intPart) % 3
	if head > 0 {
		b.WriteString(intPart[:head])
	}
	for i := head; i < len(intPart); i += 3 {
		if b.Len() > 0 {
			b.WriteByte('.')
		}
		b.WriteString(intPart[i : i+3])
	}
	return b.String()
}
