package fiscal

import (
	"errors"
	"strings"
)

var (
	// ErrDocumentoInvalido indica CPF/CNPJ com tamanho ou dígitos verificadores incorretos.
	ErrDocumentoInvalido = errors.New("documento inválido")
	// ErrTipoDocumento indica tipo de documento desconhecido.
	ErrTipoDocumento = errors.New("tipo de documento inválido")
)

const (
	TipoCPF  = "cpf"
	TipoCNPJ = "cnpj"
)

var (
	pesosCNPJ1 = []int{5, 4, 3, 2, 9, 8, 7, 6, 5, 4, 3, 2}
	pesosCNPJ2 = []int{6, 5, 4, 3, 2, 9, 8, 7, 6, 5, 4, 3, 2}
	pesosCPF1  = []int{10, 9, 8, 7, 6, 5, 4, 3, 2}
	pesosCPF2  = []int{11, 10, 9, 8, 7, 6, 5, 4, 3, 2}
)

// OnlyDigits remove tudo que não for dígito ASCII.
func OnlyDigits(raw string) string {
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, raw)
}

// IsValidCNPJ valida tamanho e os dois dígitos verificadores (módulo 11).
func IsValidCNPJ(raw string) bool {
	digits := OnlyDigits(raw)
	if len(digits) != 14 || allSame(digits) {
		return false
	}
	if checkDigit(digits[:12], pesosCNPJ1) != int(digits[12]-'0') {
		return false
	}
	return checkDigit(digits[:13], pesosCNPJ2) == int(digits[13]-'0')
}

// IsValidCPF valida tamanho e os dois dígitos verificadores (módulo 11).
func IsValidCPF(raw string) bool {
	digits := OnlyDigits(raw)
	if len(digits) != 11 || allSame(digits) {
		return false
	}
	if checkDigit(digits[:9], pesosCPF1) != int(digits[9]-'0') {
		return false
	}
	return checkDigit(digits[:10], pesosCPF2) == int(digits[10]-'0')
}

// ValidateDocument valida o documento conforme o tipo informado (cpf ou cnpj).
func ValidateDocument(tipo, raw string) error {
	var ok bool
	switch strings.ToLower(strings.TrimSpace(tipo)) {
	case TipoCPF:
		ok = IsValidCPF(raw)
	case TipoCNPJ:
		ok = IsValidCNPJ(raw)
	default:
		return ErrTipoDocumento
	}
	if !ok {
		return ErrDocumentoInvalido
	}
	return nil
}

// FormatDocument aplica a máscara do tipo informado.
func FormatDocument(tipo, raw string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(tipo)) {
	case TipoCPF:
		return FormatCPF(raw), nil
	case TipoCNPJ:
		return FormatCNPJ(raw), nil
	default:
		return "", ErrTipoDocumento
	}
}

// FormatCNPJ aplica NN.NNN.NNN/NNNN-NN progressivamente, omitindo grupos ainda não digitados.
func FormatCNPJ(raw string) string {
	return mask(OnlyDigits(raw), []int{2, 3, 3, 4, 2}, []string{".", ".", "/", "-"})
}

// FormatCPF aplica NNN.NNN.NNN-NN progressivamente.
func FormatCPF(raw string) string {
	return mask(OnlyDigits(raw), []int{3, 3, 3, 2}, []string{".", ".", "-"})
}

// mask distribui os dígitos nos grupos, descartando o excedente.
func mask(digits string, groups []int, seps []string) string {
	var b strings.Builder
	pos := 0
	for i, size := range groups {
		if pos >= len(digits) {
			break
		}
		if i > 0 {
			b.WriteString(seps[i-1])
		}
		end := pos + size
		if end > len(digits) {
			end = len(digits)
		}
		b.WriteString(digits[pos:end])
		pos = end
	}
	return b.String()
}

func checkDigit(digits string, weights []int) int {
	sum := 0
	for i, w := range weights {
		sum += int(digits[i]-'0') * w
	}
	remainder := sum % 11
	if remainder < 2 {
		return 0
	}
	return 11 - remainder
}

func allSame(digits string) bool {
	return strings.Count(digits, digits[:1]) == len(digits)
}
