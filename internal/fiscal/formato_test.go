package fiscal

import "testing"

func TestFormatPhone(t *testing.T) {
	cases := map[string]string{
		"":                  "",
		"1":                 "(1",
		"11":                "(11",
		"1133":              "(11) 33",
		"1133334444":        "(11) 3333-4444",
		"113333444":         "(11) 3333-444",
		"11999998888":       "(11) 99999-8888",
		"(11) 99999-888899": "(11) 99999-8888",
	}
	for in, want := range cases {
		if got := FormatPhone(in); got != want {
			t.Errorf("FormatPhone(%q) = %q, esperado %q", in, got, want)
		}
	}
}

func TestFormatCurrencyInput(t *testing.T) {
	cases := map[string]string{
		"1234":        "12,34",
		"5":           "0,05",
		"50":          "0,50",
		"123456":      "1.234,56",
		"123456789":   "1.234.567,89",
		"R$ 1.234,56": "1.234,56",
		"1,2,3":       "1,23",
		"0,5":         "0,05",
		"05":          "0,05",
		"0":           "",
		"00":          "0,00",
		"":            "",
		",":           ",",
		"abc":         "",
	}
	for in, want := range cases {
		if got := FormatCurrencyInput(in); got != want {
			t.Errorf("FormatCurrencyInput(%q) = %q, esperado %q", in, got, want)
		}
	}
}

func TestFormatCurrencyInputReprocessesAsCents(t *testing.T) {
	first := FormatCurrencyInput("1234")
	if first != "12,34" {
		t.Fatalf("esperava 12,34, obtido %q", first)
	}

	// apagar o último caractere desloca os centavos em vez de truncar a fração
	if got := FormatCurrencyInput(first[:len(first)-1]); got != "1,23" {
		t.Fatalf("esperava 1,23 após apagar um dígito, obtido %q", got)
	}
	if got := FormatCurrencyInput(first + "5"); got != "123,45" {
		t.Fatalf("esperava 123,45 após digitar mais um dígito, obtido %q", got)
	}
}

func TestParseCurrencyToFloat(t *testing.T) {
	cases := map[string]float64{
		"1.234,56":       1234.56,
		"R$ 1.234,56":    1234.56,
		"R$1.000.000,00": 1000000,
		"12,34":          12.34,
		"":               0,
		"abc":            0,
	}
	for in, want := range cases {
		if got := ParseCurrencyToFloat(in); got != want {
			t.Errorf("ParseCurrencyToFloat(%q) = %v, esperado %v", in, got, want)
		}
	}
}

func TestCurrencyFormatAndParseAreNotInverses(t *testing.T) {
	// formatação lê centavos, o parse lê o decimal literal
	if got := ParseCurrencyToFloat("1234"); got != 1234 {
		t.Fatalf("esperava 1234, obtido %v", got)
	}
	if got := ParseCurrencyToFloat(FormatCurrencyInput("1234")); got != 12.34 {
		t.Fatalf("esperava 12.34, obtido %v", got)
	}
}
