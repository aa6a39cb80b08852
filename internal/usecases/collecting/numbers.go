package collecting

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	nonNumericChars = regexp.MustCompile(`[^\d.\-]`)
	numericPrefix   = regexp.MustCompile(`^[-+]?(\d+\.?\d*|\.\d+)`)
)

// parseMetricValue lê o valor de um widget: remove tudo que não for dígito,
// sinal ou ponto e interpreta o maior prefixo numérico. Sem número, 0.
func parseMetricValue(text string) float64 {
	return parseNumericPrefix(nonNumericChars.ReplaceAllString(text, ""))
}

// parseDecimalComma aceita vírgula como separador decimal. O ponto continua
// sendo lido como decimal, então "1.234" vira 1.234 e não 1234.
func parseDecimalComma(text string) float64 {
	return parseNumericPrefix(strings.Replace(text, ",", ".", 1))
}

func parseNumericPrefix(text string) float64 {
	prefix := numericPrefix.FindString(strings.TrimSpace(text))
	if prefix == "" {
		return 0
	}

	value, err := strconv.ParseFloat(prefix, 64)
	if err != nil {
		return 0
	}
	return value
}
