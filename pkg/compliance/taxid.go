package compliance

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrInvalidNumber número de registro con formato o dígito de control inválido.
var ErrInvalidNumber = errors.New("número de registro inválido")

// Formatos conocidos. Los tipos sin entrada (licencias estatales, ESI, EPF, ...) no tienen
// un formato nacional único y se aceptan tal cual.
var numberPatterns = map[RegistrationType]*regexp.Regexp{
	RegPAN:       regexp.MustCompile(`^[A-Z]{5}[0-9]{4}[A-Z]$`),
	RegTAN:       regexp.MustCompile(`^[A-Z]{4}[0-9]{5}[A-Z]$`),
	RegGSTIN:     regexp.MustCompile(`^[0-9]{2}[A-Z]{5}[0-9]{4}[A-Z][1-9A-Z]Z[0-9A-Z]$`),
	RegCIN:       regexp.MustCompile(`^[LU][0-9]{5}[A-Z]{2}[0-9]{4}[A-Z]{3}[0-9]{6}$`),
	RegLLPIN:     regexp.MustCompile(`^[A-Z]{3}-[0-9]{4}$`),
	RegIEC:       regexp.MustCompile(`^[0-9A-Z]{10}$`),
	RegFSSAI:     regexp.MustCompile(`^[0-9]{14}$`),
	RegDIN:       regexp.MustCompile(`^[0-9]{8}$`),
	RegMSMEUdyam: regexp.MustCompile(`^UDYAM-[A-Z]{2}-[0-9]{2}-[0-9]{7}$`),
}

// gstinAlphabet base 36 usada por el dígito de control del GSTIN.
const gstinAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// NormalizeNumber mayúsculas y sin espacios alrededor.
func NormalizeNumber(number string) string {
	return strings.ToUpper(strings.TrimSpace(number))
}

// ValidPAN indica si s tiene formato de PAN.
func ValidPAN(s string) bool {
	return numberPatterns[RegPAN].MatchString(NormalizeNumber(s))
}

// ValidateNumber valida el número normalizado contra el formato del tipo. Para GSTIN
// comprueba además el dígito de control y que el PAN embebido sea válido.
func ValidateNumber(t RegistrationType, number string) error {
	n := NormalizeNumber(number)
	if n == "" {
		return fmt.Errorf("%w: vacío", ErrInvalidNumber)
	}
	re, ok := numberPatterns[t]
	if !ok {
		return nil
	}
	if !re.MatchString(n) {
		return fmt.Errorf("%w: %s %q no tiene el formato esperado", ErrInvalidNumber, t, n)
	}
	if t == RegGSTIN {
		if want := GSTINCheckDigit(n[:14]); n[14] != want {
			return fmt.Errorf("%w: dígito de control de GSTIN %q (esperado %c)", ErrInvalidNumber, n, want)
		}
	}
	return nil
}

// GSTINCheckDigit calcula el carácter de control de los 14 primeros caracteres de un GSTIN.
// Cada carácter vale su posición en base 36; los de posición impar se multiplican por 2 y el
// producto se reduce sumando cociente y resto por 36.
func GSTINCheckDigit(first14 string) byte {
	sum := 0
	for i := 0; i < len(first14) && i < 14; i++ {
		v := strings.IndexByte(gstinAlphabet, first14[i])
		if v < 0 {
			return 0
		}
		p := v * (1 + i%2)
		sum += p/36 + p%36
	}
	return gstinAlphabet[(36-sum%36)%36]
}
