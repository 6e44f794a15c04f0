package inss

import (
	"fmt"
	"strings"
	"time"

	"github.com/gesielr/guiasMEIlast/internal/domain"
	"github.com/gesielr/guiasMEIlast/pkg/gps"
)

// Janela aceita para emissão online: competência não pode ser futura nem ter
// mais de 12 meses. Competências entre 12 meses e a prescrição de 5 anos só
// em agência; acima de 5 anos estão prescritas.
const (
	maxMonthsOnline    = 12
	prescriptionMonths = 60
)

// ValidateCompetence valida a janela da competência em relação a now.
func ValidateCompetence(c gps.Competence, now time.Time) error {
	current := gps.CompetenceAt(now)
	if current.Before(c) {
		return fmt.Errorf("%w: GPS não pode ser gerada para competência futura (%s)", domain.ErrInvalidInput, c)
	}
	months := c.MonthsUntil(now)
	if months > prescriptionMonths {
		return fmt.Errorf("%w: competência %s prescrita (mais de 5 anos)", domain.ErrInvalidInput, c)
	}
	if months > maxMonthsOnline {
		return fmt.Errorf("%w: emissão online permitida apenas para os últimos 12 meses (competência %s tem %d meses); procure uma agência", domain.ErrInvalidInput, c, months)
	}
	return nil
}

// ValidateCPF valida formato e dígitos verificadores do CPF.
// Aceita com ou sem pontuação.
func ValidateCPF(cpf string) error {
	clean := onlyDigits(cpf)
	if len(clean) != 11 {
		return fmt.Errorf("%w: CPF deve ter 11 dígitos", domain.ErrInvalidInput)
	}
	// Sequências repetidas (111.111.111-11 etc.) passam no módulo 11 mas são inválidas.
	if strings.Count(clean, string(clean[0])) == 11 {
		return fmt.Errorf("%w: CPF com dígitos repetidos", domain.ErrInvalidInput)
	}
	if clean[9] != cpfDigit(clean[:9], 10) || clean[10] != cpfDigit(clean[:10], 11) {
		return fmt.Errorf("%w: dígitos verificadores do CPF não conferem", domain.ErrInvalidInput)
	}
	return nil
}

// cpfDigit calcula um DV do CPF: pesos decrescentes a partir de firstWeight,
// DV = 11 - (soma mod 11), com resultado >= 10 valendo 0.
func cpfDigit(partial string, firstWeight int) byte {
	sum := 0
	for i := 0; i < len(partial); i++ {
		sum += int(partial[i]-'0') * (firstWeight - i)
	}
	d := 11 - sum%11
	if d >= 10 {
		d = 0
	}
	return byte('0' + d)
}

func onlyDigits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
