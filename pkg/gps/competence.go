package gps

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Competence representa a competência (mês/ano) de uma contribuição, no
// formato de entrada "MM/YYYY".
type Competence struct {
	Month int
	Year  int
}

// ParseCompetence interpreta "MM/YYYY" (ex: "11/2025"). Mês fora de 1–12 ou
// ano fora de 4 dígitos retornam ErrInvalidField.
func ParseCompetence(s string) (Competence, error) {
	parts := strings.Split(strings.TrimSpace(s), "/")
	if len(parts) != 2 {
		return Competence{}, fmt.Errorf("%w: competência %q deve estar no formato MM/YYYY", ErrInvalidField, s)
	}
	month, err := strconv.Atoi(parts[0])
	if err != nil || month < 1 || month > 12 {
		return Competence{}, fmt.Errorf("%w: mês inválido em %q", ErrInvalidField, s)
	}
	year, err := strconv.Atoi(parts[1])
	if err != nil || year < 1000 || year > 9999 {
		return Competence{}, fmt.Errorf("%w: ano inválido em %q (4 dígitos)", ErrInvalidField, s)
	}
	return Competence{Month: month, Year: year}, nil
}

// String devolve a competência no formato "MM/YYYY".
func (c Competence) String() string {
	return fmt.Sprintf("%02d/%04d", c.Month, c.Year)
}

// IsZero reporta se a competência não foi preenchida.
func (c Competence) IsZero() bool {
	return c.Month == 0 && c.Year == 0
}

// DueDate retorna o vencimento padrão da GPS: dia 15 do mês seguinte à competência.
func (c Competence) DueDate() time.Time {
	month, year := c.Month+1, c.Year
	if month > 12 {
		month, year = 1, year+1
	}
	return time.Date(year, time.Month(month), 15, 0, 0, 0, 0, time.UTC)
}

// Before reporta se a competência é estritamente anterior a other.
func (c Competence) Before(other Competence) bool {
	if c.Year != other.Year {
		return c.Year < other.Year
	}
	return c.Month < other.Month
}

// MonthsUntil conta quantos meses separam a competência de ref (positivo se a
// competência está no passado em relação a ref).
func (c Competence) MonthsUntil(ref time.Time) int {
	return (ref.Year()-c.Year)*12 + int(ref.Month()) - c.Month
}

// CompetenceAt devolve a competência do instante t.
func CompetenceAt(t time.Time) Competence {
	return Competence{Month: int(t.Month()), Year: t.Year()}
}
