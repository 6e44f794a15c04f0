package inss

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/gesielr/guiasMEIlast/internal/domain"
)

// Contribution é o resultado do cálculo: código de pagamento e valor da GPS.
type Contribution struct {
	ClassCode   string
	PaymentCode string
	Amount      decimal.Decimal
	Base        decimal.Decimal
	Rate        decimal.Decimal
	Description string
}

// Calculator calcula o valor da contribuição por categoria, com o salário
// mínimo e o teto vigentes injetados (facilita a virada de exercício).
type Calculator struct {
	minimumWage decimal.Decimal
	ceiling     decimal.Decimal
}

// NewCalculator constrói o calculador com os valores vigentes.
func NewCalculator(minimumWage, ceiling decimal.Decimal) *Calculator {
	return &Calculator{minimumWage: minimumWage, ceiling: ceiling}
}

// NewCalculator2025 constrói o calculador com a tabela de 2025.
func NewCalculator2025() *Calculator {
	return NewCalculator(MinimumWage2025, Ceiling2025)
}

// Calculate aplica a alíquota da categoria sobre a base. Para categorias de
// base fixa a base informada é ignorada (sempre salário mínimo); para as
// demais, a base é limitada ao intervalo [salário mínimo, teto].
// Categorias trimestrais multiplicam o resultado pelos meses do período.
func (c *Calculator) Calculate(classCode string, base decimal.Decimal) (Contribution, error) {
	class, ok := ResolveClass(classCode)
	if !ok {
		return Contribution{}, fmt.Errorf("%w: categoria de contribuinte desconhecida %q", domain.ErrInvalidInput, classCode)
	}

	effectiveBase := base
	if class.FixedBase {
		effectiveBase = c.minimumWage
	} else {
		if effectiveBase.LessThan(c.minimumWage) {
			effectiveBase = c.minimumWage
		}
		if effectiveBase.GreaterThan(c.ceiling) {
			effectiveBase = c.ceiling
		}
	}

	amount := effectiveBase.Mul(class.Rate).Round(2)
	if class.Months > 1 {
		amount = amount.Mul(decimal.NewFromInt(int64(class.Months)))
	}

	return Contribution{
		ClassCode:   class.Code,
		PaymentCode: class.PaymentCode,
		Amount:      amount,
		Base:        effectiveBase,
		Rate:        class.Rate,
		Description: class.Description,
	}, nil
}
