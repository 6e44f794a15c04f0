// Package inss contém as tabelas oficiais de contribuição ao INSS e o cálculo
// do valor da GPS por categoria de contribuinte.
package inss

import "github.com/shopspring/decimal"

// Valores oficiais de referência do exercício 2025.
var (
	MinimumWage2025 = decimal.RequireFromString("1518.00")
	Ceiling2025     = decimal.RequireFromString("8157.41")
)

// =============================================================================
// Categorias de contribuinte com os códigos de pagamento GPS correspondentes.
// Tipos de base: "range" permite escolher o salário de contribuição (limitado
// a [salário mínimo, teto]); "fixo" é sempre sobre o salário mínimo.
// =============================================================================

// ContributionClass descreve uma categoria de contribuinte.
type ContributionClass struct {
	Code        string // chave da categoria (ex: "autonomo")
	PaymentCode string // código de pagamento GPS (ex: "1007")
	Rate        decimal.Decimal
	FixedBase   bool // true = base sempre igual ao salário mínimo
	Months      int  // 1 mensal, 3 trimestral
	Description string
}

// Classes é o catálogo de categorias aceitas.
var Classes = map[string]ContributionClass{
	"autonomo": {
		Code: "autonomo", PaymentCode: "1007",
		Rate: decimal.RequireFromString("0.20"), Months: 1,
		Description: "Contribuinte Individual Mensal (20% sobre valor escolhido)",
	},
	"autonomo_trimestral": {
		Code: "autonomo_trimestral", PaymentCode: "1120",
		Rate: decimal.RequireFromString("0.20"), Months: 3,
		Description: "Contribuinte Individual Trimestral (20% × 3 meses)",
	},
	"autonomo_simplificado": {
		Code: "autonomo_simplificado", PaymentCode: "1163",
		Rate: decimal.RequireFromString("0.11"), FixedBase: true, Months: 1,
		Description: "Contribuinte Individual Plano Simplificado (11% sobre salário mínimo)",
	},
	"facultativo": {
		Code: "facultativo", PaymentCode: "1406",
		Rate: decimal.RequireFromString("0.20"), Months: 1,
		Description: "Facultativo Mensal (20% sobre valor escolhido)",
	},
	"facultativo_trimestral": {
		Code: "facultativo_trimestral", PaymentCode: "1457",
		Rate: decimal.RequireFromString("0.20"), Months: 3,
		Description: "Facultativo Trimestral (20% × 3 meses)",
	},
	"facultativo_simplificado": {
		Code: "facultativo_simplificado", PaymentCode: "1473",
		Rate: decimal.RequireFromString("0.11"), FixedBase: true, Months: 1,
		Description: "Facultativo Plano Simplificado (11% sobre salário mínimo)",
	},
	"facultativo_baixa_renda": {
		Code: "facultativo_baixa_renda", PaymentCode: "1929",
		Rate: decimal.RequireFromString("0.05"), FixedBase: true, Months: 1,
		Description: "Facultativo Baixa Renda (5% sobre salário mínimo, requer CadÚnico)",
	},
	"mei": {
		Code: "mei", PaymentCode: "1910",
		Rate: decimal.RequireFromString("0.05"), FixedBase: true, Months: 1,
		Description: "MEI Microempreendedor Individual (5% sobre salário mínimo)",
	},
	"segurado_especial": {
		Code: "segurado_especial", PaymentCode: "1503",
		Rate: decimal.RequireFromString("0.05"), FixedBase: true, Months: 1,
		Description: "Segurado Especial (5% sobre salário mínimo)",
	},
	"complementacao": {
		Code: "complementacao", PaymentCode: "1147",
		Rate: decimal.RequireFromString("0.09"), Months: 1,
		Description: "Complementação de 11% para 20%",
	},
}

// IsValidClass reporta se a categoria existe no catálogo, aceitando também os
// apelidos históricos do cadastro.
func IsValidClass(code string) bool {
	if _, ok := Classes[code]; ok {
		return true
	}
	_, ok := classAliases[code]
	return ok
}

// ResolveClass resolve a categoria, traduzindo apelidos históricos
// ("individual" → "autonomo" etc.).
func ResolveClass(code string) (ContributionClass, bool) {
	if c, ok := Classes[code]; ok {
		return c, true
	}
	if canonical, ok := classAliases[code]; ok {
		return Classes[canonical], true
	}
	return ContributionClass{}, false
}

// ClassByPaymentCode localiza a categoria pelo código de pagamento GPS.
func ClassByPaymentCode(paymentCode string) (ContributionClass, bool) {
	for _, c := range Classes {
		if c.PaymentCode == paymentCode {
			return c, true
		}
	}
	return ContributionClass{}, false
}

// Apelidos mantidos por compatibilidade com cadastros antigos.
var classAliases = map[string]string{
	"individual":      "autonomo",
	"ci_normal":       "autonomo",
	"ci_simplificado": "autonomo_simplificado",
	"baixa_renda":     "facultativo_baixa_renda",
}
