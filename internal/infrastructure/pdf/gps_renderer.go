// Package pdf implementa a geração da representação gráfica da GPS (Guia da
// Previdência Social) para impressão e pagamento na rede bancária.
//
// Layout da página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: MPS / GPS  │  Competência + Vencimento             │
//	│  ─────────────────────────────────────────────────────────  │
//	│  CONTRIBUINTE: Nome / NIT / Endereço / Telefone             │
//	│  ─────────────────────────────────────────────────────────  │
//	│  CAMPOS: Código de Pagamento | Competência | Valor INSS     │
//	│          Outras Entidades | ATM/Multa/Juros | TOTAL         │
//	│  ─────────────────────────────────────────────────────────  │
//	│  LINHA DIGITÁVEL + CÓDIGO DE BARRAS                         │
//	│  Leyenda: autenticação mecânica / instruções                │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/gesielr/guiasMEIlast/internal/application/emission"
)

// ── Paleta de cores ───────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 80, Blue: 60}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Renderer ──────────────────────────────────────────────────────────────────

var _ emission.Renderer = (*GuideRenderer)(nil)

// GuideRenderer implementa emission.Renderer usando Maroto v2.
type GuideRenderer struct{}

// NewGuideRenderer constrói o renderizador.
func NewGuideRenderer() *GuideRenderer { return &GuideRenderer{} }

// Render gera o PDF da guia e devolve seus bytes.
func (g *GuideRenderer) Render(doc emission.GuideDocument) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("GPS - Guia da Previdência Social", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(doc))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(taxpayerRow(doc))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(fieldsRows(doc)...)
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(paymentRows(doc)...)
	m.AddRows(legendRow())

	out, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: gerar documento: %w", err)
	}
	return out.GetBytes(), nil
}

// ── Seções ────────────────────────────────────────────────────────────────────

// headerRow: identificação do documento (esq) e competência + vencimento (dir).
func headerRow(doc emission.GuideDocument) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New("MINISTÉRIO DA PREVIDÊNCIA SOCIAL", props.Text{
				Size: 8, Color: colorGray, Top: 1,
			}),
			text.New("GPS - GUIA DA PREVIDÊNCIA SOCIAL", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 5,
			}),
		),
		col.New(5).Add(
			text.New("Competência: "+doc.Competence.String(), props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Top: 3,
			}),
			text.New("Vencimento: "+doc.DueDate.Format("02/01/2006"), props.Text{
				Size: 9, Align: align.Right, Top: 10, Color: colorGray,
			}),
		),
	)
}

// taxpayerRow: dados do contribuinte.
func taxpayerRow(doc emission.GuideDocument) core.Row {
	contact := strings.TrimSpace(doc.Address)
	if doc.Phone != "" {
		if contact != "" {
			contact += " | "
		}
		contact += "Tel: " + doc.Phone
	}
	return row.New(14).Add(
		col.New(12).Add(
			text.New("CONTRIBUINTE", props.Text{
				Style: fontstyle.Bold, Size: 7, Color: colorPrimary, Top: 1,
			}),
			text.New(doc.TaxpayerName+" | NIT/PIS/PASEP: "+doc.TaxpayerID, props.Text{
				Size: 9, Top: 5,
			}),
			text.New(contact, props.Text{Size: 8, Top: 10, Color: colorGray}),
		),
	)
}

// fieldsRows: campos numerados da guia, no espelho do formulário oficial.
func fieldsRows(doc emission.GuideDocument) []core.Row {
	label := func(s string) core.Col {
		return col.New(6).Add(text.New(s, props.Text{Size: 8, Top: 1}))
	}
	value := func(s string) core.Col {
		return col.New(6).Add(text.New(s, props.Text{
			Size: 9, Align: align.Right, Top: 1, Style: fontstyle.Bold,
		}))
	}

	description := doc.CodeDescription
	if description == "" {
		description = "Contribuição INSS"
	}

	return []core.Row{
		row.New(6).Add(
			label("3. Código de Pagamento: " + doc.PaymentCode),
			value(description),
		),
		row.New(6).Add(
			label("4. Competência"),
			value(doc.Competence.String()),
		),
		row.New(6).Add(
			label("5. Identificador (NIT/PIS/PASEP)"),
			value(doc.TaxpayerID),
		),
		row.New(6).Add(
			label("6. Valor do INSS"),
			value("R$ "+formatMoney(doc.Amount.StringFixed(2))),
		),
		row.New(6).Add(
			label("11. TOTAL"),
			col.New(6).Add(text.New("R$ "+formatMoney(doc.Amount.StringFixed(2)), props.Text{
				Size: 11, Align: align.Right, Top: 0.5, Style: fontstyle.Bold, Color: colorPrimary,
			})),
		),
	}
}

// paymentRows: linha digitável e código de barras para leitura bancária.
func paymentRows(doc emission.GuideDocument) []core.Row {
	rows := []core.Row{
		row.New(8).Add(col.New(12).Add(
			text.New(doc.DigitizableLine, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Center, Top: 2,
			}),
		)),
	}
	if doc.Barcode != "" {
		rows = append(rows, row.New(20).Add(
			col.New(12).Add(code.NewBar(doc.Barcode, props.Barcode{
				Percent: 90,
				Center:  true,
			})),
		))
	}
	return rows
}

func legendRow() core.Row {
	return row.New(10).Add(col.New(12).Add(
		text.New(
			"Pagável em toda a rede bancária e casas lotéricas até a data de vencimento. "+
				"Após o vencimento, emita nova guia com os acréscimos legais. "+
				"Guarde este documento como comprovante de recolhimento.",
			props.Text{Size: 6.5, Color: colorGray, Top: 2},
		),
	))
}

// formatMoney converte "1234.56" para o formato brasileiro "1.234,56".
func formatMoney(s string) string {
	intPart := s
	decPart := "00"
	if i := strings.Index(s, "."); i >= 0 {
		intPart = s[:i]
		decPart = s[i+1:]
	}
	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(r)
	}
	return b.String() + "," + decPart
}
