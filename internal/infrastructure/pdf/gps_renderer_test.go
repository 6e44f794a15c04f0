package pdf

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gesielr/guiasMEIlast/internal/application/emission"
	"github.com/gesielr/guiasMEIlast/pkg/gps"
)

func TestRender_GeraPDFValido(t *testing.T) {
	r := NewGuideRenderer()

	pdfBytes, err := r.Render(emission.GuideDocument{
		TaxpayerName:    "Maria da Silva",
		TaxpayerID:      "27317621955",
		Address:         "Rua das Flores, 100 - São Paulo/SP",
		PaymentCode:     "1007",
		CodeDescription: "Contribuinte Individual Mensal",
		Competence:      gps.Competence{Month: 11, Year: 2025},
		DueDate:         time.Date(2025, 12, 15, 0, 0, 0, 0, time.UTC),
		Amount:          decimal.RequireFromString("303.60"),
		Barcode:         "85840000003036002701007000173176219552025113",
		DigitizableLine: "85840000003-5 03600270100-7 70001731762-7 19552025113-2",
	})
	require.NoError(t, err)
	require.NotEmpty(t, pdfBytes)
	assert.Equal(t, "%PDF", string(pdfBytes[:4]))
}

func TestFormatMoney(t *testing.T) {
	assert.Equal(t, "303,60", formatMoney("303.60"))
	assert.Equal(t, "1.518,00", formatMoney("1518.00"))
	assert.Equal(t, "8.157,41", formatMoney("8157.41"))
	assert.Equal(t, "1.234.567,89", formatMoney("1234567.89"))
}
