package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// EmitGPSRequest pedido de emissão de guia GPS.
//
// O valor pode ser informado diretamente (amount) ou calculado a partir da
// categoria de contribuinte (class + base). TaxpayerID é opcional: quando
// vazio, usamos o NIT (ou CPF) do perfil autenticado.
type EmitGPSRequest struct {
	PaymentCode string          `json:"payment_code"`
	Competence  string          `json:"competence"` // MM/AAAA
	Amount      decimal.Decimal `json:"amount"`
	Class       string          `json:"class,omitempty"`
	Base        decimal.Decimal `json:"base,omitempty"`
	TaxpayerID  string          `json:"taxpayer_id,omitempty"`
	// ForcedMethod sobrepõe a decisão automática ("local", "local_validado",
	// "sal_oficial"). Uso administrativo e de teste.
	ForcedMethod string `json:"forced_method,omitempty"`
}

// EmitGPSResponse guia emitida.
type EmitGPSResponse struct {
	ID                   string          `json:"id"`
	Barcode              string          `json:"barcode"`
	DigitizableLine      string          `json:"digitizable_line"`
	Amount               decimal.Decimal `json:"amount"`
	DueDate              time.Time       `json:"due_date"`
	Competence           string          `json:"competence"`
	PaymentCode          string          `json:"payment_code"`
	Method               string          `json:"method"`
	ValidatedByAuthority bool            `json:"validated_by_authority"`
	PendingValidation    bool            `json:"pending_validation"`
	// PDF em base64 quando inline; URL quando persistido em storage externo.
	PDFBase64 string `json:"pdf_base64,omitempty"`
	PDFURL    string `json:"pdf_url,omitempty"`
}

// DivergenceResponse divergência registrada pela conferência em background.
type DivergenceResponse struct {
	ID               string          `json:"id"`
	EmissionID       string          `json:"emission_id"`
	Competence       string          `json:"competence"`
	Amount           decimal.Decimal `json:"amount"`
	LocalBarcode     string          `json:"local_barcode"`
	AuthorityBarcode string          `json:"authority_barcode"`
	Kind             string          `json:"kind"`
	Resolved         bool            `json:"resolved"`
	CreatedAt        time.Time       `json:"created_at"`
}
