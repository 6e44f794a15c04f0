package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Métodos de emissão de GPS. A decisão é tomada uma única vez por requisição
// e nunca muda depois.
const (
	MethodLocal          = "local"          // geração local, caminho padrão e barato
	MethodLocalValidated = "local_validado" // geração local + conferência no SAL em background
	MethodAuthority      = "sal_oficial"    // emissão delegada ao SAL
)

// Status de pagamento da guia.
const (
	EmissionStatusPending = "pendente"
	EmissionStatusPaid    = "paga"
)

// Emission é o registro de uma guia GPS emitida.
// ValidatedByAuthority só vira true pelo reconciliador, nunca na emissão local.
type Emission struct {
	ID                   string
	UserID               string
	PaymentCode          string // código de pagamento GPS (ex: "1007")
	Competence           string // "MM/YYYY"
	Amount               decimal.Decimal
	Barcode              string // 44 dígitos
	DigitizableLine      string
	Method               string // MethodLocal | MethodLocalValidated | MethodAuthority
	Status               string
	DueDate              time.Time
	PDFURL               string
	ValidatedByAuthority bool
	ValidatedAt          *time.Time
	PendingValidation    bool
	CreatedAt            time.Time
	UpdatedAt            time.Time
}
